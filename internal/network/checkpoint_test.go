package network

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	net := NewWithActivations([]int{6, 4, 3}, []Activation{ReLU, Sigmoid})
	require.NoError(t, net.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, net.Topology(), loaded.Topology())
	for i, layer := range net.Layers() {
		got := loaded.Layers()[i]
		assert.Equal(t, layer.Activation(), got.Activation())
		assert.Equal(t, layer.Weights(), got.Weights())
		assert.Equal(t, layer.Biases(), got.Biases())
	}

	// Inference must be bit-identical across the round trip.
	in := []float32{0.1, 0.9, 0.3, 0.0, 0.5, 0.7}
	assert.Equal(t, net.FeedForward(in), loaded.FeedForward(in))
}

func TestSaveLoadAfterTraining(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	net := New(8, 5, 10)
	for i := 0; i < 10; i++ {
		net.Train([]float32{1, 0, 1, 0, 1, 0, 1, 0}, []float32{0, 1, 0, 0, 0, 0, 0, 0, 0, 0}, 0.05)
	}
	require.NoError(t, net.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	in := []float32{0.2, 0.4, 0.6, 0.8, 1.0, 0.0, 0.5, 0.3}
	assert.Equal(t, net.FeedForward(in), loaded.FeedForward(in))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bin"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	net := New(6, 4, 3)
	require.NoError(t, net.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o644))

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrTruncatedModel)
}

func TestLoadInvalidActivationTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(1)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, byte('x')))
	require.NoError(t, f.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidActivation)
}

func TestLoadInvalidLayerCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(-1)))
	require.NoError(t, f.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestLoadMismatchedWidths(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")

	// Two layers whose widths do not chain: 2→3 followed by 4→1.
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(2)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(3)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, byte('t')))
	require.NoError(t, binary.Write(f, binary.LittleEndian, make([]float32, 6)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, make([]float32, 3)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(4)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, int32(1)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, byte('s')))
	require.NoError(t, binary.Write(f, binary.LittleEndian, make([]float32, 4)))
	require.NoError(t, binary.Write(f, binary.LittleEndian, make([]float32, 1)))
	require.NoError(t, f.Close())

	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidShape)
}
