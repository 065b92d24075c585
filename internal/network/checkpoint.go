package network

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Model file layout, written little-endian:
//
//	int32        layerCount
//	repeated layerCount times:
//	  int32      inputWidth
//	  int32      outputWidth
//	  1 byte     activation tag ('s','t','r','l')
//	  float32[inputWidth*outputWidth]  weights (row-major: in*outputWidth + out)
//	  float32[outputWidth]             biases
//
// There is no magic or checksum; this is the trainer's private format.

// Save writes the full parameter set to path, creating or truncating the
// file. On error the network itself is left untouched.
func (n *Network) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := n.write(w); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save model: %w", err)
	}
	return nil
}

func (n *Network) write(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(n.layers))); err != nil {
		return err
	}
	for _, layer := range n.layers {
		if err := binary.Write(w, binary.LittleEndian, int32(layer.in)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, int32(layer.out)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, byte(layer.act)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, layer.weights); err != nil {
			return err
		}
		if err := binary.Write(w, binary.LittleEndian, layer.biases); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a model saved by Save and reconstructs the network: topology
// and activation tags first, then a direct sequential read of each layer's
// weights and biases.
//
// Returns an explicit error on open failure or malformed content; no
// partially populated network is ever returned.
func Load(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	defer f.Close()

	n, err := read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return n, nil
}

func read(r io.Reader) (*Network, error) {
	var layerCount int32
	if err := binary.Read(r, binary.LittleEndian, &layerCount); err != nil {
		return nil, wrapTruncated(err)
	}
	if layerCount <= 0 {
		return nil, fmt.Errorf("%w: layer count %d", ErrInvalidShape, layerCount)
	}

	layers := make([]*Layer, 0, layerCount)
	for i := int32(0); i < layerCount; i++ {
		var in, out int32
		var tag byte
		if err := binary.Read(r, binary.LittleEndian, &in); err != nil {
			return nil, wrapTruncated(err)
		}
		if err := binary.Read(r, binary.LittleEndian, &out); err != nil {
			return nil, wrapTruncated(err)
		}
		if err := binary.Read(r, binary.LittleEndian, &tag); err != nil {
			return nil, wrapTruncated(err)
		}

		if in <= 0 || out <= 0 {
			return nil, fmt.Errorf("%w: layer %d is %dx%d", ErrInvalidShape, i, in, out)
		}
		act := Activation(tag)
		if !act.Valid() {
			return nil, fmt.Errorf("%w: layer %d tag %q", ErrInvalidActivation, i, tag)
		}
		if len(layers) > 0 && layers[len(layers)-1].out != int(in) {
			return nil, fmt.Errorf("%w: layer %d input width %d does not match previous output width %d",
				ErrInvalidShape, i, in, layers[len(layers)-1].out)
		}

		layer := &Layer{
			in:      int(in),
			out:     int(out),
			act:     act,
			weights: make([]float32, int(in)*int(out)),
			biases:  make([]float32, out),
		}
		if err := binary.Read(r, binary.LittleEndian, layer.weights); err != nil {
			return nil, wrapTruncated(err)
		}
		if err := binary.Read(r, binary.LittleEndian, layer.biases); err != nil {
			return nil, wrapTruncated(err)
		}
		layers = append(layers, layer)
	}

	return &Network{layers: layers}, nil
}

func wrapTruncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTruncatedModel, err)
	}
	return err
}
