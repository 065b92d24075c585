package augment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gradientImage builds a width×height image with a distinct value per
// pixel so displacement mistakes are visible.
func gradientImage(width, height int) []float32 {
	img := make([]float32, width*height)
	for i := range img {
		img[i] = float32(i+1) / float32(len(img))
	}
	return img
}

func TestTranslateIdentity(t *testing.T) {
	img := gradientImage(28, 28)
	assert.Equal(t, img, Translate(img, 0, 0, 28, 28))
}

func TestTranslateShiftsContent(t *testing.T) {
	// Single bright pixel at (1,1) on a 4×4 grid.
	img := make([]float32, 16)
	img[1*4+1] = 1.0

	out := Translate(img, 2, 1, 4, 4)

	// Content moved right 2, down 1: now at (3,2).
	for i, v := range out {
		if i == 2*4+3 {
			assert.Equal(t, float32(1.0), v)
		} else {
			assert.Zero(t, v, "pixel %d", i)
		}
	}
}

func TestTranslateZeroFillsNoWraparound(t *testing.T) {
	img := gradientImage(4, 4)

	out := Translate(img, 3, 0, 4, 4)

	// Columns 0..2 read from outside the source and must be zero.
	for y := 0; y < 4; y++ {
		for x := 0; x < 3; x++ {
			assert.Zero(t, out[y*4+x])
		}
		assert.Equal(t, img[y*4+0], out[y*4+3])
	}
}

// TestTranslateRoundTrip shifts and unshifts: pixels that stayed in
// bounds are restored, pixels shifted out are zero-filled.
func TestTranslateRoundTrip(t *testing.T) {
	const w, h = 8, 8
	img := gradientImage(w, h)

	out := Translate(Translate(img, 2, 1, w, h), -2, -1, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Forward shift moved (x,y) to (x+2,y+1); if that left the
			// grid the value is gone.
			if x+2 >= w || y+1 >= h {
				assert.Zero(t, out[y*w+x], "pixel (%d,%d)", x, y)
			} else {
				assert.Equal(t, img[y*w+x], out[y*w+x], "pixel (%d,%d)", x, y)
			}
		}
	}
}

// TestScaleIdentity checks that scale 1.0 reproduces every pixel with a
// valid interpolation neighborhood. The last row and column have no 2×2
// neighborhood and are zero-filled, so only interior pixels compare.
func TestScaleIdentity(t *testing.T) {
	const w, h = 28, 28
	img := gradientImage(w, h)

	out := Scale(img, 1.0, w, h, w, h)

	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			assert.InDelta(t, img[y*w+x], out[y*w+x], 1e-6, "pixel (%d,%d)", x, y)
		}
	}
}

// TestScaleZoomSpreadsCenterPixel zooms a single bright center pixel by
// 2× on a 5×5 grid. The inverse mapping lands halfway between source
// pixels for the center's neighbors, so bilinear weights dictate:
// 1.0 at the center, 0.5 at its 4-neighbors, 0.25 diagonally, 0 elsewhere.
func TestScaleZoomSpreadsCenterPixel(t *testing.T) {
	const w = 5
	img := make([]float32, w*w)
	img[2*w+2] = 1.0

	out := Scale(img, 2.0, w, w, w, w)

	want := map[[2]int]float32{
		{2, 2}: 1.0,
		{1, 2}: 0.5, {3, 2}: 0.5, {2, 1}: 0.5, {2, 3}: 0.5,
		{1, 1}: 0.25, {3, 1}: 0.25, {1, 3}: 0.25, {3, 3}: 0.25,
	}
	for y := 0; y < w; y++ {
		for x := 0; x < w; x++ {
			assert.InDelta(t, want[[2]int{x, y}], out[y*w+x], 1e-6, "pixel (%d,%d)", x, y)
		}
	}
}

func TestScaleZoomOutKeepsSize(t *testing.T) {
	img := gradientImage(28, 28)

	out := Scale(img, 0.5, 28, 28, 28, 28)
	require.Len(t, out, 28*28)

	// Zooming out pulls in source coordinates beyond the valid
	// neighborhood near the edges; those pixels are zero.
	assert.Zero(t, out[0])
	assert.Zero(t, out[27])
}

// TestTransformsCompose applies scale after translate; both are pure so
// the originals must be untouched.
func TestTransformsCompose(t *testing.T) {
	img := gradientImage(28, 28)
	orig := append([]float32(nil), img...)

	shifted := Translate(img, 1, -1, 28, 28)
	zoomed := Scale(shifted, 1.1, 28, 28, 28, 28)

	require.Len(t, zoomed, 28*28)
	assert.Equal(t, orig, img)
}
