// Package augment provides pure geometric transforms over normalized
// pixel buffers, used to synthesize training variants of dataset images.
//
// Buffers are row-major float32 slices of width·height intensities. Both
// transforms allocate their result, share no state, and compose freely.
package augment

import (
	"github.com/chewxy/math32"
)

// Translate shifts image content by (dx, dy) pixels: positive dx moves
// the content right, positive dy moves it down. The output grid has the
// same size as the input; destination pixels whose source (x−dx, y−dy)
// falls outside the original bounds are zero-filled, so content shifted
// out is lost rather than wrapped.
func Translate(pixels []float32, dx, dy, width, height int) []float32 {
	out := make([]float32, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := x - dx
			sy := y - dy
			if sx >= 0 && sx < width && sy >= 0 && sy < height {
				out[y*width+x] = pixels[sy*width+sx]
			}
		}
	}
	return out
}

// Scale produces a dstW×dstH image that zooms src by the given factor
// about its geometric center: scale > 1 zooms in, scale < 1 zooms out.
//
// Each destination pixel is inverse-mapped to a source coordinate
//
//	sx = (x − cxDst)/scale + cxSrc
//	sy = (y − cyDst)/scale + cySrc
//
// with centers c = (W−1)/2, and bilinear-interpolated from its four
// neighboring source pixels. Coordinates without a full 2×2 neighborhood
// (outside [0, srcW−2]×[0, srcH−2]) yield 0.
func Scale(src []float32, scale float32, srcW, srcH, dstW, dstH int) []float32 {
	out := make([]float32, dstW*dstH)

	cxSrc := float32(srcW-1) / 2.0
	cySrc := float32(srcH-1) / 2.0
	cxDst := float32(dstW-1) / 2.0
	cyDst := float32(dstH-1) / 2.0

	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			sx := (float32(x)-cxDst)/scale + cxSrc
			sy := (float32(y)-cyDst)/scale + cySrc

			if sx < 0 || sx >= float32(srcW-1) || sy < 0 || sy >= float32(srcH-1) {
				continue
			}

			x0 := int(math32.Floor(sx))
			y0 := int(math32.Floor(sy))
			wx := sx - float32(x0)
			wy := sy - float32(y0)

			v00 := src[y0*srcW+x0]
			v10 := src[y0*srcW+x0+1]
			v01 := src[(y0+1)*srcW+x0]
			v11 := src[(y0+1)*srcW+x0+1]

			v0 := v00*(1-wx) + v10*wx
			v1 := v01*(1-wx) + v11*wx
			out[y*dstW+x] = v0*(1-wy) + v1*wy
		}
	}

	return out
}
