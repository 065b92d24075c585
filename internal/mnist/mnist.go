// Package mnist decodes the paired IDX binary files of the MNIST digit
// dataset into labeled, normalized samples.
//
// IDX files carry big-endian headers: the image file starts with magic
// 2051 followed by image count, row count and column count; the label
// file starts with magic 2049 followed by the label count. Pixel and
// label payloads are raw unsigned bytes.
package mnist

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// Magic numbers of the IDX image and label files.
const (
	imageMagic = 2051
	labelMagic = 2049
)

// Classes is the number of digit classes.
const Classes = 10

// Decoding errors. Load wraps these with file context; callers should
// test with errors.Is.
var (
	ErrInvalidMagic  = errors.New("invalid IDX magic number")
	ErrCountMismatch = errors.New("image count does not match label count")
)

// Sample is one labeled digit image.
//
// Pixels holds rows·cols intensities normalized to [0,1] in row-major
// order. Target is the one-hot encoding of Label over the 10 digit
// classes. Samples are immutable after decoding.
type Sample struct {
	Pixels []float32
	Target []float32
	Label  int
}

// Load decodes a paired image/label file set and returns one Sample per
// record, in file order. Decoding is deterministic: identical files
// always produce identical samples.
//
// Any open, header or payload failure returns an explicit error and no
// samples; a partial dataset is never returned.
func Load(imagePath, labelPath string) ([]Sample, error) {
	imgFile, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("open images: %w", err)
	}
	defer imgFile.Close()

	lblFile, err := os.Open(labelPath)
	if err != nil {
		return nil, fmt.Errorf("open labels: %w", err)
	}
	defer lblFile.Close()

	samples, err := decode(bufio.NewReader(imgFile), bufio.NewReader(lblFile))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", imagePath, err)
	}
	return samples, nil
}

func decode(images, labels io.Reader) ([]Sample, error) {
	// Image header: magic, count, rows, cols. binary.Read handles the
	// big-endian byte swap on little-endian hosts.
	var imgHeader struct {
		Magic, Count, Rows, Cols uint32
	}
	if err := binary.Read(images, binary.BigEndian, &imgHeader); err != nil {
		return nil, fmt.Errorf("read image header: %w", err)
	}
	if imgHeader.Magic != imageMagic {
		return nil, fmt.Errorf("%w: image file has %d, want %d", ErrInvalidMagic, imgHeader.Magic, imageMagic)
	}

	// Label header: magic, count.
	var lblHeader struct {
		Magic, Count uint32
	}
	if err := binary.Read(labels, binary.BigEndian, &lblHeader); err != nil {
		return nil, fmt.Errorf("read label header: %w", err)
	}
	if lblHeader.Magic != labelMagic {
		return nil, fmt.Errorf("%w: label file has %d, want %d", ErrInvalidMagic, lblHeader.Magic, labelMagic)
	}

	if imgHeader.Count != lblHeader.Count {
		return nil, fmt.Errorf("%w: %d images, %d labels", ErrCountMismatch, imgHeader.Count, lblHeader.Count)
	}

	imageSize := int(imgHeader.Rows) * int(imgHeader.Cols)
	samples := make([]Sample, imgHeader.Count)
	pixelBuf := make([]byte, imageSize)

	for i := range samples {
		var labelByte byte
		if err := binary.Read(labels, binary.BigEndian, &labelByte); err != nil {
			return nil, fmt.Errorf("read label %d: %w", i, err)
		}

		if _, err := io.ReadFull(images, pixelBuf); err != nil {
			return nil, fmt.Errorf("read image %d: %w", i, err)
		}

		pixels := make([]float32, imageSize)
		for j, p := range pixelBuf {
			pixels[j] = float32(p) / 255.0
		}

		target := make([]float32, Classes)
		if int(labelByte) < Classes {
			target[labelByte] = 1.0
		}

		samples[i] = Sample{
			Pixels: pixels,
			Target: target,
			Label:  int(labelByte),
		}
	}

	return samples, nil
}
