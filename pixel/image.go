/*
DESCRIPTION
  image.go describes Image, the source-image reference borrowed (never
  mutated) by a pipeline. It models the external interface (§6): either a
  mosaic (Bayer/X-Trans) sensor image, or a non-mosaic image of 1 or 3
  channels that is expanded to RGBA on unpack.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pixel

// Orientation describes the camera-reported rotation/flip to apply to the
// decoded image; the pipeline itself does not interpret it beyond passing
// it to modules that care (e.g. a future crop/rotate module).
type Orientation uint8

const (
	OrientationNormal Orientation = iota
	OrientationRotate90
	OrientationRotate180
	OrientationRotate270
	OrientationFlipHorizontal
	OrientationFlipVertical
)

// Image is the decoded source image handed to Pipeline.Create. It is
// borrowed: the pipeline never mutates it, and its lifetime must outlive
// the pipeline that references it.
type Image struct {
	Width, Height int

	// BytesPerSample is 2 for 16-bit unsigned mosaic samples, 4 for
	// float32 mosaic or RGB samples.
	BytesPerSample int

	// Filters describes the CFA pattern. FilterNone indicates a
	// non-mosaic RGB image.
	Filters Filters

	// RawWhitePoint is the raw white point used to normalise mosaic
	// samples during unpack. Unused for non-mosaic images.
	RawWhitePoint float32

	// AsShot holds the camera's as-shot white-balance multipliers,
	// one per raw channel (R, G1, B, G2).
	AsShot [4]float32

	// CameraToXYZ is the camera's colour matrix mapping camera RGB to
	// the XYZ working space, row-major 3x3.
	CameraToXYZ [9]float64

	Orientation Orientation
	Monochrome  bool

	// Pix holds the raw sample bytes: mosaic samples (1 channel/pixel)
	// when Filters.Kind != FilterNone, or RGB samples (1 or 3
	// channels/pixel, replicated to 4 on unpack) otherwise. Interpreted
	// according to BytesPerSample.
	Pix []byte

	// Channels is the number of channels actually present in Pix for a
	// non-mosaic image (1 for monochrome-replicated, 3 for RGB).
	// Ignored for mosaic images, which are always 1 channel/pixel.
	Channels int
}

// Valid reports whether the image has consistent, non-empty pixel data.
// Pipeline.Create returns InvalidImage when this fails.
func (img *Image) Valid() error {
	if img == nil {
		return &InvalidImage{Reason: "nil image"}
	}
	if img.Width <= 0 || img.Height <= 0 {
		return &InvalidImage{Reason: "non-positive dimensions"}
	}
	if img.BytesPerSample != 2 && img.BytesPerSample != 4 {
		return &InvalidImage{Reason: "bytes-per-sample must be 2 or 4"}
	}
	channels := 1
	if img.Filters.Kind == FilterNone {
		channels = img.Channels
		if channels != 1 && channels != 3 {
			return &InvalidImage{Reason: "non-mosaic channels must be 1 or 3"}
		}
	}
	want := img.Width * img.Height * channels * img.BytesPerSample
	if len(img.Pix) < want {
		return &InvalidImage{Reason: "pixel buffer shorter than width*height*channels*bytesPerSample"}
	}
	return nil
}
