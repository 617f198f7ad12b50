/*
DESCRIPTION
  unpack.go converts a pixel.Image's raw sample bytes into the
  pipeline's working float32 buffer (§4.9), normalising mosaic samples
  by the raw white point and replicating a non-mosaic RGB image's
  channels out to RGBA. This conversion happens once, lazily, on the
  pipeline's first render.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pipeline

import (
	"encoding/binary"
	"math"

	"github.com/rawforge/pixelpipe/pixel"
)

// ensureWorking lazily unpacks p.image into p.working on first use.
func (p *Pipeline) ensureWorking() (*pixel.Buffer, error) {
	if p.working != nil {
		return p.working, nil
	}
	buf, err := unpackImage(p.image, p.initialDsc)
	if err != nil {
		return nil, err
	}
	p.working = buf
	return buf, nil
}

func unpackImage(img *pixel.Image, dsc pixel.Descriptor) (*pixel.Buffer, error) {
	buf, err := pixel.NewBuffer(dsc, img.Width, img.Height)
	if err != nil {
		return nil, err
	}

	if img.Filters.Kind != pixel.FilterNone {
		unpackMosaic(img, buf)
		return buf, nil
	}
	unpackRGB(img, buf)
	return buf, nil
}

func unpackMosaic(img *pixel.Image, buf *pixel.Buffer) {
	white := img.RawWhitePoint
	if white <= 0 {
		white = 1
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			idx := y*img.Width + x
			buf.Data[buf.At(x, y)] = sample(img.Pix, idx, img.BytesPerSample) / white
		}
	}
}

func unpackRGB(img *pixel.Image, buf *pixel.Buffer) {
	channels := img.Channels
	if channels != 1 && channels != 3 {
		channels = 1
	}
	max := float32(1)
	if img.BytesPerSample == 2 {
		max = 65535
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			pixIdx := (y*img.Width + x) * channels
			oi := buf.At(x, y)
			if channels == 1 {
				v := sample(img.Pix, pixIdx, img.BytesPerSample) / max
				buf.Data[oi], buf.Data[oi+1], buf.Data[oi+2] = v, v, v
			} else {
				buf.Data[oi] = sample(img.Pix, pixIdx, img.BytesPerSample) / max
				buf.Data[oi+1] = sample(img.Pix, pixIdx+1, img.BytesPerSample) / max
				buf.Data[oi+2] = sample(img.Pix, pixIdx+2, img.BytesPerSample) / max
			}
			buf.Data[oi+3] = 1
		}
	}
}

// sample reads the index'th sample (not byte offset) from raw,
// according to sampleSize (2 for uint16, 4 for float32).
func sample(raw []byte, index, sampleSize int) float32 {
	off := index * sampleSize
	if off+sampleSize > len(raw) {
		return 0
	}
	switch sampleSize {
	case 2:
		return float32(binary.LittleEndian.Uint16(raw[off:]))
	case 4:
		return math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
	default:
		return 0
	}
}
