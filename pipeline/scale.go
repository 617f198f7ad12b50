/*
DESCRIPTION
  scale.go resamples the final float32 backbuffer to a requested scale
  factor using golang.org/x/image/draw's Catmull-Rom scaler, via a thin
  image.Image/draw.Image adapter over pixel.Buffer. This runs after the
  full module chain (§4.6: scale is a render-time parameter, not a
  module), so every module's Process always sees native-resolution
  pixel data.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pipeline

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/rawforge/pixelpipe/pixel"
)

// bufferImage adapts a *pixel.Buffer to image.Image and draw.Image,
// using 16-bit-per-channel colour: samples are clamped to [0, 1] and
// quantised to steps of 1/65535 on the way into and out of the scaler.
type bufferImage struct {
	buf *pixel.Buffer
}

func (b *bufferImage) ColorModel() color.Model { return color.NRGBA64Model }
func (b *bufferImage) Bounds() image.Rectangle { return image.Rect(0, 0, b.buf.Width, b.buf.Height) }

func (b *bufferImage) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= b.buf.Width || y >= b.buf.Height {
		return color.NRGBA64{}
	}
	si := b.buf.At(x, y)
	a := float32(1)
	if b.buf.Dsc.Channels >= 4 {
		a = b.buf.Data[si+3]
	}
	return color.NRGBA64{
		R: to16(b.buf.Data[si]),
		G: to16(b.buf.Data[si+1]),
		B: to16(b.buf.Data[si+2]),
		A: to16(a),
	}
}

func (b *bufferImage) Set(x, y int, c color.Color) {
	if x < 0 || y < 0 || x >= b.buf.Width || y >= b.buf.Height {
		return
	}
	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	oi := b.buf.At(x, y)
	b.buf.Data[oi] = from16(nc.R)
	b.buf.Data[oi+1] = from16(nc.G)
	b.buf.Data[oi+2] = from16(nc.B)
	if b.buf.Dsc.Channels >= 4 {
		b.buf.Data[oi+3] = from16(nc.A)
	}
}

func to16(v float32) uint16 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint16(v*65535 + 0.5)
}

func from16(v uint16) float32 {
	return float32(v) / 65535
}

// resample scales buf by factor using Catmull-Rom interpolation,
// returning a freshly allocated buffer of the scaled extent.
func resample(buf *pixel.Buffer, factor float64) (*pixel.Buffer, error) {
	if buf.Empty() {
		return buf, nil
	}
	dstW := int(float64(buf.Width)*factor + 0.5)
	dstH := int(float64(buf.Height)*factor + 0.5)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}
	dst, err := pixel.NewBuffer(buf.Dsc, dstW, dstH)
	if err != nil {
		return nil, err
	}
	src := &bufferImage{buf: buf}
	dstImg := &bufferImage{buf: dst}
	draw.CatmullRom.Scale(dstImg, dstImg.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
