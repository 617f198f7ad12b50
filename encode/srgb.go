/*
DESCRIPTION
  srgb.go implements the output encoder (C10): linear-to-sRGB gamma
  encoding and 8-bit quantization of the pipeline's final float-RGBA
  backbuffer, per §4.10.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package encode

import (
	"math"

	"github.com/rawforge/pixelpipe/pixel"
)

const srgbBreakpoint = 0.0031308

// EncodeChannel applies the sRGB transfer function to a single linear
// channel value x, clamped to [0, 1] at the extremes.
func EncodeChannel(x float32) float32 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return 1
	case x <= srgbBreakpoint:
		return 12.92 * x
	default:
		return float32(1.055*math.Pow(float64(x), 1/2.4) - 0.055)
	}
}

// Result is the rendered, encoded output (§4.9, §6): tightly packed 8-bit
// sRGB RGBA, row-major, top-left origin, no row padding.
type Result struct {
	Pixels        []byte
	Width, Height int
	Stride        int // always 4 * Width.
}

// Encode converts a linear float-RGBA backbuffer into an 8-bit sRGB
// Result. Alpha is clamped to [0,1] and quantized without gamma encoding.
// If buf is empty, Encode returns a non-nil, zero-sized Result (§4.7 edge
// case: empty ROI renders to an empty, non-null result).
func Encode(buf *pixel.Buffer) *Result {
	if buf == nil || buf.Empty() {
		return &Result{Width: 0, Height: 0, Stride: 0, Pixels: []byte{}}
	}
	w, h := buf.Width, buf.Height
	stride := w * 4
	out := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			si := buf.At(x, y)
			di := y*stride + x*4
			r := buf.Data[si+0]
			g := buf.Data[si+1]
			b := buf.Data[si+2]
			a := float32(1)
			if buf.Dsc.Channels >= 4 {
				a = buf.Data[si+3]
			}
			out[di+0] = quantize(EncodeChannel(r))
			out[di+1] = quantize(EncodeChannel(g))
			out[di+2] = quantize(EncodeChannel(b))
			out[di+3] = quantize(clamp01(a))
		}
	}
	return &Result{Pixels: out, Width: w, Height: h, Stride: stride}
}

func clamp01(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// quantize rounds encoded (already in [0,1]) to the nearest 8-bit value.
func quantize(encoded float32) byte {
	v := encoded*255 + 0.5
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}
