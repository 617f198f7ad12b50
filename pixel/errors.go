/*
DESCRIPTION
  errors.go defines the typed error taxonomy shared by the pipeline, engine
  and parameter registry.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

// Package pixel provides the buffer-descriptor and region-of-interest types
// that flow through the rendering pipeline, along with the error taxonomy
// that the pipeline, engine and parameter registry all share.
package pixel

import "fmt"

// InvalidArgument indicates a caller passed a nil reference, a negative
// scale, or an out-of-range ROI.
type InvalidArgument struct {
	Reason string
}

func (e *InvalidArgument) Error() string { return "pixel: invalid argument: " + e.Reason }

// InvalidImage indicates the source image has no pixel data or an
// inconsistent descriptor.
type InvalidImage struct {
	Reason string
}

func (e *InvalidImage) Error() string { return "pixel: invalid image: " + e.Reason }

// OutOfMemory indicates an allocation failure. The engine is expected to
// roll back any partially allocated buffers for the failing render.
type OutOfMemory struct {
	Size int
}

func (e *OutOfMemory) Error() string {
	return fmt.Sprintf("pixel: out of memory: could not allocate %d bytes", e.Size)
}

// DescriptorMismatch is returned by Descriptor.AssertMatches when a
// module's declared input format does not match the current buffer
// descriptor. It is fatal for the render.
type DescriptorMismatch struct {
	Expected Descriptor
	Actual   Descriptor
}

func (e *DescriptorMismatch) Error() string {
	return fmt.Sprintf("pixel: descriptor mismatch: expected %+v, got %+v", e.Expected, e.Actual)
}

// Cancelled is returned when a render is aborted due to the pipeline's
// shutdown flag.
type Cancelled struct{}

func (e *Cancelled) Error() string { return "pixel: render cancelled" }

// EmptyRegion is a sentinel, non-fatal condition: the requested ROI has
// zero width or height. Callers receive an empty, non-nil result rather
// than an error.
type EmptyRegion struct{}

func (e *EmptyRegion) Error() string { return "pixel: empty region" }
