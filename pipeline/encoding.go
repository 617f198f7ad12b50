/*
DESCRIPTION
  encoding.go provides the same small byte-offset write helpers
  iop/modules/encoding.go defines, duplicated here rather than exported
  across the package boundary: pipeline only ever writes the
  image-derived fields baked into a piece's initial parameter bytes, it
  never needs the full read/write surface a module implementation does.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package pipeline

import (
	"encoding/binary"
	"math"
)

func putF32At(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func putI32At(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
}
