/*
DESCRIPTION
  encoding.go collects the small byte-offset encode/decode helpers shared
  by every concrete module's parameter struct. Each module hand-writes its
  own descriptor table (params.Table) describing these same offsets; this
  file only avoids repeating the encoding/binary boilerplate at each call
  site.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package modules

import (
	"encoding/binary"
	"math"
)

func getF32(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func putF32(buf []byte, off int, v float32) {
	binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
}

func getI32(buf []byte, off int) int32 {
	return int32(binary.LittleEndian.Uint32(buf[off:]))
}

func putI32(buf []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(buf[off:], uint32(v))
}

func getBool(buf []byte, off int) bool {
	return buf[off] != 0
}

func putBool(buf []byte, off int, v bool) {
	if v {
		buf[off] = 1
	} else {
		buf[off] = 0
	}
}
