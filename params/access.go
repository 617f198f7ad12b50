/*
DESCRIPTION
  access.go implements the typed, bounds-soft-checked reads and writes into
  a piece's raw parameter buffer (§4.3): SetFloat/GetFloat, SetInt/GetInt,
  SetBool/GetBool. A value outside a field's soft bounds is warned and
  clamped rather than rejected; a write outside the declared struct size
  (a hard bound) is rejected with OutOfBounds and leaves the buffer
  unchanged.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package params

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Logger is the minimal logging capability access.go needs to warn about
// soft-bound clamps, satisfied by github.com/ausocean/utils/logging.Logger.
type Logger interface {
	Warning(msg string, params ...interface{})
}

// TypeError is returned when a typed accessor is called against a field of
// a different declared type.
type TypeError struct {
	Op, Name string
	Want     ScalarType
	Got      ScalarType
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("params: field %q of op %q has type %s, not %s", e.Name, e.Op, e.Got, e.Want)
}

// OutOfBounds is returned when a field's offset+size does not fit within
// the supplied buffer. This is a hard-bound violation: the write is
// rejected and buf is left unchanged.
type OutOfBounds struct {
	Op, Name       string
	Offset, Size   int
	BufferLen      int
}

func (e *OutOfBounds) Error() string {
	return fmt.Sprintf("params: field %q of op %q at offset %d+%d exceeds buffer of length %d",
		e.Name, e.Op, e.Offset, e.Size, e.BufferLen)
}

func clamp(v, lo, hi float64) (float64, bool) {
	if v < lo {
		return lo, true
	}
	if v > hi {
		return hi, true
	}
	return v, false
}

// SetFloat writes value into the field named name of op's parameter
// buffer buf, soft-clamping to the field's declared bounds (with a
// warning via log) and hard-rejecting with OutOfBounds if the field does
// not fit within buf.
func (r *Registry) SetFloat(log Logger, buf []byte, op, name string, value float64) error {
	f, err := r.Lookup(op, name)
	if err != nil {
		return err
	}
	if f.Type != TypeFloat32 {
		return &TypeError{Op: op, Name: name, Want: TypeFloat32, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return &OutOfBounds{Op: op, Name: name, Offset: f.Offset, Size: f.Size, BufferLen: len(buf)}
	}
	clamped, warned := clamp(value, f.SoftMin, f.SoftMax)
	if warned && log != nil {
		log.Warning("parameter outside soft bounds, clamping", "op", op, "field", name, "value", value, "min", f.SoftMin, "max", f.SoftMax)
	}
	binary.LittleEndian.PutUint32(buf[f.Offset:], math.Float32bits(float32(clamped)))
	return nil
}

// GetFloat reads the field named name of op's parameter buffer buf.
// Reads of a field beyond the buffer's length yield zero, matching the
// invariant that a zeroed allocation reads as zero for uninitialised
// fields.
func (r *Registry) GetFloat(buf []byte, op, name string) (float64, error) {
	f, err := r.Lookup(op, name)
	if err != nil {
		return 0, err
	}
	if f.Type != TypeFloat32 {
		return 0, &TypeError{Op: op, Name: name, Want: TypeFloat32, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return 0, nil
	}
	bits := binary.LittleEndian.Uint32(buf[f.Offset:])
	return float64(math.Float32frombits(bits)), nil
}

// SetInt writes value into the named int32 field, with the same soft/hard
// bound behaviour as SetFloat.
func (r *Registry) SetInt(log Logger, buf []byte, op, name string, value int64) error {
	f, err := r.Lookup(op, name)
	if err != nil {
		return err
	}
	if f.Type != TypeInt32 {
		return &TypeError{Op: op, Name: name, Want: TypeInt32, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return &OutOfBounds{Op: op, Name: name, Offset: f.Offset, Size: f.Size, BufferLen: len(buf)}
	}
	clamped, warned := clamp(float64(value), f.SoftMin, f.SoftMax)
	if warned && log != nil {
		log.Warning("parameter outside soft bounds, clamping", "op", op, "field", name, "value", value, "min", f.SoftMin, "max", f.SoftMax)
	}
	binary.LittleEndian.PutUint32(buf[f.Offset:], uint32(int32(clamped)))
	return nil
}

// GetInt reads the named int32 field.
func (r *Registry) GetInt(buf []byte, op, name string) (int64, error) {
	f, err := r.Lookup(op, name)
	if err != nil {
		return 0, err
	}
	if f.Type != TypeInt32 {
		return 0, &TypeError{Op: op, Name: name, Want: TypeInt32, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return 0, nil
	}
	return int64(int32(binary.LittleEndian.Uint32(buf[f.Offset:]))), nil
}

// SetBool writes value into the named bool field. Bool fields have no
// meaningful soft bounds and are hard-bound checked only.
func (r *Registry) SetBool(buf []byte, op, name string, value bool) error {
	f, err := r.Lookup(op, name)
	if err != nil {
		return err
	}
	if f.Type != TypeBool {
		return &TypeError{Op: op, Name: name, Want: TypeBool, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return &OutOfBounds{Op: op, Name: name, Offset: f.Offset, Size: f.Size, BufferLen: len(buf)}
	}
	if value {
		buf[f.Offset] = 1
	} else {
		buf[f.Offset] = 0
	}
	return nil
}

// GetBool reads the named bool field.
func (r *Registry) GetBool(buf []byte, op, name string) (bool, error) {
	f, err := r.Lookup(op, name)
	if err != nil {
		return false, err
	}
	if f.Type != TypeBool {
		return false, &TypeError{Op: op, Name: name, Want: TypeBool, Got: f.Type}
	}
	if f.Offset+f.Size > len(buf) {
		return false, nil
	}
	return buf[f.Offset] != 0, nil
}
