/*
DESCRIPTION
  registry.go implements the parameter registry (C3): a per-operation table
  of field descriptors (name, byte offset, scalar type, size, soft bounds)
  addressable at runtime without compile-time knowledge of a module's
  parameter struct layout. Hand-written tables per module are kept rather
  than derived through reflection, per the port's design notes: the table
  *is* the schema.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package params

import "fmt"

// ScalarType tags the runtime type of one field in a parameter struct.
type ScalarType uint8

const (
	TypeNone ScalarType = iota
	TypeFloat32
	TypeInt32
	TypeUint32
	TypeBool
)

func (t ScalarType) String() string {
	switch t {
	case TypeFloat32:
		return "f32"
	case TypeInt32:
		return "i32"
	case TypeUint32:
		return "u32"
	case TypeBool:
		return "bool"
	default:
		return "none"
	}
}

// sizeOf returns the on-wire size in bytes of one value of t.
func sizeOf(t ScalarType) int {
	switch t {
	case TypeFloat32, TypeInt32, TypeUint32:
		return 4
	case TypeBool:
		return 1
	default:
		return 0
	}
}

// Field describes one addressable field of a module's parameter struct.
type Field struct {
	Name    string
	Offset  int
	Type    ScalarType
	Size    int
	SoftMin float64
	SoftMax float64
}

// Table is the ordered list of field descriptors for one module operation.
// Order is preserved for iteration (e.g. serialization).
type Table []Field

// entry is the registry's bookkeeping for one operation name.
type entry struct {
	table Table
	size  int // total parameter struct size in bytes.
}

// ErrNoDescriptorTable is returned by Register when a non-zero-size
// parameter struct is registered with a nil table: per this port's
// resolution of the "missing descriptor table" open question, that is a
// registration-time error rather than a silently inert allow.
var ErrNoDescriptorTable = fmt.Errorf("params: parameter struct has non-zero size but no descriptor table")

// Registry is a process-scoped catalog of parameter descriptor tables,
// one per module operation name. It is built once at module registration
// and is read-only thereafter.
type Registry struct {
	ops map[string]entry
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]entry)}
}

// Register adds the descriptor table for op, validating that every field's
// offset+size fits within the declared struct size. A size of 0 indicates
// a module with no user parameters and may be registered with a nil or
// empty table; any other size requires a non-nil table.
func (r *Registry) Register(op string, table Table, size int) error {
	if size == 0 {
		r.ops[op] = entry{table: table, size: 0}
		return nil
	}
	if table == nil {
		return ErrNoDescriptorTable
	}
	for _, f := range table {
		if f.Offset < 0 || f.Offset+f.Size > size {
			return fmt.Errorf("params: field %q of op %q: offset %d + size %d exceeds struct size %d",
				f.Name, op, f.Offset, f.Size, size)
		}
		if f.Size != sizeOf(f.Type) {
			return fmt.Errorf("params: field %q of op %q: declared size %d does not match type %s",
				f.Name, op, f.Size, f.Type)
		}
	}
	r.ops[op] = entry{table: table, size: size}
	return nil
}

// NotFound is returned by Lookup, Get and the typed accessors when op or
// name is unknown to the registry.
type NotFound struct {
	Op, Name string
}

func (e *NotFound) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("params: unknown op %q", e.Op)
	}
	return fmt.Sprintf("params: unknown field %q of op %q", e.Name, e.Op)
}

// Lookup returns the field descriptor for (op, name).
func (r *Registry) Lookup(op, name string) (Field, error) {
	e, ok := r.ops[op]
	if !ok {
		return Field{}, &NotFound{Op: op}
	}
	for _, f := range e.table {
		if f.Name == name {
			return f, nil
		}
	}
	return Field{}, &NotFound{Op: op, Name: name}
}

// Count returns the number of addressable fields registered for op.
func (r *Registry) Count(op string) (int, error) {
	e, ok := r.ops[op]
	if !ok {
		return 0, &NotFound{Op: op}
	}
	return len(e.table), nil
}

// Get returns the index'th field descriptor for op, in registration order.
// Used for generic serialization of a module's parameters.
func (r *Registry) Get(op string, index int) (Field, error) {
	e, ok := r.ops[op]
	if !ok {
		return Field{}, &NotFound{Op: op}
	}
	if index < 0 || index >= len(e.table) {
		return Field{}, &NotFound{Op: op, Name: fmt.Sprintf("#%d", index)}
	}
	return e.table[index], nil
}

// ParamsSize returns the byte size of op's parameter struct, used to size
// a piece's parameter allocation.
func (r *Registry) ParamsSize(op string) (int, error) {
	e, ok := r.ops[op]
	if !ok {
		return 0, &NotFound{Op: op}
	}
	return e.size, nil
}
