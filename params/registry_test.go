package params

import "testing"

func exampleTable() Table {
	return Table{
		{Name: "gain", Offset: 0, Type: TypeFloat32, Size: 4, SoftMin: 0, SoftMax: 4},
		{Name: "count", Offset: 4, Type: TypeInt32, Size: 4, SoftMin: 0, SoftMax: 10},
		{Name: "enabled", Offset: 8, Type: TypeBool, Size: 1},
	}
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("test", exampleTable(), 9); err != nil {
		t.Fatalf("Register: %v", err)
	}
	f, err := r.Lookup("test", "gain")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if f.Offset != 0 || f.Type != TypeFloat32 {
		t.Errorf("unexpected field: %+v", f)
	}
}

func TestRegistryRegisterFieldOutOfBounds(t *testing.T) {
	r := NewRegistry()
	bad := Table{{Name: "x", Offset: 6, Type: TypeFloat32, Size: 4}}
	if err := r.Register("test", bad, 8); err == nil {
		t.Fatal("expected error for field exceeding struct size")
	}
}

func TestRegistryRegisterSizeMismatch(t *testing.T) {
	r := NewRegistry()
	bad := Table{{Name: "x", Offset: 0, Type: TypeFloat32, Size: 8}}
	if err := r.Register("test", bad, 8); err == nil {
		t.Fatal("expected error for field size not matching its declared type")
	}
}

func TestRegistryRegisterZeroSizeAllowsNilTable(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("noop", nil, 0); err != nil {
		t.Fatalf("zero-size registration with nil table should succeed: %v", err)
	}
	n, err := r.Count("noop")
	if err != nil || n != 0 {
		t.Errorf("Count = %d, %v; want 0, nil", n, err)
	}
}

func TestRegistryRegisterNonZeroSizeRequiresTable(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("bad", nil, 4); err != ErrNoDescriptorTable {
		t.Fatalf("expected ErrNoDescriptorTable, got %v", err)
	}
}

func TestRegistryLookupUnknownOp(t *testing.T) {
	r := NewRegistry()
	if _, err := r.Lookup("missing", "x"); err == nil {
		t.Fatal("expected NotFound for unknown op")
	}
}

func TestRegistryGetByIndex(t *testing.T) {
	r := NewRegistry()
	r.Register("test", exampleTable(), 9)
	f, err := r.Get("test", 1)
	if err != nil || f.Name != "count" {
		t.Errorf("Get(1) = %+v, %v; want count field", f, err)
	}
	if _, err := r.Get("test", 99); err == nil {
		t.Error("expected NotFound for out-of-range index")
	}
}

func TestRegistryParamsSize(t *testing.T) {
	r := NewRegistry()
	r.Register("test", exampleTable(), 9)
	size, err := r.ParamsSize("test")
	if err != nil || size != 9 {
		t.Errorf("ParamsSize = %d, %v; want 9, nil", size, err)
	}
}
