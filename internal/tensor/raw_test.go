package tensor

import (
	"testing"
)

// RawTensor Tests

func TestNewRaw(t *testing.T) {
	raw, err := NewRaw(Shape{3, 4}, Float64, CPU)
	if err != nil {
		t.Fatalf("NewRaw failed: %v", err)
	}
	if raw.ByteSize() != 3*4*8 {
		t.Errorf("ByteSize = %d, want %d", raw.ByteSize(), 3*4*8)
	}
	for _, v := range raw.AsFloat64() {
		if v != 0 {
			t.Fatal("NewRaw memory should be zeroed")
		}
	}

	if _, err := NewRaw(Shape{0, 4}, Float32, CPU); err == nil {
		t.Error("NewRaw should reject an empty dimension")
	}
}

func TestRawTensorAsInt64(t *testing.T) {
	raw, _ := NewRaw(Shape{3, 2}, Int64, CPU)
	data := raw.AsInt64()

	if len(data) != 6 {
		t.Errorf("AsInt64 length = %d, want 6", len(data))
	}

	// Modify and verify zero-copy
	data[0] = 42
	if raw.AsInt64()[0] != 42 {
		t.Error("AsInt64 should return zero-copy slice")
	}
}

func TestRawTensorAsInt32(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Int32, CPU)
	raw.AsInt32()[3] = -1
	if raw.AsInt32()[3] != -1 {
		t.Error("AsInt32 should return zero-copy slice")
	}
}

func TestRawTensorWrongAccessorPanics(t *testing.T) {
	raw, _ := NewRaw(Shape{2}, Float32, CPU)
	defer func() {
		if recover() == nil {
			t.Error("AsFloat64 on a float32 tensor should panic")
		}
	}()
	raw.AsFloat64()
}

func TestRawTensorClone(t *testing.T) {
	raw, _ := NewRaw(Shape{2, 2}, Float32, CPU)
	raw.AsFloat32()[0] = 1.5

	clone := raw.Clone()
	clone.AsFloat32()[0] = 9

	if raw.AsFloat32()[0] != 1.5 {
		t.Error("Clone should deep-copy the buffer")
	}
	assertEqualShape(t, raw.Shape(), clone.Shape(), "Clone shape")
}
