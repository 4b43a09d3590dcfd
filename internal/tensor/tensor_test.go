package tensor

import (
	"math"
	"testing"
)

// Test helpers

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

// identityBackend satisfies Backend without doing any real work.
type identityBackend struct{}

func (identityBackend) Softmax(x *RawTensor, _ int) *RawTensor { return x.Clone() }
func (identityBackend) Name() string                           { return "identity" }
func (identityBackend) Device() Device                         { return CPU }

// DType Tests

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestDataTypeString(t *testing.T) {
	tests := []struct {
		dtype DataType
		str   string
	}{
		{Float32, "float32"},
		{Float64, "float64"},
		{Int32, "int32"},
		{Int64, "int64"},
		{DataType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.dtype.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}

func TestInferDataType(t *testing.T) {
	if got := inferDataType(float32(0)); got != Float32 {
		t.Errorf("inferDataType(float32) = %v", got)
	}
	if got := inferDataType(float64(0)); got != Float64 {
		t.Errorf("inferDataType(float64) = %v", got)
	}
	if got := inferDataType(int32(0)); got != Int32 {
		t.Errorf("inferDataType(int32) = %v", got)
	}
	if got := inferDataType(int64(0)); got != Int64 {
		t.Errorf("inferDataType(int64) = %v", got)
	}
}

// Shape Tests

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{4, 10, 1, 1}, 40},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidation(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension should be rejected")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("negative dimension should be rejected")
	}
}

func TestShapeTrivialFrom(t *testing.T) {
	tests := []struct {
		shape Shape
		axis  int
		want  bool
	}{
		{Shape{4, 10}, 2, true},
		{Shape{4, 10, 1, 1}, 2, true},
		{Shape{4, 10, 2, 1}, 2, false},
		{Shape{4, 10, 1, 3}, 2, false},
		{Shape{4, 10}, 1, false},
	}

	for _, tt := range tests {
		if got := tt.shape.TrivialFrom(tt.axis); got != tt.want {
			t.Errorf("%v.TrivialFrom(%d) = %v, want %v", tt.shape, tt.axis, got, tt.want)
		}
	}
}

func TestShapeClone(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7
	if s[0] != 2 {
		t.Error("Clone should not share memory with the original")
	}
}

// Tensor Tests

func TestFromSlice(t *testing.T) {
	b := identityBackend{}
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	if err != nil {
		t.Fatalf("FromSlice failed: %v", err)
	}

	assertEqualShape(t, Shape{2, 3}, x.Shape(), "FromSlice shape")
	if x.DType() != Float32 {
		t.Errorf("DType = %v, want float32", x.DType())
	}
	if x.Data()[5] != 6 {
		t.Errorf("Data()[5] = %v, want 6", x.Data()[5])
	}

	if _, err := FromSlice([]float32{1, 2, 3}, Shape{2, 3}, b); err == nil {
		t.Error("FromSlice should reject mismatched element count")
	}
}

func TestZerosAndItem(t *testing.T) {
	x := Zeros[float64](Shape{1}, identityBackend{})
	if x.Item() != 0 {
		t.Errorf("Item() = %v, want 0", x.Item())
	}
	x.Data()[0] = math.Pi
	if x.Item() != math.Pi {
		t.Errorf("Item() = %v, want pi", x.Item())
	}
}

func TestItemPanicsOnVector(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Item() on a vector should panic")
		}
	}()
	Zeros[float32](Shape{3}, identityBackend{}).Item()
}

func TestTensorString(t *testing.T) {
	x := Zeros[int32](Shape{2, 2}, identityBackend{})
	if got, want := x.String(), "Tensor[int32][2 2] on CPU"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
