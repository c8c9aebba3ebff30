package value_test

import (
	"math"
	"scriptmem/pkg/memory"
	"scriptmem/pkg/value"
	"testing"
)

func TestFloatIntoInt(t *testing.T) {
	dst := value.NewInt(0)
	if err := value.NewFloat(2.7).AssignTo(dst); err != nil {
		t.Fatal(err)
	}
	if dst.Kind() != value.KindInt || dst.AsInt64() != 2 {
		t.Errorf("expected int 2, got %s %s", dst.Kind(), dst)
	}
}

func TestIntIntoFloat(t *testing.T) {
	dst := value.NewFloat(0)
	if err := value.NewInt(5).AssignTo(dst); err != nil {
		t.Fatal(err)
	}
	if dst.Kind() != value.KindFloat || dst.AsFloat64() != 5.0 {
		t.Errorf("expected float 5.0, got %s %s", dst.Kind(), dst)
	}
}

func TestBasicConversions(t *testing.T) {
	tests := []struct {
		src         *value.Basic
		dst         *value.Basic
		expected    string
		description string
	}{
		{value.NewFloat(-2.7), value.NewInt(0), "-2", "negative float truncates toward zero"},
		{value.NewFloat(math.NaN()), value.NewInt(9), "0", "NaN becomes zero"},
		{value.NewFloat(1e300), value.NewInt(0), "9223372036854775807", "saturates high"},
		{value.NewFloat(-1e300), value.NewInt(0), "-9223372036854775808", "saturates low"},
		{value.NewInt(300), value.NewByte(0), "44", "int to byte keeps low bits"},
		{value.NewInt(65), value.NewChar(0), "A", "int to char"},
		{value.NewChar('a'), value.NewInt(0), "97", "char to int"},
		{value.NewByte(200), value.NewFloat(0), "200", "byte to float"},
		{value.NewBool(true), value.NewInt(0), "1", "bool to int"},
		{value.NewInt(0), value.NewBool(true), "false", "zero to bool"},
		{value.NewFloat(0.5), value.NewBool(false), "true", "non-zero float to bool"},
		{value.NewFloat(66.9), value.NewChar(0), "B", "float to char"},
	}

	for _, test := range tests {
		if err := test.src.AssignTo(test.dst); err != nil {
			t.Errorf("%s: %v", test.description, err)
			continue
		}
		if got := test.dst.String(); got != test.expected {
			t.Errorf("%s: expected %s, got %s", test.description, test.expected, got)
		}
	}
}

func TestBasicAssignKeepsBinding(t *testing.T) {
	heap := memory.NewHeapArea()
	dst := value.NewInt(1)
	if err := heap.Allocate(dst); err != nil {
		t.Fatal(err)
	}

	src := value.NewInt(42)
	if err := value.Assign(src, dst); err != nil {
		t.Fatal(err)
	}

	if dst.AsInt64() != 42 {
		t.Errorf("expected 42, got %d", dst.AsInt64())
	}
	if dst.BoundArea() != memory.Area(heap) {
		t.Error("assignment must not change the destination's binding")
	}
	if src.IsStored() {
		t.Error("assignment must not bind the source")
	}

	// copies are independent
	if err := value.NewInt(7).AssignTo(src); err != nil {
		t.Fatal(err)
	}
	if dst.AsInt64() != 42 {
		t.Errorf("basic copy must not alias, dst=%d", dst.AsInt64())
	}
}

func TestAssignShapeMismatch(t *testing.T) {
	tests := []struct {
		src, dst value.Value
	}{
		{value.NewRef(value.NewString("x")), value.NewInt(0)},
		{value.NewInt(1), value.NullRef(value.KindString)},
		{value.NewInt(1), value.NewString("x")},
	}

	for i, test := range tests {
		if err := value.Assign(test.src, test.dst); err == nil {
			t.Errorf("case %d: expected shape mismatch", i)
		}
	}
}
