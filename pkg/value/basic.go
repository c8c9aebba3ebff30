package value

import (
	"math"
	"strconv"

	"scriptmem/pkg/memory"
)

// Basic is an int, float, bool, char or byte cell.
type Basic struct {
	memory.Cell
	kind Kind
	i64  int64
	f64  float64
}

func NewInt(i int64) *Basic {
	return &Basic{kind: KindInt, i64: i}
}

func NewFloat(f float64) *Basic {
	return &Basic{kind: KindFloat, f64: f}
}

func NewBool(b bool) *Basic {
	return &Basic{kind: KindBool, i64: boolToInt(b)}
}

func NewChar(r rune) *Basic {
	return &Basic{kind: KindChar, i64: int64(r)}
}

func NewByte(b byte) *Basic {
	return &Basic{kind: KindByte, i64: int64(b)}
}

// NewZero returns the zero value of a basic kind.
func NewZero(k Kind) *Basic {
	if !k.IsBasic() {
		k = KindInt
	}
	return &Basic{kind: k}
}

func (b *Basic) Kind() Kind { return b.kind }

func (b *Basic) Footprint() int64 { return 16 }

// AssignTo converts b to dst's kind and overwrites dst's content in place.
func (b *Basic) AssignTo(dst *Basic) error {
	if dst == nil {
		return ErrNilTarget
	}

	switch dst.kind {
	case KindInt:
		dst.i64 = b.AsInt64()
	case KindFloat:
		dst.f64 = b.AsFloat64()
	case KindBool:
		dst.i64 = boolToInt(b.AsBool())
	case KindChar:
		dst.i64 = int64(b.AsChar())
	case KindByte:
		dst.i64 = int64(b.AsByte())
	}

	return nil
}

// AsInt64 converts to an integer. Floats truncate toward zero and
// saturate at the int64 range; NaN becomes 0.
func (b *Basic) AsInt64() int64 {
	if b.kind == KindFloat {
		return truncate(b.f64)
	}
	return b.i64
}

// AsFloat64 converts to a float; integers convert exactly.
func (b *Basic) AsFloat64() float64 {
	if b.kind == KindFloat {
		return b.f64
	}
	return float64(b.i64)
}

// AsBool reports whether the value is non-zero.
func (b *Basic) AsBool() bool {
	if b.kind == KindFloat {
		return math.Abs(b.f64) > 0
	}
	return b.i64 != 0
}

// AsChar keeps the low 32 bits of the integer value.
func (b *Basic) AsChar() rune {
	return rune(int32(b.AsInt64()))
}

// AsByte keeps the low 8 bits of the integer value.
func (b *Basic) AsByte() byte {
	return byte(b.AsInt64())
}

func (b *Basic) String() string {
	switch b.kind {
	case KindInt, KindByte:
		return strconv.FormatInt(b.i64, 10)
	case KindFloat:
		return strconv.FormatFloat(b.f64, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(b.i64 != 0)
	case KindChar:
		return string(rune(b.i64))
	default:
		return "<nil>"
	}
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
