// Package value is the runtime value model: basic values copied by content,
// reference cells that rebind on assignment, and the heap objects those
// cells point at. Every value can be bound to a memory area.
package value

import (
	"errors"
	"fmt"

	"scriptmem/pkg/memory"
)

var (
	ErrNilTarget       = errors.New("assignment target is nil")
	ErrShapeMismatch   = errors.New("cannot assign between basic and reference cells")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotArray        = errors.New("slot does not hold an array")
	ErrListLocked      = errors.New("list is write-locked by an iteration")
	ErrNoSuchMethod    = errors.New("no such method")
)

// Value is a runtime value.
type Value interface {
	memory.StoredValue
	Kind() Kind
	String() string
}

// Indexable is implemented by values iterated by position.
type Indexable interface {
	Value
	Length() int
	ValueAt(i int) (Value, error)
}

// Assign stores src into the dst cell. Basic cells receive a converted
// copy of src; reference cells are rebound to whatever src refers to.
// Neither changes dst's area binding.
func Assign(src, dst Value) error {
	if src == nil || dst == nil {
		return ErrNilTarget
	}

	switch d := dst.(type) {
	case *Basic:
		s, ok := src.(*Basic)
		if !ok {
			return fmt.Errorf("%w: %s into %s", ErrShapeMismatch, src.Kind(), d.Kind())
		}
		return s.AssignTo(d)

	case *Ref:
		switch s := src.(type) {
		case *Ref:
			return s.AssignTo(d)
		case *Basic:
			return fmt.Errorf("%w: %s into %s reference", ErrShapeMismatch, s.Kind(), d.Kind())
		default:
			d.Rebind(s)
			return nil
		}

	default:
		return fmt.Errorf("%w: %s is not an assignable cell", ErrShapeMismatch, dst.Kind())
	}
}

func indexError(i, n int) error {
	return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, n)
}
