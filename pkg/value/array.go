package value

import (
	"fmt"
	"strings"

	"scriptmem/pkg/memory"
)

// Array is a fixed-length sequence of cells. A multi-dimensional array is
// an array of reference cells each pointing at a sub-array, so assigning
// one slot rebinds only that slot.
type Array struct {
	memory.Cell
	elem  Kind
	slots []Value
}

// NewArray builds an array of elem with the given dimensions. Leaf slots
// hold zero basic values, or null references for reference kinds.
func NewArray(elem Kind, dims ...int) *Array {
	a := &Array{elem: elem}
	if len(dims) == 0 {
		return a
	}

	n := max(dims[0], 0)
	a.slots = make([]Value, n)
	for i := range a.slots {
		switch {
		case len(dims) > 1:
			a.slots[i] = NewRef(NewArray(elem, dims[1:]...))
		case elem.IsBasic():
			a.slots[i] = NewZero(elem)
		default:
			a.slots[i] = NullRef(elem)
		}
	}

	return a
}

func (a *Array) Kind() Kind { return KindArray }

// Elem returns the leaf element kind.
func (a *Array) Elem() Kind { return a.elem }

func (a *Array) Length() int { return len(a.slots) }

// Slot returns the cell at i.
func (a *Array) Slot(i int) (Value, error) {
	if i < 0 || i >= len(a.slots) {
		return nil, indexError(i, len(a.slots))
	}
	return a.slots[i], nil
}

// ValueAt is Slot, satisfying Indexable.
func (a *Array) ValueAt(i int) (Value, error) {
	return a.Slot(i)
}

// Index walks nested dimensions and returns the addressed cell.
func (a *Array) Index(idx ...int) (Value, error) {
	cur := a
	for n, i := range idx {
		slot, err := cur.Slot(i)
		if err != nil {
			return nil, err
		}

		if n == len(idx)-1 {
			return slot, nil
		}

		ref, ok := slot.(*Ref)
		if !ok {
			return nil, fmt.Errorf("%w: dimension %d", ErrNotArray, n)
		}
		next, ok := ref.Deref().(*Array)
		if !ok {
			return nil, fmt.Errorf("%w: dimension %d", ErrNotArray, n)
		}
		cur = next
	}

	return nil, fmt.Errorf("%w: no index given", ErrIndexOutOfRange)
}

// Store assigns v into the cell addressed by idx.
func (a *Array) Store(v Value, idx ...int) error {
	slot, err := a.Index(idx...)
	if err != nil {
		return err
	}
	return Assign(v, slot)
}

// Dims returns the dimensions, following the first slot of each level.
func (a *Array) Dims() []int {
	var dims []int
	cur := a
	for cur != nil {
		dims = append(dims, len(cur.slots))
		if len(cur.slots) == 0 {
			break
		}
		ref, ok := cur.slots[0].(*Ref)
		if !ok {
			break
		}
		cur, _ = ref.Deref().(*Array)
	}
	return dims
}

func (a *Array) Footprint() int64 { return 24 + 8*int64(len(a.slots)) }

func (a *Array) String() string {
	parts := make([]string, len(a.slots))
	for i, s := range a.slots {
		parts[i] = s.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
