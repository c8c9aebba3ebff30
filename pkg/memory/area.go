// Package memory implements the storage areas runtime values are bound to:
// the shared heap, the static and permanent areas, and the per-thread stack
// made of one FrameArea per call.
//
// An area never owns a value's payload. Binding only records which area a
// value currently lives in; reclaiming the memory is left to the Go
// collector once the value is unreachable.
package memory

// Area is a logical storage region.
type Area interface {
	// Kind reports the region this area represents.
	Kind() Kind

	// Allocate binds v to the area. It fails if v is already stored.
	Allocate(v StoredValue) error

	// Reallocate is a no-op when v is already bound to this area and
	// behaves like Allocate otherwise.
	Reallocate(v StoredValue) error

	// Deallocate unbinds v if this area holds it. It returns false without
	// an error when v is stored in a different area.
	Deallocate(v StoredValue) (bool, error)

	// IsRecycled reports whether the area stopped accepting allocations.
	IsRecycled() bool
}

// StoredValue is implemented by every value that can be bound to an area.
// Embedding Cell is the usual way to satisfy it.
type StoredValue interface {
	BoundArea() Area
	IsStored() bool

	// BindArea and UnbindArea are called by areas only.
	BindArea(a Area)
	UnbindArea()
}

// Cell records the area a value is bound to. The zero value is unbound.
type Cell struct {
	area Area
}

// BoundArea returns the area the value lives in, or nil.
func (c *Cell) BoundArea() Area {
	return c.area
}

// IsStored reports whether the value is bound to any area.
func (c *Cell) IsStored() bool {
	return c.area != nil
}

func (c *Cell) BindArea(a Area) {
	c.area = a
}

func (c *Cell) UnbindArea() {
	c.area = nil
}

// bind implements the Allocate contract for area a.
func bind(a Area, op string, v StoredValue) error {
	if v == nil {
		return newFault(MemoryOperationFault, op, a.Kind(), ErrNilValue)
	}

	if v.IsStored() {
		return newFault(MemoryOperationFault, op, a.Kind(), ErrAlreadyStored)
	}

	v.BindArea(a)
	return nil
}

// unbind implements the Deallocate contract for area a.
func unbind(a Area, v StoredValue) (bool, error) {
	if v == nil {
		return false, newFault(MemoryOperationFault, "deallocate", a.Kind(), ErrNilValue)
	}

	bound := v.BoundArea()
	if bound == nil {
		return false, newFault(MemoryOperationFault, "deallocate", a.Kind(), ErrNotStored)
	}

	if bound != a {
		return false, nil
	}

	v.UnbindArea()
	return true, nil
}
