package value

import "scriptmem/pkg/memory"

// Ref is a reference cell. Assigning into it rebinds the pointee; the
// previously referenced value is untouched.
type Ref struct {
	memory.Cell
	kind   Kind
	target Value
}

// NewRef returns a cell referring to target.
func NewRef(target Value) *Ref {
	r := &Ref{kind: KindObject}
	if target != nil {
		r.kind = target.Kind()
		r.target = target
	}
	return r
}

// NullRef returns an empty cell declared to hold values of kind k.
func NullRef(k Kind) *Ref {
	return &Ref{kind: k}
}

// Kind returns the declared kind of the referenced value.
func (r *Ref) Kind() Kind { return r.kind }

// Deref returns the referenced value, or nil for a null reference.
func (r *Ref) Deref() Value { return r.target }

func (r *Ref) IsNull() bool { return r.target == nil }

// AssignTo makes dst refer to whatever r refers to.
func (r *Ref) AssignTo(dst *Ref) error {
	if dst == nil {
		return ErrNilTarget
	}
	dst.target = r.target
	return nil
}

// Rebind points the cell at target.
func (r *Ref) Rebind(target Value) {
	r.target = target
}

func (r *Ref) Footprint() int64 { return 16 }

func (r *Ref) String() string {
	if r.target == nil {
		return "null"
	}
	return r.target.String()
}
