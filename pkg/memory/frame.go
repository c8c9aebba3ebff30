package memory

import "slices"

// FrameArea is the slice of stack storage owned by one call. Every value
// allocated while the frame is active is bound to it, and recycling the
// frame unbinds whatever it still holds.
type FrameArea struct {
	name     string
	depth    int
	values   []StoredValue
	recycled bool
}

func newFrameArea(name string, depth int) *FrameArea {
	return &FrameArea{name: name, depth: depth}
}

func (f *FrameArea) Kind() Kind { return Stack }

// Name returns the callable name the frame was pushed for.
func (f *FrameArea) Name() string { return f.name }

// Depth returns the frame's position counted from the bottom of the stack.
func (f *FrameArea) Depth() int { return f.depth }

func (f *FrameArea) Allocate(v StoredValue) error {
	return f.allocate("allocate", v)
}

func (f *FrameArea) Reallocate(v StoredValue) error {
	if v != nil && v.BoundArea() == Area(f) {
		return nil
	}
	return f.allocate("reallocate", v)
}

func (f *FrameArea) allocate(op string, v StoredValue) error {
	if f.recycled {
		return newFault(MemoryOperationFault, op, Stack, ErrRecycled)
	}

	if err := bind(f, op, v); err != nil {
		return err
	}

	f.values = append(f.values, v)
	return nil
}

func (f *FrameArea) Deallocate(v StoredValue) (bool, error) {
	ok, err := unbind(f, v)
	if ok {
		if i := slices.Index(f.values, v); i >= 0 {
			f.values = slices.Delete(f.values, i, i+1)
		}
	}
	return ok, err
}

func (f *FrameArea) IsRecycled() bool { return f.recycled }

// Stored counts the values still bound to the frame.
func (f *FrameArea) Stored() int {
	n := 0
	for _, v := range f.values {
		if v.BoundArea() == Area(f) {
			n++
		}
	}
	return n
}

// recycle marks the frame dead and unbinds its values. Values released
// earlier, or bound elsewhere since, are left alone.
func (f *FrameArea) recycle() {
	if f.recycled {
		return
	}

	for _, v := range f.values {
		if v.BoundArea() == Area(f) {
			v.UnbindArea()
		}
	}

	f.values = nil
	f.recycled = true
}
