package memory

import (
	"sync"

	"github.com/charmbracelet/log"
)

// shared holds the state common to areas used by every thread of an
// engine. Each operation is serialized on mu; nothing tracks the set of
// stored values.
type shared struct {
	kind   Kind
	mu     sync.Mutex
	budget *Budget
	log    *log.Logger
}

func (s *shared) allocate(self Area, op string, v StoredValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.allocateLocked(self, op, v)
}

// allocateLocked requires s.mu.
func (s *shared) allocateLocked(self Area, op string, v StoredValue) error {
	if v != nil && v.IsStored() {
		return newFault(MemoryOperationFault, op, s.kind, ErrAlreadyStored)
	}

	var size int64
	if s.budget != nil && v != nil {
		size = footprint(v)
		if !s.budget.charge(size) {
			s.log.Warn("Allocation exceeds budget", "area", s.kind, "size", size,
				"used", s.budget.Used(), "limit", s.budget.Limit())
			return newFault(OutOfMemoryFault, op, s.kind, ErrOutOfMemory)
		}
	}

	if err := bind(self, op, v); err != nil {
		if size > 0 {
			s.budget.refund(size)
		}
		return err
	}

	return nil
}

func (s *shared) reallocate(self Area, v StoredValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v != nil && v.BoundArea() == self {
		return nil
	}
	return s.allocateLocked(self, "reallocate", v)
}

func (s *shared) deallocate(self Area, v StoredValue) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := unbind(self, v)
	if ok && s.budget != nil {
		s.budget.refund(footprint(v))
	}

	return ok, err
}

// HeapArea is the single region shared by all threads of one engine for
// values that outlive any call.
type HeapArea struct {
	s shared
}

// NewHeapArea creates a heap area.
func NewHeapArea(opts ...Option) *HeapArea {
	o := buildOptions("heap", opts)
	return &HeapArea{s: shared{kind: Heap, budget: o.budget, log: o.logger}}
}

func (h *HeapArea) Kind() Kind { return Heap }

func (h *HeapArea) Allocate(v StoredValue) error {
	return h.s.allocate(h, "allocate", v)
}

func (h *HeapArea) Reallocate(v StoredValue) error {
	return h.s.reallocate(h, v)
}

func (h *HeapArea) Deallocate(v StoredValue) (bool, error) {
	return h.s.deallocate(h, v)
}

// IsRecycled is always false; the heap lives as long as its engine.
func (h *HeapArea) IsRecycled() bool { return false }

// Budget returns the byte budget, or nil if the heap is unlimited.
func (h *HeapArea) Budget() *Budget { return h.s.budget }

// StaticArea backs the STATIC and PERM regions: class-level and
// engine-permanent values. It follows the heap contract.
type StaticArea struct {
	s shared
}

// NewStaticArea creates a STATIC area.
func NewStaticArea(opts ...Option) *StaticArea {
	return newStaticArea(Static, opts)
}

// NewPermArea creates a PERM area.
func NewPermArea(opts ...Option) *StaticArea {
	return newStaticArea(Perm, opts)
}

func newStaticArea(kind Kind, opts []Option) *StaticArea {
	o := buildOptions(kind.String(), opts)
	return &StaticArea{s: shared{kind: kind, budget: o.budget, log: o.logger}}
}

func (a *StaticArea) Kind() Kind { return a.s.kind }

func (a *StaticArea) Allocate(v StoredValue) error {
	return a.s.allocate(a, "allocate", v)
}

func (a *StaticArea) Reallocate(v StoredValue) error {
	return a.s.reallocate(a, v)
}

func (a *StaticArea) Deallocate(v StoredValue) (bool, error) {
	return a.s.deallocate(a, v)
}

func (a *StaticArea) IsRecycled() bool { return false }
