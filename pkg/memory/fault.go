package memory

import (
	"errors"
	"fmt"
)

// FaultKind classifies storage faults.
type FaultKind int

const (
	// MemoryOperationFault means the caller broke the storage contract.
	// It is an engine error and never becomes a script exception.
	MemoryOperationFault FaultKind = iota

	// StackOverflowFault means a thread exceeded its call depth limit.
	StackOverflowFault

	// OutOfMemoryFault means an area's byte budget would be exceeded.
	OutOfMemoryFault
)

func (k FaultKind) String() string {
	switch k {
	case MemoryOperationFault:
		return "memory operation fault"
	case StackOverflowFault:
		return "stack overflow"
	case OutOfMemoryFault:
		return "out of memory"
	default:
		return "unknown fault"
	}
}

var (
	ErrNilValue      = errors.New("nil value")
	ErrAlreadyStored = errors.New("value is already stored")
	ErrNotStored     = errors.New("value is not stored")
	ErrNoActiveFrame = errors.New("no active frame")
	ErrRecycled      = errors.New("area is recycled")
	ErrStackOverflow = errors.New("call depth limit exceeded")
	ErrOutOfMemory   = errors.New("memory budget exceeded")
)

// Fault is the error type returned by every area operation.
type Fault struct {
	Kind FaultKind
	Op   string // operation that failed, e.g. "allocate"
	Area Kind
	Err  error
}

func newFault(kind FaultKind, op string, area Kind, err error) *Fault {
	return &Fault{Kind: kind, Op: op, Area: area, Err: err}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("%s: %s on %s area: %v", f.Kind, f.Op, f.Area, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

// Catchable reports whether the exception-translation layer may surface
// the fault as a script-level exception.
func (f *Fault) Catchable() bool {
	return f.Kind == StackOverflowFault
}

// IsFault reports whether err wraps a Fault of the given kind.
func IsFault(err error, kind FaultKind) bool {
	var f *Fault
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == kind
}
