package memory

import (
	"scriptmem/pkg/stack"

	"github.com/charmbracelet/log"
)

// StackArea is the call stack of one thread. It is not safe for
// concurrent use; each thread owns its own.
type StackArea struct {
	frames *stack.Stack[*FrameArea]
	limit  int
	log    *log.Logger
}

// NewStackArea creates an empty stack area.
func NewStackArea(opts ...Option) *StackArea {
	o := buildOptions("stack", opts)
	return &StackArea{
		frames: stack.NewStack[*FrameArea](),
		limit:  o.depthLimit,
		log:    o.logger,
	}
}

func (s *StackArea) Kind() Kind { return Stack }

// Depth returns the number of live frames.
func (s *StackArea) Depth() int { return s.frames.Size() }

// Limit returns the current depth limit.
func (s *StackArea) Limit() int { return s.limit }

// PushFrame creates and activates a frame. Past the depth limit it fails
// with a StackOverflowFault after doubling the limit, so the code that
// handles the overflow still has frames to run in.
func (s *StackArea) PushFrame(name string) (*FrameArea, error) {
	depth := s.frames.Size()
	if depth >= s.limit {
		s.log.Warn("Stack overflow", "frame", name, "depth", depth, "limit", s.limit)
		s.limit *= 2
		return nil, newFault(StackOverflowFault, "push frame", Stack, ErrStackOverflow)
	}

	f := newFrameArea(name, depth)
	s.frames.Push(f)
	s.log.Debug("Push frame", "frame", name, "depth", depth)

	return f, nil
}

// PopFrame removes the active frame and recycles it.
func (s *StackArea) PopFrame() (*FrameArea, error) {
	f, ok := s.frames.Pop()
	if !ok {
		return nil, newFault(MemoryOperationFault, "pop frame", Stack, ErrNoActiveFrame)
	}

	f.recycle()
	s.log.Debug("Pop frame", "frame", f.name, "depth", f.depth)

	return f, nil
}

// Active returns the most recently pushed frame.
func (s *StackArea) Active() (*FrameArea, bool) {
	return s.frames.Peek()
}

// FrameFromTop returns the frame index positions below the top. Probing
// past the bottom reports false.
func (s *StackArea) FrameFromTop(index int) (*FrameArea, bool) {
	return s.frames.At(index)
}

func (s *StackArea) Allocate(v StoredValue) error {
	f, ok := s.frames.Peek()
	if !ok {
		return newFault(MemoryOperationFault, "allocate", Stack, ErrNoActiveFrame)
	}
	return f.Allocate(v)
}

func (s *StackArea) Reallocate(v StoredValue) error {
	f, ok := s.frames.Peek()
	if !ok {
		return newFault(MemoryOperationFault, "reallocate", Stack, ErrNoActiveFrame)
	}
	return f.Reallocate(v)
}

func (s *StackArea) Deallocate(v StoredValue) (bool, error) {
	f, ok := s.frames.Peek()
	if !ok {
		return false, newFault(MemoryOperationFault, "deallocate", Stack, ErrNoActiveFrame)
	}
	return f.Deallocate(v)
}

// IsRecycled is false; a stack area lives as long as its thread.
func (s *StackArea) IsRecycled() bool { return false }
