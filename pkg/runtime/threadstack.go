package runtime

import (
	"errors"
	"fmt"

	"scriptmem/pkg/memory"
	"scriptmem/pkg/stack"
	"scriptmem/pkg/value"

	"github.com/charmbracelet/log"
)

var (
	ErrNoFrame              = errors.New("no active frame")
	ErrGlobalFrameInstalled = errors.New("global frame already installed")
)

// Frame is one activation: its storage area and its variables.
type Frame struct {
	Area   *memory.FrameArea
	Vars   *VariableTable
	Global bool
}

// Name returns the callable the frame belongs to.
func (f *Frame) Name() string { return f.Area.Name() }

// ThreadStack is the call stack of one script thread. Only the owning
// goroutine may use it.
type ThreadStack struct {
	name   string
	area   *memory.StackArea
	frames *stack.Stack[*Frame]
	global *Frame
	log    *log.Logger
}

// NewThreadStack creates an empty thread stack.
func NewThreadStack(name string, opts ...memory.Option) *ThreadStack {
	return newThreadStack(name, log.WithPrefix("thread").With("thread", name), opts)
}

func newThreadStack(name string, l *log.Logger, opts []memory.Option) *ThreadStack {
	return &ThreadStack{
		name:   name,
		area:   memory.NewStackArea(append([]memory.Option{memory.WithLogger(l)}, opts...)...),
		frames: stack.NewStack[*Frame](),
		log:    l,
	}
}

func (t *ThreadStack) Name() string { return t.name }

// Area returns the stack area backing the thread.
func (t *ThreadStack) Area() *memory.StackArea { return t.area }

// Depth returns the number of live frames.
func (t *ThreadStack) Depth() int { return t.frames.Size() }

// PushFrame activates a new frame with a fresh variable table.
func (t *ThreadStack) PushFrame(name string) (*Frame, error) {
	return t.push(name, NewVariableTable(), false)
}

// PushFrameWith activates a frame bound to a caller-owned table. With
// global set, the frame becomes the thread's global frame; only one may
// be installed.
func (t *ThreadStack) PushFrameWith(name string, vars *VariableTable, global bool) (*Frame, error) {
	if global && t.global != nil {
		return nil, ErrGlobalFrameInstalled
	}
	if vars == nil {
		vars = NewVariableTable()
	}
	return t.push(name, vars, global)
}

// PushGlobalFrame installs the top-level frame for script code.
func (t *ThreadStack) PushGlobalFrame(vars *VariableTable) (*Frame, error) {
	return t.PushFrameWith("<global>", vars, true)
}

func (t *ThreadStack) push(name string, vars *VariableTable, global bool) (*Frame, error) {
	area, err := t.area.PushFrame(name)
	if err != nil {
		return nil, err
	}

	f := &Frame{Area: area, Vars: vars, Global: global}
	t.frames.Push(f)
	if global {
		t.global = f
	}

	return f, nil
}

// PopFrame pops and recycles the active frame. Values still bound to it
// stop being stored.
func (t *ThreadStack) PopFrame() error {
	if _, err := t.area.PopFrame(); err != nil {
		return err
	}

	f, _ := t.frames.Pop()
	if f == t.global {
		t.global = nil
	}

	return nil
}

// CurrentFrame returns the active frame; false when the stack is empty.
func (t *ThreadStack) CurrentFrame() (*Frame, bool) {
	return t.frames.Peek()
}

// FrameFromTop returns the frame index positions below the top, or false
// when probing past the bottom.
func (t *ThreadStack) FrameFromTop(index int) (*Frame, bool) {
	return t.frames.At(index)
}

// Global returns the installed global frame.
func (t *ThreadStack) Global() (*Frame, bool) {
	return t.global, t.global != nil
}

// Declare allocates v in the active frame and binds it to name.
func (t *ThreadStack) Declare(name string, v value.Value) error {
	f, ok := t.CurrentFrame()
	if !ok {
		return fmt.Errorf("declare %s: %w", name, ErrNoFrame)
	}

	if err := f.Area.Allocate(v); err != nil {
		return fmt.Errorf("declare %s: %w", name, err)
	}

	f.Vars.AddVariable(name, v)
	return nil
}

// Lookup resolves name in the active frame only.
func (t *ThreadStack) Lookup(name string) (value.Value, bool) {
	f, ok := t.CurrentFrame()
	if !ok {
		return nil, false
	}
	return f.Vars.GetVariable(name)
}

// Resolve looks in the active frame, then in the global frame.
func (t *ThreadStack) Resolve(name string) (value.Value, bool) {
	if v, ok := t.Lookup(name); ok {
		return v, true
	}
	if g, ok := t.Global(); ok {
		return g.Vars.GetVariable(name)
	}
	return nil, false
}

// Call runs fn in a new frame and pops it on every exit path.
func (t *ThreadStack) Call(name string, fn func(*Frame) error) (err error) {
	f, err := t.PushFrame(name)
	if err != nil {
		return err
	}

	defer func() {
		if perr := t.PopFrame(); perr != nil {
			t.log.Error("Pop frame failed", "frame", name, "error", perr)
			err = errors.Join(err, perr)
		}
	}()

	return fn(f)
}

// Block runs fn inside a nested scope of the active frame.
func (t *ThreadStack) Block(fn func(*VariableTable) error) (err error) {
	f, ok := t.CurrentFrame()
	if !ok {
		return ErrNoFrame
	}

	f.Vars.EnterScope()
	defer func() {
		if serr := f.Vars.ExitScope(); serr != nil {
			err = errors.Join(err, serr)
		}
	}()

	return fn(f.Vars)
}
