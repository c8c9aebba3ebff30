// Package runtime ties the memory areas and the value model together: one
// Engine per script instance with a shared heap, one ThreadStack per
// script thread, and the variable tables that name values inside frames.
package runtime

import (
	"context"
	"fmt"
	"sync/atomic"

	"scriptmem/pkg/memory"
	"scriptmem/pkg/value"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ThreadFunc is the body of a script thread.
type ThreadFunc func(ctx context.Context, t *ThreadStack) error

// Engine owns the areas shared by all threads of one script instance.
type Engine struct {
	id         uuid.UUID
	heap       *memory.HeapArea
	static     *memory.StaticArea
	perm       *memory.StaticArea
	budget     *memory.Budget
	depthLimit int
	log        *log.Logger
	threads    atomic.Int64
}

type Option func(*Engine)

// WithDepthLimit sets the call depth limit of every thread.
func WithDepthLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.depthLimit = n
		}
	}
}

// WithHeapBudget limits the bytes held by the heap and static areas.
// Zero means unlimited.
func WithHeapBudget(bytes int64) Option {
	return func(e *Engine) { e.budget = memory.NewBudget(bytes) }
}

// WithLogger replaces the engine logger
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// NewEngine creates an engine instance.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		id:         uuid.New(),
		depthLimit: memory.DefaultDepthLimit,
	}

	for _, o := range opts {
		o(e)
	}

	if e.log == nil {
		e.log = log.WithPrefix("engine")
	}
	e.log = e.log.With("engine", e.id.String()[:8])

	areaOpts := []memory.Option{memory.WithLogger(e.log)}
	if e.budget != nil {
		areaOpts = append(areaOpts, memory.WithBudget(e.budget))
	}

	e.heap = memory.NewHeapArea(areaOpts...)
	e.static = memory.NewStaticArea(areaOpts...)
	e.perm = memory.NewPermArea(areaOpts...)

	return e
}

func (e *Engine) ID() uuid.UUID { return e.id }

func (e *Engine) Heap() *memory.HeapArea { return e.heap }

func (e *Engine) Static() *memory.StaticArea { return e.static }

func (e *Engine) Perm() *memory.StaticArea { return e.perm }

// Budget returns the shared byte budget, or nil when unlimited.
func (e *Engine) Budget() *memory.Budget { return e.budget }

// DepthLimit returns the limit new threads start with.
func (e *Engine) DepthLimit() int { return e.depthLimit }

// NewThread creates a thread stack. An empty name gets a generated one.
func (e *Engine) NewThread(name string) *ThreadStack {
	n := e.threads.Add(1)
	if name == "" {
		name = fmt.Sprintf("thread-%d", n)
	}

	e.log.Debug("New thread", "thread", name)
	return newThreadStack(name, e.log.With("thread", name), []memory.Option{memory.WithDepthLimit(e.depthLimit)})
}

// New allocates a value constructed by the script on the heap.
func (e *Engine) New(v value.Value) error {
	if err := e.heap.Allocate(v); err != nil {
		return fmt.Errorf("new %s: %w", v.Kind(), err)
	}
	return nil
}

// Go runs each function on its own goroutine with its own thread stack
// and waits for all of them. The first error cancels ctx for the others
// and is returned.
func (e *Engine) Go(ctx context.Context, fns ...ThreadFunc) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, fn := range fns {
		fn := fn
		t := e.NewThread("")
		g.Go(func() error {
			e.log.Debug("Thread started", "thread", t.Name())
			err := fn(ctx, t)
			e.log.Debug("Thread finished", "thread", t.Name(), "depth", t.Depth(), "error", err)
			return err
		})
	}

	return g.Wait()
}
