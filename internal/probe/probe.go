// Package probe drives the memory core end to end: it builds an engine
// from configuration and checks the lifetime, scoping, conversion,
// aliasing, overflow and shared-heap behaviour against it.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"scriptmem/internal/config"
	"scriptmem/pkg/color"
	"scriptmem/pkg/iter"
	"scriptmem/pkg/memory"
	"scriptmem/pkg/runtime"
	"scriptmem/pkg/value"

	"github.com/charmbracelet/log"
)

type Probe struct {
	Help       bool      // Show help message
	Verbose    bool      // Enable verbose output
	NoColor    bool      // Disable colored output
	ConfigFile string    // Path to a scriptmem.toml file
	DepthLimit int       // Overrides stack.depth_limit when positive
	Out        io.Writer // Report destination, stdout when nil
}

type check struct {
	name string
	run  func(e *runtime.Engine) error
}

// Config resolves the effective configuration.
func (p *Probe) Config() (config.Config, error) {
	cfg := config.Default()
	if p.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(p.ConfigFile); err != nil {
			return cfg, err
		}
	}

	if p.DepthLimit > 0 {
		cfg.Stack.DepthLimit = p.DepthLimit
	}
	if p.Verbose {
		cfg.Log.Debug = true
	}
	if p.NoColor {
		cfg.Log.NoColor = true
	}

	return cfg, cfg.Validate()
}

// Run executes every check and reports the ones that failed.
func (p *Probe) Run() error {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	cfg, err := p.Config()
	if err != nil {
		return err
	}

	e := runtime.NewEngine(
		runtime.WithDepthLimit(cfg.Stack.DepthLimit),
		runtime.WithHeapBudget(cfg.Heap.Budget),
	)
	log.Info("Probing engine", "engine", e.ID(), "depth_limit", cfg.Stack.DepthLimit, "threads", cfg.Threads.Count)

	checks := []check{
		{"frame lifetimes", checkLifetimes},
		{"block scoping", checkScoping},
		{"numeric conversion", checkConversion},
		{"reference aliasing", checkAliasing},
		{"list iteration lock", checkIteration},
		{"stack overflow", func(e *runtime.Engine) error { return checkOverflow(e, out, p.Verbose) }},
		{"shared heap", func(e *runtime.Engine) error { return checkSharedHeap(e, cfg.Threads.Count) }},
	}

	fmt.Fprintln(out, color.GreenText("=== Memory Core Probe ==="))

	var failed []error
	for _, c := range checks {
		if err := c.run(e); err != nil {
			fmt.Fprintln(out, color.Error(fmt.Sprintf("%s: %v", c.name, err)))
			failed = append(failed, fmt.Errorf("%s: %w", c.name, err))
			continue
		}
		fmt.Fprintln(out, color.Success(c.name))
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d checks failed: %w", len(failed), len(checks), errors.Join(failed...))
	}
	return nil
}

func checkLifetimes(e *runtime.Engine) error {
	ts := e.NewThread("lifetimes")
	outer := value.NewInt(50)
	inner := value.NewInt(200)

	return ts.Call("F1", func(*runtime.Frame) error {
		if err := ts.Declare("varB", outer); err != nil {
			return err
		}
		if err := ts.Call("F2", func(*runtime.Frame) error {
			return ts.Declare("varC", inner)
		}); err != nil {
			return err
		}

		if inner.IsStored() {
			return errors.New("F2 local still stored after return")
		}
		if !outer.IsStored() {
			return errors.New("F1 local released early")
		}
		return nil
	})
}

func checkScoping(e *runtime.Engine) error {
	ts := e.NewThread("scoping")

	return ts.Call("main", func(f *runtime.Frame) error {
		if err := ts.Declare("varA", value.NewInt(37)); err != nil {
			return err
		}
		if err := ts.Block(func(vt *runtime.VariableTable) error {
			return ts.Declare("varA", value.NewInt(137))
		}); err != nil {
			return err
		}

		v, ok := ts.Lookup("varA")
		if !ok || v.String() != "37" {
			return fmt.Errorf("varA = %v after block, want 37", v)
		}
		return nil
	})
}

func checkConversion(*runtime.Engine) error {
	i := value.NewInt(0)
	if err := value.Assign(value.NewFloat(2.7), i); err != nil {
		return err
	}
	f := value.NewFloat(0)
	if err := value.Assign(value.NewInt(5), f); err != nil {
		return err
	}

	if i.AsInt64() != 2 || f.AsFloat64() != 5 {
		return fmt.Errorf("got int %s and float %s, want 2 and 5", i, f)
	}
	return nil
}

func checkAliasing(e *runtime.Engine) error {
	foo, notbar := value.NewString("foo"), value.NewString("notbar")
	for _, s := range []*value.Str{foo, notbar} {
		if err := e.New(s); err != nil {
			return err
		}
	}

	fooRef, notbarRef := value.NewRef(foo), value.NewRef(notbar)
	if err := value.Assign(fooRef, notbarRef); err != nil {
		return err
	}

	got := notbarRef.Deref().(*value.Str)
	if got.Length() != 3 || notbar.Length() != 6 {
		return fmt.Errorf("notbarRef length %d, original %d; want 3 and 6", got.Length(), notbar.Length())
	}
	return nil
}

func checkIteration(e *runtime.Engine) error {
	l := value.NewList(value.NewInt(1), value.NewInt(2), value.NewInt(3))
	if err := e.New(l); err != nil {
		return err
	}

	it, err := iter.New(value.NewRef(l), iter.ClassDispatcher{})
	if err != nil {
		return err
	}

	err = iter.For(it, func(v value.Value) error {
		if werr := l.Append(v); !errors.Is(werr, value.ErrListLocked) {
			return fmt.Errorf("append during iteration: %v", werr)
		}
		return iter.ErrBreak
	})
	if err != nil {
		return err
	}

	if l.WriteLocked() {
		return errors.New("write lock leaked after break")
	}
	return nil
}

func checkOverflow(e *runtime.Engine, out io.Writer, verbose bool) error {
	ts := e.NewThread("overflow")
	limit := ts.Area().Limit()

	var trace runtime.Trace
	var recurse func() error
	recurse = func() error {
		err := ts.Call("recurse", func(*runtime.Frame) error { return recurse() })
		if memory.IsFault(err, memory.StackOverflowFault) && trace.Frames == nil {
			trace = ts.Trace()
		}
		return err
	}

	err := recurse()
	if !memory.IsFault(err, memory.StackOverflowFault) {
		return fmt.Errorf("expected stack overflow, got %v", err)
	}
	if len(trace.Frames) != limit {
		return fmt.Errorf("overflowed at depth %d, want %d", len(trace.Frames), limit)
	}

	if verbose {
		fmt.Fprintln(out, color.Warning(fmt.Sprintf("stack limit raised from %d to %d", limit, ts.Area().Limit())))
		if err := trace.Render(out, 8); err != nil {
			return err
		}
	}

	return ts.Call("handler", func(*runtime.Frame) error { return nil })
}

func checkSharedHeap(e *runtime.Engine, threads int) error {
	class := value.NewClass("Cell", nil)

	bodies := make([]runtime.ThreadFunc, threads)
	for n := range bodies {
		bodies[n] = func(ctx context.Context, ts *runtime.ThreadStack) error {
			return ts.Call("worker", func(*runtime.Frame) error {
				for i := 0; i < 100; i++ {
					if err := ctx.Err(); err != nil {
						return err
					}
					obj := value.NewObject(class)
					if err := e.New(obj); err != nil {
						return err
					}
					if err := ts.Declare("obj", value.NewRef(obj)); err != nil {
						return err
					}
				}
				return nil
			})
		}
	}

	return e.Go(context.Background(), bodies...)
}
