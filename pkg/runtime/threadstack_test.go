package runtime_test

import (
	"errors"
	"scriptmem/pkg/memory"
	"scriptmem/pkg/runtime"
	"scriptmem/pkg/value"
	"testing"
)

func TestFrameLifetimes(t *testing.T) {
	ts := runtime.NewThreadStack("main")

	if _, err := ts.PushFrame("F1"); err != nil {
		t.Fatal(err)
	}
	f1A, f1B := value.NewInt(37), value.NewInt(50)
	if err := ts.Declare("varA", f1A); err != nil {
		t.Fatal(err)
	}
	if err := ts.Declare("varB", f1B); err != nil {
		t.Fatal(err)
	}

	if _, err := ts.PushFrame("F2"); err != nil {
		t.Fatal(err)
	}
	f2A, f2C := value.NewInt(137), value.NewInt(200)
	if err := ts.Declare("varA", f2A); err != nil {
		t.Fatal(err)
	}
	if err := ts.Declare("varC", f2C); err != nil {
		t.Fatal(err)
	}

	if v, _ := ts.Lookup("varA"); v != value.Value(f2A) {
		t.Error("varA must resolve to the F2 binding")
	}
	if _, ok := ts.Lookup("varB"); ok {
		t.Error("F1 locals must not be visible from F2")
	}

	if err := ts.PopFrame(); err != nil {
		t.Fatal(err)
	}

	if f2A.IsStored() || f2C.IsStored() {
		t.Error("F2 locals must be unstored after pop")
	}
	if !f1A.IsStored() || !f1B.IsStored() {
		t.Error("F1 locals must still be stored")
	}
	if v, _ := ts.Lookup("varA"); v != value.Value(f1A) {
		t.Error("varA must resolve to the F1 binding again")
	}
}

func TestPushPopRestoresIdentity(t *testing.T) {
	ts := runtime.NewThreadStack("main")
	if _, ok := ts.CurrentFrame(); ok {
		t.Fatal("empty stack must report no frame")
	}

	base, _ := ts.PushFrame("base")
	for _, name := range []string{"a", "b", "c"} {
		before, _ := ts.CurrentFrame()
		depth := ts.Depth()

		if _, err := ts.PushFrame(name); err != nil {
			t.Fatal(err)
		}
		if err := ts.PopFrame(); err != nil {
			t.Fatal(err)
		}

		after, _ := ts.CurrentFrame()
		if after != before || ts.Depth() != depth {
			t.Errorf("%s: push/pop must restore depth and active frame", name)
		}
	}

	if cur, _ := ts.CurrentFrame(); cur != base {
		t.Error("expected base frame on top")
	}
}

func TestGlobalFrame(t *testing.T) {
	ts := runtime.NewThreadStack("main")
	globals := runtime.NewVariableTable()
	globals.AddVariable("answer", value.NewInt(42))

	g, err := ts.PushGlobalFrame(globals)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Global || g.Vars != globals {
		t.Error("global frame must use the caller's table")
	}

	if _, err := ts.PushGlobalFrame(runtime.NewVariableTable()); !errors.Is(err, runtime.ErrGlobalFrameInstalled) {
		t.Errorf("expected ErrGlobalFrameInstalled, got %v", err)
	}

	err = ts.Call("f", func(f *runtime.Frame) error {
		if _, ok := ts.Lookup("answer"); ok {
			t.Error("Lookup must not leave the active frame")
		}
		v, ok := ts.Resolve("answer")
		if !ok || v.String() != "42" {
			t.Errorf("Resolve must fall back to the global frame, got %v", v)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := ts.PopFrame(); err != nil {
		t.Fatal(err)
	}
	if _, ok := ts.Global(); ok {
		t.Error("popping the global frame must uninstall it")
	}
	if _, ok := globals.GetVariable("answer"); !ok {
		t.Error("the caller-owned table must survive the pop")
	}
}

func TestCallPopsOnError(t *testing.T) {
	ts := runtime.NewThreadStack("main")
	boom := errors.New("boom")
	local := value.NewString("tmp")

	err := ts.Call("f", func(f *runtime.Frame) error {
		if err := ts.Declare("s", local); err != nil {
			return err
		}
		return boom
	})

	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
	if ts.Depth() != 0 || local.IsStored() {
		t.Error("the frame must be popped and its locals released")
	}
}

func TestCallPopsOnPanic(t *testing.T) {
	ts := runtime.NewThreadStack("main")

	func() {
		defer func() { _ = recover() }()
		_ = ts.Call("f", func(*runtime.Frame) error { panic("unwind") })
	}()

	if ts.Depth() != 0 {
		t.Errorf("expected empty stack after panic, depth %d", ts.Depth())
	}
}

func TestBlockScope(t *testing.T) {
	ts := runtime.NewThreadStack("main")
	if err := ts.Block(func(*runtime.VariableTable) error { return nil }); !errors.Is(err, runtime.ErrNoFrame) {
		t.Errorf("expected ErrNoFrame, got %v", err)
	}

	err := ts.Call("f", func(f *runtime.Frame) error {
		if err := ts.Declare("x", value.NewInt(1)); err != nil {
			return err
		}

		inner := value.NewInt(2)
		err := ts.Block(func(vt *runtime.VariableTable) error {
			if err := ts.Declare("x", inner); err != nil {
				return err
			}
			v, _ := ts.Lookup("x")
			if v.String() != "2" {
				t.Errorf("expected shadowed x=2, got %s", v)
			}
			return nil
		})
		if err != nil {
			return err
		}

		v, _ := ts.Lookup("x")
		if v.String() != "1" {
			t.Errorf("expected x=1 after block, got %s", v)
		}
		if !inner.IsStored() {
			t.Error("storage lifetime follows the frame, not the scope")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestRecursionOverflow(t *testing.T) {
	ts := runtime.NewThreadStack("main", memory.WithDepthLimit(10))

	var recurse func(n int) error
	recurse = func(n int) error {
		return ts.Call("recurse", func(*runtime.Frame) error {
			return recurse(n + 1)
		})
	}

	err := recurse(0)
	if !memory.IsFault(err, memory.StackOverflowFault) {
		t.Fatalf("expected stack overflow, got %v", err)
	}
	if ts.Depth() != 0 {
		t.Errorf("every frame must be popped while unwinding, depth %d", ts.Depth())
	}

	// the doubled limit leaves room for the handler
	err = ts.Call("handler", func(*runtime.Frame) error { return nil })
	if err != nil {
		t.Errorf("handler frame must fit, got %v", err)
	}
	if ts.Area().Limit() != 20 {
		t.Errorf("expected limit 20, got %d", ts.Area().Limit())
	}
}

func TestFrameFromTopPermissive(t *testing.T) {
	ts := runtime.NewThreadStack("main")
	_, _ = ts.PushFrame("a")
	_, _ = ts.PushFrame("b")

	if f, ok := ts.FrameFromTop(0); !ok || f.Name() != "b" {
		t.Error("index 0 must be the top frame")
	}
	if f, ok := ts.FrameFromTop(1); !ok || f.Name() != "a" {
		t.Error("index 1 must be the caller")
	}
	for _, i := range []int{2, 10, 1000} {
		if _, ok := ts.FrameFromTop(i); ok {
			t.Errorf("index %d must be reported as not found", i)
		}
	}
}
