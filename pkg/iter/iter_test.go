package iter_test

import (
	"errors"
	"scriptmem/pkg/iter"
	"scriptmem/pkg/value"
	"testing"
)

func collect(t *testing.T, it iter.Iterator) []string {
	t.Helper()
	var out []string
	err := iter.For(it, func(v value.Value) error {
		out = append(out, v.String())
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestIndexIterator(t *testing.T) {
	it, err := iter.New(value.NewString("abc"), nil)
	if err != nil {
		t.Fatal(err)
	}

	got := collect(t, it)
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("unexpected values %v", got)
	}

	if _, err := it.Next(); !errors.Is(err, iter.ErrDisposed) {
		t.Errorf("a disposed iterator cannot restart, got %v", err)
	}
}

func TestIndexIteratorExhausted(t *testing.T) {
	it := iter.NewIndexIterator(value.NewArray(value.KindInt, 1))

	if _, err := it.Next(); err != nil {
		t.Fatal(err)
	}
	if more, _ := it.HasNext(); more {
		t.Error("expected no more values")
	}
	if _, err := it.Next(); !errors.Is(err, iter.ErrExhausted) {
		t.Errorf("expected ErrExhausted, got %v", err)
	}
}

func TestListIteratorReleasesLock(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		description string
		body        func(value.Value) error
		expected    error
	}{
		{"exhaustion", func(value.Value) error { return nil }, nil},
		{"early break", func(value.Value) error { return iter.ErrBreak }, nil},
		{"error mid-iteration", func(value.Value) error { return boom }, boom},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			l := value.NewList(value.NewInt(1), value.NewInt(2))
			it, err := iter.New(value.NewRef(l), nil)
			if err != nil {
				t.Fatal(err)
			}

			if !l.WriteLocked() {
				t.Fatal("list must be write-locked while iterating")
			}
			if err := l.Append(value.NewInt(3)); !errors.Is(err, value.ErrListLocked) {
				t.Errorf("expected ErrListLocked, got %v", err)
			}

			err = iter.For(it, test.body)
			if !errors.Is(err, test.expected) || (test.expected == nil && err != nil) {
				t.Errorf("expected %v, got %v", test.expected, err)
			}
			if l.WriteLocked() {
				t.Error("write lock must be released")
			}

			// second dispose is a no-op
			if err := it.Dispose(); err != nil {
				t.Error(err)
			}
			if l.WriteLocked() {
				t.Error("double dispose must not unbalance the lock")
			}
		})
	}
}

func TestListIteratorReleasesOnPanic(t *testing.T) {
	l := value.NewList(value.NewInt(1))
	it := iter.NewListIterator(l)

	func() {
		defer func() { _ = recover() }()
		_ = iter.For(it, func(value.Value) error { panic("unwind") })
	}()

	if l.WriteLocked() {
		t.Error("write lock must be released when the body panics")
	}
}

// counter is a script-style iterable: counter.iterator() returns an
// object with hasNext/next/dispose.
func counter(limit int64, disposed *int) *value.Object {
	cursorClass := value.NewClass("CounterIterator", nil).
		Define("hasNext", func(self *value.Object, _ ...value.Value) (value.Value, error) {
			n, _ := self.Field("n")
			return value.NewBool(n.(*value.Basic).AsInt64() < limit), nil
		}).
		Define("next", func(self *value.Object, _ ...value.Value) (value.Value, error) {
			n, _ := self.Field("n")
			cur := n.(*value.Basic).AsInt64()
			self.SetField("n", value.NewInt(cur+1))
			return value.NewInt(cur), nil
		}).
		Define("dispose", func(self *value.Object, _ ...value.Value) (value.Value, error) {
			*disposed++
			return nil, nil
		})

	iterable := value.NewClass("Counter", nil).
		Define("iterator", func(self *value.Object, _ ...value.Value) (value.Value, error) {
			c := value.NewObject(cursorClass)
			c.SetField("n", value.NewInt(0))
			return value.NewRef(c), nil
		})

	return value.NewObject(iterable)
}

func TestObjectIterator(t *testing.T) {
	disposed := 0
	it, err := iter.New(counter(3, &disposed), iter.ClassDispatcher{})
	if err != nil {
		t.Fatal(err)
	}

	got := collect(t, it)
	if len(got) != 3 || got[0] != "0" || got[2] != "2" {
		t.Errorf("unexpected values %v", got)
	}

	if err := it.Dispose(); err != nil {
		t.Fatal(err)
	}
	if disposed != 1 {
		t.Errorf("dispose must run exactly once, ran %d times", disposed)
	}
}

func TestNotIterable(t *testing.T) {
	tests := []value.Value{
		value.NewInt(1),
		value.NullRef(value.KindList),
		value.NewObject(value.NewClass("Plain", nil)),
	}

	for _, v := range tests {
		if _, err := iter.New(v, nil); !errors.Is(err, iter.ErrNotIterable) {
			t.Errorf("%v: expected ErrNotIterable, got %v", v, err)
		}
	}
}

type nativeRange struct {
	value.Str
	n int
}

func (r *nativeRange) Iterator() (iter.Iterator, error) {
	return iter.NewIndexIterator(value.NewArray(value.KindInt, r.n)), nil
}

func TestNativeIterable(t *testing.T) {
	it, err := iter.New(&nativeRange{n: 4}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := collect(t, it); len(got) != 4 {
		t.Errorf("expected 4 values from the native iterator, got %v", got)
	}
}
