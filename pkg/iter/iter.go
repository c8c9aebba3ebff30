// Package iter implements the iteration protocol shared by script and
// native iterables. The strategy is chosen once, when the iterator is
// created; callers must Dispose every iterator on every exit path, which
// For does for them.
package iter

import (
	"errors"
	"fmt"

	"scriptmem/pkg/value"
)

var (
	ErrExhausted   = errors.New("iterator exhausted")
	ErrDisposed    = errors.New("iterator disposed")
	ErrNotIterable = errors.New("value is not iterable")

	// ErrBreak ends a For loop early without reporting an error.
	ErrBreak = errors.New("break")
)

// Iterator yields values until HasNext reports false.
type Iterator interface {
	HasNext() (bool, error)
	Next() (value.Value, error)
	Dispose() error
}

// NativeIterable is implemented by host objects exposed through the
// interop layer.
type NativeIterable interface {
	Iterator() (Iterator, error)
}

// New selects the iteration strategy for v. References are followed.
func New(v value.Value, d Dispatcher) (Iterator, error) {
	if r, ok := v.(*value.Ref); ok {
		v = r.Deref()
	}

	switch x := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: null", ErrNotIterable)
	case *value.List:
		return NewListIterator(x), nil
	case NativeIterable:
		return x.Iterator()
	case value.Indexable:
		return NewIndexIterator(x), nil
	case *value.Object:
		it, err := NewObjectIterator(d, x)
		if err != nil {
			return nil, err
		}
		return it, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrNotIterable, v.Kind())
	}
}

// For runs fn for each value and disposes it afterwards, including when fn
// fails or panics. Returning ErrBreak from fn stops the loop cleanly.
func For(it Iterator, fn func(value.Value) error) (err error) {
	defer func() {
		if derr := it.Dispose(); derr != nil {
			err = errors.Join(err, derr)
		}
	}()

	for {
		more, err := it.HasNext()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}

		v, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(v); err != nil {
			if errors.Is(err, ErrBreak) {
				return nil
			}
			return err
		}
	}
}
