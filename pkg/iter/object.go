package iter

import (
	"fmt"

	"scriptmem/pkg/value"
)

// Method names of the script-level iteration protocol.
const (
	MethodIterator = "iterator"
	MethodHasNext  = "hasNext"
	MethodNext     = "next"
	MethodDispose  = "dispose"
)

// Dispatcher invokes script methods on user objects. The interpreter
// supplies its own; ClassDispatcher uses the class method tables directly.
type Dispatcher interface {
	Invoke(obj *value.Object, method string, args ...value.Value) (value.Value, error)
	RespondsTo(obj *value.Object, method string) bool
}

// ClassDispatcher dispatches through value.Object.Send.
type ClassDispatcher struct{}

func (ClassDispatcher) Invoke(obj *value.Object, method string, args ...value.Value) (value.Value, error) {
	return obj.Send(method, args...)
}

func (ClassDispatcher) RespondsTo(obj *value.Object, method string) bool {
	return obj.RespondsTo(method)
}

// ObjectIterator drives a script-defined iterator object.
type ObjectIterator struct {
	d        Dispatcher
	obj      *value.Object
	disposed bool
}

// NewObjectIterator accepts either an iterable (responding to iterator)
// or an iterator (responding to hasNext and next).
func NewObjectIterator(d Dispatcher, obj *value.Object) (*ObjectIterator, error) {
	if d == nil {
		d = ClassDispatcher{}
	}

	if d.RespondsTo(obj, MethodIterator) {
		res, err := d.Invoke(obj, MethodIterator)
		if err != nil {
			return nil, err
		}
		if r, ok := res.(*value.Ref); ok {
			res = r.Deref()
		}
		next, ok := res.(*value.Object)
		if !ok {
			return nil, fmt.Errorf("%w: %s() returned %v", ErrNotIterable, MethodIterator, res)
		}
		obj = next
	}

	if !d.RespondsTo(obj, MethodHasNext) || !d.RespondsTo(obj, MethodNext) {
		return nil, fmt.Errorf("%w: %s", ErrNotIterable, obj)
	}

	return &ObjectIterator{d: d, obj: obj}, nil
}

func (it *ObjectIterator) HasNext() (bool, error) {
	if it.disposed {
		return false, ErrDisposed
	}

	res, err := it.d.Invoke(it.obj, MethodHasNext)
	if err != nil {
		return false, err
	}

	b, ok := res.(*value.Basic)
	if !ok {
		return false, fmt.Errorf("%s() must return a basic value, got %v", MethodHasNext, res)
	}
	return b.AsBool(), nil
}

func (it *ObjectIterator) Next() (value.Value, error) {
	if it.disposed {
		return nil, ErrDisposed
	}
	return it.d.Invoke(it.obj, MethodNext)
}

// Dispose calls the object's dispose method, if any, once.
func (it *ObjectIterator) Dispose() error {
	if it.disposed {
		return nil
	}
	it.disposed = true

	if it.d.RespondsTo(it.obj, MethodDispose) {
		_, err := it.d.Invoke(it.obj, MethodDispose)
		return err
	}
	return nil
}
