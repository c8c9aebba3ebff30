package iter

import (
	"sync"

	"scriptmem/pkg/value"

	"github.com/charmbracelet/log"
)

// IndexIterator walks an Indexable from 0 to Length()-1. It cannot be
// restarted.
type IndexIterator struct {
	src      value.Indexable
	cursor   int
	disposed bool
}

func NewIndexIterator(src value.Indexable) *IndexIterator {
	return &IndexIterator{src: src}
}

func (it *IndexIterator) HasNext() (bool, error) {
	if it.disposed {
		return false, ErrDisposed
	}
	return it.cursor < it.src.Length(), nil
}

func (it *IndexIterator) Next() (value.Value, error) {
	if it.disposed {
		return nil, ErrDisposed
	}
	if it.cursor >= it.src.Length() {
		return nil, ErrExhausted
	}

	v, err := it.src.ValueAt(it.cursor)
	if err != nil {
		return nil, err
	}
	it.cursor++

	return v, nil
}

func (it *IndexIterator) Dispose() error {
	it.disposed = true
	return nil
}

// ListIterator iterates a List while holding its write lock. The lock is
// released by the first Dispose.
type ListIterator struct {
	IndexIterator
	list    *value.List
	release sync.Once
	log     *log.Logger
}

func NewListIterator(l *value.List) *ListIterator {
	it := &ListIterator{IndexIterator: IndexIterator{src: l}, list: l, log: log.WithPrefix("iter")}
	l.LockWrite()
	it.log.Debug("Acquire list write lock", "length", l.Length())

	return it
}

func (it *ListIterator) Dispose() error {
	it.release.Do(func() {
		it.list.UnlockWrite()
		it.log.Debug("Release list write lock", "consumed", it.cursor)
	})
	return it.IndexIterator.Dispose()
}
