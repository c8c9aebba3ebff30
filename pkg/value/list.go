package value

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"scriptmem/pkg/memory"
)

// List is the built-in mutable list. While any iteration holds its write
// lock, mutations fail with ErrListLocked.
type List struct {
	memory.Cell
	mu         sync.Mutex
	items      []Value
	writeLocks atomic.Int32
}

func NewList(items ...Value) *List {
	return &List{items: append([]Value(nil), items...)}
}

func (l *List) Kind() Kind { return KindList }

func (l *List) Length() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

func (l *List) ValueAt(i int) (Value, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= len(l.items) {
		return nil, indexError(i, len(l.items))
	}
	return l.items[i], nil
}

func (l *List) Append(v Value) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.WriteLocked() {
		return ErrListLocked
	}
	l.items = append(l.items, v)
	return nil
}

func (l *List) Set(i int, v Value) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.WriteLocked() {
		return ErrListLocked
	}
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	l.items[i] = v
	return nil
}

func (l *List) Remove(i int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.WriteLocked() {
		return ErrListLocked
	}
	if i < 0 || i >= len(l.items) {
		return indexError(i, len(l.items))
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// LockWrite blocks mutation until a matching UnlockWrite. Locks nest.
func (l *List) LockWrite() {
	l.writeLocks.Add(1)
}

func (l *List) UnlockWrite() {
	if l.writeLocks.Add(-1) < 0 {
		l.writeLocks.Store(0)
	}
}

func (l *List) WriteLocked() bool {
	return l.writeLocks.Load() > 0
}

func (l *List) Footprint() int64 {
	return 24 + 8*int64(l.Length())
}

func (l *List) String() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	parts := make([]string, len(l.items))
	for i, v := range l.items {
		parts[i] = v.String()
	}
	return "List(" + strings.Join(parts, ", ") + ")"
}
