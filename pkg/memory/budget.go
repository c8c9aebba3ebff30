package memory

import "sync/atomic"

// DefaultFootprint is charged for values that do not implement Sizer.
const DefaultFootprint int64 = 16

// Sizer is implemented by values that know their approximate size in bytes.
type Sizer interface {
	Footprint() int64
}

// Budget is a byte allowance shared by one or more areas.
// A limit of zero or less means unlimited; usage is still counted.
type Budget struct {
	limit int64
	used  atomic.Int64
}

// NewBudget creates a budget with the given limit in bytes.
func NewBudget(limit int64) *Budget {
	return &Budget{limit: limit}
}

// Limit returns the configured limit.
func (b *Budget) Limit() int64 {
	return b.limit
}

// Used returns the bytes currently charged.
func (b *Budget) Used() int64 {
	return b.used.Load()
}

// Remaining returns the bytes left, or -1 when unlimited.
func (b *Budget) Remaining() int64 {
	if b.limit <= 0 {
		return -1
	}
	return max(b.limit-b.used.Load(), 0)
}

func (b *Budget) charge(n int64) bool {
	for {
		used := b.used.Load()
		if b.limit > 0 && used+n > b.limit {
			return false
		}
		if b.used.CompareAndSwap(used, used+n) {
			return true
		}
	}
}

// refund never takes usage below zero; a mutable value may have shrunk
// since it was charged.
func (b *Budget) refund(n int64) {
	for {
		used := b.used.Load()
		next := max(used-n, 0)
		if b.used.CompareAndSwap(used, next) {
			return
		}
	}
}

func footprint(v StoredValue) int64 {
	if s, ok := v.(Sizer); ok {
		return s.Footprint()
	}
	return DefaultFootprint
}
