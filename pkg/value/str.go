package value

import "scriptmem/pkg/memory"

// Str is an immutable string object.
type Str struct {
	memory.Cell
	runes []rune
}

func NewString(s string) *Str {
	return &Str{runes: []rune(s)}
}

func (s *Str) Kind() Kind { return KindString }

// Length returns the number of characters.
func (s *Str) Length() int { return len(s.runes) }

// ValueAt returns the character at i as a fresh char value.
func (s *Str) ValueAt(i int) (Value, error) {
	if i < 0 || i >= len(s.runes) {
		return nil, indexError(i, len(s.runes))
	}
	return NewChar(s.runes[i]), nil
}

func (s *Str) Footprint() int64 { return 16 + 4*int64(len(s.runes)) }

func (s *Str) String() string { return string(s.runes) }
