package value

import "testing"

func TestListRemoveClearsTail(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2), NewInt(3))

	if err := l.Remove(1); err != nil {
		t.Fatal(err)
	}
	if l.String() != "List(1, 3)" {
		t.Errorf("unexpected list %s", l)
	}
	if tail := l.items[:cap(l.items)][len(l.items)]; tail != nil {
		t.Errorf("removed slot must be cleared, still holds %s", tail)
	}
}
