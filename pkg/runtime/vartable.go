package runtime

import (
	"errors"
	"sort"

	"scriptmem/pkg/stack"
	"scriptmem/pkg/value"
)

var ErrScopeUnderflow = errors.New("exit scope without matching enter")

type scope map[string]value.Value

// VariableTable maps names to values for one frame. Nested block scopes
// shadow outer bindings without destroying them.
type VariableTable struct {
	scopes *stack.Stack[scope]
}

// NewVariableTable creates a table holding the frame's outermost scope.
func NewVariableTable() *VariableTable {
	return &VariableTable{scopes: stack.NewStack(scope{})}
}

// AddVariable binds name in the innermost scope.
func (vt *VariableTable) AddVariable(name string, v value.Value) {
	s, _ := vt.scopes.Peek()
	s[name] = v
}

// GetVariable resolves name innermost scope first.
func (vt *VariableTable) GetVariable(name string) (value.Value, bool) {
	for i := 0; i < vt.scopes.Size(); i++ {
		s, _ := vt.scopes.At(i)
		if v, ok := s[name]; ok {
			return v, true
		}
	}
	return nil, false
}

func (vt *VariableTable) EnterScope() {
	vt.scopes.Push(scope{})
}

// ExitScope drops every binding made since the matching EnterScope.
func (vt *VariableTable) ExitScope() error {
	if vt.scopes.Size() <= 1 {
		return ErrScopeUnderflow
	}
	vt.scopes.Pop()
	return nil
}

// ScopeDepth returns the number of open scopes, the frame scope included.
func (vt *VariableTable) ScopeDepth() int {
	return vt.scopes.Size()
}

// Names lists visible names in sorted order.
func (vt *VariableTable) Names() []string {
	seen := make(map[string]struct{})
	for _, s := range vt.scopes.Array() {
		for n := range s {
			seen[n] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
