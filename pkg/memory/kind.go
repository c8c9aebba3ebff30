package memory

// Kind identifies which logical region an area represents.
type Kind int

const (
	Heap Kind = iota
	Stack
	Static
	Perm
)

func (k Kind) String() string {
	switch k {
	case Heap:
		return "heap"
	case Stack:
		return "stack"
	case Static:
		return "static"
	case Perm:
		return "perm"
	default:
		return "unknown"
	}
}
