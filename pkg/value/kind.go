package value

type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindFloat
	KindBool
	KindChar
	KindByte
	KindString
	KindArray
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	case KindByte:
		return "byte"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// IsBasic reports whether values of the kind are copied by content.
func (k Kind) IsBasic() bool {
	switch k {
	case KindInt, KindFloat, KindBool, KindChar, KindByte:
		return true
	default:
		return false
	}
}

// IsReference reports whether assignment rebinds instead of copying.
func (k Kind) IsReference() bool {
	switch k {
	case KindString, KindArray, KindObject, KindList:
		return true
	default:
		return false
	}
}

// numericRank orders the numeric kinds by width; bool has no rank.
func (k Kind) numericRank() int {
	switch k {
	case KindByte:
		return 1
	case KindChar:
		return 2
	case KindInt:
		return 3
	case KindFloat:
		return 4
	default:
		return 0
	}
}
