package value

// Convertibility classifies how a value of one type becomes another.
type Convertibility int

const (
	Unconvertible Convertibility = iota // no conversion exists
	Promoted                            // widened, exact
	Demoted                             // narrowed, lossy
	Castable                            // needs an explicit cast
	Orthogonal                          // different types treated as equivalent
	Equivalent                          // identical types
	Downgraded                          // subclass to superclass
	Unsafe                              // superclass to subclass, checked at run time
)

func (c Convertibility) String() string {
	switch c {
	case Promoted:
		return "promoted"
	case Demoted:
		return "demoted"
	case Castable:
		return "castable"
	case Orthogonal:
		return "orthogonal"
	case Equivalent:
		return "equivalent"
	case Downgraded:
		return "downgraded"
	case Unsafe:
		return "unsafe"
	default:
		return "unconvertible"
	}
}

// IsSafe reports whether the conversion may happen without a cast.
func (c Convertibility) IsSafe() bool {
	switch c {
	case Promoted, Demoted, Orthogonal, Equivalent, Downgraded:
		return true
	default:
		return false
	}
}

// Type describes a static type for classification. Class is set for
// objects (nil meaning any object) and Elem for arrays.
type Type struct {
	Kind  Kind
	Class *Class
	Elem  *Type
}

func TypeOf(k Kind) Type {
	return Type{Kind: k}
}

func ClassType(c *Class) Type {
	return Type{Kind: KindObject, Class: c}
}

func ArrayOf(elem Type) Type {
	return Type{Kind: KindArray, Elem: &elem}
}

func (t Type) String() string {
	switch t.Kind {
	case KindObject:
		if t.Class != nil {
			return t.Class.Name()
		}
	case KindArray:
		if t.Elem != nil {
			return t.Elem.String() + "[]"
		}
	}
	return t.Kind.String()
}

// TypeOfValue derives the dynamic type of v. Null references report
// their declared kind.
func TypeOfValue(v Value) Type {
	switch x := v.(type) {
	case *Ref:
		if x.IsNull() {
			return TypeOf(x.Kind())
		}
		return TypeOfValue(x.Deref())
	case *Object:
		return ClassType(x.Class())
	case *Array:
		t := TypeOf(x.Elem())
		for range x.Dims() {
			t = ArrayOf(t)
		}
		return t
	case nil:
		return TypeOf(KindUnknown)
	default:
		return TypeOf(v.Kind())
	}
}

// Classify reports how a value of type from converts to type to.
func Classify(from, to Type) Convertibility {
	switch {
	case from.Kind.IsBasic() && to.Kind.IsBasic():
		return classifyBasic(from.Kind, to.Kind)

	case from.Kind.IsBasic() && to.Kind == KindString:
		if from.Kind == KindChar {
			return Orthogonal
		}
		return Castable

	case from.Kind == KindString && to.Kind.IsBasic():
		return Castable

	case from.Kind == KindObject && to.Kind == KindObject:
		return classifyClass(from.Class, to.Class)

	case from.Kind == KindArray && to.Kind == KindArray:
		if from.Elem == nil || to.Elem == nil {
			if from.Elem == to.Elem {
				return Equivalent
			}
			return Unconvertible
		}
		switch c := Classify(*from.Elem, *to.Elem); c {
		case Equivalent, Orthogonal:
			return c
		default:
			return Unconvertible
		}

	case from.Kind == to.Kind && from.Kind != KindUnknown:
		return Equivalent
	}

	return Unconvertible
}

func classifyBasic(from, to Kind) Convertibility {
	if from == to {
		return Equivalent
	}

	fr, tr := from.numericRank(), to.numericRank()
	if fr == 0 || tr == 0 {
		// bool on either side
		return Castable
	}

	if fr < tr {
		return Promoted
	}
	return Demoted
}

func classifyClass(from, to *Class) Convertibility {
	switch {
	case from == to:
		return Equivalent
	case to == nil:
		return Downgraded
	case from == nil:
		return Unsafe
	case from.IsSubclassOf(to):
		return Downgraded
	case to.IsSubclassOf(from):
		return Unsafe
	default:
		return Unconvertible
	}
}
