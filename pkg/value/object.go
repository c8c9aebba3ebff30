package value

import (
	"fmt"
	"sort"

	"scriptmem/pkg/memory"
)

// Method is a script-level method body.
type Method func(self *Object, args ...Value) (Value, error)

// Class describes user objects: a name, an optional superclass and a
// method table.
type Class struct {
	name    string
	super   *Class
	methods map[string]Method
}

func NewClass(name string, super *Class) *Class {
	return &Class{name: name, super: super, methods: make(map[string]Method)}
}

func (c *Class) Name() string { return c.name }

func (c *Class) Super() *Class { return c.super }

// Define installs a method and returns the class for chaining.
func (c *Class) Define(name string, m Method) *Class {
	c.methods[name] = m
	return c
}

// Lookup finds a method on the class or its ancestors.
func (c *Class) Lookup(name string) (Method, bool) {
	for k := c; k != nil; k = k.super {
		if m, ok := k.methods[name]; ok {
			return m, true
		}
	}
	return nil, false
}

// IsSubclassOf reports whether c is other or descends from it.
func (c *Class) IsSubclassOf(other *Class) bool {
	for k := c; k != nil; k = k.super {
		if k == other {
			return true
		}
	}
	return false
}

// Object is an instance of a user class.
type Object struct {
	memory.Cell
	class  *Class
	fields map[string]Value
}

func NewObject(c *Class) *Object {
	return &Object{class: c, fields: make(map[string]Value)}
}

func (o *Object) Kind() Kind { return KindObject }

func (o *Object) Class() *Class { return o.class }

func (o *Object) Field(name string) (Value, bool) {
	v, ok := o.fields[name]
	return v, ok
}

func (o *Object) SetField(name string, v Value) {
	o.fields[name] = v
}

// RespondsTo reports whether the object's class chain defines name.
func (o *Object) RespondsTo(name string) bool {
	if o.class == nil {
		return false
	}
	_, ok := o.class.Lookup(name)
	return ok
}

// Send invokes a method on the object.
func (o *Object) Send(name string, args ...Value) (Value, error) {
	if o.class != nil {
		if m, ok := o.class.Lookup(name); ok {
			return m(o, args...)
		}
	}
	return nil, fmt.Errorf("%w: %s>>%s", ErrNoSuchMethod, o.className(), name)
}

func (o *Object) className() string {
	if o.class == nil {
		return "Object"
	}
	return o.class.name
}

func (o *Object) Footprint() int64 { return 32 + 16*int64(len(o.fields)) }

func (o *Object) String() string {
	names := make([]string, 0, len(o.fields))
	for n := range o.fields {
		names = append(names, n)
	}
	sort.Strings(names)
	return fmt.Sprintf("<%s %v>", o.className(), names)
}
