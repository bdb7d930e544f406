package types

import "fmt"

// DeclKind enumerates the declarator variants.
type DeclKind uint8

const (
	DeclInvalid DeclKind = iota
	DeclType
	DeclVariable
	DeclFunction
)

func (k DeclKind) String() string {
	switch k {
	case DeclType:
		return "type"
	case DeclVariable:
		return "variable"
	case DeclFunction:
		return "function"
	default:
		return fmt.Sprintf("DeclKind(%d)", k)
	}
}

// Declarator describes what a declared name denotes.
// The set of implementations is closed: *Type, *Variable, *Function.
type Declarator interface {
	DeclName() string
	DeclKind() DeclKind
	sealed()
}

// Flags is a bit set of type properties.
type Flags uint8

const (
	// FlagNoncopyable marks a type no value may be stored in, passed as, returned as or assigned from.
	FlagNoncopyable Flags = 1 << iota
)

// Type is a nominal type declarator.
type Type struct {
	Name  string
	Flags Flags
}

// Variable is a variable or parameter declarator.
type Variable struct {
	Name string
	Type *Type // nil until resolved
}

// Function is a free function declarator. It owns its parameters.
type Function struct {
	Name   string
	Return *Type // nil until resolved
	Params []*Variable
}

func NewType(name string, flags Flags) *Type { return &Type{Name: name, Flags: flags} }

func NewVariable(name string) *Variable { return &Variable{Name: name} }

func NewFunction(name string) *Function { return &Function{Name: name} }

func (t *Type) DeclName() string { return t.Name }

func (t *Type) DeclKind() DeclKind { return DeclType }

func (*Type) sealed() {}

func (v *Variable) DeclName() string { return v.Name }

func (v *Variable) DeclKind() DeclKind { return DeclVariable }

func (*Variable) sealed() {}

func (f *Function) DeclName() string { return f.Name }

func (f *Function) DeclKind() DeclKind { return DeclFunction }

func (*Function) sealed() {}

// Noncopyable reports whether the type carries FlagNoncopyable. A nil type is copyable.
func (t *Type) Noncopyable() bool {
	return t != nil && t.Flags&FlagNoncopyable != 0
}

func (t *Type) String() string {
	if t == nil {
		return "<unresolved>"
	}
	return t.Name
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int { return len(f.Params) }

// AddParam appends an owned parameter declarator.
func (f *Function) AddParam(p *Variable) { f.Params = append(f.Params, p) }

// Signature renders "ret name(t1, t2)".
func (f *Function) Signature() string {
	s := f.Return.String() + " " + f.Name + "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.Type.String()
	}
	return s + ")"
}

// Release tears a declarator down. Functions drop their owned parameters;
// types and variables are shallow since the type they refer to is shared.
func Release(d Declarator) {
	switch d := d.(type) {
	case *Function:
		for i := range d.Params {
			Release(d.Params[i])
			d.Params[i] = nil
		}
		d.Params = nil
		d.Return = nil
	case *Variable:
		d.Type = nil
	case *Type, nil:
	}
}

// Same reports nominal equality: two types are compatible only when their names match.
func Same(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a == b || a.Name == b.Name
}
