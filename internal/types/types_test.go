package types

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestBuiltinsTable(t *testing.T) {
	b := NewBuiltins()
	for _, name := range []string{"int", "float", "char", "void"} {
		ty, ok := b.Lookup(name)
		be.True(t, ok)
		be.Equal(t, ty.Name, name)
	}
	_, ok := b.Lookup("Int")
	be.True(t, !ok)
	be.True(t, b.Void().Noncopyable())
	be.True(t, !b.Int().Noncopyable())
	be.Equal(t, len(b.All()), 4)
}

func TestDefaultIsShared(t *testing.T) {
	be.True(t, Default() == Default())
	be.True(t, Default().Int() == Default().Int())
}

func TestSameIsNominal(t *testing.T) {
	b := NewBuiltins()
	other := NewBuiltins()
	be.True(t, Same(b.Int(), b.Int()))
	be.True(t, Same(b.Int(), other.Int()))
	be.True(t, !Same(b.Int(), b.Float()))
	be.True(t, Same(NewType("int", 0), b.Int()))
	be.True(t, !Same(nil, b.Int()))
	be.True(t, Same(nil, nil))
}

func TestFunctionDeclarator(t *testing.T) {
	b := Default()
	fn := NewFunction("add")
	fn.Return = b.Int()
	for _, name := range []string{"a", "b"} {
		p := NewVariable(name)
		p.Type = b.Int()
		fn.AddParam(p)
	}
	be.Equal(t, fn.Arity(), 2)
	be.Equal(t, fn.DeclKind(), DeclFunction)
	be.Equal(t, fn.Signature(), "int add(int, int)")

	params := fn.Params
	Release(fn)
	be.Equal(t, fn.Arity(), 0)
	be.True(t, params[0] == nil)
	// shared builtin types survive teardown
	be.Equal(t, b.Int().Name, "int")
}

func TestDeclKinds(t *testing.T) {
	var decls = []Declarator{NewType("t", 0), NewVariable("v"), NewFunction("f")}
	want := []DeclKind{DeclType, DeclVariable, DeclFunction}
	for i, d := range decls {
		be.Equal(t, d.DeclKind(), want[i])
	}
	be.Equal(t, DeclVariable.String(), "variable")
}
