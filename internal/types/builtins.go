package types

// Builtin type names.
const (
	NameInt   = "int"
	NameFloat = "float"
	NameChar  = "char"
	NameVoid  = "void"
)

type builtinSpec struct {
	name  string
	flags Flags
}

var builtinSpecs = [...]builtinSpec{
	{NameInt, 0},
	{NameFloat, 0},
	{NameChar, 0},
	{NameVoid, FlagNoncopyable},
}

// Builtins is the immutable table of primitive type declarators.
// User declarations can never shadow an entry.
type Builtins struct {
	byName map[string]*Type
	order  []*Type
}

var defaultBuiltins = NewBuiltins()

// Default returns the process-wide builtin table, built at package init.
func Default() *Builtins { return defaultBuiltins }

// NewBuiltins builds a fresh table from the fixed builtin list.
func NewBuiltins() *Builtins {
	b := &Builtins{
		byName: make(map[string]*Type, len(builtinSpecs)),
		order:  make([]*Type, 0, len(builtinSpecs)),
	}
	for _, spec := range builtinSpecs {
		t := NewType(spec.name, spec.flags)
		b.byName[spec.name] = t
		b.order = append(b.order, t)
	}
	return b
}

// Lookup is an exact, case-sensitive match.
func (b *Builtins) Lookup(name string) (*Type, bool) {
	t, ok := b.byName[name]
	return t, ok
}

// Contains reports whether name is a builtin type name.
func (b *Builtins) Contains(name string) bool {
	_, ok := b.byName[name]
	return ok
}

// All returns the builtins in declaration order. The slice must not be modified.
func (b *Builtins) All() []*Type { return b.order }

func (b *Builtins) Int() *Type   { return b.byName[NameInt] }
func (b *Builtins) Float() *Type { return b.byName[NameFloat] }
func (b *Builtins) Char() *Type  { return b.byName[NameChar] }
func (b *Builtins) Void() *Type  { return b.byName[NameVoid] }
