package parser

import (
	"fmt"

	"nut/internal/source"
	"nut/internal/types"
)

// layer is one level of parse-time visibility: the file, or one function
// (parameters and body locals share it).
type layer map[string]source.Span

// scopeStack answers "is this name declared" while the tree is still being
// built. It is rebuilt by sema with real declarators afterwards.
type scopeStack struct {
	builtins *types.Builtins
	layers   []layer
}

func newScopeStack(builtins *types.Builtins) *scopeStack {
	return &scopeStack{builtins: builtins, layers: []layer{{}}}
}

func (s *scopeStack) push() { s.layers = append(s.layers, layer{}) }

func (s *scopeStack) pop() {
	if len(s.layers) > 1 {
		s.layers = s.layers[:len(s.layers)-1]
	}
}

// declared reports whether name is visible in any layer or is a builtin.
func (s *scopeStack) declared(name string) bool {
	if s.builtins.Contains(name) {
		return true
	}
	for i := len(s.layers) - 1; i >= 0; i-- {
		if _, ok := s.layers[i][name]; ok {
			return true
		}
	}
	return false
}

// isType reports whether name starts a declaration.
func (s *scopeStack) isType(name string) bool {
	return s.builtins.Contains(name)
}

// declare adds name to the innermost layer. It fails when the name is a
// builtin or already declared in that layer; outer declarations may be shadowed.
func (s *scopeStack) declare(f *source.File, name string, at source.Span) (string, bool) {
	if s.builtins.Contains(name) {
		return fmt.Sprintf("symbol `%s' is already declared (`%s' is a builtin symbol)", name, name), false
	}
	inner := s.layers[len(s.layers)-1]
	if prev, ok := inner[name]; ok {
		pos := f.Position(prev.Start)
		return fmt.Sprintf("symbol `%s' is already declared (previously declared at line %d, col %d)", name, pos.Line, pos.Col), false
	}
	inner[name] = at
	return "", true
}
