package symbols

import "nut/internal/ast"

// Scopes owns every scope of one index. IDs start at 1, so NoScopeID never
// resolves.
type Scopes struct {
	arena *ast.Arena[Scope, ScopeID]
}

func NewScopes(capacity uint) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{arena: ast.NewArena[Scope, ScopeID](capacity)}
}

// New opens a scope under parent. parentVisible is how many of the parent's
// entries exist at this point.
func (s *Scopes) New(kind ScopeKind, parent ScopeID, parentVisible int, owner ast.NodeID) ScopeID {
	return s.arena.Allocate(Scope{
		Kind:          kind,
		Parent:        parent,
		ParentVisible: parentVisible,
		Owner:         owner,
	})
}

func (s *Scopes) Get(id ScopeID) *Scope { return s.arena.Get(id) }

func (s *Scopes) Len() int { return int(s.arena.Len()) }
