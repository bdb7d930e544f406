package symbols

import (
	"nut/internal/ast"
	"nut/internal/types"
)

// ScopeID индексирует арену скоупов; 0 зарезервирован.
type ScopeID uint32

const NoScopeID ScopeID = 0

func (id ScopeID) IsValid() bool { return id != NoScopeID }

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeFile               // artificial root per parsed file
	ScopeFunction           // parameters and body of a function
	ScopeBlock              // statement block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Entry is one declaration in a scope, kept in declaration order.
type Entry struct {
	Name string
	Decl types.Declarator
	Node ast.NodeID
}

// Scope is an ordered name→declarator map with a parent link.
// ParentVisible is the number of parent entries that were visible when the
// scope was opened; later parent entries are invisible from inside it.
type Scope struct {
	Kind          ScopeKind
	Parent        ScopeID
	ParentVisible int
	Owner         ast.NodeID
	Entries       []Entry
	nameIndex     map[string][]int
}

// lookup returns the nearest entry named name among the first visible entries.
func (s *Scope) lookup(name string, visible int) (Entry, bool) {
	positions := s.nameIndex[name]
	for i := len(positions) - 1; i >= 0; i-- {
		if positions[i] < visible {
			return s.Entries[positions[i]], true
		}
	}
	return Entry{}, false
}

func (s *Scope) add(e Entry) {
	if s.nameIndex == nil {
		s.nameIndex = make(map[string][]int)
	}
	s.nameIndex[e.Name] = append(s.nameIndex[e.Name], len(s.Entries))
	s.Entries = append(s.Entries, e)
}
