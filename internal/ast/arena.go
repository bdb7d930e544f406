package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is an append-only store addressed by 1-based handles of type ID;
// the zero ID never names an element. The symbol index uses it for scopes.
type Arena[T any, ID ~uint32] struct {
	data []T
}

func NewArena[T any, ID ~uint32](capHint uint) *Arena[T, ID] {
	return &Arena[T, ID]{data: make([]T, 0, capHint)}
}

// Allocate appends value and returns its handle.
func (a *Arena[T, ID]) Allocate(value T) ID {
	a.data = append(a.data, value)
	return a.Len()
}

// Get returns nil for the zero handle and for handles never allocated.
func (a *Arena[T, ID]) Get(id ID) *T {
	if id == 0 || int(id) > len(a.data) {
		return nil
	}
	return &a.data[id-1]
}

// Len: число выделенных элементов, оно же последний handle.
func (a *Arena[T, ID]) Len() ID {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	return ID(n)
}
