// Package ast stores the syntax tree in an arena addressed by NodeID.
//
// Children slices are the only ownership edges. Parent, Prev and Next are
// derived links, valid only after link fixup (sema.LinkPass) and never used
// to express ownership. Declarators attached by analysis are owned by the
// node that declares them and are released together with it by Tree.Free.
package ast
