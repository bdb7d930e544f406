// Package types holds the declarator model: what a declared name denotes
// (a type, a variable or a function) and the fixed table of builtin types.
//
// Typing is nominal. Two types are compatible only when their names are
// equal; there are no implicit conversions and no width rules.
package types
