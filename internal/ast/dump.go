package ast

import (
	"bufio"
	"io"
	"strings"
)

// Dump writes an indented rendering of the subtree, one node per line,
// two spaces per level:
//
//	(FunctionDecl add) : int
//	  (TypeSpecifier int)
func Dump(w io.Writer, t *Tree, root NodeID) error {
	bw := bufio.NewWriter(w)
	dumpNode(bw, t, root, 0)
	return bw.Flush()
}

// DumpString is Dump into a string.
func DumpString(t *Tree, root NodeID) string {
	var sb strings.Builder
	_ = Dump(&sb, t, root)
	return sb.String()
}

func dumpNode(w *bufio.Writer, t *Tree, id NodeID, indent int) {
	n := t.Get(id)
	if n == nil {
		return
	}
	w.WriteString(strings.Repeat(" ", indent))
	w.WriteString(NodeLabel(n))
	w.WriteByte('\n')
	for _, c := range n.Children {
		dumpNode(w, t, c, indent+2)
	}
}

// NodeLabel renders a single node: kind, payload and, once known, its result type.
func NodeLabel(n *Node) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(n.Kind.String())
	switch {
	case n.Name != "":
		sb.WriteByte(' ')
		sb.WriteString(n.Name)
	case n.Value != "":
		sb.WriteByte(' ')
		sb.WriteString(n.Value)
	}
	sb.WriteByte(')')
	if n.Type != nil {
		sb.WriteString(" : ")
		sb.WriteString(n.Type.Name)
	}
	return sb.String()
}
