package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"nut/internal/ast"
	"nut/internal/source"
)

type ASTNodeOutput struct {
	Kind     string          `json:"kind"`
	Name     string          `json:"name,omitempty"`
	Value    string          `json:"value,omitempty"`
	Type     string          `json:"type,omitempty"`
	Decl     string          `json:"decl,omitempty"`
	Line     uint32          `json:"line"`
	Col      uint32          `json:"col"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty draws the tree with box-drawing prefixes; each node label
// is followed by its position and, after analysis, its declarator kind.
func FormatASTPretty(w io.Writer, tree *ast.Tree, root ast.NodeID, fs *source.FileSet) error {
	n := tree.Get(root)
	if n == nil {
		return fmt.Errorf("node %d not found", root)
	}
	var sb strings.Builder
	sb.WriteString(treeLabel(n, fs))
	sb.WriteByte('\n')
	writeChildren(&sb, tree, n, fs, "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeChildren(sb *strings.Builder, tree *ast.Tree, n *ast.Node, fs *source.FileSet, prefix string) {
	for i, id := range n.Children {
		child := tree.Get(id)
		if child == nil {
			continue
		}
		last := i == len(n.Children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		sb.WriteString(prefix)
		sb.WriteString(branch)
		sb.WriteString(treeLabel(child, fs))
		sb.WriteByte('\n')
		writeChildren(sb, tree, child, fs, prefix+next)
	}
}

func treeLabel(n *ast.Node, fs *source.FileSet) string {
	label := ast.NodeLabel(n) + " [" + formatSpan(n.Span, fs) + "]"
	if n.Decl != nil {
		label += " <" + n.Decl.DeclKind().String() + ">"
	}
	return label
}

// FormatASTJSON writes the subtree as nested JSON objects.
func FormatASTJSON(w io.Writer, tree *ast.Tree, root ast.NodeID, fs *source.FileSet) error {
	if tree.Get(root) == nil {
		return fmt.Errorf("node %d not found", root)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildASTNode(tree, root, fs))
}

func buildASTNode(tree *ast.Tree, id ast.NodeID, fs *source.FileSet) ASTNodeOutput {
	n := tree.Get(id)
	pos, _ := fs.Resolve(n.Span)
	out := ASTNodeOutput{
		Kind:  n.Kind.String(),
		Name:  n.Name,
		Value: n.Value,
		Line:  pos.Line,
		Col:   pos.Col,
	}
	if n.Type != nil {
		out.Type = n.Type.Name
	}
	if n.Decl != nil {
		out.Decl = n.Decl.DeclKind().String()
	}
	for _, c := range n.Children {
		if tree.Get(c) != nil {
			out.Children = append(out.Children, buildASTNode(tree, c, fs))
		}
	}
	return out
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs != nil {
		start, _ := fs.Resolve(span)
		return fmt.Sprintf("%d:%d", start.Line, start.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
