package sema

import "nut/internal/ast"

// LinkPass derives Parent, Prev and Next from the children lists.
type LinkPass struct{}

func (LinkPass) Name() string { return "link" }

func (LinkPass) Run(c *Context) error {
	root := c.Tree.Get(c.Root)
	if root == nil {
		return c.internal(c.Root, "missing root")
	}
	root.Parent, root.Prev, root.Next = ast.NoNodeID, ast.NoNodeID, ast.NoNodeID
	return link(c, c.Root)
}

func link(c *Context, id ast.NodeID) error {
	n, err := c.node(id)
	if err != nil {
		return err
	}
	for i, cid := range n.Children {
		child, err := c.node(cid)
		if err != nil {
			return err
		}
		child.Parent = id
		child.Prev = n.Child(i - 1)
		child.Next = n.Child(i + 1)
		if err := link(c, cid); err != nil {
			return err
		}
	}
	return nil
}
