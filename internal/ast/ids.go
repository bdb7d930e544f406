package ast

// NodeID is a stable 1-based handle into a Tree.
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

func (id NodeID) IsValid() bool { return id != NoNodeID }
