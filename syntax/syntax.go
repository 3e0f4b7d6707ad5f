// Package syntax holds language-neutral syntax trees as an arena of nodes
// addressed by NodeID. Parsers for concrete languages convert their own
// trees into a Tree so that the binding resolvers need no knowledge of
// the source language.
package syntax

import "strings"

// NodeID addresses a node within its Tree.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// Namespace separates names that may be spelled alike but never refer to
// each other, such as a variable and a method both called size.
type Namespace uint8

const (
	NamespaceNone Namespace = iota
	NamespaceValue
	NamespaceMethod
	NamespaceType
)

func (ns Namespace) String() string {
	switch ns {
	case NamespaceValue:
		return "value"
	case NamespaceMethod:
		return "method"
	case NamespaceType:
		return "type"
	}
	return "none"
}

// SymbolID identifies a resolved symbol within one tree.
type SymbolID int32

// NoSymbol marks a name whose symbol is unknown.
const NoSymbol SymbolID = 0

// Node is one syntax tree node. Name nodes have a non-empty Name and a
// Namespace other than NamespaceNone. Declaration constructs list the
// name nodes they declare in Declares.
type Node struct {
	Kind      string
	Start     int
	Length    int
	Parent    NodeID
	Children  []NodeID
	Name      string
	Namespace Namespace
	Declares  []NodeID
	Symbol    SymbolID
}

// End returns the offset just past the node.
func (n *Node) End() int {
	return n.Start + n.Length
}

// IsName reports whether n is a simple name.
func (n *Node) IsName() bool {
	return n.Namespace != NamespaceNone
}

// Tree is an arena of nodes over a source text.
type Tree struct {
	Source []byte
	Nodes  []Node
	Root   NodeID

	// Incomplete is set when the input ended inside a construct.
	Incomplete bool
	// Errors holds the syntax errors reported by the parser.
	Errors []string
	// Resolved is set when names carry symbol identities.
	Resolved bool
}

func NewTree(source []byte) *Tree {
	return &Tree{Source: source, Root: NoNode}
}

// Add appends n as the last child of parent and returns its id. A parent
// of NoNode makes n the root.
func (t *Tree) Add(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.Nodes))
	n.Parent = parent
	t.Nodes = append(t.Nodes, n)
	if parent == NoNode {
		t.Root = id
	} else {
		t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	}
	return id
}

// Node returns the node with the given id. The pointer is invalidated by
// the next call to Add.
func (t *Tree) Node(id NodeID) *Node {
	return &t.Nodes[id]
}

func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Parent returns the parent of id, or NoNode.
func (t *Tree) Parent(id NodeID) NodeID {
	if id == NoNode {
		return NoNode
	}
	return t.Nodes[id].Parent
}

// Text returns the source text covered by id.
func (t *Tree) Text(id NodeID) string {
	n := &t.Nodes[id]
	if n.Start < 0 || n.End() > len(t.Source) {
		return ""
	}
	return string(t.Source[n.Start:n.End()])
}

// CompactText returns the text of id with all whitespace removed, which
// gives a canonical spelling for types such as Map<K, V>.
func (t *Tree) CompactText(id NodeID) string {
	return strings.Join(strings.Fields(t.Text(id)), "")
}

// Child returns the first child of id with the given kind, or NoNode.
func (t *Tree) Child(id NodeID, kind string) NodeID {
	for _, c := range t.Nodes[id].Children {
		if t.Nodes[c].Kind == kind {
			return c
		}
	}
	return NoNode
}

// ChildrenOf returns the children of id with the given kind.
func (t *Tree) ChildrenOf(id NodeID, kind string) []NodeID {
	var out []NodeID
	for _, c := range t.Nodes[id].Children {
		if t.Nodes[c].Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Ancestor returns the nearest proper ancestor of id whose kind is one of
// kinds, or NoNode.
func (t *Tree) Ancestor(id NodeID, kinds ...string) NodeID {
	for cur := t.Parent(id); cur != NoNode; cur = t.Nodes[cur].Parent {
		for _, k := range kinds {
			if t.Nodes[cur].Kind == k {
				return cur
			}
		}
	}
	return NoNode
}

// Walk visits the subtree rooted at id in depth-first order. enter is
// called before the children of a node and leave after them; if enter
// returns false the children are skipped but leave is still called.
// Either function may be nil.
func (t *Tree) Walk(id NodeID, enter func(NodeID) bool, leave func(NodeID)) {
	if id == NoNode {
		return
	}
	if enter == nil || enter(id) {
		for _, c := range t.Nodes[id].Children {
			t.Walk(c, enter, leave)
		}
	}
	if leave != nil {
		leave(id)
	}
}

// NameAt returns the name node whose text contains offset, or NoNode. An
// offset just past the end of a name still selects it, which matches an
// editor cursor placed after the last character.
func (t *Tree) NameAt(offset int) NodeID {
	found := NoNode
	t.Walk(t.Root, func(id NodeID) bool {
		n := &t.Nodes[id]
		if offset < n.Start || offset > n.End() {
			return false
		}
		if n.IsName() {
			found = id
		}
		return true
	}, nil)
	return found
}

// Names returns every name node under id in source order.
func (t *Tree) Names(id NodeID) []NodeID {
	var out []NodeID
	t.Walk(id, func(n NodeID) bool {
		if t.Nodes[n].IsName() {
			out = append(out, n)
		}
		return true
	}, nil)
	return out
}
