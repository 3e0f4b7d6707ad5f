package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree returns the tree of "x = y  +z" as
//
//	Assign
//	  Name x
//	  Binary
//	    Name y
//	    Op +
//	    Name z
func buildTree() *Tree {
	t := NewTree([]byte("x = y  +z"))
	root := t.Add(NoNode, Node{Kind: "Assign", Start: 0, Length: 9})
	t.Add(root, Node{Kind: "Name", Start: 0, Length: 1, Name: "x", Namespace: NamespaceValue})
	bin := t.Add(root, Node{Kind: "Binary", Start: 4, Length: 5})
	t.Add(bin, Node{Kind: "Name", Start: 4, Length: 1, Name: "y", Namespace: NamespaceValue})
	t.Add(bin, Node{Kind: "Op", Start: 7, Length: 1})
	t.Add(bin, Node{Kind: "Name", Start: 8, Length: 1, Name: "z", Namespace: NamespaceValue})
	return t
}

func TestTreeStructure(t *testing.T) {
	tree := buildTree()
	require.Equal(t, NodeID(0), tree.Root)
	assert.Equal(t, 6, tree.Len())
	assert.Equal(t, NoNode, tree.Parent(tree.Root))
	assert.Equal(t, NodeID(2), tree.Parent(3))
	assert.Equal(t, NoNode, tree.Parent(NoNode))

	assert.Equal(t, NodeID(1), tree.Child(0, "Name"))
	assert.Equal(t, NoNode, tree.Child(0, "Op"))
	assert.Equal(t, []NodeID{3, 5}, tree.ChildrenOf(2, "Name"))
	assert.Equal(t, NodeID(0), tree.Ancestor(4, "Assign"))
	assert.Equal(t, NoNode, tree.Ancestor(0, "Assign"))
}

func TestTreeText(t *testing.T) {
	tree := buildTree()
	assert.Equal(t, "y  +z", tree.Text(2))
	assert.Equal(t, "y+z", tree.CompactText(2))

	tree.Nodes[4].Length = 100
	assert.Equal(t, "", tree.Text(4))
}

func TestWalkOrder(t *testing.T) {
	tree := buildTree()
	var events []string
	tree.Walk(tree.Root, func(id NodeID) bool {
		events = append(events, "+"+tree.Node(id).Kind)
		return tree.Node(id).Kind != "Binary"
	}, func(id NodeID) {
		events = append(events, "-"+tree.Node(id).Kind)
	})
	assert.Equal(t, []string{"+Assign", "+Name", "-Name", "+Binary", "-Binary", "-Assign"}, events)
}

func TestNames(t *testing.T) {
	tree := buildTree()
	assert.Equal(t, []NodeID{1, 3, 5}, tree.Names(tree.Root))
	assert.Equal(t, []NodeID{3, 5}, tree.Names(2))
}

func TestNameAt(t *testing.T) {
	tree := buildTree()
	cases := []struct {
		offset int
		want   NodeID
	}{
		{0, 1},
		{1, 1},
		{2, NoNode},
		{4, 3},
		{6, NoNode},
		{8, 5},
		{9, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, tree.NameAt(c.offset), "offset %d", c.offset)
	}
}

func TestNamespaceString(t *testing.T) {
	assert.Equal(t, "value", NamespaceValue.String())
	assert.Equal(t, "method", NamespaceMethod.String())
	assert.Equal(t, "type", NamespaceType.String())
	assert.Equal(t, "none", NamespaceNone.String())
}
