package binding

import (
	"maps"

	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
)

// Approximate binds names by walking a chain of scope frames, without
// any symbol information. Every node starts with a copy of its parent's
// frame. A declaration adds its names to its own frame and to its
// parent's frame, so later siblings of the declaration see it while
// earlier siblings do not. This hoisting approximates block scoping: a
// field declared after a method is invisible inside that method, and a
// name shadowed in an inner scope correctly binds to the inner
// declaration. A name that finds no declaration is ignored.
//
// Names are keyed by namespace and spelling, so a variable and a method
// that share a name never merge.
type Approximate struct{}

type frameKey struct {
	ns   syntax.Namespace
	name string
}

type frame map[frameKey]*Binding

type approximatePass struct {
	tree     *syntax.Tree
	ix       *token.Index
	frames   []frame
	owned    []bool
	bindings []*Binding
	err      error
}

func (Approximate) Resolve(t *syntax.Tree, ix *token.Index) ([]Binding, error) {
	p := &approximatePass{
		tree:   t,
		ix:     ix,
		frames: make([]frame, t.Len()),
		owned:  make([]bool, t.Len()),
	}
	t.Walk(t.Root, p.enter, p.leave)
	if p.err != nil {
		return nil, p.err
	}
	return finish(p.bindings), nil
}

func (a Approximate) ResolveSnippet(t *syntax.Tree, ix *token.Index) ([]Binding, error) {
	return a.Resolve(t, ix)
}

// own makes the frame of id private before it is modified. Frames are
// shared with the parent until the first write.
func (p *approximatePass) own(id syntax.NodeID) frame {
	if !p.owned[id] {
		p.frames[id] = maps.Clone(p.frames[id])
		if p.frames[id] == nil {
			p.frames[id] = frame{}
		}
		p.owned[id] = true
	}
	return p.frames[id]
}

func (p *approximatePass) enter(id syntax.NodeID) bool {
	if p.err != nil {
		return false
	}
	t := p.tree
	n := t.Node(id)
	parent := n.Parent
	if parent != syntax.NoNode {
		p.frames[id] = p.frames[parent]
	}

	for _, name := range n.Declares {
		decl := t.Node(name)
		key := frameKey{ns: decl.Namespace, name: decl.Name}
		b := &Binding{ID: len(p.bindings), Decl: name}
		p.bindings = append(p.bindings, b)
		p.own(id)[key] = b
		if parent != syntax.NoNode {
			p.own(parent)[key] = b
		}
	}

	if n.IsName() {
		if b, ok := p.frames[id][frameKey{ns: n.Namespace, name: n.Name}]; ok {
			index, err := lookup(t, p.ix, id)
			if err != nil {
				p.err = err
				return false
			}
			b.add(id, index)
		}
	}
	return true
}

func (p *approximatePass) leave(id syntax.NodeID) {
	p.frames[id] = nil
	p.owned[id] = false
}
