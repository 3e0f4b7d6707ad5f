package binding

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
)

// Exact binds names by the symbol the parser resolved for them. Only
// symbols introduced by a declaration in the tree form bindings; names
// without a symbol, or whose symbol is declared elsewhere, are dropped.
// Every bound name belongs to exactly one binding.
type Exact struct{}

func (Exact) Resolve(t *syntax.Tree, ix *token.Index) ([]Binding, error) {
	switch {
	case t.Incomplete:
		return nil, errors.WithDetails(ErrUnsupported, "reason", "incomplete source")
	case len(t.Errors) > 0:
		return nil, errors.WithDetails(ErrUnsupported, "reason", "syntax errors", "errors", t.Errors)
	case !t.Resolved:
		return nil, errors.WithDetails(ErrUnsupported, "reason", "tree carries no symbols")
	}

	bySymbol := map[syntax.SymbolID]*Binding{}
	var bindings []*Binding
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		for _, name := range t.Node(id).Declares {
			sym := t.Node(name).Symbol
			if sym == syntax.NoSymbol || bySymbol[sym] != nil {
				continue
			}
			b := &Binding{ID: len(bindings), Decl: name}
			bySymbol[sym] = b
			bindings = append(bindings, b)
		}
		return true
	}, nil)

	var err error
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		if err != nil {
			return false
		}
		n := t.Node(id)
		if !n.IsName() || n.Symbol == syntax.NoSymbol {
			return true
		}
		b, ok := bySymbol[n.Symbol]
		if !ok {
			return true
		}
		var index int
		index, err = lookup(t, ix, id)
		if err == nil {
			b.add(id, index)
		}
		return err == nil
	}, nil)
	if err != nil {
		return nil, err
	}
	return finish(bindings), nil
}

// ResolveSnippet always fails: fragments are never resolved precisely
// enough to bind by symbol.
func (Exact) ResolveSnippet(*syntax.Tree, *token.Index) ([]Binding, error) {
	return nil, errors.WithDetails(ErrUnsupported, "reason", "exact resolution of snippets")
}
