package binding

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
)

// Resolver partitions the names of a tree into variable bindings. Token
// indices come from ix, which must be built from a stream of the same
// source.
type Resolver interface {
	Resolve(t *syntax.Tree, ix *token.Index) ([]Binding, error)
	// ResolveSnippet resolves a tree parsed from a fragment.
	ResolveSnippet(t *syntax.Tree, ix *token.Index) ([]Binding, error)
}

type Strategy string

const (
	StrategyExact       Strategy = "exact"
	StrategyApproximate Strategy = "approximate"
)

var ErrUnknownStrategy = errors.Base("unknown resolution strategy")

func NewResolver(s Strategy) (Resolver, error) {
	switch s {
	case StrategyExact:
		return Exact{}, nil
	case StrategyApproximate, "":
		return Approximate{}, nil
	}
	return nil, errors.WithDetails(ErrUnknownStrategy, "strategy", string(s))
}

// lookup maps a node to the index of the token it starts at.
func lookup(t *syntax.Tree, ix *token.Index, id syntax.NodeID) (int, error) {
	n := t.Node(id)
	i, err := ix.Lookup(n.Start)
	if err != nil {
		return 0, errors.WithDetails(err, "name", n.Name, "kind", n.Kind)
	}
	return i, nil
}
