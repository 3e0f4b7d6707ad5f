package binding

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/syntax"
)

// Kind selects which names an Extractor groups into bindings.
type Kind string

const (
	// Variables binds fields, locals and parameters through a Resolver.
	Variables Kind = "variables"
	// MethodDeclarations yields one binding per declared method name.
	MethodDeclarations Kind = "method-declarations"
	// MethodInvocations yields one binding per invoked method name.
	MethodInvocations Kind = "method-invocations"
	// Methods groups declarations and invocations by method name.
	Methods Kind = "methods"
	// Types groups type uses in declarations, casts, instantiations and
	// class literals by the spelling of the type.
	Types Kind = "types"
	// TypeDeclarations groups declared type names by spelling.
	TypeDeclarations Kind = "type-declarations"
)

var ErrUnknownKind = errors.Base("unknown binding kind")

var kinds = []Kind{Variables, MethodDeclarations, MethodInvocations, Methods, Types, TypeDeclarations}

func Kinds() []Kind {
	return append([]Kind(nil), kinds...)
}

func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.WithDetails(ErrUnknownKind, "kind", s)
}

// grouped reports whether sites of kind are merged by key rather than
// forming a binding each.
func (k Kind) grouped() bool {
	return k == Methods || k == Types || k == TypeDeclarations
}

// Site is one occurrence found by a Language for a site-based Kind. Node
// is the node whose start offset locates the bound token.
type Site struct {
	Key  string
	Node syntax.NodeID
}

// Language adapts a parser and its language specific knowledge to the
// language neutral resolvers.
type Language interface {
	// Parse parses a complete source file. Symbols are resolved when the
	// language supports it.
	Parse(src []byte) *syntax.Tree
	// ParseSnippet parses a fragment of unknown granularity.
	ParseSnippet(src []byte) *syntax.Tree
	// Sites enumerates the occurrences of a site-based Kind.
	Sites(t *syntax.Tree, kind Kind, includeOverrides bool) []Site
	// Features describes the declaration or use site of b.
	Features(t *syntax.Tree, kind Kind, b Binding) []string
}
