package java

import (
	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/syntax"
)

// Language plugs Java into the binding extractors.
type Language struct{}

var _ binding.Language = Language{}

func (Language) Parse(src []byte) *syntax.Tree {
	return FromSource(src)
}

func (Language) ParseSnippet(src []byte) *syntax.Tree {
	return FromSnippet(src)
}

func (Language) Features(t *syntax.Tree, kind binding.Kind, b binding.Binding) []string {
	return features(t, kind, b)
}

// typeUseKinds hold a type whose spelling forms a type binding site.
var typeUseKinds = map[string]bool{}

func init() {
	for _, k := range []string{kindCastExpr, kindNewExpr, kindFieldDecl, kindParameter, kindClassLit, kindLocalVar} {
		typeUseKinds[k] = true
	}
}

func (Language) Sites(t *syntax.Tree, kind binding.Kind, includeOverrides bool) []binding.Site {
	var sites []binding.Site
	add := func(key string, n syntax.NodeID) {
		sites = append(sites, binding.Site{Key: key, Node: n})
	}
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		n := t.Node(id)
		switch kind {
		case binding.MethodDeclarations:
			if name := methodDeclName(t, id); name != syntax.NoNode && (includeOverrides || !isOverride(t, id)) {
				add(t.Node(name).Name, name)
			}
		case binding.MethodInvocations:
			if name := invokedName(t, id); name != syntax.NoNode {
				add(t.Node(name).Name, name)
			}
		case binding.Methods:
			if name := methodDeclName(t, id); name != syntax.NoNode {
				add(t.Node(name).Name, name)
			}
			if name := invokedName(t, id); name != syntax.NoNode {
				add(t.Node(name).Name, name)
			}
		case binding.TypeDeclarations:
			if name := typeDeclName(t, id, false); name != syntax.NoNode {
				add(t.Node(name).Name, name)
			}
		case binding.Types:
			if name := typeDeclName(t, id, true); name != syntax.NoNode {
				add(t.Node(name).Name, name)
			}
			if typeUseKinds[n.Kind] {
				if typ := typeOf(t, id); typ != syntax.NoNode {
					add(t.CompactText(typ), typ)
				}
				// Parameter types are not searched for nested type uses.
				return n.Kind != kindParameter
			}
		}
		return true
	}, nil)
	return sites
}

// methodDeclName returns the name of a method declaration. Constructors
// have their own node kind and never match.
func methodDeclName(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	if t.Node(id).Kind != kindMethodDecl {
		return syntax.NoNode
	}
	return t.Child(id, kindIdentifier)
}

// invokedName returns the method name of a call expression.
func invokedName(t *syntax.Tree, id syntax.NodeID) syntax.NodeID {
	if t.Node(id).Kind != kindCallExpr {
		return syntax.NoNode
	}
	for _, c := range t.Node(id).Children {
		if n := t.Node(c); n.Kind == kindIdentifier && n.Namespace == syntax.NamespaceMethod {
			return c
		}
	}
	return syntax.NoNode
}

// typeDeclName returns the name of a class or interface declaration, and
// of an enum declaration when withEnums is set.
func typeDeclName(t *syntax.Tree, id syntax.NodeID, withEnums bool) syntax.NodeID {
	switch t.Node(id).Kind {
	case kindClassDecl, kindIfaceDecl:
	case kindEnumDecl:
		if !withEnums {
			return syntax.NoNode
		}
	default:
		return syntax.NoNode
	}
	return t.Child(id, kindIdentifier)
}

// isOverride reports whether a declaration carries @Override.
func isOverride(t *syntax.Tree, decl syntax.NodeID) bool {
	mods := t.Child(decl, kindModifiers)
	if mods == syntax.NoNode {
		return false
	}
	for _, a := range t.ChildrenOf(mods, kindAnnotation) {
		name := t.Child(a, kindQualified)
		if name == syntax.NoNode {
			continue
		}
		switch t.CompactText(name) {
		case "Override", "java.lang.Override":
			return true
		}
	}
	return false
}
