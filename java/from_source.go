package java

import (
	"bytes"
	"io"

	"github.com/dhamidi/codemining/java/parser"
	"github.com/dhamidi/codemining/syntax"
)

// FromSource parses a compilation unit and converts it into a syntax
// tree with resolved symbols.
func FromSource(src []byte, opts ...parser.Option) *syntax.Tree {
	p := parser.ParseCompilationUnit(bytes.NewReader(src), opts...)
	t := treeFromParser(src, p)
	Resolve(t)
	return t
}

var snippetEntries = []struct {
	name  string
	parse func(io.Reader, ...parser.Option) *parser.Parser
}{
	{"compilation unit", parser.ParseCompilationUnit},
	{"class body", parser.ParseClassBody},
	{"statements", parser.ParseStatements},
	{"expression", parser.ParseExpression},
}

// FromSnippet parses source that may be a whole file, class members,
// statements or a single expression. Each start symbol is tried in turn
// and the first clean parse wins; when none is clean the parse with the
// fewest errors is used. Symbols are not resolved.
func FromSnippet(src []byte, opts ...parser.Option) *syntax.Tree {
	var best *parser.Parser
	for _, entry := range snippetEntries {
		p := entry.parse(bytes.NewReader(src), opts...)
		p.Tree()
		if len(p.Errors()) == 0 && !p.Incomplete() {
			log.Debugf("snippet parsed as %s", entry.name)
			return treeFromParser(src, p)
		}
		if best == nil || len(p.Errors()) < len(best.Errors()) {
			best = p
		}
	}
	return treeFromParser(src, best)
}

func treeFromParser(src []byte, p *parser.Parser) *syntax.Tree {
	t := syntax.NewTree(src)
	c := converter{tree: t}
	c.add(syntax.NoNode, nil, p.Tree())
	t.Incomplete = p.Incomplete()
	for _, err := range p.Errors() {
		t.Errors = append(t.Errors, err.Error())
	}
	return t
}

type converter struct {
	tree *syntax.Tree
}

func (c *converter) add(parent syntax.NodeID, up, n *parser.Node) {
	id := c.tree.Add(parent, syntax.Node{
		Kind:   n.Kind.String(),
		Start:  n.Span.Start.Offset,
		Length: n.Span.Len(),
	})
	if n.Kind == parser.KindName || n.Kind == parser.KindIdentifier {
		if ns := namespaceOf(up, n); ns != syntax.NamespaceNone {
			node := c.tree.Node(id)
			node.Name = n.TokenLiteral()
			node.Namespace = ns
		}
	}
	for _, child := range n.Children {
		c.add(id, n, child)
	}
	c.tree.Node(id).Declares = c.declared(id, n.Kind)
}

// namespaceOf classifies a simple name by its syntactic position. Names
// in package and import declarations, annotations and labels are not
// bindable and get NamespaceNone.
func namespaceOf(parent, n *parser.Node) syntax.Namespace {
	if n.Kind == parser.KindName {
		return syntax.NamespaceValue
	}
	if parent == nil {
		return syntax.NamespaceNone
	}
	switch parent.Kind {
	case parser.KindCallExpr, parser.KindMethodRef, parser.KindMethodDecl:
		return syntax.NamespaceMethod
	case parser.KindFieldAccess, parser.KindVariableDeclarator, parser.KindParameter,
		parser.KindEnumConstant:
		return syntax.NamespaceValue
	case parser.KindType, parser.KindTypeParameter, parser.KindConstructorDecl,
		parser.KindClassDecl, parser.KindInterfaceDecl, parser.KindEnumDecl,
		parser.KindRecordDecl, parser.KindAnnotationDecl:
		return syntax.NamespaceType
	}
	return syntax.NamespaceNone
}

// declared lists the names a declaration construct introduces. Only
// variables, parameters and methods declare bindable names.
func (c *converter) declared(id syntax.NodeID, kind parser.NodeKind) []syntax.NodeID {
	t := c.tree
	ident := parser.KindIdentifier.String()
	var names []syntax.NodeID
	switch kind {
	case parser.KindFieldDecl, parser.KindLocalVarDecl:
		for _, d := range t.ChildrenOf(id, parser.KindVariableDeclarator.String()) {
			if name := t.Child(d, ident); name != syntax.NoNode {
				names = append(names, name)
			}
		}
	case parser.KindParameter, parser.KindMethodDecl:
		if name := t.Child(id, ident); name != syntax.NoNode {
			names = append(names, name)
		}
	}
	return names
}
