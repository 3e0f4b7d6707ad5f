package java

import (
	"github.com/dhamidi/codemining/java/parser"
	"github.com/dhamidi/codemining/syntax"
)

// Resolve assigns a symbol to every name that lexically refers to a
// variable, parameter, field or method declared in the same tree, and
// marks the tree as resolved.
//
// Lookup follows Java's lexical rules: locals are visible from their
// declaration to the end of the enclosing block, parameters throughout
// their method, lambda or clause, and fields and methods throughout
// their class body including before their declaration. Inherited
// members and members of other files are not known and stay unresolved.
// Methods are matched by name and argument count.
func Resolve(t *syntax.Tree) {
	if t.Root == syntax.NoNode {
		t.Resolved = true
		return
	}
	r := &resolver{tree: t}
	r.push(false)
	r.visit(t.Root)
	t.Resolved = true
}

// scopeKinds open a new lexical scope for value names.
var scopeKinds = map[string]bool{
	parser.KindBlock.String():           true,
	parser.KindMethodDecl.String():      true,
	parser.KindConstructorDecl.String(): true,
	parser.KindInitializer.String():     true,
	parser.KindForStmt.String():         true,
	parser.KindEnhancedForStmt.String(): true,
	parser.KindCatchClause.String():     true,
	parser.KindLambdaExpr.String():      true,
	parser.KindTryStmt.String():         true,
	parser.KindSwitchStmt.String():      true,
	parser.KindSwitchExpr.String():      true,
}

type method struct {
	symbol syntax.SymbolID
	arity  int
}

type scope struct {
	values  map[string]syntax.SymbolID
	methods map[string][]method
	// members marks a class body scope, the target of this.x.
	members bool
	// owner names the class whose body this is, matched by Owner.this.x.
	owner string
}

type resolver struct {
	tree   *syntax.Tree
	scopes []*scope
	next   syntax.SymbolID
}

func (r *resolver) push(members bool) *scope {
	s := &scope{values: map[string]syntax.SymbolID{}, members: members}
	r.scopes = append(r.scopes, s)
	return s
}

func (r *resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) top() *scope {
	return r.scopes[len(r.scopes)-1]
}

// declare gives name a fresh symbol in s unless it already has one.
func (r *resolver) declare(s *scope, name syntax.NodeID) syntax.SymbolID {
	n := r.tree.Node(name)
	if n.Symbol == syntax.NoSymbol {
		r.next++
		n.Symbol = r.next
	}
	s.values[n.Name] = n.Symbol
	return n.Symbol
}

func (r *resolver) lookupValue(name string) syntax.SymbolID {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if sym, ok := r.scopes[i].values[name]; ok {
			return sym
		}
	}
	return syntax.NoSymbol
}

// lookupMethod finds the nearest class declaring name.
func (r *resolver) lookupMethod(name string, arity int) syntax.SymbolID {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if candidates := r.scopes[i].methods[name]; len(candidates) > 0 {
			return pickMethod(candidates, arity)
		}
	}
	return syntax.NoSymbol
}

// pickMethod chooses among the overloads of one class. The one with a
// matching arity wins; arity < 0 accepts a unique name.
func pickMethod(candidates []method, arity int) syntax.SymbolID {
	if arity < 0 {
		if len(candidates) == 1 {
			return candidates[0].symbol
		}
		return syntax.NoSymbol
	}
	for _, m := range candidates {
		if m.arity == arity {
			return m.symbol
		}
	}
	return syntax.NoSymbol
}

// memberScope returns the innermost class body scope, or with a non-empty
// owner the innermost one of the enclosing class named owner.
func (r *resolver) memberScope(owner string) *scope {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if s := r.scopes[i]; s.members && (owner == "" || s.owner == owner) {
			return s
		}
	}
	return nil
}

// receiverScope returns the class body scope denoted by a this or
// Owner.this receiver, or nil for any other receiver.
func (r *resolver) receiverScope(recv syntax.NodeID) *scope {
	t := r.tree
	n := t.Node(recv)
	switch {
	case n.Kind == kindThis:
		return r.memberScope("")
	case n.Kind == kindFieldAccess && len(n.Children) == 2 && t.Node(n.Children[1]).Kind == kindThis:
		if q := t.Node(n.Children[0]); q.Kind == kindName {
			return r.memberScope(q.Name)
		}
	}
	return nil
}

func (r *resolver) visit(id syntax.NodeID) {
	t := r.tree
	n := t.Node(id)
	kind := n.Kind

	switch {
	case typeDeclKinds[kind]:
		s := r.push(false)
		if kind == kindRecordDecl {
			for _, p := range t.ChildrenOf(id, kindParameter) {
				if name := t.Child(p, kindIdentifier); name != syntax.NoNode {
					r.declare(s, name)
				}
			}
		}
		r.children(id)
		r.pop()
		return
	case kind == kindClassBody:
		r.enterClassBody(id)
		r.children(id)
		r.pop()
		return
	case scopeKinds[kind]:
		r.push(false)
		r.children(id)
		r.pop()
		return
	case kind == kindParameter:
		// Parameters are visible to their siblings, for example the
		// body of a lambda or catch clause.
		if name := t.Child(id, kindIdentifier); name != syntax.NoNode {
			r.declare(r.top(), name)
		}
	case kind == kindDeclarator && t.Node(t.Parent(id)).Kind == kindLocalVar:
		if name := t.Child(id, kindIdentifier); name != syntax.NoNode {
			r.declare(r.top(), name)
		}
	case kind == kindName:
		n.Symbol = r.lookupValue(n.Name)
		return
	case kind == kindFieldAccess:
		r.resolveFieldAccess(id)
		return
	case kind == kindCallExpr:
		r.resolveCall(id)
		return
	case kind == kindMethodRef:
		r.resolveMethodRef(id)
		return
	}
	r.children(id)
}

func (r *resolver) children(id syntax.NodeID) {
	for _, c := range r.tree.Node(id).Children {
		r.visit(c)
	}
}

// enterClassBody opens a member scope holding every field, enum constant
// and method of the body.
func (r *resolver) enterClassBody(id syntax.NodeID) {
	t := r.tree
	s := r.push(true)
	s.methods = map[string][]method{}
	if decl := t.Parent(id); decl != syntax.NoNode && typeDeclKinds[t.Node(decl).Kind] {
		if name := t.Child(decl, kindIdentifier); name != syntax.NoNode {
			s.owner = t.Node(name).Name
		}
	}
	for _, member := range t.Node(id).Children {
		switch t.Node(member).Kind {
		case kindFieldDecl:
			for _, name := range t.Node(member).Declares {
				r.declare(s, name)
			}
		case kindEnumConst:
			if name := t.Child(member, kindIdentifier); name != syntax.NoNode {
				r.declare(s, name)
			}
		case kindMethodDecl:
			name := t.Child(member, kindIdentifier)
			if name == syntax.NoNode {
				continue
			}
			r.next++
			t.Node(name).Symbol = r.next
			text := t.Node(name).Name
			s.methods[text] = append(s.methods[text], method{
				symbol: r.next,
				arity:  len(t.ChildrenOf(member, kindParameter)),
			})
		}
	}
}

func (r *resolver) resolveFieldAccess(id syntax.NodeID) {
	t := r.tree
	children := t.Node(id).Children
	if len(children) < 2 {
		r.children(id)
		return
	}
	r.visit(children[0])
	member := t.Node(children[len(children)-1])
	if !member.IsName() {
		return
	}
	if s := r.receiverScope(children[0]); s != nil {
		member.Symbol = s.values[member.Name]
	}
}

// resolveCall handles m(...), this.m(...), Owner.this.m(...) and
// receiver.m(...), with or without type arguments before the name. All
// but the last can be resolved without type information.
func (r *resolver) resolveCall(id syntax.NodeID) {
	t := r.tree
	children := t.Node(id).Children
	name := syntax.NoNode
	arity := 0
	for _, c := range children {
		child := t.Node(c)
		if child.Kind == kindIdentifier && child.Namespace == syntax.NamespaceMethod {
			name = c
			continue
		}
		if child.Kind == kindArguments {
			arity = len(child.Children)
		}
		r.visit(c)
	}
	if name == syntax.NoNode {
		return
	}
	n := t.Node(name)
	if name == children[0] {
		n.Symbol = r.lookupMethod(n.Name, arity)
	} else if s := r.receiverScope(children[0]); s != nil {
		n.Symbol = pickMethod(s.methods[n.Name], arity)
	}
}

func (r *resolver) resolveMethodRef(id syntax.NodeID) {
	t := r.tree
	children := t.Node(id).Children
	if len(children) < 2 {
		r.children(id)
		return
	}
	for _, c := range children[:len(children)-1] {
		r.visit(c)
	}
	last := t.Node(children[len(children)-1])
	if !last.IsName() {
		return
	}
	if s := r.receiverScope(children[0]); s != nil {
		last.Symbol = pickMethod(s.methods[last.Name], -1)
	}
}
