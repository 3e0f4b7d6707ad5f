package java

import (
	"fmt"
	"strings"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/java/parser"
	"github.com/dhamidi/codemining/syntax"
)

// decisionKinds add one to the cyclomatic complexity of a method.
var decisionKinds = map[string]bool{
	parser.KindIfStmt.String():          true,
	parser.KindForStmt.String():         true,
	parser.KindEnhancedForStmt.String(): true,
	parser.KindWhileStmt.String():       true,
	parser.KindDoStmt.String():          true,
	parser.KindCatchClause.String():     true,
	parser.KindTernaryExpr.String():     true,
	parser.KindSwitchLabel.String():     true,
}

// features computes the declaration features of a binding. t must be a
// tree built by this package.
func features(t *syntax.Tree, kind binding.Kind, b binding.Binding) []string {
	fs := binding.FeatureSet{}
	node := b.Decl
	if node == syntax.NoNode && len(b.Nodes) > 0 {
		node = b.Nodes[0]
	}
	if node == syntax.NoNode {
		return nil
	}
	switch kind {
	case binding.Variables:
		variableFeatures(t, node, fs)
	case binding.MethodDeclarations:
		methodFeatures(t, t.Parent(node), fs)
	case binding.MethodInvocations:
		invocationFeatures(t, t.Parent(node), fs)
	case binding.TypeDeclarations:
		typeDeclFeatures(t, t.Parent(node), fs)
	}
	return fs.Sorted()
}

// declarationOf returns the construct that declares the variable name:
// a field or local variable declaration, or a parameter.
func declarationOf(t *syntax.Tree, name syntax.NodeID) syntax.NodeID {
	parent := t.Parent(name)
	if parent == syntax.NoNode {
		return syntax.NoNode
	}
	if t.Node(parent).Kind == kindDeclarator {
		return t.Parent(parent)
	}
	return parent
}

func variableFeatures(t *syntax.Tree, name syntax.NodeID, fs binding.FeatureSet) {
	decl := declarationOf(t, name)
	if decl == syntax.NoNode {
		return
	}
	typeFeatures(t, typeOf(t, decl), fs)
	fs.Add(modifiers(t, decl)...)
	ancestry(t, decl, fs)
}

// typeOf returns the type child of a declaration, or NoNode for lambda
// parameters whose type is inferred.
func typeOf(t *syntax.Tree, decl syntax.NodeID) syntax.NodeID {
	for _, c := range t.Node(decl).Children {
		if isTypeNode(t.Node(c).Kind) {
			return c
		}
	}
	return syntax.NoNode
}

func typeFeatures(t *syntax.Tree, typ syntax.NodeID, fs binding.FeatureSet) {
	if typ == syntax.NoNode {
		return
	}
	fs.Add("type:" + t.CompactText(typ))
	switch t.Node(typ).Kind {
	case kindType:
		if t.Child(typ, kindTypeArgs) != syntax.NoNode {
			fs.Add("isParameterizedType", "rawType:"+rawTypeName(t, typ))
		}
	case kindArrayType:
		fs.Add("isArrayType")
		if dims := t.Child(typ, kindDims); dims != syntax.NoNode {
			fs.Add(fmt.Sprintf("arrayDims:%d", len(t.Node(dims).Children)))
		}
		if elem := t.Child(typ, kindType); elem != syntax.NoNode {
			fs.Add("arrayType:" + t.CompactText(elem))
		}
	}
}

// rawTypeName spells a type without type arguments or annotations, as
// in java.util.List for java.util.List<String>.
func rawTypeName(t *syntax.Tree, typ syntax.NodeID) string {
	if t.Node(typ).Kind == kindArrayType {
		if elem := t.Child(typ, kindType); elem != syntax.NoNode {
			typ = elem
		}
	}
	idents := t.ChildrenOf(typ, kindIdentifier)
	if len(idents) == 0 {
		return t.CompactText(typ)
	}
	parts := make([]string, len(idents))
	for i, id := range idents {
		parts[i] = t.Node(id).Name
	}
	return strings.Join(parts, ".")
}

// modifiers spells each modifier and annotation of decl.
func modifiers(t *syntax.Tree, decl syntax.NodeID) []string {
	mods := t.Child(decl, kindModifiers)
	if mods == syntax.NoNode {
		return nil
	}
	var out []string
	for _, m := range t.Node(mods).Children {
		out = append(out, t.CompactText(m))
	}
	return out
}

func ancestry(t *syntax.Tree, n syntax.NodeID, fs binding.FeatureSet) {
	parent := t.Parent(n)
	if parent == syntax.NoNode {
		return
	}
	fs.Add("DeclParentAstType:" + t.Node(parent).Kind)
	if grand := t.Parent(parent); grand != syntax.NoNode {
		fs.Add("DeclGrandparentAstType:" + t.Node(grand).Kind)
	}
}

// implementorVocabulary adds the name parts of the nearest method or type
// enclosing n.
func implementorVocabulary(t *syntax.Tree, n syntax.NodeID, fs binding.FeatureSet) {
	for cur := t.Parent(n); cur != syntax.NoNode; cur = t.Parent(cur) {
		kind := t.Node(cur).Kind
		if kind != kindMethodDecl && !typeDeclKinds[kind] {
			continue
		}
		if name := t.Child(cur, kindIdentifier); name != syntax.NoNode {
			fs.Add(binding.Prefixed("inName:", t.Node(name).Name)...)
		}
		return
	}
}

func methodFeatures(t *syntax.Tree, md syntax.NodeID, fs binding.FeatureSet) {
	params := t.ChildrenOf(md, kindParameter)
	fs.Add(fmt.Sprintf("nParams:%d", len(params)))
	for i, p := range params {
		if typ := typeOf(t, p); typ != syntax.NoNode {
			fs.Add(fmt.Sprintf("param%dType:%s", i, t.CompactText(typ)))
		}
		if name := t.Child(p, kindIdentifier); name != syntax.NoNode {
			fs.Add(binding.Prefixed("paramName:", t.Node(name).Name)...)
		}
		if t.Child(p, kindOperator) != syntax.NoNode {
			fs.Add("isVarArg")
		}
	}
	if throws := t.Child(md, kindThrows); throws != syntax.NoNode {
		for _, ex := range t.Node(throws).Children {
			fs.Add("thrownException:" + t.CompactText(ex))
		}
	}
	if ret := typeOf(t, md); ret != syntax.NoNode {
		fs.Add("returnType:" + t.CompactText(ret))
	}
	fs.Add(modifiers(t, md)...)
	body := t.Child(md, kindBlock)
	if body == syntax.NoNode {
		fs.Add("isInterfaceDeclaration")
	}
	ancestry(t, md, fs)

	// Topic words: every name used in the parameters and the body.
	for _, p := range params {
		for _, n := range t.Names(p) {
			fs.Add(binding.NameParts(t.Node(n).Name)...)
		}
	}
	if body != syntax.NoNode {
		for _, n := range t.Names(body) {
			fs.Add(binding.NameParts(t.Node(n).Name)...)
		}
		fs.Add(fmt.Sprintf("cyclomatic:%d", cyclomatic(t, body)))
	}
	implementorVocabulary(t, md, fs)

	classBody := t.Parent(md)
	if classBody == syntax.NoNode || t.Node(classBody).Kind != kindClassBody {
		return
	}
	for _, member := range t.Node(classBody).Children {
		switch {
		case member == md:
		case t.Node(member).Kind == kindMethodDecl:
			if name := t.Child(member, kindIdentifier); name != syntax.NoNode {
				fs.Add(binding.Prefixed("siblingVoc:", t.Node(name).Name)...)
			}
		case t.Node(member).Kind == kindFieldDecl:
			for _, name := range t.Node(member).Declares {
				fs.Add(binding.Prefixed("fieldVoc:", t.Node(name).Name)...)
			}
		}
	}
}

func cyclomatic(t *syntax.Tree, body syntax.NodeID) int {
	n := 1
	t.Walk(body, func(id syntax.NodeID) bool {
		node := t.Node(id)
		switch {
		case decisionKinds[node.Kind]:
			n++
		case node.Kind == kindOperator:
			if text := t.Text(id); text == "&&" || text == "||" {
				n++
			}
		}
		return true
	}, nil)
	return n
}

func invocationFeatures(t *syntax.Tree, call syntax.NodeID, fs binding.FeatureSet) {
	if args := t.Child(call, kindArguments); args != syntax.NoNode {
		fs.Add(fmt.Sprintf("nArgs:%d", len(t.Node(args).Children)))
	}
	implementorVocabulary(t, call, fs)
	ancestry(t, call, fs)
}

func typeDeclFeatures(t *syntax.Tree, td syntax.NodeID, fs binding.FeatureSet) {
	name := t.Child(td, kindIdentifier)
	if name == syntax.NoNode {
		return
	}
	current := t.Node(name).Name
	if t.Node(td).Kind == kindIfaceDecl {
		fs.Add("isInterface")
	}
	for _, clause := range append(t.ChildrenOf(td, kindExtends), t.ChildrenOf(td, kindImplements)...) {
		for _, super := range t.Node(clause).Children {
			fs.Add(typeVocabulary("implementVoc:", rawTypeName(t, super))...)
		}
	}

	body := t.Child(td, kindClassBody)
	if body == syntax.NoNode {
		return
	}
	for _, member := range t.Node(body).Children {
		switch t.Node(member).Kind {
		case kindFieldDecl:
			for _, field := range t.Node(member).Declares {
				fs.Add(binding.Prefixed("fieldVoc:", t.Node(field).Name)...)
			}
			typ := typeOf(t, member)
			if typ != syntax.NoNode && rawTypeName(t, typ) != current {
				fs.Add("fieldType:" + t.CompactText(typ))
				fs.Add(typeVocabulary("fieldVoc:", rawTypeName(t, typ))...)
			}
		case kindMethodDecl:
			if mname := t.Child(member, kindIdentifier); mname != syntax.NoNode {
				fs.Add(binding.Prefixed("methodVoc:", t.Node(mname).Name)...)
			}
			for _, p := range t.ChildrenOf(member, kindParameter) {
				if pn := t.Child(p, kindIdentifier); pn != syntax.NoNode {
					fs.Add(binding.Prefixed("methodVoc:", t.Node(pn).Name)...)
				}
				if typ := typeOf(t, p); typ != syntax.NoNode && rawTypeName(t, typ) != current {
					fs.Add(typeVocabulary("methodVoc:", rawTypeName(t, typ))...)
				}
			}
		}
	}
}

// typeVocabulary splits a possibly qualified type name into prefixed
// name parts.
func typeVocabulary(prefix, name string) []string {
	var out []string
	for _, part := range strings.Split(name, ".") {
		out = append(out, binding.Prefixed(prefix, part)...)
	}
	return out
}
