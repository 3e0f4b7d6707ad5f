package java

import (
	"sort"
	"strings"

	"github.com/dhamidi/codemining/syntax"
)

// Edge relates a type to one of its direct supertypes. Both names are
// fully qualified as far as the declaring file allows.
type Edge struct {
	Parent string `json:"parent"`
	Child  string `json:"child"`
}

type importInfo struct {
	qualifiedName string
	isStatic      bool
	isWildcard    bool
}

// typeResolver qualifies simple type names the way a reader of a single
// file would: nested and explicitly imported types first, then star
// imports against the known types, java.lang, and finally the package.
type typeResolver struct {
	pkg     string
	imports []importInfo
	known   map[string]string
	// classes are the fully qualified names declared in the file.
	classes map[string]bool
}

func newTypeResolver(pkg string, imports []importInfo) *typeResolver {
	return &typeResolver{
		pkg:     pkg,
		imports: imports,
		known:   map[string]string{},
		classes: map[string]bool{},
	}
}

func (r *typeResolver) declare(simpleName, fullName string) {
	r.known[simpleName] = fullName
	r.classes[fullName] = true
}

var javaLangTypes = map[string]bool{
	"Object": true, "String": true, "Class": true, "System": true,
	"Throwable": true, "Exception": true, "RuntimeException": true, "Error": true,
	"Integer": true, "Long": true, "Short": true, "Byte": true,
	"Float": true, "Double": true, "Character": true, "Boolean": true,
	"Number": true, "Comparable": true, "CharSequence": true,
	"Iterable": true, "Cloneable": true, "Runnable": true,
	"Thread": true, "StringBuilder": true, "StringBuffer": true,
	"Math": true, "Enum": true, "Record": true,
	"AutoCloseable": true,
}

func (r *typeResolver) qualify(name string) string {
	if name == "" || strings.Contains(name, ".") {
		return name
	}
	if full, ok := r.known[name]; ok {
		return full
	}
	for _, imp := range r.imports {
		if imp.isWildcard || imp.isStatic {
			continue
		}
		if imp.qualifiedName == name || strings.HasSuffix(imp.qualifiedName, "."+name) {
			return imp.qualifiedName
		}
	}
	for _, imp := range r.imports {
		if !imp.isWildcard || imp.isStatic {
			continue
		}
		if candidate := imp.qualifiedName + "." + name; r.classes[candidate] {
			return candidate
		}
	}
	if javaLangTypes[name] {
		return "java.lang." + name
	}
	if r.pkg != "" {
		return r.pkg + "." + name
	}
	return name
}

// TypeHierarchy lists the supertype edges declared by the classes,
// interfaces, enums and records of a compilation unit. Nested types are
// named after their enclosing type. The result is sorted and free of
// duplicates.
func TypeHierarchy(t *syntax.Tree) []Edge {
	if t.Root == syntax.NoNode {
		return nil
	}
	r := newTypeResolver(packageName(t), importsOf(t))

	// Declared names are registered up front so that a supertype declared
	// later in the file, or nested elsewhere, still qualifies correctly.
	var enclosing []string
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		if name := declaredTypeName(t, id); name != "" {
			full := qualifiedIn(r.pkg, enclosing, name)
			r.declare(name, full)
			enclosing = append(enclosing, full)
		}
		return true
	}, func(id syntax.NodeID) {
		if declaredTypeName(t, id) != "" {
			enclosing = enclosing[:len(enclosing)-1]
		}
	})

	seen := map[Edge]bool{}
	var edges []Edge
	enclosing = enclosing[:0]
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		name := declaredTypeName(t, id)
		if name == "" {
			return true
		}
		child := qualifiedIn(r.pkg, enclosing, name)
		enclosing = append(enclosing, child)
		for _, super := range supertypes(t, id) {
			e := Edge{Parent: r.qualify(super), Child: child}
			if !seen[e] {
				seen[e] = true
				edges = append(edges, e)
			}
		}
		return true
	}, func(id syntax.NodeID) {
		if declaredTypeName(t, id) != "" {
			enclosing = enclosing[:len(enclosing)-1]
		}
	})

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Child != edges[j].Child {
			return edges[i].Child < edges[j].Child
		}
		return edges[i].Parent < edges[j].Parent
	})
	return edges
}

func qualifiedIn(pkg string, enclosing []string, name string) string {
	if len(enclosing) > 0 {
		return enclosing[len(enclosing)-1] + "." + name
	}
	if pkg != "" {
		return pkg + "." + name
	}
	return name
}

// declaredTypeName returns the simple name of a type declaration, or ""
// when id declares no type.
func declaredTypeName(t *syntax.Tree, id syntax.NodeID) string {
	if !typeDeclKinds[t.Node(id).Kind] {
		return ""
	}
	name := t.Child(id, kindIdentifier)
	if name == syntax.NoNode {
		return ""
	}
	return t.Node(name).Name
}

// supertypes spells the raw names in the extends and implements clauses
// of a type declaration.
func supertypes(t *syntax.Tree, decl syntax.NodeID) []string {
	var out []string
	for _, clause := range append(t.ChildrenOf(decl, kindExtends), t.ChildrenOf(decl, kindImplements)...) {
		for _, typ := range t.Node(clause).Children {
			if name := rawTypeName(t, typ); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}

func packageName(t *syntax.Tree) string {
	decl := t.Child(t.Root, kindPackageDecl)
	if decl == syntax.NoNode {
		return ""
	}
	return qualifiedNameText(t, t.Child(decl, kindQualified))
}

func importsOf(t *syntax.Tree) []importInfo {
	var imports []importInfo
	for _, decl := range t.ChildrenOf(t.Root, kindImportDecl) {
		imp := importInfo{qualifiedName: qualifiedNameText(t, t.Child(decl, kindQualified))}
		for _, c := range t.Node(decl).Children {
			switch text := t.Text(c); {
			case t.Node(c).Kind == kindModifier && text == "static":
				imp.isStatic = true
			case t.Node(c).Kind == kindOperator && text == "*":
				imp.isWildcard = true
			}
		}
		imports = append(imports, imp)
	}
	return imports
}

func qualifiedNameText(t *syntax.Tree, id syntax.NodeID) string {
	if id == syntax.NoNode {
		return ""
	}
	idents := t.ChildrenOf(id, kindIdentifier)
	parts := make([]string, len(idents))
	for i, ident := range idents {
		parts[i] = t.Text(ident)
	}
	return strings.Join(parts, ".")
}
