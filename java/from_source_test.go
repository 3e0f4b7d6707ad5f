package java

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dhamidi/codemining/syntax"
)

// describeNames renders every name of t as text:namespace.
func describeNames(t *syntax.Tree) string {
	var parts []string
	for _, id := range t.Names(t.Root) {
		n := t.Node(id)
		parts = append(parts, fmt.Sprintf("%s:%s", n.Name, n.Namespace))
	}
	return strings.Join(parts, " ")
}

func TestFromSourceNamespaces(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{
			"class A { int f; void m(int p) { f = p; g(); this.f = 1; } }",
			"A:type f:value m:method p:value f:value p:value g:method f:value",
		},
		{
			"class A extends B<C> { A() { super(); } }",
			"A:type B:type C:type A:type",
		},
		{
			"class A { void m() { o.run(x::y, List::of); } }",
			"A:type m:method o:value run:method x:value y:method List:value of:method",
		},
		{
			"enum E { ONE, TWO; int v = ONE.ordinal(); }",
			"E:type ONE:value TWO:value v:value ONE:value ordinal:method",
		},
		{
			"import java.util.List; @Deprecated class A {}",
			"A:type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := FromSource([]byte(tt.input))
			if len(tree.Errors) > 0 {
				t.Fatalf("unexpected errors: %v", tree.Errors)
			}
			if got := describeNames(tree); got != tt.want {
				t.Errorf("names:\n got %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestFromSourceDeclares(t *testing.T) {
	tree := FromSource([]byte("class A { int a, b; void m(int p) { int c = 1; } }"))
	var got []string
	tree.Walk(tree.Root, func(id syntax.NodeID) bool {
		n := tree.Node(id)
		for _, d := range n.Declares {
			got = append(got, n.Kind+":"+tree.Node(d).Name)
		}
		return true
	}, nil)
	want := "FieldDecl:a FieldDecl:b MethodDecl:m Parameter:p LocalVarDecl:c"
	if strings.Join(got, " ") != want {
		t.Errorf("declares = %s, want %s", strings.Join(got, " "), want)
	}
}

func TestFromSourceErrors(t *testing.T) {
	tree := FromSource([]byte("class A { void m() { int x = ; } }"))
	if len(tree.Errors) != 1 || tree.Incomplete {
		t.Errorf("errors = %v, incomplete = %v", tree.Errors, tree.Incomplete)
	}

	tree = FromSource([]byte("class A { void m() {"))
	if !tree.Incomplete {
		t.Error("Incomplete = false for truncated source")
	}
	if !tree.Resolved {
		t.Error("Resolved = false")
	}
}

func TestFromSnippet(t *testing.T) {
	tests := []struct {
		input string
		root  string
		names string
	}{
		{"package p; class A {}", "CompilationUnit", "A:type"},
		{"int f; void m() { f++; }", "ClassBody", "f:value m:method f:value"},
		{"int x = 1; x++;", "Block", "x:value x:value"},
		{"a + b", "BinaryExpr", "a:value b:value"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tree := FromSnippet([]byte(tt.input))
			if len(tree.Errors) > 0 || tree.Incomplete {
				t.Fatalf("errors = %v, incomplete = %v", tree.Errors, tree.Incomplete)
			}
			if got := tree.Node(tree.Root).Kind; got != tt.root {
				t.Errorf("root = %s, want %s", got, tt.root)
			}
			if got := describeNames(tree); got != tt.names {
				t.Errorf("names = %s, want %s", got, tt.names)
			}
			if tree.Resolved {
				t.Error("snippet trees carry no symbols")
			}
		})
	}
}

func TestFromSnippetKeepsBestEffort(t *testing.T) {
	tree := FromSnippet([]byte("x = ;"))
	if len(tree.Errors) == 0 {
		t.Fatal("want errors for broken snippet")
	}
	if tree.Root == syntax.NoNode {
		t.Fatal("want a partial tree")
	}
}
