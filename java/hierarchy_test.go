package java

import (
	"reflect"
	"testing"
)

func TestTypeHierarchy(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Edge
	}{
		{
			"imports and java.lang",
			`package p;
import q.Base;
import static q.Util.helper;
class A extends Base implements Runnable {}`,
			[]Edge{{"java.lang.Runnable", "p.A"}, {"q.Base", "p.A"}},
		},
		{
			"same package",
			"package p; class A extends B {} class B {}",
			[]Edge{{"p.B", "p.A"}},
		},
		{
			"no package",
			"class A extends B {}",
			[]Edge{{"B", "A"}},
		},
		{
			"nested types",
			`package p;
class Outer {
	static class Inner extends Outer implements Cloneable {}
	class Other extends Inner {}
}`,
			[]Edge{
				{"java.lang.Cloneable", "p.Outer.Inner"},
				{"p.Outer", "p.Outer.Inner"},
				{"p.Outer.Inner", "p.Outer.Other"},
			},
		},
		{
			"interfaces enums and records",
			`package p;
import java.util.*;
interface I extends Comparable<I> {}
enum E implements I {}
record R(int x) implements I {}`,
			[]Edge{
				{"p.I", "p.E"},
				{"java.lang.Comparable", "p.I"},
				{"p.I", "p.R"},
			},
		},
		{
			"qualified supertype",
			"package p; class A extends java.util.AbstractList<String> {}",
			[]Edge{{"java.util.AbstractList", "p.A"}},
		},
		{
			"duplicates",
			"package p; class A implements Runnable, Runnable {}",
			[]Edge{{"java.lang.Runnable", "p.A"}},
		},
		{
			"no supertypes",
			"package p; class A {}",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TypeHierarchy(FromSource([]byte(tt.src)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeResolverWildcard(t *testing.T) {
	r := newTypeResolver("p", []importInfo{
		{qualifiedName: "q", isWildcard: true},
		{qualifiedName: "r.Util", isStatic: true},
	})
	r.declare("Known", "q.Known")
	tests := []struct{ in, want string }{
		{"Known", "q.Known"},
		{"Util", "p.Util"},
		{"String", "java.lang.String"},
		{"a.b.C", "a.b.C"},
		{"Local", "p.Local"},
	}
	for _, tt := range tests {
		if got := r.qualify(tt.in); got != tt.want {
			t.Errorf("qualify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
