package binding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/java"
	"github.com/dhamidi/codemining/token"
)

func resolve(t *testing.T, r binding.Resolver, src string) []binding.Binding {
	t.Helper()
	tree := java.Language{}.Parse([]byte(src))
	stream := java.NewTokenizer().TokenizeWithPositions([]byte(src))
	bindings, err := r.Resolve(tree, stream.Index())
	require.NoError(t, err)
	return bindings
}

func occurrences(bindings []binding.Binding) [][]int {
	out := make([][]int, len(bindings))
	for i, b := range bindings {
		out[i] = b.Occurrences
	}
	return out
}

func TestApproximateFieldAndMethod(t *testing.T) {
	// 0 START 1 class 2 C 3 { 4 int 5 a 6 ; 7 void 8 m 9 ( 10 ) 11 { 12 a ...
	got := resolve(t, binding.Approximate{}, "class C { int a; void m(){ a = 1; } }")
	assert.Equal(t, [][]int{{5, 12}, {8}}, occurrences(got))
}

func TestApproximateShadowing(t *testing.T) {
	src := "class A { int x; void m(int x) { x = 1; } void n() { x = 2; } }"
	got := resolve(t, binding.Approximate{}, src)
	assert.Equal(t, [][]int{{5, 24}, {8}, {11, 14}, {20}}, occurrences(got))
}

func TestApproximateDeclarationsAreNotHoistedBackwards(t *testing.T) {
	// 4 void 5 m ... 9 x ... 14 int 15 x
	src := "class A { void m() { x = 1; } int x; }"

	approx := resolve(t, binding.Approximate{}, src)
	assert.Equal(t, [][]int{{5}, {15}}, occurrences(approx))

	exact := resolve(t, binding.Exact{}, src)
	assert.Equal(t, [][]int{{5}, {9, 15}}, occurrences(exact))
}

func TestApproximateIgnoresFreeNames(t *testing.T) {
	got := resolve(t, binding.Approximate{}, "class A { void m() { System.out.println(y); } }")
	require.Len(t, got, 1)
	assert.Equal(t, []int{5}, got[0].Occurrences)
}

func TestApproximateSnippet(t *testing.T) {
	src := "int a = 1; a++; b++;"
	tree := java.Language{}.ParseSnippet([]byte(src))
	stream := java.NewTokenizer().TokenizeWithPositions([]byte(src))
	got, err := binding.Approximate{}.ResolveSnippet(tree, stream.Index())
	require.NoError(t, err)
	assert.Equal(t, [][]int{{2, 6}}, occurrences(got))
}

func TestExactRefusesIncompleteSource(t *testing.T) {
	src := "class A { void m() {"
	tree := java.Language{}.Parse([]byte(src))
	stream := java.NewTokenizer().TokenizeWithPositions([]byte(src))

	_, err := binding.Exact{}.Resolve(tree, stream.Index())
	assert.True(t, errors.Is(err, binding.ErrUnsupported), "got %v", err)

	_, err = binding.Exact{}.ResolveSnippet(java.Language{}.ParseSnippet([]byte("a = 1;")), stream.Index())
	assert.True(t, errors.Is(err, binding.ErrUnsupported), "got %v", err)
}

func TestExactPartition(t *testing.T) {
	src := `class A {
	int count;
	int add(int n, int m) {
		int total = n + m;
		for (int i = 0; i < n; i++) { total += i; }
		count = count + total;
		return add(total, count);
	}
}`
	tree := java.Language{}.Parse([]byte(src))
	stream := java.NewTokenizer().TokenizeWithPositions([]byte(src))
	got, err := binding.Exact{}.Resolve(tree, stream.Index())
	require.NoError(t, err)
	require.NotEmpty(t, got)

	seen := map[int]bool{}
	texts := stream.Texts()
	for _, b := range got {
		for _, i := range b.Occurrences {
			assert.False(t, seen[i], "index %d bound twice", i)
			seen[i] = true
		}
		tnb := binding.TokenNameBinding{SourceTokens: texts, Indices: b.Occurrences}
		assert.NoError(t, tnb.Check())
	}
}

func TestResolveReportsMappingFailures(t *testing.T) {
	tree := java.Language{}.Parse([]byte("class A { int a; void m() { a = 1; } }"))
	empty := java.NewTokenizer().TokenizeWithPositions(nil)

	for _, r := range []binding.Resolver{binding.Approximate{}, binding.Exact{}} {
		_, err := r.Resolve(tree, empty.Index())
		assert.True(t, errors.Is(err, token.ErrNoToken), "%T: got %v", r, err)
	}
}

func TestNewResolver(t *testing.T) {
	r, err := binding.NewResolver(binding.StrategyExact)
	require.NoError(t, err)
	assert.IsType(t, binding.Exact{}, r)

	r, err = binding.NewResolver("")
	require.NoError(t, err)
	assert.IsType(t, binding.Approximate{}, r)

	_, err = binding.NewResolver("fuzzy")
	assert.True(t, errors.Is(err, binding.ErrUnknownStrategy))
}

func TestParseKind(t *testing.T) {
	for _, k := range binding.Kinds() {
		got, err := binding.ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}
	_, err := binding.ParseKind("fields")
	assert.True(t, errors.Is(err, binding.ErrUnknownKind))
}

func TestTokenNameBinding(t *testing.T) {
	b := binding.TokenNameBinding{
		SourceTokens: []string{"<s>", "int", "a", "=", "a", "+", "b", "</s>"},
		Indices:      []int{2, 4},
		Features:     []string{"type:int"},
	}
	assert.Equal(t, "a", b.Name())
	require.NoError(t, b.Check())

	renamed := b.RenameTo("count")
	assert.Equal(t, []string{"<s>", "int", "count", "=", "count", "+", "b", "</s>"}, renamed.SourceTokens)
	assert.Equal(t, "a", b.SourceTokens[2], "original is unchanged")
	assert.Equal(t, b.Indices, renamed.Indices)
	assert.Equal(t, b.Features, renamed.Features)

	mixed := binding.TokenNameBinding{SourceTokens: b.SourceTokens, Indices: []int{2, 6}}
	assert.True(t, errors.Is(mixed.Check(), binding.ErrMixedText))

	assert.True(t, errors.Is(binding.TokenNameBinding{}.Check(), binding.ErrEmpty))
	assert.Equal(t, "", binding.TokenNameBinding{}.Name())
}

func TestNameParts(t *testing.T) {
	assert.Equal(t, []string{"get", "http", "response", "code"}, binding.NameParts("getHTTPResponse_code"))
	assert.Equal(t, []string{"in:max", "in:value"}, binding.Prefixed("in:", "MAX_VALUE"))
	assert.Empty(t, binding.NameParts("_"))

	fs := binding.FeatureSet{}
	fs.Add("b", "a", "", "b")
	assert.Equal(t, []string{"a", "b"}, fs.Sorted())
}
