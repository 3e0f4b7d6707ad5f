package java

import (
	"reflect"
	"testing"

	"github.com/dhamidi/codemining/token"
)

func texts(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizeWhitespaceModes(t *testing.T) {
	src := []byte("int x = 1;\n")
	tests := []struct {
		mode WhitespaceMode
		want []string
	}{
		{WhitespaceDrop, []string{token.StartText, "int", "x", "=", "1", ";", token.EndText}},
		{WhitespaceRaw, []string{token.StartText, "int", " ", "x", " ", "=", " ", "1", ";", "\n", token.EndText}},
		{WhitespaceSymbolic, []string{token.StartText, "int", "WS_s1t0", "x", "WS_s1t0", "=", "WS_s1t0", "1", ";", "WS_INDENTs0t0n1", token.EndText}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got := texts(NewTokenizer(WithWhitespace(tt.mode)).Tokenize(src))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTokenizeKinds(t *testing.T) {
	tokens := NewTokenizer(WithWhitespace(WhitespaceSymbolic)).Tokenize([]byte("int x = 1;\n"))
	want := []token.Kind{token.KindStart, "int", token.KindWhitespace, token.KindIdentifier, token.KindWhitespace,
		"=", token.KindWhitespace, token.KindLiteral, ";", token.KindWhitespace, token.KindEnd}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Kind != want[i] {
			t.Errorf("token %d %q: kind %q, want %q", i, tok.Text, tok.Kind, want[i])
		}
	}
}

func TestTokenizeComments(t *testing.T) {
	src := []byte("/** doc */ int x; // trailing")
	got := texts(NewTokenizer().Tokenize(src))
	want := []string{token.StartText, "int", "x", ";", token.EndText}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("without comments: got %q, want %q", got, want)
	}

	tokens := NewTokenizer(WithCommentTokens()).Tokenize(src)
	if tokens[1].Kind != token.KindCommentJavadoc || tokens[5].Kind != token.KindCommentLine {
		t.Errorf("comment kinds: %q, %q", tokens[1].Kind, tokens[5].Kind)
	}
}

func TestTokenizeSkipsLexicalErrors(t *testing.T) {
	got := texts(NewTokenizer().Tokenize([]byte("a # b")))
	want := []string{token.StartText, "a", "b", token.EndText}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenFor(t *testing.T) {
	tok := NewTokenizer()
	tests := []struct {
		text string
		kind token.Kind
	}{
		{"count", token.KindIdentifier},
		{"42", token.KindLiteral},
		{`"s"`, token.KindLiteral},
		{"while", "while"},
		{"+=", "+="},
		{"   ", token.KindWhitespace},
	}
	for _, tt := range tests {
		if got := tok.TokenFor(tt.text); got.Kind != tt.kind || got.Text != tt.text {
			t.Errorf("TokenFor(%q) = %+v, want kind %q", tt.text, got, tt.kind)
		}
	}
}

// Every name in the tree must start exactly at a token so that bindings
// can be expressed as token indices.
func TestNamesStartAtTokens(t *testing.T) {
	src := []byte("class A<T> extends B {\n\tint[] xs;\n\tvoid m(String... args) { xs[0] = args.length; }\n}\n")
	stream := NewTokenizer(WithWhitespace(WhitespaceSymbolic)).TokenizeWithPositions(src)
	ix := stream.Index()
	tree := FromSource(src)
	for _, id := range tree.Names(tree.Root) {
		n := tree.Node(id)
		i, err := ix.Lookup(n.Start)
		if err != nil {
			t.Errorf("name %q at %d: %v", n.Name, n.Start, err)
			continue
		}
		if got := stream.At(i).Token.Text; got != n.Name {
			t.Errorf("name %q at %d maps to token %q", n.Name, n.Start, got)
		}
	}
}
