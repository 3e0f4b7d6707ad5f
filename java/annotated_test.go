package java

import (
	"reflect"
	"testing"

	"github.com/dhamidi/codemining/token"
)

func TestDepthTokenizer(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{
			"class A { int x; }",
			[]string{token.StartText, "class_d2", "A_d3", "{_d3", "int_d5", "x_d6", ";_d4", "}_d3", token.EndText},
		},
		{"", []string{token.StartText, token.EndText}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := texts(NewDepthTokenizer(NewTokenizer()).Tokenize([]byte(tt.src)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDepthTokenizerKeepsWhitespaceSymbols(t *testing.T) {
	got := texts(NewDepthTokenizer(NewTokenizer(WithWhitespace(WhitespaceSymbolic))).Tokenize([]byte("class A {}\n")))
	want := []string{token.StartText, "class_d2", "WS_s1t0", "A_d3", "WS_s1t0", "{_d3", "}_d3", "WS_INDENTs0t0n1", token.EndText}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTypeTokenizer(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{
			`class A { String name; void m(int count) { long total = count; name = "x"; } }`,
			[]string{token.StartText, "class", "A", "{", "var%String%", ";",
				"void", "m", "(", "int", "var%int%", ")", "{",
				"long", "var%long%", "=", "var%int%", ";",
				"name", "=", `"x"`, ";", "}", "}", token.EndText},
		},
		{
			"class A { java.util.List<String> xs; }",
			[]string{token.StartText, "class", "A", "{", "java", ".", "util", ".", "List", "<", "String", ">", "var%java.util.List<String>%", ";", "}", token.EndText},
		},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := texts(NewTypeTokenizer(NewTokenizer()).Tokenize([]byte(tt.src)))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTypeTokenizerTokenFor(t *testing.T) {
	tz := NewTypeTokenizer(NewTokenizer())
	if got := tz.TokenFor("var%int%").Kind; got != token.KindIdentifier {
		t.Errorf("kind of var%%int%% = %s, want %s", got, token.KindIdentifier)
	}
	if got := tz.TokenFor("while").Kind; got != token.Kind("while") {
		t.Errorf("kind of while = %s, want while", got)
	}
}
