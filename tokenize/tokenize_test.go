package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/token"
)

func TestTextTokenize(t *testing.T) {
	tok := NewText("")
	got := tok.Tokenize([]byte("if x:\n    y2 = 42\n"))
	want := []string{
		token.StartText,
		"if", "WS_s1t0", "x", ":", "WS_INDENTs4t0n1",
		"y2", "WS_s1t0", "=", "WS_s1t0", "42", "WS_DEDENTs4t0n1",
		token.EndText,
	}
	var texts []string
	for _, tk := range got {
		texts = append(texts, tk.Text)
	}
	assert.Equal(t, want, texts)
	assert.Equal(t, token.KindIdentifier, got[1].Kind)
	assert.Equal(t, token.KindLiteral, got[10].Kind)
	assert.Equal(t, token.Kind(":"), got[4].Kind)
}

func TestTextPositions(t *testing.T) {
	s := NewText("").TokenizeWithPositions([]byte("héllo, wörld"))
	require.True(t, s.Closed())
	var offsets []int
	for _, p := range s.Items() {
		if !p.Token.IsSentinel() {
			offsets = append(offsets, p.Offset)
		}
	}
	assert.Equal(t, []int{0, 6, 7, 8}, offsets)
}

func TestTextTokenFor(t *testing.T) {
	tok := NewText("")
	assert.Equal(t, token.KindIdentifier, tok.TokenFor("word").Kind)
	assert.Equal(t, token.KindLiteral, tok.TokenFor("7").Kind)
	assert.Equal(t, token.KindWhitespace, tok.TokenFor("  ").Kind)
	assert.Equal(t, token.Kind("+"), tok.TokenFor("+").Kind)
}

func TestMatch(t *testing.T) {
	tok := NewText("")
	assert.True(t, Match(tok, "docs/a/b/readme.txt"))
	assert.False(t, Match(tok, "docs/readme.md"))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("text", func(arg string) (Tokenizer, error) {
		return NewText(arg), nil
	})

	tok, err := r.New("text", "**/*.md")
	require.NoError(t, err)
	assert.Equal(t, "**/*.md", tok.FileFilter())

	_, err = r.New("cobol", "")
	assert.True(t, errors.Is(err, ErrUnknownTokenizer))
	assert.Equal(t, []string{"text"}, r.Names())
}
