package tokenizers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/token"
	"github.com/dhamidi/codemining/tokenize"
	"github.com/dhamidi/codemining/tokenizers"
)

func TestDefaultNames(t *testing.T) {
	assert.Equal(t, []string{"java", "java-depth", "java-raw", "java-types", "java-whitespace", "text"}, tokenizers.Default().Names())
}

func TestDefaultJavaVariants(t *testing.T) {
	src := []byte("int x = 1;")
	r := tokenizers.Default()

	plain, err := r.New("java", "")
	require.NoError(t, err)
	assert.Equal(t, []string{token.StartText, "int", "x", "=", "1", ";", token.EndText}, texts(plain.Tokenize(src)))
	assert.Equal(t, token.KindIdentifier, plain.IdentifierKind())
	assert.True(t, tokenize.Match(plain, "src/main/A.java"))

	raw, err := r.New("java-raw", "")
	require.NoError(t, err)
	assert.Equal(t, []string{token.StartText, "int", " ", "x", " ", "=", " ", "1", ";", token.EndText}, texts(raw.Tokenize(src)))
}

func TestDefaultAnnotatedJava(t *testing.T) {
	src := []byte("class A { int x; }")
	r := tokenizers.Default()

	depth, err := r.New("java-depth", "")
	require.NoError(t, err)
	assert.Equal(t, []string{token.StartText, "class_d2", "A_d3", "{_d3", "int_d5", "x_d6", ";_d4", "}_d3", token.EndText}, texts(depth.Tokenize(src)))

	types, err := r.New("java-types", "")
	require.NoError(t, err)
	assert.Equal(t, []string{token.StartText, "class", "A", "{", "int", "var%int%", ";", "}", token.EndText}, texts(types.Tokenize(src)))
	assert.True(t, tokenize.Match(types, "src/main/A.java"))

	_, err = r.New("java-types", "nonsense")
	assert.True(t, errors.Is(err, tokenizers.ErrBadArgument))
}

func TestDefaultBadArgument(t *testing.T) {
	_, err := tokenizers.Default().New("java", "nonsense")
	assert.True(t, errors.Is(err, tokenizers.ErrBadArgument))

	_, err = tokenizers.Default().New("cobol", "")
	assert.True(t, errors.Is(err, tokenize.ErrUnknownTokenizer))
}

func texts(tokens []token.Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
