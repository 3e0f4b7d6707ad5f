package format_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/format"
	"github.com/dhamidi/codemining/java"
)

var result = format.Result{
	Path: "A.java",
	Kind: binding.Variables,
	Bindings: []binding.TokenNameBinding{
		{SourceTokens: []string{"<s>", "int", "x", ";", "x", "</s>"}, Indices: []int{2, 4}, Features: []string{"type:int"}},
		{SourceTokens: []string{"<s>", "int", "x", ";", "x", "</s>"}, Indices: []int{1}},
	},
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.NewLineEncoder(&buf).Encode(result))
	assert.Equal(t, "A.java\tx\t2,4\ttype:int\nA.java\tint\t1\t-\n", buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, format.NewJSONEncoder(&buf).Encode(result))

	var got struct {
		Path     string   `json:"path"`
		Kind     string   `json:"kind"`
		Tokens   []string `json:"tokens"`
		Bindings []struct {
			Name    string `json:"name"`
			Indices []int  `json:"indices"`
		} `json:"bindings"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "variables", got.Kind)
	assert.Len(t, got.Tokens, 6)
	require.Len(t, got.Bindings, 2)
	assert.Equal(t, "x", got.Bindings[0].Name)
	assert.Equal(t, []int{2, 4}, got.Bindings[0].Indices)
}

func TestNew(t *testing.T) {
	_, err := format.New("yaml", &bytes.Buffer{})
	assert.True(t, errors.Is(err, format.ErrUnknownFormat))

	enc, err := format.New("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &format.LineEncoder{}, enc)
}

func TestTreeJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	tree := java.FromSource([]byte("class A { int f; }"))
	require.NoError(t, format.NewTreeJSONEncoder(&buf).Encode(tree))
	assert.Contains(t, buf.String(), `"kind": "CompilationUnit"`)
	assert.Contains(t, buf.String(), `"namespace": "value"`)
}
