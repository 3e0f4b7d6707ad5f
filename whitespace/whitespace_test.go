package whitespace

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		runs []string
		want []string
	}{
		{
			name: "flat runs keep literal counts",
			runs: []string{" ", "  \t"},
			want: []string{"WS_s1t0", "WS_s2t1"},
		},
		{
			name: "indent then dedent",
			runs: []string{"\n    ", "\n    ", "\n"},
			want: []string{"WS_INDENTs4t0n1", "WS_INDENTs0t0n1", "WS_DEDENTs4t0n1"},
		},
		{
			name: "flat run does not move indentation",
			runs: []string{"\n\t", " ", "\n\t\t"},
			want: []string{"WS_INDENTs0t1n1", "WS_s1t0", "WS_INDENTs0t1n1"},
		},
		{
			name: "mixed deltas are a dedent",
			runs: []string{"\n    ", "\n\t"},
			want: []string{"WS_INDENTs4t0n1", "WS_DEDENTs4t1n1"},
		},
		{
			name: "carriage returns are dropped",
			runs: []string{"\r\n\r\n  "},
			want: []string{"WS_INDENTs2t0n2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range EncodeAll(tt.runs) {
				got = append(got, s.String())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndentAndDedent(t *testing.T) {
	// if x:\n    y\n    z\nw\n
	var e Encoder
	beforeY := e.Encode("\n    ")
	beforeZ := e.Encode("\n    ")
	beforeW := e.Encode("\n")

	assert.Equal(t, Symbol{Form: Indent, Descriptor: Descriptor{Spaces: 4, Newlines: 1}}, beforeY)
	// A line break at the same indentation is an indent by zero.
	assert.Equal(t, Symbol{Form: Indent, Descriptor: Descriptor{Newlines: 1}}, beforeZ)
	assert.Equal(t, "WS_INDENTs0t0n1", beforeZ.String())
	assert.Equal(t, Symbol{Form: Dedent, Descriptor: Descriptor{Spaces: 4, Newlines: 1}}, beforeW)
}

func TestDecode(t *testing.T) {
	var d Decoder
	steps := []struct {
		symbol string
		want   string
	}{
		{"WS_INDENTs4t0n1", "\n    "},
		{"WS_s1t0", " "},
		{"WS_INDENTs0t1n2", "\n\n    \t"},
		{"WS_DEDENTs8t0n1", "\n\t"},
		{"WS_DEDENTs0t3n1", "\n"},
	}
	for _, step := range steps {
		got, err := d.Decode(step.symbol)
		require.NoError(t, err)
		assert.Equal(t, step.want, got, step.symbol)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, text := range []string{"WS_", "WS_INDENTs1t2", "WS_DEDENTsXt0n1", "WS_s1", "int", "WS_s1t0n1"} {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.Contains(t, err.Error(), text)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []Symbol{
		{Form: Flat, Descriptor: Descriptor{Spaces: 3, Tabs: 1}},
		{Form: Indent, Descriptor: Descriptor{Spaces: 0, Tabs: 2, Newlines: 1}},
		{Form: Dedent, Descriptor: Descriptor{Spaces: 12, Tabs: 0, Newlines: 3}},
	} {
		got, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

// canonicalRun builds a run in the order the decoder emits: newlines, then
// spaces, then tabs. Runs that start a line indent with indentChar only.
func canonicalRun(r *rand.Rand, indentChar string) string {
	if n := r.Intn(3); n > 0 {
		return strings.Repeat("\n", n) + strings.Repeat(indentChar, r.Intn(9))
	}
	return strings.Repeat(" ", 1+r.Intn(4)) + strings.Repeat("\t", r.Intn(3))
}

// Only canonical runs survive the round trip. The decoder always emits
// newlines, then spaces, then tabs, so " \n" comes back as "\n ".
func TestEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		indentChar := " "
		if i%2 == 1 {
			indentChar = "\t"
		}
		runs := make([]string, 1+r.Intn(20))
		for j := range runs {
			runs[j] = canonicalRun(r, indentChar)
		}

		var texts []string
		for _, s := range EncodeAll(runs) {
			texts = append(texts, s.String())
		}
		decoded, err := DecodeAll(texts)
		require.NoError(t, err)
		require.Equal(t, runs, decoded)
	}
}

func TestDecodeReordersNonCanonicalRuns(t *testing.T) {
	var texts []string
	for _, s := range EncodeAll([]string{" \n"}) {
		texts = append(texts, s.String())
	}
	assert.Equal(t, []string{"WS_INDENTs1t0n1"}, texts)

	decoded, err := DecodeAll(texts)
	require.NoError(t, err)
	assert.Equal(t, []string{"\n "}, decoded)
}

func TestMixedChangeIsLossy(t *testing.T) {
	runs := []string{"\n    ", "\n\t"}
	var texts []string
	for _, s := range EncodeAll(runs) {
		texts = append(texts, s.String())
	}
	decoded, err := DecodeAll(texts)
	require.NoError(t, err)
	assert.Equal(t, "\n", decoded[1])
}

func TestDecodeAllReportsPosition(t *testing.T) {
	_, err := DecodeAll([]string{"WS_s1t0", "WS_bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol 1")
	assert.True(t, errors.Is(err, ErrMalformed))
}
