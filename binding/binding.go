// Package binding groups the token occurrences of a source file into
// bindings: sets of occurrences that refer to the same variable, method
// or type.
package binding

import (
	"sort"

	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/syntax"
)

var (
	// ErrUnsupported reports a request a resolver cannot serve, such as
	// exact resolution of a tree without symbols.
	ErrUnsupported = errors.Base("unsupported operation")
	ErrEmpty       = errors.Base("binding has no occurrences")
	ErrMixedText   = errors.Base("binding occurrences differ in text")
	// ErrOpenStream reports a token stream without its END sentinel.
	ErrOpenStream = errors.Base("token stream not closed")
)

// Binding is the set of name nodes bound to one declaration, together
// with the token indices the nodes start at.
type Binding struct {
	ID int
	// Decl is the declaring name node, or syntax.NoNode for bindings
	// grouped by spelling alone.
	Decl        syntax.NodeID
	Nodes       []syntax.NodeID
	Occurrences []int
}

func (b *Binding) add(node syntax.NodeID, index int) {
	b.Nodes = append(b.Nodes, node)
	b.Occurrences = append(b.Occurrences, index)
}

// normalize sorts the occurrences and removes duplicates.
func (b *Binding) normalize() {
	sort.Ints(b.Occurrences)
	out := b.Occurrences[:0]
	for i, occ := range b.Occurrences {
		if i == 0 || occ != b.Occurrences[i-1] {
			out = append(out, occ)
		}
	}
	b.Occurrences = out
}

// finish normalizes every binding, drops empty ones and orders the rest
// by first occurrence.
func finish(bindings []*Binding) []Binding {
	out := make([]Binding, 0, len(bindings))
	for _, b := range bindings {
		if len(b.Occurrences) == 0 {
			continue
		}
		b.normalize()
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrences[0] < out[j].Occurrences[0]
	})
	return out
}

// TokenNameBinding is a binding expressed over a token sequence, ready to
// be used as a training example.
type TokenNameBinding struct {
	SourceTokens []string `json:"tokens,omitempty"`
	Indices      []int    `json:"indices"`
	Features     []string `json:"features,omitempty"`
}

// Name returns the text of the first bound token.
func (b TokenNameBinding) Name() string {
	if len(b.Indices) == 0 {
		return ""
	}
	return b.SourceTokens[b.Indices[0]]
}

// RenameTo returns a copy of b whose bound tokens read name.
func (b TokenNameBinding) RenameTo(name string) TokenNameBinding {
	tokens := make([]string, len(b.SourceTokens))
	copy(tokens, b.SourceTokens)
	for _, i := range b.Indices {
		tokens[i] = name
	}
	return TokenNameBinding{
		SourceTokens: tokens,
		Indices:      append([]int(nil), b.Indices...),
		Features:     append([]string(nil), b.Features...),
	}
}

// Check verifies that b is non-empty and that every bound token has the
// same text.
func (b TokenNameBinding) Check() error {
	if len(b.Indices) == 0 {
		return errors.WithStack(ErrEmpty)
	}
	name := b.Name()
	for _, i := range b.Indices[1:] {
		if b.SourceTokens[i] != name {
			return errors.WithDetails(ErrMixedText, "want", name, "got", b.SourceTokens[i], "index", i)
		}
	}
	return nil
}
