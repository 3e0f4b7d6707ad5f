// Package tokenize defines the contract every tokenizer fulfils and a
// registry for selecting tokenizers by name.
package tokenize

import (
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/token"
)

var ErrUnknownTokenizer = errors.Base("unknown tokenizer")

// Tokenizer turns source text into tokens. Implementations are total:
// malformed input is logged and skipped, never reported as an error.
type Tokenizer interface {
	// Tokenize returns the tokens of src bracketed by the START and END
	// sentinels.
	Tokenize(src []byte) []token.Token
	// TokenizeWithPositions returns the tokens of src keyed by their start
	// offset. The stream is closed.
	TokenizeWithPositions(src []byte) *token.Stream
	// FileFilter is a doublestar pattern matching the files this
	// tokenizer understands.
	FileFilter() string
	// IdentifierKind is the kind given to identifier tokens.
	IdentifierKind() token.Kind
	// TokenFor classifies a single piece of text.
	TokenFor(text string) token.Token
}

// Match reports whether path is accepted by the file filter of t.
func Match(t Tokenizer, path string) bool {
	ok, err := doublestar.PathMatch(t.FileFilter(), path)
	return err == nil && ok
}

// Factory creates a tokenizer. arg is an optional tokenizer specific
// argument given on the command line.
type Factory func(arg string) (Tokenizer, error)

// Registry maps names to tokenizer factories.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// New creates the tokenizer registered under name.
func (r *Registry) New(name, arg string) (Tokenizer, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, errors.WithDetails(ErrUnknownTokenizer, "name", name, "known", r.Names())
	}
	t, err := f(arg)
	if err != nil {
		return nil, errors.Errorf("tokenizer %s: %w", name, err)
	}
	return t, nil
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
