// Package tokenizers wires the built-in tokenizers into a registry.
package tokenizers

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/java"
	"github.com/dhamidi/codemining/tokenize"
)

var ErrBadArgument = errors.Base("bad tokenizer argument")

// Default returns a registry holding:
//
//	java             Java tokens, whitespace dropped
//	java-raw         Java tokens with verbatim whitespace
//	java-whitespace  Java tokens with indentation symbols
//	java-depth       Java tokens suffixed with their syntax tree depth
//	java-types       Java tokens with variables replaced by their type
//	text             plain text words, symbols and indentation
//
// The Java tokenizers accept the argument "comments" to keep comment
// tokens. The text tokenizer takes an optional file filter.
func Default() *tokenize.Registry {
	r := tokenize.NewRegistry()
	r.Register("java", javaFactory(java.WhitespaceDrop))
	r.Register("java-raw", javaFactory(java.WhitespaceRaw))
	r.Register("java-whitespace", javaFactory(java.WhitespaceSymbolic))
	r.Register("java-depth", func(arg string) (tokenize.Tokenizer, error) {
		base, err := javaTokenizer(java.WhitespaceDrop, arg)
		if err != nil {
			return nil, err
		}
		return java.NewDepthTokenizer(base), nil
	})
	r.Register("java-types", func(arg string) (tokenize.Tokenizer, error) {
		base, err := javaTokenizer(java.WhitespaceDrop, arg)
		if err != nil {
			return nil, err
		}
		return java.NewTypeTokenizer(base), nil
	})
	r.Register("text", func(arg string) (tokenize.Tokenizer, error) {
		return tokenize.NewText(arg), nil
	})
	return r
}

func javaFactory(mode java.WhitespaceMode) tokenize.Factory {
	return func(arg string) (tokenize.Tokenizer, error) {
		return javaTokenizer(mode, arg)
	}
}

func javaTokenizer(mode java.WhitespaceMode, arg string) (*java.Tokenizer, error) {
	opts := []java.TokenizerOption{java.WithWhitespace(mode)}
	switch arg {
	case "":
	case "comments":
		opts = append(opts, java.WithCommentTokens())
	default:
		return nil, errors.WithDetails(ErrBadArgument, "arg", arg, "whitespace", mode.String())
	}
	return java.NewTokenizer(opts...), nil
}
