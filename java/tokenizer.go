package java

import (
	"github.com/tliron/commonlog"

	"github.com/dhamidi/codemining/java/parser"
	"github.com/dhamidi/codemining/token"
	"github.com/dhamidi/codemining/whitespace"
)

var log = commonlog.GetLogger("codemining.java")

const FileFilter = "**/*.java"

// WhitespaceMode selects what the tokenizer does with whitespace.
type WhitespaceMode int

const (
	// WhitespaceDrop omits whitespace.
	WhitespaceDrop WhitespaceMode = iota
	// WhitespaceRaw keeps whitespace runs verbatim.
	WhitespaceRaw
	// WhitespaceSymbolic replaces whitespace runs with indentation
	// symbols.
	WhitespaceSymbolic
)

func (m WhitespaceMode) String() string {
	switch m {
	case WhitespaceRaw:
		return "raw"
	case WhitespaceSymbolic:
		return "symbolic"
	}
	return "drop"
}

type TokenizerOption func(*Tokenizer)

func WithWhitespace(mode WhitespaceMode) TokenizerOption {
	return func(t *Tokenizer) {
		t.whitespace = mode
	}
}

// WithCommentTokens keeps comments as COMMENT_* tokens.
func WithCommentTokens() TokenizerOption {
	return func(t *Tokenizer) {
		t.comments = true
	}
}

// Tokenizer splits Java source into tokens using the same lexer as the
// parser, so token offsets always agree with syntax tree offsets.
type Tokenizer struct {
	whitespace WhitespaceMode
	comments   bool
}

func NewTokenizer(opts ...TokenizerOption) *Tokenizer {
	t := &Tokenizer{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Tokenizer) FileFilter() string {
	return FileFilter
}

func (t *Tokenizer) IdentifierKind() token.Kind {
	return token.KindIdentifier
}

func (t *Tokenizer) Tokenize(src []byte) []token.Token {
	return t.TokenizeWithPositions(src).Tokens()
}

func (t *Tokenizer) TokenizeWithPositions(src []byte) *token.Stream {
	s := token.NewStream()
	lexer := parser.NewLexer(src, "")
	lexer.HandleErrors(func(pos parser.Position, msg string) {
		log.Warningf("%s: %s", pos, msg)
	})

	var enc whitespace.Encoder
	for {
		tok := lexer.NextToken()
		if tok.Kind == parser.TokenEOF {
			break
		}
		out, keep := t.convert(tok)
		if !keep {
			continue
		}
		if out.IsWhitespace() && t.whitespace == WhitespaceSymbolic {
			out.Text = enc.Encode(out.Text).String()
		}
		if err := s.Append(tok.Span.Start.Offset, out); err != nil {
			log.Warningf("dropping token %q: %s", tok.Literal, err)
		}
	}
	s.Close()
	return s
}

// TokenFor classifies text as the first token the lexer finds in it.
func (t *Tokenizer) TokenFor(text string) token.Token {
	lexer := parser.NewLexer([]byte(text), "")
	lexer.HandleErrors(func(parser.Position, string) {})
	tok := lexer.NextToken()
	if tok.Kind == parser.TokenEOF {
		return token.New(text, token.KindWhitespace)
	}
	return token.New(text, kindOf(tok.Kind))
}

func (t *Tokenizer) convert(tok parser.Token) (token.Token, bool) {
	switch {
	case tok.Kind == parser.TokenError:
		return token.Token{}, false
	case tok.Kind == parser.TokenWhitespace:
		return token.New(tok.Literal, token.KindWhitespace), t.whitespace != WhitespaceDrop
	case tok.Kind.IsComment():
		return token.New(tok.Literal, kindOf(tok.Kind)), t.comments
	}
	return token.New(tok.Literal, kindOf(tok.Kind)), true
}

func kindOf(k parser.TokenKind) token.Kind {
	switch k {
	case parser.TokenIdent:
		return token.KindIdentifier
	case parser.TokenIntLiteral, parser.TokenFloatLiteral, parser.TokenCharLiteral,
		parser.TokenStringLiteral, parser.TokenTextBlock:
		return token.KindLiteral
	case parser.TokenComment:
		return token.KindCommentBlock
	case parser.TokenLineComment:
		return token.KindCommentLine
	case parser.TokenJavadoc:
		return token.KindCommentJavadoc
	case parser.TokenWhitespace:
		return token.KindWhitespace
	}
	return token.Kind(k.String())
}
