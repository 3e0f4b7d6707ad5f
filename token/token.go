// Package token defines the lexical units produced by tokenizers and the
// positioned streams that tie them back to source byte offsets.
package token

import (
	"fmt"
	"math"
)

// Kind classifies a token. Besides the well-known kinds below, tokenizers
// may use any raw lexer-specific code, such as a keyword or operator.
type Kind string

const (
	KindIdentifier     Kind = "IDENTIFIER"
	KindLiteral        Kind = "LITERAL"
	KindCommentBlock   Kind = "COMMENT_BLOCK"
	KindCommentLine    Kind = "COMMENT_LINE"
	KindCommentJavadoc Kind = "COMMENT_JAVADOC"
	KindWhitespace     Kind = "WS"
	KindStart          Kind = "SENTENCE_START"
	KindEnd            Kind = "SENTENCE_END"
)

const (
	StartText = "<SENTENCE_START>"
	EndText   = "<SENTENCE_END>"

	// StartOffset and EndOffset are the virtual positions of the sentinels,
	// before the first and after the last byte of any input.
	StartOffset = -1
	EndOffset   = math.MaxInt
)

type Token struct {
	Text string
	Kind Kind
}

func New(text string, kind Kind) Token {
	return Token{Text: text, Kind: kind}
}

func Start() Token {
	return Token{Text: StartText, Kind: KindStart}
}

func End() Token {
	return Token{Text: EndText, Kind: KindEnd}
}

func (t Token) IsSentinel() bool {
	return t.Kind == KindStart || t.Kind == KindEnd
}

func (t Token) IsWhitespace() bool {
	return t.Kind == KindWhitespace
}

func (t Token) IsComment() bool {
	switch t.Kind {
	case KindCommentBlock, KindCommentLine, KindCommentJavadoc:
		return true
	}
	return false
}

func (t Token) String() string {
	if t.Kind == "" {
		return t.Text
	}
	return fmt.Sprintf("%s (%s)", t.Text, t.Kind)
}
