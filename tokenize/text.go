package tokenize

import (
	"unicode"
	"unicode/utf8"

	"github.com/apparentlymart/go-textseg/v13/textseg"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/codemining/token"
	"github.com/dhamidi/codemining/whitespace"
)

var log = commonlog.GetLogger("codemining.tokenize")

const DefaultTextFilter = "**/*.txt"

// Text tokenizes prose and indentation structured text. Words become
// identifiers, numbers literals and every other grapheme cluster a token
// of its own. Whitespace runs are kept as codec symbols so that the
// indentation structure survives.
type Text struct {
	filter string
}

func NewText(filter string) *Text {
	if filter == "" {
		filter = DefaultTextFilter
	}
	return &Text{filter: filter}
}

func (t *Text) FileFilter() string {
	return t.filter
}

func (t *Text) IdentifierKind() token.Kind {
	return token.KindIdentifier
}

func (t *Text) TokenFor(text string) token.Token {
	r, _ := utf8.DecodeRuneInString(text)
	switch {
	case text == "":
		return token.New(text, token.KindLiteral)
	case isSpace(r):
		return token.New(text, token.KindWhitespace)
	case unicode.IsDigit(r):
		return token.New(text, token.KindLiteral)
	case isWord(r):
		return token.New(text, token.KindIdentifier)
	}
	return token.New(text, token.Kind(text))
}

func (t *Text) Tokenize(src []byte) []token.Token {
	return t.TokenizeWithPositions(src).Tokens()
}

func (t *Text) TokenizeWithPositions(src []byte) *token.Stream {
	s := token.NewStream()
	var enc whitespace.Encoder
	clusters, err := textseg.AllTokens(src, textseg.ScanGraphemeClusters)
	if err != nil {
		log.Warningf("segmenting text: %s", err)
		s.Close()
		return s
	}

	offset := 0
	for i := 0; i < len(clusters); {
		start := offset
		first, _ := utf8.DecodeRune(clusters[i])
		j := i + 1
		offset += len(clusters[i])
		if isSpace(first) || isWord(first) {
			for j < len(clusters) {
				r, _ := utf8.DecodeRune(clusters[j])
				if isSpace(first) != isSpace(r) || !isSpace(r) && !isWord(r) {
					break
				}
				offset += len(clusters[j])
				j++
			}
		}
		text := string(src[start:offset])
		tok := t.TokenFor(text)
		if tok.IsWhitespace() {
			tok.Text = enc.Encode(text).String()
		}
		if err := s.Append(start, tok); err != nil {
			log.Warningf("dropping token %q: %s", text, err)
		}
		i = j
	}
	s.Close()
	return s
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
