package token

import (
	"bytes"

	"github.com/apparentlymart/go-textseg/v13/textseg"
)

const DefaultTabWidth = 4

// ColumnConfig controls column computation. Tab width has no effect on
// token boundaries or on whitespace encoding.
type ColumnConfig struct {
	TabWidth int
}

func DefaultColumnConfig() ColumnConfig {
	return ColumnConfig{TabWidth: DefaultTabWidth}
}

func (c ColumnConfig) tabWidth() int {
	if c.TabWidth <= 0 {
		return DefaultTabWidth
	}
	return c.TabWidth
}

// Column returns the zero-based display column of offset in src. Each
// grapheme cluster counts as one column and each tab as TabWidth columns.
func (c ColumnConfig) Column(src []byte, offset int) int {
	if offset <= 0 {
		return 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	lineStart := bytes.LastIndexByte(src[:offset], '\n') + 1
	return c.Width(src[lineStart:offset])
}

// Width returns the number of display columns text occupies on one line.
func (c ColumnConfig) Width(text []byte) int {
	n, err := textseg.TokenCount(text, textseg.ScanGraphemeClusters)
	if err != nil {
		n = len(text)
	}
	return n + (c.tabWidth()-1)*bytes.Count(text, []byte{'\t'})
}

// Line returns the one-based line number of offset in src.
func Line(src []byte, offset int) int {
	if offset <= 0 {
		return 1
	}
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}

// Annotated is a token with its display position.
type Annotated struct {
	Token  Token
	Offset int
	Line   int
	Column int
}

// Annotate attaches line and column data to every token of s. Sentinels
// get line 0 and column 0.
func (c ColumnConfig) Annotate(src []byte, s *Stream) []Annotated {
	out := make([]Annotated, 0, s.Len())
	for _, p := range s.Items() {
		a := Annotated{Token: p.Token, Offset: p.Offset}
		if !p.Token.IsSentinel() {
			a.Line = Line(src, p.Offset)
			a.Column = c.Column(src, p.Offset)
		}
		out = append(out, a)
	}
	return out
}
