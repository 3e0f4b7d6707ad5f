// Package whitespace converts raw whitespace runs into symbolic tokens that
// track indentation changes, and back.
//
// A run without a newline becomes a flat symbol WS_s<spaces>t<tabs>. A run
// with newlines becomes WS_INDENTs<S>t<T>n<N> or WS_DEDENTs<S>t<T>n<N>,
// where S and T are the change in indentation relative to the previous
// run that contained a newline. Encoding and decoding are stateful and must
// each see a whole stream in order.
package whitespace

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ErrMalformed reports a symbol that does not match its encoding grammar.
var ErrMalformed = errors.Base("malformed whitespace symbol")

const Prefix = "WS_"

type Form int

const (
	Flat Form = iota
	Indent
	Dedent
)

func (f Form) String() string {
	switch f {
	case Flat:
		return "flat"
	case Indent:
		return "indent"
	case Dedent:
		return "dedent"
	}
	return "unknown"
}

// Descriptor counts the significant characters of a whitespace run.
type Descriptor struct {
	Spaces   int
	Tabs     int
	Newlines int
}

// Count describes run. Carriage returns and any other characters are
// ignored.
func Count(run string) Descriptor {
	var d Descriptor
	for i := 0; i < len(run); i++ {
		switch run[i] {
		case ' ':
			d.Spaces++
		case '\t':
			d.Tabs++
		case '\n':
			d.Newlines++
		}
	}
	return d
}

// Symbol is one encoded whitespace token. For Indent and Dedent the
// spaces and tabs are unsigned deltas.
type Symbol struct {
	Form Form
	Descriptor
}

func (s Symbol) String() string {
	switch s.Form {
	case Indent:
		return fmt.Sprintf("WS_INDENTs%dt%dn%d", s.Spaces, s.Tabs, s.Newlines)
	case Dedent:
		return fmt.Sprintf("WS_DEDENTs%dt%dn%d", s.Spaces, s.Tabs, s.Newlines)
	}
	return fmt.Sprintf("WS_s%dt%d", s.Spaces, s.Tabs)
}

var (
	indentPattern = regexp.MustCompile(`^WS_INDENTs(\d+)t(\d+)n(\d+)$`)
	dedentPattern = regexp.MustCompile(`^WS_DEDENTs(\d+)t(\d+)n(\d+)$`)
	flatPattern   = regexp.MustCompile(`^WS_s(\d+)t(\d+)$`)
)

// IsSymbol reports whether text looks like an encoded whitespace token.
func IsSymbol(text string) bool {
	return strings.HasPrefix(text, Prefix)
}

// Parse decodes the textual form of a symbol.
func Parse(text string) (Symbol, error) {
	var (
		form    Form
		pattern *regexp.Regexp
	)
	switch {
	case strings.HasPrefix(text, "WS_INDENT"):
		form, pattern = Indent, indentPattern
	case strings.HasPrefix(text, "WS_DEDENT"):
		form, pattern = Dedent, dedentPattern
	default:
		form, pattern = Flat, flatPattern
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Symbol{}, errors.WithDetails(
			errors.Errorf("%w: %q", ErrMalformed, text),
			"token", text,
		)
	}
	nums := make([]int, len(m)-1)
	for i, g := range m[1:] {
		n, err := strconv.Atoi(g)
		if err != nil {
			return Symbol{}, errors.Errorf("%w: %q: %s", ErrMalformed, text, err.Error())
		}
		nums[i] = n
	}
	s := Symbol{Form: form}
	s.Spaces, s.Tabs = nums[0], nums[1]
	if form != Flat {
		s.Newlines = nums[2]
	}
	return s, nil
}

// Encoder turns raw whitespace runs into symbols. The zero value starts at
// zero indentation.
type Encoder struct {
	spaces int
	tabs   int
}

// Encode converts one run and updates the running indentation when the
// run contains a newline.
func (e *Encoder) Encode(run string) Symbol {
	d := Count(strings.ReplaceAll(run, "\r", ""))
	if d.Newlines == 0 {
		return Symbol{Form: Flat, Descriptor: d}
	}
	ds, dt := d.Spaces-e.spaces, d.Tabs-e.tabs
	e.spaces, e.tabs = d.Spaces, d.Tabs
	if ds >= 0 && dt >= 0 {
		return Symbol{Form: Indent, Descriptor: Descriptor{Spaces: ds, Tabs: dt, Newlines: d.Newlines}}
	}
	// A change with mixed signs cannot be expressed exactly and is
	// emitted as a dedent of the absolute deltas.
	return Symbol{Form: Dedent, Descriptor: Descriptor{Spaces: abs(ds), Tabs: abs(dt), Newlines: d.Newlines}}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Decoder turns symbols back into whitespace. The zero value starts at
// zero indentation.
type Decoder struct {
	spaces int
	tabs   int
}

// Decode parses text and returns the whitespace it stands for.
func (d *Decoder) Decode(text string) (string, error) {
	s, err := Parse(text)
	if err != nil {
		return "", err
	}
	return d.DecodeSymbol(s), nil
}

// DecodeSymbol returns newlines, then spaces, then tabs. Indent and Dedent
// emit the resulting absolute indentation.
func (d *Decoder) DecodeSymbol(s Symbol) string {
	out := s.Descriptor
	switch s.Form {
	case Indent:
		d.spaces += s.Spaces
		d.tabs += s.Tabs
		out.Spaces, out.Tabs = d.spaces, d.tabs
	case Dedent:
		d.spaces = max(d.spaces-s.Spaces, 0)
		d.tabs = max(d.tabs-s.Tabs, 0)
		out.Spaces, out.Tabs = d.spaces, d.tabs
	default:
		out.Newlines = 0
	}
	var sb strings.Builder
	sb.WriteString(strings.Repeat("\n", out.Newlines))
	sb.WriteString(strings.Repeat(" ", out.Spaces))
	sb.WriteString(strings.Repeat("\t", out.Tabs))
	return sb.String()
}

// EncodeAll encodes runs in order with a fresh encoder.
func EncodeAll(runs []string) []Symbol {
	var e Encoder
	out := make([]Symbol, len(runs))
	for i, r := range runs {
		out[i] = e.Encode(r)
	}
	return out
}

// DecodeAll decodes symbols in order with a fresh decoder.
func DecodeAll(symbols []string) ([]string, error) {
	var d Decoder
	out := make([]string, len(symbols))
	for i, s := range symbols {
		ws, err := d.Decode(s)
		if err != nil {
			return nil, errors.Errorf("symbol %d: %w", i, err)
		}
		out[i] = ws
	}
	return out, nil
}
