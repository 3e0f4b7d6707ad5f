package java

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
)

// TypePrefix starts the text of a variable token replaced by its type.
const TypePrefix = "var%"

// DepthTokenizer suffixes every token with the depth of the deepest
// syntax node covering it, as in int_d5. The compilation unit has depth
// one. Whitespace tokens and the sentinels keep their text.
type DepthTokenizer struct {
	base *Tokenizer
}

func NewDepthTokenizer(base *Tokenizer) *DepthTokenizer {
	return &DepthTokenizer{base: base}
}

func (d *DepthTokenizer) FileFilter() string {
	return d.base.FileFilter()
}

func (d *DepthTokenizer) IdentifierKind() token.Kind {
	return d.base.IdentifierKind()
}

// TokenFor classifies text like the base tokenizer. A single piece of
// text has no tree to take a depth from.
func (d *DepthTokenizer) TokenFor(text string) token.Token {
	return d.base.TokenFor(text)
}

func (d *DepthTokenizer) Tokenize(src []byte) []token.Token {
	return d.TokenizeWithPositions(src).Tokens()
}

func (d *DepthTokenizer) TokenizeWithPositions(src []byte) *token.Stream {
	s := d.base.TokenizeWithPositions(src)
	depths := nodeDepths(FromSource(src), s)
	return rewrite(s, func(i int, tok token.Token) token.Token {
		if depths[i] > 0 && !tok.IsWhitespace() {
			tok.Text = fmt.Sprintf("%s_d%d", tok.Text, depths[i])
		}
		return tok
	})
}

// nodeDepths returns, for every token of s, the depth of the deepest
// node of t whose span contains the token start, or zero.
func nodeDepths(t *syntax.Tree, s *token.Stream) []int {
	depths := make([]int, s.Len())
	if t.Root == syntax.NoNode {
		return depths
	}
	items := s.Items()
	depth := 0
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		depth++
		n := t.Node(id)
		first := sort.Search(len(items), func(i int) bool { return items[i].Offset >= n.Start })
		for i := first; i < len(items) && items[i].Offset < n.End(); i++ {
			depths[i] = depth
		}
		return true
	}, func(syntax.NodeID) {
		depth--
	})
	return depths
}

// TypeTokenizer replaces variable tokens with their declared type, as in
// var%List<String>%. Field declarations, parameters and local variables
// are typed at their declaration; later uses of a parameter or local
// with the same spelling are typed too. Scopes are not tracked, so the
// result is a best effort.
type TypeTokenizer struct {
	base *Tokenizer
}

func NewTypeTokenizer(base *Tokenizer) *TypeTokenizer {
	return &TypeTokenizer{base: base}
}

func (tt *TypeTokenizer) FileFilter() string {
	return tt.base.FileFilter()
}

func (tt *TypeTokenizer) IdentifierKind() token.Kind {
	return tt.base.IdentifierKind()
}

func (tt *TypeTokenizer) TokenFor(text string) token.Token {
	if strings.HasPrefix(text, TypePrefix) {
		return token.New(text, token.KindIdentifier)
	}
	return tt.base.TokenFor(text)
}

func (tt *TypeTokenizer) Tokenize(src []byte) []token.Token {
	return tt.TokenizeWithPositions(src).Tokens()
}

func (tt *TypeTokenizer) TokenizeWithPositions(src []byte) *token.Stream {
	s := tt.base.TokenizeWithPositions(src)
	types := variableTypes(FromSource(src))
	return rewrite(s, func(i int, tok token.Token) token.Token {
		if typ, ok := types[s.At(i).Offset]; ok {
			tok.Text = TypePrefix + typ + "%"
		}
		return tok
	})
}

// variableTypes maps the start offset of every typed variable name to
// the spelling of its type.
func variableTypes(t *syntax.Tree) map[int]string {
	types := map[int]string{}
	if t.Root == syntax.NoNode {
		return types
	}
	locals := map[string]string{}
	declare := func(decl syntax.NodeID, local bool) {
		typ := typeOf(t, decl)
		if typ == syntax.NoNode {
			return
		}
		spelled := t.CompactText(typ)
		for _, name := range t.Node(decl).Declares {
			n := t.Node(name)
			types[n.Start] = spelled
			if local {
				locals[n.Name] = spelled
			}
		}
	}
	t.Walk(t.Root, func(id syntax.NodeID) bool {
		n := t.Node(id)
		switch n.Kind {
		case kindFieldDecl:
			declare(id, false)
		case kindLocalVar:
			declare(id, true)
		case kindParameter:
			declare(id, true)
			return false
		}
		if n.IsName() && n.Namespace == syntax.NamespaceValue {
			if typ, ok := locals[n.Name]; ok {
				types[n.Start] = typ
			}
		}
		return true
	}, nil)
	return types
}

// rewrite copies s, passing every token except the sentinels through f.
func rewrite(s *token.Stream, f func(i int, tok token.Token) token.Token) *token.Stream {
	out := token.NewStream()
	for i := 1; i < s.Len()-1; i++ {
		p := s.At(i)
		if err := out.Append(p.Offset, f(i, p.Token)); err != nil {
			log.Warningf("dropping token %q: %s", p.Token.Text, err)
		}
	}
	out.Close()
	return out
}
