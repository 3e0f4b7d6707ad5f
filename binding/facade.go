package binding

import (
	"gitlab.com/tozd/go/errors"

	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
	"github.com/dhamidi/codemining/tokenize"
)

// Extractor turns source text into TokenNameBindings. The tokenizer must
// split the source the same way the language's parser does, so that
// every name starts at a token.
type Extractor struct {
	Tokenizer tokenize.Tokenizer
	Language  Language
	// Resolver binds variables; it is unused by the site-based kinds.
	Resolver Resolver
	Kind     Kind
	// Features attaches declaration features to every binding.
	Features bool
	// IncludeOverrides keeps methods annotated with @Override among
	// method declaration bindings.
	IncludeOverrides bool
}

// NewExtractor returns an extractor for variable bindings.
func NewExtractor(tok tokenize.Tokenizer, lang Language, r Resolver) *Extractor {
	return &Extractor{
		Tokenizer:        tok,
		Language:         lang,
		Resolver:         r,
		Kind:             Variables,
		IncludeOverrides: true,
	}
}

// FromSource extracts the bindings of a complete source file.
func (e *Extractor) FromSource(src []byte) ([]TokenNameBinding, error) {
	stream := e.Tokenizer.TokenizeWithPositions(src)
	return e.extract(e.Language.Parse(src), stream, false)
}

// FromSnippet extracts the bindings of a fragment such as a method body
// or an expression.
func (e *Extractor) FromSnippet(src []byte) ([]TokenNameBinding, error) {
	stream := e.Tokenizer.TokenizeWithPositions(src)
	return e.extract(e.Language.ParseSnippet(src), stream, true)
}

// FromTree extracts the bindings of an already parsed tree whose tokens
// are stream. The stream must be closed.
func (e *Extractor) FromTree(t *syntax.Tree, stream *token.Stream) ([]TokenNameBinding, error) {
	if !stream.Closed() {
		return nil, errors.WithStack(ErrOpenStream)
	}
	return e.extract(t, stream, false)
}

// Bindings returns the raw bindings of t without converting them to
// token form.
func (e *Extractor) Bindings(t *syntax.Tree, ix *token.Index, snippet bool) ([]Binding, error) {
	switch {
	case e.Kind == Variables || e.Kind == "":
		if e.Resolver == nil {
			return nil, errors.New("no resolver configured")
		}
		if snippet {
			return e.Resolver.ResolveSnippet(t, ix)
		}
		return e.Resolver.Resolve(t, ix)
	case e.Kind.grouped():
		return group(t, ix, e.Language.Sites(t, e.Kind, e.IncludeOverrides), true)
	}
	for _, k := range kinds {
		if k == e.Kind {
			return group(t, ix, e.Language.Sites(t, e.Kind, e.IncludeOverrides), false)
		}
	}
	return nil, errors.WithDetails(ErrUnknownKind, "kind", string(e.Kind))
}

func (e *Extractor) extract(t *syntax.Tree, stream *token.Stream, snippet bool) ([]TokenNameBinding, error) {
	bindings, err := e.Bindings(t, stream.Index(), snippet)
	if err != nil {
		return nil, err
	}
	tokens := stream.Texts()
	out := make([]TokenNameBinding, 0, len(bindings))
	for _, b := range bindings {
		tnb := TokenNameBinding{SourceTokens: tokens, Indices: b.Occurrences}
		if e.Features {
			fs := FeatureSet{}
			fs.Add(e.Language.Features(t, e.Kind, b)...)
			tnb.Features = fs.Sorted()
		}
		out = append(out, tnb)
	}
	return out, nil
}

// group turns sites into bindings, one per site or one per key.
func group(t *syntax.Tree, ix *token.Index, sites []Site, byKey bool) ([]Binding, error) {
	var bindings []*Binding
	keyed := map[string]*Binding{}
	for _, s := range sites {
		index, err := lookup(t, ix, s.Node)
		if err != nil {
			return nil, err
		}
		b := keyed[s.Key]
		if b == nil || !byKey {
			decl := syntax.NoNode
			if !byKey {
				decl = s.Node
			}
			b = &Binding{ID: len(bindings), Decl: decl}
			bindings = append(bindings, b)
			keyed[s.Key] = b
		}
		b.add(s.Node, index)
	}
	return finish(bindings), nil
}
