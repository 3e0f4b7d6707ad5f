package lsp

import (
	"sync"

	"github.com/dhamidi/codemining/binding"
	"github.com/dhamidi/codemining/syntax"
	"github.com/dhamidi/codemining/token"
)

// Document is an open file together with its analysis.
type Document struct {
	URI      string
	Content  []byte
	Tree     *syntax.Tree
	Stream   *token.Stream
	Bindings []binding.Binding
	// Err is set when bindings could not be computed. The tree and the
	// tokens are still usable.
	Err error
}

// BindingAt returns the binding containing the name under offset.
func (d *Document) BindingAt(offset int) (binding.Binding, bool) {
	name := d.Tree.NameAt(offset)
	if name == syntax.NoNode {
		return binding.Binding{}, false
	}
	for _, b := range d.Bindings {
		for _, n := range b.Nodes {
			if n == name {
				return b, true
			}
		}
	}
	return binding.Binding{}, false
}

// Documents holds the open documents, analysed on every update.
type Documents struct {
	mu        sync.RWMutex
	extractor *binding.Extractor
	files     map[string]*Document
}

func NewDocuments(e *binding.Extractor) *Documents {
	return &Documents{
		extractor: e,
		files:     make(map[string]*Document),
	}
}

// Update replaces the content of uri and analyses it.
func (d *Documents) Update(uri string, content []byte) *Document {
	doc := d.analyse(uri, content)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.files[uri] = doc
	return doc
}

func (d *Documents) analyse(uri string, content []byte) *Document {
	doc := &Document{
		URI:     uri,
		Content: content,
		Tree:    d.extractor.Language.Parse(content),
		Stream:  d.extractor.Tokenizer.TokenizeWithPositions(content),
	}
	doc.Bindings, doc.Err = d.extractor.Bindings(doc.Tree, doc.Stream.Index(), false)
	if doc.Err != nil {
		log.Warningf("%s: %s", uri, doc.Err)
	}
	return doc
}

func (d *Documents) Remove(uri string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, uri)
}

func (d *Documents) Get(uri string) *Document {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.files[uri]
}
