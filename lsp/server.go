// Package lsp serves name bindings to editors over the Language Server
// Protocol. Placing the cursor on a name highlights every occurrence
// bound to the same declaration, and hovering shows the declaration
// features of the binding.
package lsp

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/codemining/binding"
)

const lsName = "codemining"

var log = commonlog.GetLogger("codemining.lsp")

type Server struct {
	documents *Documents
	extractor *binding.Extractor
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewServer returns a server analysing documents with e.
func NewServer(version string, e *binding.Extractor) *Server {
	s := &Server{
		documents: NewDocuments(e),
		extractor: e,
		version:   version,
	}

	s.handler = protocol.Handler{
		Initialize:                    s.initialize,
		Initialized:                   s.initialized,
		Shutdown:                      s.shutdown,
		SetTrace:                      s.setTrace,
		TextDocumentDidOpen:           s.textDocumentDidOpen,
		TextDocumentDidChange:         s.textDocumentDidChange,
		TextDocumentDidClose:          s.textDocumentDidClose,
		TextDocumentDocumentHighlight: s.textDocumentDocumentHighlight,
		TextDocumentHover:             s.textDocumentHover,
	}

	s.server = server.NewServer(&s.handler, lsName, false)
	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) Documents() *Documents {
	return s.documents
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.documents.Update(params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.documents.Update(params.TextDocument.URI, []byte(whole.Text))
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.documents.Remove(params.TextDocument.URI)
	return nil
}

func (s *Server) textDocumentDocumentHighlight(ctx *glsp.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	return s.Highlights(params.TextDocument.URI, params.Position), nil
}

// Highlights returns the occurrences of the binding under pos. The
// declaration is reported as a write, every other occurrence as a read.
func (s *Server) Highlights(uri string, pos protocol.Position) []protocol.DocumentHighlight {
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil
	}
	b, ok := doc.BindingAt(offsetAt(doc.Content, pos))
	if !ok {
		return nil
	}
	highlights := make([]protocol.DocumentHighlight, 0, len(b.Nodes))
	for _, id := range b.Nodes {
		n := doc.Tree.Node(id)
		kind := protocol.DocumentHighlightKindRead
		if id == b.Decl {
			kind = protocol.DocumentHighlightKindWrite
		}
		highlights = append(highlights, protocol.DocumentHighlight{
			Range: rangeOf(doc.Content, n.Start, n.End()),
			Kind:  &kind,
		})
	}
	return highlights
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	b, ok := doc.BindingAt(offsetAt(doc.Content, params.Position))
	if !ok {
		return nil, nil
	}
	name := doc.Tree.Node(b.Nodes[0]).Name
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**: %d occurrences\n", name, len(b.Occurrences))
	for _, f := range s.extractor.Language.Features(doc.Tree, s.extractor.Kind, b) {
		fmt.Fprintf(&sb, "\n- `%s`", f)
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: sb.String(),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
