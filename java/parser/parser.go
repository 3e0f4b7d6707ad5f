package parser

import (
	"fmt"
	"io"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

// WithComments keeps comment tokens so that Comments can return them.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

type parseFunc func(*Parser) *Node

// Parser is an error-tolerant recursive descent parser. It always
// produces a tree; syntax errors become KindError nodes and are
// collected in Errors.
type Parser struct {
	file            string
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	comments        []Token
	pos             int
	entry           parseFunc
	incomplete      bool
	errors          []*Error
	tree            *Node
	done            bool
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  entry,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseCompilationUnit parses a complete Java source file.
func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseCompilationUnit, opts)
}

// ParseClassBody parses a sequence of class members without the
// surrounding braces. The result is a KindClassBody node.
func ParseClassBody(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseMembersToEOF, opts)
}

// ParseStatements parses a sequence of block statements without the
// surrounding braces. The result is a KindBlock node.
func ParseStatements(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseStatementsToEOF, opts)
}

// ParseExpression parses a single expression.
func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseExpressionToEOF, opts)
}

func (p *Parser) run() {
	if p.done {
		return
	}
	p.done = true
	data, err := io.ReadAll(p.reader)
	if err != nil {
		p.errors = append(p.errors, &Error{Message: fmt.Sprintf("read: %v", err)})
		p.incomplete = true
		return
	}
	p.input = data
	p.tokenize()
	p.tree = p.entry(p)
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.input, p.file)
	lexer.HandleErrors(func(pos Position, msg string) {
		p.errors = append(p.errors, &Error{Pos: pos, Message: msg})
	})
	for {
		tok := lexer.NextToken()
		switch {
		case tok.Kind == TokenWhitespace, tok.Kind == TokenError:
			continue
		case tok.Kind.IsComment():
			if p.includeComments {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return
		}
	}
}

// Finish returns the parsed tree, or nil if the input ended before the
// tree was complete.
func (p *Parser) Finish() *Node {
	p.run()
	if p.incomplete {
		return nil
	}
	return p.tree
}

// Tree returns the parsed tree even when it is incomplete.
func (p *Parser) Tree() *Node {
	p.run()
	return p.tree
}

// Errors returns the lexical and syntax errors in source order of
// discovery.
func (p *Parser) Errors() []*Error {
	p.run()
	return p.errors
}

// Incomplete reports whether the input ended in the middle of a
// construct.
func (p *Parser) Incomplete() bool {
	p.run()
	return p.incomplete
}

func (p *Parser) Comments() []Token {
	p.run()
	return p.comments
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if len(p.tokens) == 0 {
		return Token{Kind: TokenEOF}
	}
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

// checkWord reports whether the current token is the identifier word,
// used for contextual keywords.
func (p *Parser) checkWord(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == word
}

func (p *Parser) expect(kind TokenKind) *Token {
	if p.check(kind) {
		tok := p.advance()
		return &tok
	}
	p.fail(fmt.Sprintf("expected %s, got %s", kind, p.describe()), kind)
	return nil
}

func (p *Parser) isIdentifierLike() bool {
	return p.check(TokenIdent)
}

// identifier consumes an identifier into a leaf node. A missing
// identifier is reported and yields nil.
func (p *Parser) identifier() *Node {
	if !p.isIdentifierLike() {
		p.fail(fmt.Sprintf("expected identifier, got %s", p.describe()), TokenIdent)
		return nil
	}
	return p.leaf(KindIdentifier)
}

func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

func (p *Parser) describe() string {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// fail records a syntax error at the current token. Consecutive errors
// at the same position are collapsed into one.
func (p *Parser) fail(msg string, expected ...TokenKind) *Error {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos.Offset == tok.Span.Start.Offset {
		return p.errors[n-1]
	}
	err := &Error{
		Pos:      tok.Span.Start,
		Message:  msg,
		Expected: expected,
		Got:      tok,
	}
	p.errors = append(p.errors, err)
	return err
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end; when nothing was consumed it skips one token.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

// startNodeAt starts a node that begins where first begins.
func (p *Parser) startNodeAt(kind NodeKind, first *Node) *Node {
	node := &Node{Kind: kind, Span: Span{Start: first.Span.Start}}
	node.AddChild(first)
	return node
}

func (p *Parser) finishNode(n *Node) *Node {
	n.Span.End = n.Span.Start
	if p.pos > 0 {
		if end := p.tokens[p.pos-1].Span.End; end.Offset > n.Span.Start.Offset {
			n.Span.End = end
		}
	}
	return n
}

// errorNode records an error, skips the offending token and then
// everything up to one of recoverTo.
func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	err := p.fail(msg, expected...)
	node := &Node{
		Kind:  KindError,
		Span:  tok.Span,
		Error: err,
	}
	p.recoverTo(recoverTo)
	return node
}

// missing records an error for a construct that is absent and returns
// an empty error node without consuming input.
func (p *Parser) missing(msg string, expected ...TokenKind) *Node {
	pos := p.peek().Span.Start
	return &Node{
		Kind:  KindError,
		Span:  Span{Start: pos, End: pos},
		Error: p.fail(msg, expected...),
	}
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) && !p.match(kinds...) {
		p.advance()
	}
}

// speculate runs f and rewinds to where it started. Lookahead
// functions only skip tokens and never record errors.
func (p *Parser) speculate(f func() bool) bool {
	saved := p.pos
	ok := f()
	p.pos = saved
	return ok
}

// expectGT consumes a closing angle bracket, splitting shift and
// comparison operators that start with one.
func (p *Parser) expectGT() bool {
	var rest TokenKind
	switch p.peek().Kind {
	case TokenGT:
		p.advance()
		return true
	case TokenShr:
		rest = TokenGT
	case TokenUShr:
		rest = TokenShr
	case TokenGE:
		rest = TokenAssign
	case TokenShrAssign:
		rest = TokenGE
	case TokenUShrAssign:
		rest = TokenShrAssign
	default:
		p.fail(fmt.Sprintf("expected >, got %s", p.describe()), TokenGT)
		return false
	}
	p.splitToken(TokenGT, rest)
	p.advance()
	return true
}

// splitToken replaces the current token by a one-character token of
// kind first followed by the remainder of kind rest.
func (p *Parser) splitToken(first, rest TokenKind) {
	tok := p.tokens[p.pos]
	mid := tok.Span.Start
	mid.Offset++
	mid.Column++
	head := Token{Kind: first, Literal: tok.Literal[:1], Span: Span{Start: tok.Span.Start, End: mid}}
	tail := Token{Kind: rest, Literal: tok.Literal[1:], Span: Span{Start: mid, End: tok.Span.End}}
	p.tokens = append(p.tokens[:p.pos+1], p.tokens[p.pos:]...)
	p.tokens[p.pos] = head
	p.tokens[p.pos+1] = tail
}

func (p *Parser) parseMembersToEOF() *Node {
	node := p.startNode(KindClassBody)
	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseMember())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseStatementsToEOF() *Node {
	node := p.startNode(KindBlock)
	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseExpressionToEOF() *Node {
	expr := p.parseExpression()
	if !p.check(TokenEOF) {
		p.fail(fmt.Sprintf("unexpected %s after expression", p.describe()))
	}
	return expr
}
