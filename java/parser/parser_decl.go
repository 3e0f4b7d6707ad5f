package parser

import "fmt"

var memberRecovery = []TokenKind{TokenSemicolon, TokenRBrace, TokenPublic, TokenPrivate, TokenProtected, TokenStatic, TokenAt}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)
	if p.check(TokenPackage) || p.check(TokenAt) && p.speculate(func() bool {
		p.skipAnnotations()
		return p.check(TokenPackage)
	}) {
		node.AddChild(p.parsePackageDecl())
	}
	for p.check(TokenImport) {
		node.AddChild(p.parseImportDecl())
	}
	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.accept(TokenSemicolon) {
			continue
		}
		node.AddChild(p.parseTypeDecl())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)
	if p.check(TokenStatic) {
		node.AddChild(p.leaf(KindModifier))
	}
	node.AddChild(p.parseQualifiedName())
	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		node.AddChild(p.leaf(KindOperator))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(p.identifier())
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		node.AddChild(p.leaf(KindIdentifier))
	}
	return p.finishNode(node)
}

// parseTypeDecl parses modifiers followed by a class-like declaration.
func (p *Parser) parseTypeDecl() *Node {
	node := p.startNode(KindError)
	node.AddChild(p.parseModifiers())
	if !p.typeDeclRest(node) {
		return p.errorNode(fmt.Sprintf("expected type declaration, got %s", p.describe()),
			[]TokenKind{TokenClass, TokenInterface, TokenEnum, TokenAt, TokenPublic},
			TokenClass, TokenInterface, TokenEnum)
	}
	return node
}

// typeDeclRest parses the rest of a class-like declaration into node,
// whose modifiers have been parsed. It reports false when no
// declaration starts at the current token.
func (p *Parser) typeDeclRest(node *Node) bool {
	switch {
	case p.check(TokenClass):
		node.Kind = KindClassDecl
		p.advance()
		node.AddChild(p.identifier())
		p.parseTypeHeader(node, KindExtendsClause)
		node.AddChild(p.parseClassBody())
	case p.check(TokenInterface):
		node.Kind = KindInterfaceDecl
		p.advance()
		node.AddChild(p.identifier())
		p.parseTypeHeader(node, KindExtendsClause)
		node.AddChild(p.parseClassBody())
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		node.Kind = KindAnnotationDecl
		p.advance()
		p.advance()
		node.AddChild(p.identifier())
		node.AddChild(p.parseClassBody())
	case p.check(TokenEnum):
		node.Kind = KindEnumDecl
		p.advance()
		node.AddChild(p.identifier())
		p.parseTypeHeader(node, KindImplementsClause)
		node.AddChild(p.parseEnumBody())
	case p.isRecordDecl():
		node.Kind = KindRecordDecl
		p.advance()
		node.AddChild(p.identifier())
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeParameters())
		}
		p.parseParameters(node)
		p.parseTypeHeader(node, KindImplementsClause)
		node.AddChild(p.parseClassBody())
	default:
		return false
	}
	p.finishNode(node)
	return true
}

func (p *Parser) isRecordDecl() bool {
	return p.checkWord("record") && p.peekN(1).Kind == TokenIdent &&
		(p.peekN(2).Kind == TokenLParen || p.peekN(2).Kind == TokenLT)
}

// parseTypeHeader parses type parameters and the extends, implements
// and permits clauses, in whatever order they appear.
func (p *Parser) parseTypeHeader(node *Node, extendsKind NodeKind) {
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	for {
		switch {
		case p.check(TokenExtends):
			node.AddChild(p.parseTypeList(KindExtendsClause))
		case p.check(TokenImplements):
			node.AddChild(p.parseTypeList(KindImplementsClause))
		case p.checkWord("permits"):
			node.AddChild(p.parseTypeList(KindPermitsClause))
		default:
			return
		}
	}
}

func (p *Parser) parseTypeList(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	node.AddChild(p.parseType())
	for p.accept(TokenComma) {
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) isModifierStart() bool {
	switch p.peek().Kind {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic, TokenAbstract,
		TokenFinal, TokenNative, TokenSynchronized, TokenTransient, TokenVolatile,
		TokenStrictfp, TokenNonSealed:
		return true
	case TokenDefault:
		next := p.peekN(1).Kind
		return next != TokenColon && next != TokenArrow
	case TokenAt:
		return p.peekN(1).Kind != TokenInterface
	case TokenIdent:
		if p.peek().Literal != "sealed" {
			return false
		}
		next := p.peekN(1).Kind
		return next == TokenClass || next == TokenInterface || next.IsKeyword() || next == TokenAt
	}
	return false
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for p.isModifierStart() {
		if p.check(TokenAt) {
			node.AddChild(p.parseAnnotation())
			continue
		}
		node.AddChild(p.leaf(KindModifier))
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())
	if p.accept(TokenLParen) {
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			if p.isIdentifierLike() && p.peekN(1).Kind == TokenAssign {
				node.AddChild(p.leaf(KindIdentifier))
				p.advance()
			}
			node.AddChild(p.parseElementValue())
			if !p.accept(TokenComma) {
				break
			}
			progress()
		}
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

func (p *Parser) parseElementValue() *Node {
	switch {
	case p.check(TokenAt):
		return p.parseAnnotation()
	case p.check(TokenLBrace):
		node := p.startNode(KindArrayInit)
		p.advance()
		for !p.check(TokenRBrace) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseElementValue())
			if !p.accept(TokenComma) {
				break
			}
			progress()
		}
		p.expect(TokenRBrace)
		return p.finishNode(node)
	}
	return p.parseTernary()
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)
	for {
		param := p.startNode(KindTypeParameter)
		for p.check(TokenAt) {
			param.AddChild(p.parseAnnotation())
		}
		param.AddChild(p.identifier())
		if p.accept(TokenExtends) {
			param.AddChild(p.parseType())
			for p.accept(TokenBitAnd) {
				param.AddChild(p.parseType())
			}
		}
		node.AddChild(p.finishNode(param))
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expectGT()
	return p.finishNode(node)
}

// parseType parses a possibly annotated, parameterized and array type.
func (p *Parser) parseType() *Node {
	typ := p.parseNonArrayType()
	if p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		arr := p.startNodeAt(KindArrayType, typ)
		arr.AddChild(p.parseDims())
		return p.finishNode(arr)
	}
	return typ
}

func (p *Parser) parseNonArrayType() *Node {
	node := p.startNode(KindType)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	switch {
	case p.peek().Kind.IsPrimitiveType(), p.check(TokenVoid):
		tok := p.advance()
		node.Token = &tok
	case p.isIdentifierLike():
		for {
			node.AddChild(p.leaf(KindIdentifier))
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
			if !p.check(TokenDot) || p.peekN(1).Kind != TokenIdent && p.peekN(1).Kind != TokenAt {
				break
			}
			p.advance()
			for p.check(TokenAt) {
				node.AddChild(p.parseAnnotation())
			}
			if !p.isIdentifierLike() {
				break
			}
		}
	default:
		return p.errorNode(fmt.Sprintf("expected type, got %s", p.describe()), nil, TokenIdent)
	}
	return p.finishNode(node)
}

// parseDims parses one or more [] pairs; each pair becomes an operator
// leaf.
func (p *Parser) parseDims() *Node {
	node := p.startNode(KindDims)
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		node.AddChild(p.leaf(KindOperator))
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)
	if p.check(TokenGT) {
		p.advance()
		return p.finishNode(node)
	}
	for {
		if p.check(TokenQuestion) {
			node.AddChild(p.parseWildcard())
		} else {
			node.AddChild(p.parseType())
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	p.expectGT()
	return p.finishNode(node)
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)
	p.expect(TokenQuestion)
	if p.check(TokenExtends) || p.check(TokenSuper) {
		node.AddChild(p.leaf(KindModifier))
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassBody() *Node {
	node := p.startNode(KindClassBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	p.parseMembers(node)
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseMembers(node *Node) {
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseMember())
		progress()
	}
}

func (p *Parser) parseEnumBody() *Node {
	node := p.startNode(KindClassBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for p.isIdentifierLike() || p.check(TokenAt) {
		node.AddChild(p.parseEnumConstant())
		if !p.accept(TokenComma) {
			break
		}
	}
	if p.accept(TokenSemicolon) {
		p.parseMembers(node)
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}
	node.AddChild(p.identifier())
	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody())
	}
	return p.finishNode(node)
}

// parseMember parses one class body declaration. Stray semicolons
// yield nil.
func (p *Parser) parseMember() *Node {
	if p.accept(TokenSemicolon) {
		return nil
	}
	node := p.startNode(KindFieldDecl)
	if p.check(TokenLBrace) || p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace {
		node.Kind = KindInitializer
		if p.check(TokenStatic) {
			node.AddChild(p.leaf(KindModifier))
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	node.AddChild(p.parseModifiers())
	if p.typeDeclRest(node) {
		return node
	}

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if p.isIdentifierLike() && (p.peekN(1).Kind == TokenLParen || p.peekN(1).Kind == TokenLBrace) {
		node.Kind = KindConstructorDecl
		node.AddChild(p.leaf(KindIdentifier))
		if p.check(TokenLParen) {
			p.parseParameters(node)
			if p.check(TokenThrows) {
				node.AddChild(p.parseTypeList(KindThrowsList))
			}
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	if !p.isIdentifierLike() && !p.peek().Kind.IsPrimitiveType() && !p.check(TokenVoid) && !p.check(TokenAt) {
		return p.errorNode(fmt.Sprintf("expected member declaration, got %s", p.describe()), memberRecovery)
	}
	node.AddChild(p.parseType())

	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
		node.Kind = KindMethodDecl
		node.AddChild(p.leaf(KindIdentifier))
		p.parseParameters(node)
		if p.check(TokenLBracket) {
			node.AddChild(p.parseDims())
		}
		if p.check(TokenThrows) {
			node.AddChild(p.parseTypeList(KindThrowsList))
		}
		switch {
		case p.check(TokenLBrace):
			node.AddChild(p.parseBlock())
		case p.accept(TokenDefault):
			node.AddChild(p.parseElementValue())
			p.expect(TokenSemicolon)
		default:
			p.expect(TokenSemicolon)
		}
		return p.finishNode(node)
	}

	p.parseVariableDeclarators(node)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseParameters parses a parenthesized formal parameter list and
// adds each parameter to node.
func (p *Parser) parseParameters(node *Node) {
	if p.expect(TokenLParen) == nil {
		return
	}
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.accept(TokenComma) {
			break
		}
		progress()
	}
	p.expect(TokenRParen)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	if p.check(TokenEllipsis) {
		node.AddChild(p.leaf(KindOperator))
	}
	if p.check(TokenThis) {
		node.AddChild(p.leaf(KindThis))
		return p.finishNode(node)
	}
	node.AddChild(p.identifier())
	if p.check(TokenLBracket) {
		node.AddChild(p.parseDims())
	}
	return p.finishNode(node)
}

func (p *Parser) parseVariableDeclarators(node *Node) {
	for {
		decl := p.startNode(KindVariableDeclarator)
		decl.AddChild(p.identifier())
		if p.check(TokenLBracket) {
			decl.AddChild(p.parseDims())
		}
		if p.accept(TokenAssign) {
			decl.AddChild(p.parseVariableInitializer())
		}
		node.AddChild(p.finishNode(decl))
		if !p.accept(TokenComma) {
			return
		}
	}
}

func (p *Parser) parseVariableInitializer() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInit()
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInit() *Node {
	node := p.startNode(KindArrayInit)
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseVariableInitializer())
		if !p.accept(TokenComma) {
			break
		}
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) skipAnnotations() {
	for p.check(TokenAt) && p.peekN(1).Kind != TokenInterface {
		p.advance()
		p.skipQualifiedName()
		if p.check(TokenLParen) {
			p.skipBalanced(TokenLParen, TokenRParen)
		}
	}
}

func (p *Parser) skipModifiers() {
	for p.isModifierStart() {
		if p.check(TokenAt) {
			p.skipAnnotations()
			continue
		}
		p.advance()
	}
}

func (p *Parser) skipBalanced(open, close TokenKind) bool {
	depth := 0
	for !p.check(TokenEOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func (p *Parser) skipQualifiedName() bool {
	if !p.isIdentifierLike() {
		return false
	}
	p.advance()
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		p.advance()
	}
	return true
}

// skipType skips over a type without building nodes. It reports false
// when the tokens cannot form a type.
func (p *Parser) skipType() bool {
	p.skipAnnotations()
	switch {
	case p.peek().Kind.IsPrimitiveType():
		p.advance()
	case p.isIdentifierLike():
		for {
			p.advance()
			if p.check(TokenLT) && !p.skipTypeArguments() {
				return false
			}
			if !p.check(TokenDot) || p.peekN(1).Kind != TokenIdent {
				break
			}
			p.advance()
		}
	default:
		return false
	}
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
	return true
}

func (p *Parser) skipTypeArguments() bool {
	p.advance()
	depth := 1
	for depth > 0 {
		kind := p.peek().Kind
		switch kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenIdent, TokenDot, TokenComma, TokenQuestion, TokenExtends, TokenSuper,
			TokenBitAnd, TokenLBracket, TokenRBracket, TokenAt:
		default:
			if !kind.IsPrimitiveType() {
				return false
			}
		}
		p.advance()
	}
	return depth == 0
}
