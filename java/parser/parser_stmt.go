package parser

import "fmt"

var statementRecovery = []TokenKind{TokenSemicolon, TokenRBrace}

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseBlockStatement parses a local class, a local variable
// declaration or a statement.
func (p *Parser) parseBlockStatement() *Node {
	switch {
	case p.isYieldStmt():
		return p.parseStatement()
	case p.isLocalTypeDecl():
		return p.parseTypeDecl()
	case p.isLocalVarDecl():
		node := p.parseLocalVarDecl()
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	return p.parseStatement()
}

func (p *Parser) isLocalTypeDecl() bool {
	return p.speculate(func() bool {
		p.skipModifiers()
		switch {
		case p.check(TokenClass), p.check(TokenInterface), p.check(TokenEnum):
			return true
		case p.check(TokenAt):
			return p.peekN(1).Kind == TokenInterface
		}
		return p.isRecordDecl()
	})
}

func (p *Parser) isLocalVarDecl() bool {
	return p.speculate(func() bool {
		p.skipLocalModifiers()
		return p.skipType() && p.isIdentifierLike()
	})
}

func (p *Parser) skipLocalModifiers() {
	for p.check(TokenFinal) || p.check(TokenAt) {
		if p.accept(TokenFinal) {
			continue
		}
		p.skipAnnotations()
	}
}

func (p *Parser) isYieldStmt() bool {
	if !p.checkWord("yield") {
		return false
	}
	switch p.peekN(1).Kind {
	case TokenAssign, TokenDot, TokenSemicolon, TokenLBracket, TokenIncrement, TokenDecrement,
		TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign, TokenColon:
		return false
	}
	return true
}

func (p *Parser) parseLocalModifiers() *Node {
	mods := p.startNode(KindModifiers)
	for p.check(TokenFinal) || p.check(TokenAt) {
		if p.check(TokenAt) {
			mods.AddChild(p.parseAnnotation())
		} else {
			mods.AddChild(p.leaf(KindModifier))
		}
	}
	return p.finishNode(mods)
}

// parseLocalParameter parses a single variable declared by an enhanced
// for loop or a type pattern.
func (p *Parser) parseLocalParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseLocalModifiers())
	node.AddChild(p.parseType())
	node.AddChild(p.identifier())
	return p.finishNode(node)
}

// parseLocalVarDecl parses a local variable declaration without the
// terminating semicolon.
func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseLocalModifiers())
	node.AddChild(p.parseType())
	p.parseVariableDeclarators(node)
	return p.finishNode(node)
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		return p.parseWhileStmt()
	case TokenDo:
		return p.parseDoStmt()
	case TokenSwitch:
		return p.parseSwitch(KindSwitchStmt)
	case TokenReturn:
		return p.parseSimpleStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseSimpleStmt(KindThrowStmt, true)
	case TokenBreak:
		return p.parseJumpStmt(KindBreakStmt)
	case TokenContinue:
		return p.parseJumpStmt(KindContinueStmt)
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		return p.parseSynchronizedStmt()
	case TokenAssert:
		return p.parseAssertStmt()
	case TokenIdent:
		if p.isYieldStmt() {
			return p.parseSimpleStmt(KindYieldStmt, true)
		}
		if p.peekN(1).Kind == TokenColon {
			node := p.startNode(KindLabeledStmt)
			node.AddChild(p.leaf(KindIdentifier))
			p.advance()
			node.AddChild(p.parseStatement())
			return p.finishNode(node)
		}
	case TokenRBrace, TokenEOF:
		return p.missing(fmt.Sprintf("expected statement, got %s", p.describe()))
	case TokenElse, TokenCase, TokenCatch, TokenFinally:
		return p.errorNode(fmt.Sprintf("unexpected %s", p.describe()), statementRecovery)
	}
	return p.parseExprStmt()
}

func (p *Parser) parseExprStmt() *Node {
	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseExpression())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

// parseSimpleStmt parses a keyword followed by an expression and a
// semicolon, as in return, throw and yield.
func (p *Parser) parseSimpleStmt(kind NodeKind, optionalExpr bool) *Node {
	node := p.startNode(kind)
	p.advance()
	if !optionalExpr || !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseJumpStmt(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	if p.isIdentifierLike() {
		node.AddChild(p.leaf(KindIdentifier))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseCondition() *Node {
	p.expect(TokenLParen)
	cond := p.parseExpression()
	p.expect(TokenRParen)
	return cond
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.expect(TokenIf)
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseStatement())
	if p.accept(TokenElse) {
		node.AddChild(p.parseStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseWhileStmt() *Node {
	node := p.startNode(KindWhileStmt)
	p.expect(TokenWhile)
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseDoStmt() *Node {
	node := p.startNode(KindDoStmt)
	p.expect(TokenDo)
	node.AddChild(p.parseStatement())
	p.expect(TokenWhile)
	node.AddChild(p.parseCondition())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseForStmt() *Node {
	node := p.startNode(KindForStmt)
	p.expect(TokenFor)
	p.expect(TokenLParen)

	if p.isEnhancedFor() {
		node.Kind = KindEnhancedForStmt
		node.AddChild(p.parseLocalParameter())
		p.expect(TokenColon)
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}

	if !p.check(TokenSemicolon) {
		if p.isLocalVarDecl() {
			node.AddChild(p.parseLocalVarDecl())
		} else {
			p.parseExpressionList(node)
		}
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	update := p.startNode(KindForUpdate)
	if !p.check(TokenRParen) {
		p.parseExpressionList(update)
	}
	node.AddChild(p.finishNode(update))
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseExpressionList(node *Node) {
	node.AddChild(p.parseExpression())
	for p.accept(TokenComma) {
		node.AddChild(p.parseExpression())
	}
}

func (p *Parser) isEnhancedFor() bool {
	return p.speculate(func() bool {
		p.skipLocalModifiers()
		return p.skipType() && p.isIdentifierLike() && p.peekN(1).Kind == TokenColon
	})
}

func (p *Parser) parseSwitch(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.expect(TokenSwitch)
	node.AddChild(p.parseCondition())
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenCase) || p.check(TokenDefault) {
			node.AddChild(p.parseSwitchCase())
		} else {
			node.AddChild(p.errorNode(fmt.Sprintf("expected case, got %s", p.describe()),
				[]TokenKind{TokenCase, TokenDefault, TokenRBrace}, TokenCase, TokenDefault))
		}
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

// parseSwitchCase parses one or more labels and the statements that
// follow them. An arrow case has a single label and a single body.
func (p *Parser) parseSwitchCase() *Node {
	node := p.startNode(KindSwitchCase)
	for p.check(TokenCase) || p.check(TokenDefault) {
		node.AddChild(p.parseSwitchLabel())
		if p.accept(TokenArrow) {
			switch {
			case p.check(TokenLBrace):
				node.AddChild(p.parseBlock())
			case p.check(TokenThrow):
				node.AddChild(p.parseSimpleStmt(KindThrowStmt, false))
			default:
				node.AddChild(p.parseExprStmt())
			}
			return p.finishNode(node)
		}
		p.expect(TokenColon)
	}
	for !p.match(TokenCase, TokenDefault, TokenRBrace, TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseSwitchLabel() *Node {
	node := p.startNode(KindSwitchLabel)
	if p.check(TokenDefault) {
		tok := p.advance()
		node.Token = &tok
		return p.finishNode(node)
	}
	p.expect(TokenCase)
	for {
		if p.check(TokenDefault) {
			node.AddChild(p.leaf(KindModifier))
		} else if p.isPattern() {
			node.AddChild(p.parsePattern())
		} else {
			node.AddChild(p.parseTernary())
		}
		if !p.accept(TokenComma) {
			break
		}
	}
	if p.checkWord("when") {
		p.advance()
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

// isPattern reports whether a type pattern or a record pattern starts
// at the current token.
func (p *Parser) isPattern() bool {
	return p.speculate(func() bool {
		p.skipLocalModifiers()
		if !p.skipType() {
			return false
		}
		return p.isIdentifierLike() || p.check(TokenLParen)
	})
}

func (p *Parser) parsePattern() *Node {
	if p.speculate(func() bool {
		p.skipLocalModifiers()
		return p.skipType() && p.check(TokenLParen)
	}) {
		node := p.startNode(KindRecordPattern)
		node.AddChild(p.parseType())
		p.expect(TokenLParen)
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parsePattern())
			if !p.accept(TokenComma) {
				break
			}
			progress()
		}
		p.expect(TokenRParen)
		return p.finishNode(node)
	}
	return p.parseLocalParameter()
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.expect(TokenTry)
	if p.accept(TokenLParen) {
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			if p.isLocalVarDecl() {
				node.AddChild(p.parseLocalVarDecl())
			} else {
				node.AddChild(p.parseExpression())
			}
			if !p.accept(TokenSemicolon) {
				break
			}
			progress()
		}
		p.expect(TokenRParen)
	}
	node.AddChild(p.parseBlock())
	for p.check(TokenCatch) {
		node.AddChild(p.parseCatchClause())
	}
	if p.check(TokenFinally) {
		fin := p.startNode(KindFinallyClause)
		p.advance()
		fin.AddChild(p.parseBlock())
		node.AddChild(p.finishNode(fin))
	}
	return p.finishNode(node)
}

func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.expect(TokenCatch)
	p.expect(TokenLParen)
	param := p.startNode(KindParameter)
	param.AddChild(p.parseLocalModifiers())
	typ := p.parseType()
	if p.check(TokenBitOr) {
		union := p.startNodeAt(KindUnionType, typ)
		for p.accept(TokenBitOr) {
			union.AddChild(p.parseType())
		}
		typ = p.finishNode(union)
	}
	param.AddChild(typ)
	param.AddChild(p.identifier())
	node.AddChild(p.finishNode(param))
	p.expect(TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseSynchronizedStmt() *Node {
	node := p.startNode(KindSynchronizedStmt)
	p.expect(TokenSynchronized)
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}

func (p *Parser) parseAssertStmt() *Node {
	node := p.startNode(KindAssertStmt)
	p.expect(TokenAssert)
	node.AddChild(p.parseExpression())
	if p.accept(TokenColon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}
