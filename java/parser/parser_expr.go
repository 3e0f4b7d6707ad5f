package parser

import "fmt"

func (p *Parser) parseExpression() *Node {
	if p.isLambda() {
		return p.parseLambdaExpr()
	}
	lhs := p.parseTernary()
	if !p.isAssignOp() {
		return lhs
	}
	node := p.startNodeAt(KindAssignExpr, lhs)
	node.AddChild(p.leaf(KindOperator))
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) isAssignOp() bool {
	switch p.peek().Kind {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign,
		TokenPercentAssign, TokenAndAssign, TokenOrAssign, TokenXorAssign,
		TokenShlAssign, TokenShrAssign, TokenUShrAssign:
		return true
	}
	return false
}

func (p *Parser) isLambda() bool {
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenArrow {
		return true
	}
	if !p.check(TokenLParen) {
		return false
	}
	return p.speculate(func() bool {
		return p.skipBalanced(TokenLParen, TokenRParen) && p.check(TokenArrow)
	})
}

func (p *Parser) parseLambdaExpr() *Node {
	node := p.startNode(KindLambdaExpr)
	if p.isIdentifierLike() {
		param := p.startNode(KindParameter)
		param.AddChild(p.leaf(KindIdentifier))
		node.AddChild(p.finishNode(param))
	} else {
		p.expect(TokenLParen)
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			if p.isIdentifierLike() && (p.peekN(1).Kind == TokenComma || p.peekN(1).Kind == TokenRParen) {
				param := p.startNode(KindParameter)
				param.AddChild(p.leaf(KindIdentifier))
				node.AddChild(p.finishNode(param))
			} else {
				node.AddChild(p.parseParameter())
			}
			if !p.accept(TokenComma) {
				break
			}
			progress()
		}
		p.expect(TokenRParen)
	}
	p.expect(TokenArrow)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseTernary() *Node {
	cond := p.parseBinary(1)
	if !p.check(TokenQuestion) {
		return cond
	}
	node := p.startNodeAt(KindTernaryExpr, cond)
	p.advance()
	node.AddChild(p.parseExpression())
	p.expect(TokenColon)
	if p.isLambda() {
		node.AddChild(p.parseLambdaExpr())
	} else {
		node.AddChild(p.parseTernary())
	}
	return p.finishNode(node)
}

const relationalPrecedence = 7

func binaryPrecedence(kind TokenKind) int {
	switch kind {
	case TokenOr:
		return 1
	case TokenAnd:
		return 2
	case TokenBitOr:
		return 3
	case TokenBitXor:
		return 4
	case TokenBitAnd:
		return 5
	case TokenEQ, TokenNE:
		return 6
	case TokenLT, TokenGT, TokenLE, TokenGE:
		return relationalPrecedence
	case TokenShl, TokenShr, TokenUShr:
		return 8
	case TokenPlus, TokenMinus:
		return 9
	case TokenStar, TokenSlash, TokenPercent:
		return 10
	}
	return 0
}

// parseBinary parses binary operators of at least the given precedence
// by precedence climbing. All binary operators are left associative.
func (p *Parser) parseBinary(minPrec int) *Node {
	left := p.parseUnary()
	for {
		if p.check(TokenInstanceof) && minPrec <= relationalPrecedence {
			left = p.parseInstanceof(left)
			continue
		}
		prec := binaryPrecedence(p.peek().Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		node := p.startNodeAt(KindBinaryExpr, left)
		node.AddChild(p.leaf(KindOperator))
		node.AddChild(p.parseBinary(prec + 1))
		left = p.finishNode(node)
	}
}

func (p *Parser) parseInstanceof(left *Node) *Node {
	node := p.startNodeAt(KindInstanceofExpr, left)
	p.expect(TokenInstanceof)
	if p.check(TokenFinal) || p.isPattern() {
		node.AddChild(p.parsePattern())
	} else {
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) parseUnary() *Node {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
		node := p.startNode(KindUnaryExpr)
		node.AddChild(p.leaf(KindOperator))
		node.AddChild(p.parseUnary())
		return p.finishNode(node)
	case TokenLParen:
		if p.isCast() {
			return p.parseCastExpr()
		}
	}
	expr := p.parsePostfix(p.parsePrimary())
	for p.check(TokenIncrement) || p.check(TokenDecrement) {
		node := p.startNodeAt(KindPostfixExpr, expr)
		node.AddChild(p.leaf(KindOperator))
		expr = p.finishNode(node)
	}
	return expr
}

func (p *Parser) isCast() bool {
	return p.speculate(func() bool {
		p.advance()
		p.skipAnnotations()
		if p.peek().Kind.IsPrimitiveType() {
			return p.skipType() && p.check(TokenRParen)
		}
		if !p.skipType() {
			return false
		}
		for p.accept(TokenBitAnd) {
			if !p.skipType() {
				return false
			}
		}
		if !p.accept(TokenRParen) {
			return false
		}
		switch p.peek().Kind {
		case TokenIdent, TokenThis, TokenSuper, TokenNew, TokenSwitch,
			TokenLParen, TokenNot, TokenBitNot,
			TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral,
			TokenTextBlock, TokenTrue, TokenFalse, TokenNull:
			return true
		}
		return p.peek().Kind.IsPrimitiveType()
	})
}

func (p *Parser) parseCastExpr() *Node {
	node := p.startNode(KindCastExpr)
	p.expect(TokenLParen)
	node.AddChild(p.parseType())
	for p.accept(TokenBitAnd) {
		node.AddChild(p.parseType())
	}
	p.expect(TokenRParen)
	if p.isLambda() {
		node.AddChild(p.parseLambdaExpr())
	} else {
		node.AddChild(p.parseUnary())
	}
	return p.finishNode(node)
}

func (p *Parser) parsePrimary() *Node {
	tok := p.peek()
	switch {
	case tok.Kind.IsLiteral():
		return p.leaf(KindLiteral)
	case tok.Kind == TokenThis:
		this := p.leaf(KindThis)
		if p.check(TokenLParen) {
			return p.parseCall(this)
		}
		return this
	case tok.Kind == TokenSuper:
		super := p.leaf(KindSuper)
		if p.check(TokenLParen) {
			return p.parseCall(super)
		}
		return super
	case tok.Kind == TokenLParen:
		node := p.startNode(KindParenExpr)
		p.advance()
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
		return p.finishNode(node)
	case tok.Kind == TokenNew:
		return p.parseNewExpr(nil)
	case tok.Kind == TokenSwitch:
		return p.parseSwitch(KindSwitchExpr)
	case tok.Kind.IsPrimitiveType(), tok.Kind == TokenVoid:
		return p.parseTypeSuffix(p.parseType())
	case p.isIdentifierLike():
		if p.peekN(1).Kind == TokenLBracket && p.peekN(2).Kind == TokenRBracket {
			return p.parseTypeSuffix(p.parseType())
		}
		if p.peekN(1).Kind == TokenLParen {
			node := p.startNode(KindCallExpr)
			node.AddChild(p.leaf(KindIdentifier))
			node.AddChild(p.parseArguments())
			return p.finishNode(node)
		}
		return p.leaf(KindName)
	case tok.Kind == TokenSemicolon, tok.Kind == TokenRParen, tok.Kind == TokenRBrace,
		tok.Kind == TokenRBracket, tok.Kind == TokenComma, tok.Kind == TokenEOF:
		return p.missing(fmt.Sprintf("expected expression, got %s", p.describe()))
	}
	return p.errorNode(fmt.Sprintf("expected expression, got %s", p.describe()), nil)
}

// parseTypeSuffix completes a class literal or constructor reference
// that starts with a type, such as int.class or String[]::new.
func (p *Parser) parseTypeSuffix(typ *Node) *Node {
	if p.check(TokenColonColon) {
		return p.parseMethodRef(typ)
	}
	node := p.startNodeAt(KindClassLiteral, typ)
	p.expect(TokenDot)
	p.expect(TokenClass)
	return p.finishNode(node)
}

func (p *Parser) parsePostfix(expr *Node) *Node {
	for {
		switch p.peek().Kind {
		case TokenDot:
			expr = p.parseMemberSuffix(expr)
		case TokenLBracket:
			node := p.startNodeAt(KindArrayAccess, expr)
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(TokenRBracket)
			expr = p.finishNode(node)
		case TokenColonColon:
			expr = p.parseMethodRef(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseMemberSuffix(target *Node) *Node {
	p.expect(TokenDot)
	switch p.peek().Kind {
	case TokenNew:
		return p.parseNewExpr(target)
	case TokenClass:
		node := p.startNodeAt(KindClassLiteral, target)
		p.advance()
		return p.finishNode(node)
	case TokenThis, TokenSuper:
		node := p.startNodeAt(KindFieldAccess, target)
		kind := KindThis
		if p.check(TokenSuper) {
			kind = KindSuper
		}
		node.AddChild(p.leaf(kind))
		return p.finishNode(node)
	case TokenLT:
		call := p.startNodeAt(KindCallExpr, target)
		call.AddChild(p.parseTypeArguments())
		call.AddChild(p.identifier())
		call.AddChild(p.parseArguments())
		return p.finishNode(call)
	}
	if p.isIdentifierLike() && p.peekN(1).Kind == TokenLParen {
		call := p.startNodeAt(KindCallExpr, target)
		call.AddChild(p.leaf(KindIdentifier))
		call.AddChild(p.parseArguments())
		return p.finishNode(call)
	}
	node := p.startNodeAt(KindFieldAccess, target)
	node.AddChild(p.identifier())
	return p.finishNode(node)
}

// parseCall parses an explicit constructor invocation such as this(...)
// or super(...).
func (p *Parser) parseCall(target *Node) *Node {
	node := p.startNodeAt(KindCallExpr, target)
	node.AddChild(p.parseArguments())
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	if p.expect(TokenLParen) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseExpression())
		if !p.accept(TokenComma) {
			break
		}
		progress()
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseMethodRef(target *Node) *Node {
	node := p.startNodeAt(KindMethodRef, target)
	p.expect(TokenColonColon)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	if p.check(TokenNew) {
		node.AddChild(p.leaf(KindModifier))
	} else {
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

// parseNewExpr parses a class instance or array creation. outer is the
// qualifying expression of an inner class creation, or nil.
func (p *Parser) parseNewExpr(outer *Node) *Node {
	var node *Node
	if outer != nil {
		node = p.startNodeAt(KindNewExpr, outer)
	} else {
		node = p.startNode(KindNewExpr)
	}
	p.expect(TokenNew)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	node.AddChild(p.parseNonArrayType())

	if p.check(TokenLBracket) {
		node.Kind = KindNewArrayExpr
		for p.check(TokenLBracket) {
			if p.peekN(1).Kind == TokenRBracket {
				node.AddChild(p.parseDims())
				continue
			}
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(TokenRBracket)
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseArrayInit())
		}
		return p.finishNode(node)
	}

	node.AddChild(p.parseArguments())
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody())
	}
	return p.finishNode(node)
}
