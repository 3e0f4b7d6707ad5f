package parser

import (
	"unicode"
	"unicode/utf8"
)

// ErrorHandler receives lexical errors. The lexer keeps going after
// reporting one.
type ErrorHandler func(pos Position, msg string)

type Lexer struct {
	input   []byte
	file    string
	pos     int
	line    int
	column  int
	onError ErrorHandler
	errors  int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

// HandleErrors installs h as the receiver of lexical errors.
func (l *Lexer) HandleErrors(h ErrorHandler) {
	l.onError = h
}

// ErrorCount returns the number of lexical errors seen so far.
func (l *Lexer) ErrorCount() int {
	return l.errors
}

func (l *Lexer) error(pos Position, msg string) {
	l.errors++
	if l.onError != nil {
		l.onError(pos, msg)
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	switch {
	case ch == '\n':
		l.line++
		l.column = 1
	case ch&0xC0 != 0x80:
		// continuation bytes of a multi-byte rune share its column
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// peekRune decodes the rune at the current position.
func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	if ch := l.input[l.pos]; ch < utf8.RuneSelf {
		return rune(ch), 1
	}
	return utf8.DecodeRune(l.input[l.pos:])
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f'
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	switch {
	case ch == '/' && l.peekN(1) == '/':
		return l.scanLineComment(startPos)
	case ch == '/' && l.peekN(1) == '*':
		return l.scanBlockComment(startPos)
	case isWhitespace(ch):
		return l.scanWhitespace(startPos)
	case isDigit(ch), ch == '.' && isDigit(l.peekN(1)):
		return l.scanNumber(startPos)
	case ch == '\'':
		return l.scanCharLiteral(startPos)
	case ch == '"':
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(startPos)
		}
		return l.scanStringLiteral(startPos)
	}

	if r, _ := l.peekRune(); isJavaLetter(r) {
		return l.scanIdentOrKeyword(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

// scanLineComment stops before the terminating newline, which belongs to
// the following whitespace token.
func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEnd() && l.peek() != '\n' && l.peek() != '\r' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	kind := TokenComment
	if l.peekN(2) == '*' && l.peekN(3) != '/' {
		kind = TokenJavadoc
	}
	l.advanceN(2)
	for {
		if l.atEnd() {
			l.error(start, "unterminated comment")
			break
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(kind, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for {
		r, size := l.peekRune()
		if size == 0 || !isJavaLetterOrDigit(r) {
			break
		}
		l.advanceN(size)
	}
	literal := string(l.input[start.Offset:l.pos])

	if literal == "non" && l.peek() == '-' {
		rest := l.input[l.pos:]
		if len(rest) >= 7 && string(rest[:7]) == "-sealed" {
			r, _ := utf8.DecodeRune(rest[7:])
			if len(rest) == 7 || !isJavaLetterOrDigit(r) {
				l.advanceN(7)
				return l.token(TokenNonSealed, start)
			}
		}
	}

	return l.token(LookupKeyword(literal), start)
}

func (l *Lexer) scanDigits(valid func(byte) bool) {
	for valid(l.peek()) || l.peek() == '_' {
		l.advance()
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		l.scanDigits(func(ch byte) bool { return ch == '0' || ch == '1' })
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	l.scanDigits(isDigit)

	if l.peek() == '.' && (isDigit(l.peekN(1)) || !isJavaStart(l.peekN(1)) && l.peekN(1) != '.') {
		isFloat = true
		l.advance()
		l.scanDigits(isDigit)
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(isDigit)
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}

	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	l.scanDigits(isHexDigit)
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		l.scanDigits(isHexDigit)
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		l.scanDigits(isDigit)
	}
	switch {
	case isFloat && (l.peek() == 'f' || l.peek() == 'F' || l.peek() == 'd' || l.peek() == 'D'):
		l.advance()
	case !isFloat && (l.peek() == 'l' || l.peek() == 'L'):
		l.advance()
	}
	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

// scanQuoted consumes a quoted literal on a single line.
func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind, what string) Token {
	l.advance()
	for !l.atEnd() && l.peek() != quote && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == quote {
		l.advance()
	} else {
		l.error(start, "unterminated "+what)
	}
	return l.token(kind, start)
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	return l.scanQuoted(start, '\'', TokenCharLiteral, "character literal")
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	return l.scanQuoted(start, '"', TokenStringLiteral, "string literal")
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for {
		if l.atEnd() {
			l.error(start, "unterminated text block")
			break
		}
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenTextBlock, start)
}

// longestOperator is the operator table ordered so that longer spellings
// sharing a prefix come first.
var longestOperator = []struct {
	text string
	kind TokenKind
}{
	{">>>=", TokenUShrAssign},
	{"<<=", TokenShlAssign}, {">>=", TokenShrAssign}, {">>>", TokenUShr}, {"...", TokenEllipsis},
	{"::", TokenColonColon}, {"==", TokenEQ}, {"!=", TokenNE}, {"<=", TokenLE}, {">=", TokenGE},
	{"&&", TokenAnd}, {"||", TokenOr}, {"<<", TokenShl}, {">>", TokenShr},
	{"++", TokenIncrement}, {"--", TokenDecrement}, {"->", TokenArrow},
	{"+=", TokenPlusAssign}, {"-=", TokenMinusAssign}, {"*=", TokenStarAssign}, {"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign}, {"&=", TokenAndAssign}, {"|=", TokenOrAssign}, {"^=", TokenXorAssign},
	{"(", TokenLParen}, {")", TokenRParen}, {"{", TokenLBrace}, {"}", TokenRBrace},
	{"[", TokenLBracket}, {"]", TokenRBracket}, {";", TokenSemicolon}, {",", TokenComma},
	{".", TokenDot}, {"@", TokenAt}, {"=", TokenAssign}, {"<", TokenLT}, {">", TokenGT},
	{"!", TokenNot}, {"&", TokenBitAnd}, {"|", TokenBitOr}, {"^", TokenBitXor}, {"~", TokenBitNot},
	{"+", TokenPlus}, {"-", TokenMinus}, {"*", TokenStar}, {"/", TokenSlash}, {"%", TokenPercent},
	{"?", TokenQuestion}, {":", TokenColon},
}

func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range longestOperator {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			l.advanceN(len(op.text))
			return l.token(op.kind, start)
		}
	}

	_, size := l.peekRune()
	l.advanceN(max(size, 1))
	tok := l.token(TokenError, start)
	l.error(start, "unexpected character "+quoteLiteral(tok.Literal))
	return tok
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func quoteLiteral(s string) string {
	return "'" + s + "'"
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isJavaStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isJavaLetter(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaStart(byte(r))
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Sc, r)
}

func isJavaLetterOrDigit(r rune) bool {
	if r < utf8.RuneSelf {
		return isJavaStart(byte(r)) || isDigit(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Sc, r) || unicode.Is(unicode.Mn, r)
}
