package bvh

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota
	TokenError

	// Section keywords
	TokenHierarchy // HIERARCHY
	TokenRoot      // ROOT
	TokenJoint     // JOINT
	TokenEnd       // End
	TokenSite      // Site
	TokenOffset    // OFFSET
	TokenChannels  // CHANNELS
	TokenMotion    // MOTION
	TokenFrames    // Frames
	TokenFrame     // Frame
	TokenTime      // Time

	// Structural
	TokenLBrace // {
	TokenRBrace // }
	TokenColon  // :

	// Values
	TokenNumber // 1, -0.5, 1.2e-3
	TokenIdent  // joint names, channel names
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "EOF"
	case TokenError:
		return "ERROR"
	case TokenHierarchy:
		return "HIERARCHY"
	case TokenRoot:
		return "ROOT"
	case TokenJoint:
		return "JOINT"
	case TokenEnd:
		return "End"
	case TokenSite:
		return "Site"
	case TokenOffset:
		return "OFFSET"
	case TokenChannels:
		return "CHANNELS"
	case TokenMotion:
		return "MOTION"
	case TokenFrames:
		return "Frames"
	case TokenFrame:
		return "Frame"
	case TokenTime:
		return "Time"
	case TokenLBrace:
		return "{"
	case TokenRBrace:
		return "}"
	case TokenColon:
		return ":"
	case TokenNumber:
		return "NUMBER"
	case TokenIdent:
		return "IDENT"
	default:
		return "UNKNOWN"
	}
}

// Position represents a source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Value == "" {
		return t.Type.String()
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Value)
}

// Lexer tokenizes bvh text.
type Lexer struct {
	input  string
	pos    int // Current position in input
	line   int // Current line number (1-based)
	col    int // Current column number (1-based)
	tokens []Token
	err    error
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		pos:   0,
		line:  1,
		col:   1,
	}
}

// Tokenize returns all tokens from the input.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok := l.nextToken()
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}
	if l.err != nil {
		return l.tokens, l.err
	}
	return l.tokens, nil
}

// nextToken returns the next token.
func (l *Lexer) nextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.currentPos()}
	}

	startPos := l.currentPos()
	ch := l.peek()

	switch ch {
	case '{':
		l.advance()
		return Token{Type: TokenLBrace, Value: "{", Pos: startPos}
	case '}':
		l.advance()
		return Token{Type: TokenRBrace, Value: "}", Pos: startPos}
	case ':':
		l.advance()
		return Token{Type: TokenColon, Value: ":", Pos: startPos}
	}

	if ch == '-' || ch == '+' || ch == '.' || isDigit(ch) {
		return l.scanNumber()
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword()
	}

	l.advance()
	l.err = &LexError{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     startPos,
	}
	return Token{Type: TokenError, Value: string(ch), Pos: startPos}
}

// scanNumber scans a signed decimal with optional fraction and exponent.
func (l *Lexer) scanNumber() Token {
	startPos := l.currentPos()
	start := l.pos

	if l.peek() == '-' || l.peek() == '+' {
		l.advance()
	}

	digits := 0
	for l.pos < len(l.input) && isDigit(l.peek()) {
		l.advance()
		digits++
	}

	if l.pos < len(l.input) && l.peek() == '.' {
		l.advance()
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.advance()
			digits++
		}
	}

	if digits == 0 {
		l.err = &LexError{Message: "malformed number", Pos: startPos}
		return Token{Type: TokenError, Value: l.input[start:l.pos], Pos: startPos}
	}

	if l.pos < len(l.input) && (l.peek() == 'e' || l.peek() == 'E') {
		l.advance()
		if l.pos < len(l.input) && (l.peek() == '+' || l.peek() == '-') {
			l.advance()
		}
		expDigits := 0
		for l.pos < len(l.input) && isDigit(l.peek()) {
			l.advance()
			expDigits++
		}
		if expDigits == 0 {
			l.err = &LexError{Message: "malformed exponent", Pos: startPos}
			return Token{Type: TokenError, Value: l.input[start:l.pos], Pos: startPos}
		}
	}

	return Token{Type: TokenNumber, Value: l.input[start:l.pos], Pos: startPos}
}

// scanIdentOrKeyword scans an identifier or section keyword.
func (l *Lexer) scanIdentOrKeyword() Token {
	startPos := l.currentPos()
	start := l.pos

	for l.pos < len(l.input) && isIdentContinue(l.peek()) {
		l.advance()
	}

	value := l.input[start:l.pos]

	switch value {
	case "HIERARCHY":
		return Token{Type: TokenHierarchy, Value: value, Pos: startPos}
	case "ROOT":
		return Token{Type: TokenRoot, Value: value, Pos: startPos}
	case "JOINT":
		return Token{Type: TokenJoint, Value: value, Pos: startPos}
	case "End":
		return Token{Type: TokenEnd, Value: value, Pos: startPos}
	case "Site":
		return Token{Type: TokenSite, Value: value, Pos: startPos}
	case "OFFSET":
		return Token{Type: TokenOffset, Value: value, Pos: startPos}
	case "CHANNELS":
		return Token{Type: TokenChannels, Value: value, Pos: startPos}
	case "MOTION":
		return Token{Type: TokenMotion, Value: value, Pos: startPos}
	case "Frames":
		return Token{Type: TokenFrames, Value: value, Pos: startPos}
	case "Frame":
		return Token{Type: TokenFrame, Value: value, Pos: startPos}
	case "Time":
		return Token{Type: TokenTime, Value: value, Pos: startPos}
	}

	return Token{Type: TokenIdent, Value: value, Pos: startPos}
}

// skipWhitespace skips spaces, tabs, and both newline conventions.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' {
			l.advance()
			continue
		}
		break
	}
}

// Helper methods

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

// Character classification

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '.' || ch == '-'
}

// TokenStream provides a stream interface over tokens.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a token stream from tokens.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens, pos: 0}
}

// Peek returns the current token without advancing.
func (ts *TokenStream) Peek() Token {
	if ts.pos >= len(ts.tokens) {
		return Token{Type: TokenEOF}
	}
	return ts.tokens[ts.pos]
}

// PeekN returns the token N positions ahead.
func (ts *TokenStream) PeekN(n int) Token {
	idx := ts.pos + n
	if idx >= len(ts.tokens) {
		return Token{Type: TokenEOF}
	}
	return ts.tokens[idx]
}

// Advance moves to the next token and returns the current one.
func (ts *TokenStream) Advance() Token {
	tok := ts.Peek()
	if ts.pos < len(ts.tokens) {
		ts.pos++
	}
	return tok
}

// Expect advances if the current token matches, otherwise returns an error.
func (ts *TokenStream) Expect(typ TokenType) (Token, error) {
	tok := ts.Peek()
	if tok.Type != typ {
		return tok, syntaxErrorf(tok.Pos, "expected %s, got %s", typ, tok.Type)
	}
	ts.Advance()
	return tok, nil
}

// Match returns true and advances if the current token matches.
func (ts *TokenStream) Match(typ TokenType) bool {
	if ts.Peek().Type == typ {
		ts.Advance()
		return true
	}
	return false
}

// AtEnd returns true if at end of stream.
func (ts *TokenStream) AtEnd() bool {
	return ts.Peek().Type == TokenEOF
}
