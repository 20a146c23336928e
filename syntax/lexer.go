package syntax

import (
	"iter"
	"math/big"
	"unicode/utf8"
)

// Lexer scans one input at a time. Its line counter and error list belong
// to the current input and are cleared by Reset.
type Lexer struct {
	input  string
	pos    int
	line   int
	column int
	errors []*LexicalError
}

func NewLexer(input string) *Lexer {
	l := &Lexer{}
	l.Reset(input)
	return l
}

// Reset starts scanning input from the beginning with a fresh line counter
// and no errors.
func (l *Lexer) Reset(input string) {
	l.input = input
	l.pos = 0
	l.line = 1
	l.column = 1
	l.errors = nil
}

func (l *Lexer) Position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// Errors returns the lexical errors found so far, in encounter order.
func (l *Lexer) Errors() []*LexicalError {
	return l.errors
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) skipBlanks() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

// NextToken returns the next token, or a TokenEOF token once the input is
// exhausted. Invalid characters are recorded and skipped.
func (l *Lexer) NextToken() Token {
	for {
		l.skipBlanks()
		start := l.Position()
		if l.pos >= len(l.input) {
			return Token{Kind: TokenEOF, Pos: start}
		}

		ch := l.peek()
		switch {
		case isLetter(ch):
			return l.scanIdentOrReserved(start)
		case isDigit(ch):
			return l.scanInt(start)
		case ch == '"':
			if tok, ok := l.scanString(start); ok {
				return tok
			}
		case ch == '.' || ch == ';':
			l.advance()
			return l.token(TokenSymbol, start)
		case ch == '(':
			l.advance()
			return l.token(TokenLParen, start)
		case ch == ')':
			l.advance()
			return l.token(TokenRParen, start)
		case ch == '{':
			l.advance()
			return l.token(TokenLBrace, start)
		case ch == '}':
			l.advance()
			return l.token(TokenRBrace, start)
		case ch == '=':
			l.advance()
			return l.token(TokenAssign, start)
		}

		l.invalid(start)
	}
}

// All yields the remaining tokens, excluding the final TokenEOF.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := l.NextToken()
			if tok.Kind == TokenEOF || !yield(tok) {
				return
			}
		}
	}
}

// invalid records the rune at start and steps over it.
func (l *Lexer) invalid(start Position) {
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.errors = append(l.errors, &LexicalError{Char: r, Pos: start})
	for i := 0; i < size; i++ {
		l.advance()
	}
}

func (l *Lexer) scanIdentOrReserved(start Position) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	literal := l.input[start.Offset:l.pos]
	return Token{
		Kind:    LookupReserved(literal),
		Literal: literal,
		Pos:     start,
	}
}

func (l *Lexer) scanInt(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	literal := l.input[start.Offset:l.pos]
	number, _ := new(big.Int).SetString(literal, 10)
	return Token{
		Kind:    TokenInt,
		Literal: literal,
		Number:  number,
		Pos:     start,
	}
}

// scanString consumes a double-quoted run. It reports false without
// consuming anything when the closing quote is missing.
func (l *Lexer) scanString(start Position) (Token, bool) {
	end := l.pos + 1
	for end < len(l.input) && l.input[end] != '"' {
		end++
	}
	if end >= len(l.input) {
		return Token{}, false
	}
	for l.pos <= end {
		l.advance()
	}
	return l.token(TokenString, start), true
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Literal: l.input[start.Offset:l.pos],
		Pos:     start,
	}
}

// Tokenize scans input with a fresh Lexer and returns every token together
// with the lexical errors, both in encounter order.
func Tokenize(input string) ([]Token, []*LexicalError) {
	l := NewLexer(input)
	var tokens []Token
	for tok := range l.All() {
		tokens = append(tokens, tok)
	}
	return tokens, l.Errors()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
