package syntax

import (
	"fmt"
	"math/big"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Reserved words
	TokenPublic
	TokenStatic
	TokenVoid
	TokenN
	TokenFor
	TokenSystem
	TokenOut
	TokenPrintln

	// Literals
	TokenIdent
	TokenInt
	TokenString

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenAssign
	TokenSymbol
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:     "EOF",
	TokenPublic:  "public",
	TokenStatic:  "static",
	TokenVoid:    "void",
	TokenN:       "n",
	TokenFor:     "for",
	TokenSystem:  "System",
	TokenOut:     "out",
	TokenPrintln: "println",
	TokenIdent:   "Identifier",
	TokenInt:     "Int",
	TokenString:  "String",
	TokenLParen:  "(",
	TokenRParen:  ")",
	TokenLBrace:  "{",
	TokenRBrace:  "}",
	TokenAssign:  "=",
	TokenSymbol:  "Symbol",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsReserved reports whether k is one of the reserved-word kinds.
func (k TokenKind) IsReserved() bool {
	return k >= TokenPublic && k <= TokenPrintln
}

type Token struct {
	Kind    TokenKind
	Literal string
	// Number is the value of an Int token and nil for every other kind.
	Number *big.Int
	Pos    Position
}

// Text returns the token value as shown to users: the decimal value for
// integers and the literal as written for everything else.
func (t Token) Text() string {
	if t.Kind == TokenInt && t.Number != nil {
		return t.Number.String()
	}
	return t.Literal
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Literal)
}

var reserved = map[string]TokenKind{
	"public":  TokenPublic,
	"static":  TokenStatic,
	"void":    TokenVoid,
	"n":       TokenN,
	"for":     TokenFor,
	"System":  TokenSystem,
	"out":     TokenOut,
	"println": TokenPrintln,
}

// LookupReserved returns the reserved kind spelled exactly like ident, or
// TokenIdent.
func LookupReserved(ident string) TokenKind {
	if kind, ok := reserved[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Label is the category a token is displayed under.
type Label string

const (
	LabelReserved   Label = "RESERVED"
	LabelIdentifier Label = "IDENTIFIER"
	LabelLeftParen  Label = "LEFT PARENTHESIS"
	LabelRightParen Label = "RIGHT PARENTHESIS"
	LabelDelimiter  Label = "DELIMITER"
	LabelOperator   Label = "OPERATOR"
	LabelSymbol     Label = "SYMBOL"
	LabelNumber     Label = "NUMBER"
	LabelString     Label = "STRING"
)

// Label maps the kind to its display category. TokenEOF has no label.
func (k TokenKind) Label() Label {
	switch k {
	case TokenPublic, TokenStatic, TokenVoid, TokenN, TokenFor,
		TokenSystem, TokenOut, TokenPrintln:
		return LabelReserved
	case TokenIdent:
		return LabelIdentifier
	case TokenLParen:
		return LabelLeftParen
	case TokenRParen:
		return LabelRightParen
	case TokenLBrace, TokenRBrace:
		return LabelDelimiter
	case TokenAssign:
		return LabelOperator
	case TokenSymbol:
		return LabelSymbol
	case TokenInt:
		return LabelNumber
	case TokenString:
		return LabelString
	case TokenEOF:
		return ""
	}
	panic(fmt.Sprintf("syntax: no label for token kind %d", int(k)))
}
