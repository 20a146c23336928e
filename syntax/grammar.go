package syntax

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production every input must reduce to.
const StartProduction = "Program"

//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the EBNF text of the built-in grammar.
func GrammarSource() string {
	return grammarSource
}

// tokenClasses maps lexical production names to the token kind the lexer
// produces for them. Other lexical productions are matched as patterns.
var tokenClasses = map[string]TokenKind{
	"identifier": TokenIdent,
	"integer":    TokenInt,
	"string":     TokenString,
	"terminator": TokenSymbol,
}

func classOf(kind TokenKind) string {
	for name, k := range tokenClasses {
		if k == kind {
			return name
		}
	}
	return ""
}

// LoadGrammar parses and verifies an EBNF grammar starting at start.
func LoadGrammar(filename string, r io.Reader, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

var defaultTable = sync.OnceValues(func() (*Table, error) {
	g, err := LoadGrammar("grammar.ebnf", strings.NewReader(grammarSource), StartProduction)
	if err != nil {
		return nil, err
	}
	t, err := Compile(g, StartProduction)
	if err != nil {
		return nil, err
	}
	t.reductions = programReductions
	return t, nil
})

// DefaultTable returns the prediction table for the built-in grammar. It is
// compiled on first use and shared afterwards.
func DefaultTable() *Table {
	t, err := defaultTable()
	if err != nil {
		panic(fmt.Sprintf("syntax: built-in grammar: %v", err))
	}
	return t
}
