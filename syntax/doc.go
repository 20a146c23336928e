// Package syntax tokenizes and recognizes restricted Java method fragments.
//
// # Overview
//
// Analysis runs in two independent passes over the same text:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│  []Token    │
//	│  (string)   │     │             │     │  []*LexicalError
//	└─────────────┘     └─────────────┘     └─────────────┘
//	       │
//	       ▼
//	┌─────────────┐     ┌─────────────┐
//	│ Recognizer  │────▶│  *Program   │
//	│ (own Lexer) │     │  []*SyntaxError
//	└─────────────┘     └─────────────┘
//
// The Recognizer does not consume the Lexer's output. It scans the input
// again, so callers that want to report lexical problems first must run
// Tokenize and skip Parse when it reports errors.
//
// # Tokens
//
// The lexer recognizes identifier-shaped words, digit runs, double-quoted
// strings, the symbols "." and ";", parentheses, braces and "=". Words that
// exactly match one of
//
//	public static void n for System out println
//
// get their own reserved kind. Every other character is reported as a
// LexicalError and skipped, and scanning continues with the next character.
//
// # Grammar
//
// The accepted language is described in EBNF (see GrammarSource):
//
//	Program    = "public" "static" "void" identifier "(" ")" "{" Statements "}" .
//	Statements = { Statement } .
//	Statement  = "n" "=" terminator
//	           | "for" "(" Statement ")" "{" Statements "}"
//	           | "{" Statements "}" .
//
// The grammar is parsed and verified with golang.org/x/exp/ebnf and compiled
// once into an LL(1) prediction Table. Recognition walks the table without
// backtracking and stops at the first token that cannot continue the
// current production.
//
// Compile accepts other LL(1) grammars as well. Their lexical productions
// either name a lexer class (identifier, integer, string, terminator) or are
// matched against the token text, so
//
//	name  = lower { lower | "_" } .
//	lower = "a" … "z" .
//
// accepts identifier tokens spelled in lower case. Such tables recognize
// input without building a Program.
//
// # Errors
//
// Lexical and syntax errors are separate types and are never merged:
//
//	invalid character '@' at line 1
//	unexpected token 'x' at line 3
//	incomplete or unexpected input at end
package syntax
