package syntax

import "fmt"

// reduction builds the tree value of a production from the values of the
// alternative that matched. Terminals contribute a Token, productions the
// value of their own reduction, repetitions a []any and options either nil
// or a []any.
type reduction func(alt int, vals []any) any

// programReductions build the Program tree for the built-in grammar.
var programReductions = map[string]reduction{
	"Program": func(_ int, vals []any) any {
		name := vals[3].(Token)
		return &Program{
			Name:     name.Text(),
			NamePos:  name.Pos,
			Body:     vals[7].([]Statement),
			StartPos: vals[0].(Token).Pos,
		}
	},
	"Statements": func(_ int, vals []any) any {
		items := vals[0].([]any)
		body := make([]Statement, 0, len(items))
		for _, item := range items {
			body = append(body, item.(Statement))
		}
		return body
	},
	"Statement": func(alt int, vals []any) any {
		switch alt {
		case 0:
			return &Assign{
				Counter:    vals[0].(Token),
				Op:         vals[1].(Token),
				Terminator: vals[2].(Token),
			}
		case 1:
			return &ForLoop{
				For:    vals[0].(Token).Pos,
				Header: vals[2].(Statement),
				Body:   vals[5].([]Statement),
			}
		default:
			return &Block{
				Lbrace: vals[0].(Token).Pos,
				Body:   vals[1].([]Statement),
			}
		}
	},
}

// MaxDepth bounds how many productions may be expanded inside one another.
// Each brace of the built-in grammar takes two levels.
const MaxDepth = 20000

// Recognizer checks inputs against a compiled Table. It tokenizes each
// input itself and keeps the syntax errors of the most recent call only.
// A Recognizer must not be used from more than one goroutine at a time.
type Recognizer struct {
	table  *Table
	lexer  *Lexer
	tok    Token
	depth  int
	errors []*SyntaxError
}

func NewRecognizer(table *Table) *Recognizer {
	return &Recognizer{
		table: table,
		lexer: NewLexer(""),
	}
}

// Errors returns the syntax errors of the last Parse call.
func (r *Recognizer) Errors() []*SyntaxError {
	return r.errors
}

// Parse recognizes input. The first mismatch ends the attempt, so at most
// one error is returned. Input nested deeper than MaxDepth is rejected with
// an error at the token that crossed the limit. The program is nil whenever errors are returned,
// and also for accepted input when the table was compiled from a grammar
// other than the built-in one. Invalid characters are skipped by the
// internal lexer and never reported here.
func (r *Recognizer) Parse(input string) (*Program, []*SyntaxError) {
	r.errors = nil
	r.depth = 0
	r.lexer.Reset(input)
	r.next()

	v, err := r.expand(r.table.start)
	if err == nil && r.tok.Kind != TokenEOF {
		err = r.fail(termSet{endOfInput: true})
	}
	if err != nil {
		r.errors = append(r.errors, err)
		return nil, r.errors
	}
	program, _ := v.(*Program)
	return program, nil
}

func (r *Recognizer) next() {
	r.tok = r.lexer.NextToken()
}

func (r *Recognizer) accepts(set termSet) bool {
	return set.accepts(r.tok, r.table.patterns)
}

func (r *Recognizer) fail(expected termSet) *SyntaxError {
	return &SyntaxError{Token: r.tok, Expected: expected.names()}
}

// choose picks the alternative that can start with the current token,
// falling back to the empty alternative.
func (r *Recognizer) choose(e *expr) (int, *SyntaxError) {
	empty := -1
	for i, item := range e.items {
		if r.accepts(item.first) {
			return i, nil
		}
		if item.nullable {
			empty = i
		}
	}
	if empty >= 0 {
		return empty, nil
	}
	return 0, r.fail(e.first)
}

func (r *Recognizer) expand(name string) (any, *SyntaxError) {
	if r.depth >= MaxDepth {
		return nil, &SyntaxError{Token: r.tok, Depth: MaxDepth}
	}
	r.depth++
	defer func() { r.depth-- }()

	body := r.table.productions[name].body
	alt := 0
	if body.kind == exprAlternative {
		var err *SyntaxError
		if alt, err = r.choose(body); err != nil {
			return nil, err
		}
		body = body.items[alt]
	}
	vals, err := r.eval(body)
	if err != nil {
		return nil, err
	}
	if reduce, ok := r.table.reductions[name]; ok {
		return reduce(alt, vals), nil
	}
	return vals, nil
}

func (r *Recognizer) eval(e *expr) ([]any, *SyntaxError) {
	switch e.kind {
	case exprTerminal:
		if !r.accepts(e.first) {
			return nil, r.fail(e.first)
		}
		tok := r.tok
		r.next()
		return []any{tok}, nil

	case exprNonterminal:
		v, err := r.expand(e.name)
		if err != nil {
			return nil, err
		}
		return []any{v}, nil

	case exprSequence:
		var vals []any
		for _, item := range e.items {
			vs, err := r.eval(item)
			if err != nil {
				return nil, err
			}
			vals = append(vals, vs...)
		}
		return vals, nil

	case exprAlternative:
		alt, err := r.choose(e)
		if err != nil {
			return nil, err
		}
		return r.eval(e.items[alt])

	case exprRepetition:
		list := []any{}
		for r.accepts(e.first) {
			vs, err := r.eval(e.items[0])
			if err != nil {
				return nil, err
			}
			list = append(list, vs...)
		}
		return []any{list}, nil

	case exprOption:
		if !r.accepts(e.first) {
			return []any{nil}, nil
		}
		vs, err := r.eval(e.items[0])
		if err != nil {
			return nil, err
		}
		return []any{vs}, nil
	}
	panic(fmt.Sprintf("syntax: unknown expression kind %d", e.kind))
}

// Parse recognizes input with a fresh Recognizer over the built-in grammar.
func Parse(input string) (*Program, []*SyntaxError) {
	return NewRecognizer(DefaultTable()).Parse(input)
}
