package syntax

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

const endOfInput = "$end"

type exprKind int

const (
	exprTerminal exprKind = iota
	exprNonterminal
	exprSequence
	exprAlternative
	exprRepetition
	exprOption
)

// termSet is a set of terminal keys. A key is "lit:<text>" for a quoted
// token, "class:<name>" for a lexer token class, "pat:<name>" for a lexical
// production matched against token text, or endOfInput.
type termSet map[string]bool

func (s termSet) add(other termSet) bool {
	changed := false
	for k := range other {
		if !s[k] {
			s[k] = true
			changed = true
		}
	}
	return changed
}

func (s termSet) accepts(tok Token, patterns map[string]*pattern) bool {
	if tok.Kind == TokenEOF {
		return s[endOfInput]
	}
	if s["lit:"+tok.Literal] {
		return true
	}
	if class := classOf(tok.Kind); class != "" && s["class:"+class] {
		return true
	}
	for name, p := range patterns {
		if s["pat:"+name] && p.Match(tok.Literal) {
			return true
		}
	}
	return false
}

func (s termSet) names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, displayTerm(k))
	}
	sort.Strings(names)
	return names
}

func displayTerm(key string) string {
	switch {
	case key == endOfInput:
		return "end of input"
	case strings.HasPrefix(key, "lit:"):
		return fmt.Sprintf("%q", strings.TrimPrefix(key, "lit:"))
	case strings.HasPrefix(key, "pat:"):
		return strings.TrimPrefix(key, "pat:")
	default:
		return strings.TrimPrefix(key, "class:")
	}
}

type expr struct {
	kind  exprKind
	term  string
	name  string
	items []*expr

	first    termSet
	nullable bool
}

type production struct {
	name string
	body *expr
}

// Table is a compiled LL(1) grammar. It is immutable once built and may be
// shared by any number of recognizers.
type Table struct {
	start       string
	productions map[string]*production
	patterns    map[string]*pattern
	reductions  map[string]reduction
}

// Start returns the name of the start production.
func (t *Table) Start() string {
	return t.start
}

// Productions returns the syntactic production names in sorted order.
func (t *Table) Productions() []string {
	names := make([]string, 0, len(t.productions))
	for name := range t.productions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// First returns the terminals that can begin the named production.
func (t *Table) First(name string) []string {
	prod, ok := t.productions[name]
	if !ok {
		return nil
	}
	return prod.body.first.names()
}

// Nullable reports whether the named production can derive the empty string.
func (t *Table) Nullable(name string) bool {
	prod, ok := t.productions[name]
	return ok && prod.body.nullable
}

// Compile builds a prediction table from the syntactic productions of g
// reachable from start. Lexical productions (lower-case names) are token
// classes: identifier, integer, string and terminator name the lexer's
// classes, and any other lexical production is matched against the token
// text. The grammar must be LL(1): alternatives need disjoint
// FIRST sets and repeated or optional bodies must not derive the empty
// string.
func Compile(g ebnf.Grammar, start string) (*Table, error) {
	c := &compiler{
		grammar: g,
		table: &Table{
			start:       start,
			productions: make(map[string]*production),
			patterns:    make(map[string]*pattern),
		},
	}
	if err := c.define(start); err != nil {
		return nil, err
	}
	c.analyze()
	if err := c.check(); err != nil {
		return nil, err
	}
	return c.table, nil
}

type compiler struct {
	grammar ebnf.Grammar
	table   *Table
}

func isLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

func (c *compiler) define(name string) error {
	if _, ok := c.table.productions[name]; ok {
		return nil
	}
	prod, ok := c.grammar[name]
	if !ok {
		return fmt.Errorf("production %q not defined", name)
	}
	p := &production{name: name}
	c.table.productions[name] = p
	body, err := c.lower(prod.Expr)
	if err != nil {
		return fmt.Errorf("production %q: %w", name, err)
	}
	p.body = body
	return nil
}

// lower converts an ebnf expression into the compiler's form, defining
// referenced productions along the way. Groups are inlined.
func (c *compiler) lower(e ebnf.Expression) (*expr, error) {
	switch e := e.(type) {
	case *ebnf.Token:
		return &expr{kind: exprTerminal, term: "lit:" + strings.Trim(e.String, `"`)}, nil
	case *ebnf.Name:
		if isLexical(e.String) {
			if _, ok := tokenClasses[e.String]; ok {
				return &expr{kind: exprTerminal, term: "class:" + e.String}, nil
			}
			if _, ok := c.grammar[e.String]; !ok {
				return nil, fmt.Errorf("unknown token class %q", e.String)
			}
			c.table.patterns[e.String] = &pattern{grammar: c.grammar, name: e.String}
			return &expr{kind: exprTerminal, term: "pat:" + e.String}, nil
		}
		if err := c.define(e.String); err != nil {
			return nil, err
		}
		return &expr{kind: exprNonterminal, name: e.String}, nil
	case ebnf.Sequence:
		return c.lowerList(exprSequence, e)
	case ebnf.Alternative:
		return c.lowerList(exprAlternative, e)
	case *ebnf.Group:
		return c.lower(e.Body)
	case *ebnf.Repetition:
		body, err := c.lower(e.Body)
		if err != nil {
			return nil, err
		}
		return &expr{kind: exprRepetition, items: []*expr{body}}, nil
	case *ebnf.Option:
		body, err := c.lower(e.Body)
		if err != nil {
			return nil, err
		}
		return &expr{kind: exprOption, items: []*expr{body}}, nil
	case nil:
		return &expr{kind: exprSequence}, nil
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

func (c *compiler) lowerList(kind exprKind, list []ebnf.Expression) (*expr, error) {
	out := &expr{kind: kind}
	for _, item := range list {
		x, err := c.lower(item)
		if err != nil {
			return nil, err
		}
		out.items = append(out.items, x)
	}
	return out, nil
}

// analyze computes FIRST sets and nullability by iterating to a fixed point.
func (c *compiler) analyze() {
	for {
		changed := false
		for _, name := range c.table.Productions() {
			if c.update(c.table.productions[name].body) {
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

func (c *compiler) update(e *expr) bool {
	if e.first == nil {
		e.first = termSet{}
	}
	changed := false
	for _, item := range e.items {
		if c.update(item) {
			changed = true
		}
	}

	nullable := false
	switch e.kind {
	case exprTerminal:
		if e.first.add(termSet{e.term: true}) {
			changed = true
		}
	case exprNonterminal:
		body := c.table.productions[e.name].body
		if body.first != nil && e.first.add(body.first) {
			changed = true
		}
		nullable = body.nullable
	case exprSequence:
		nullable = true
		for _, item := range e.items {
			if e.first.add(item.first) {
				changed = true
			}
			if !item.nullable {
				nullable = false
				break
			}
		}
	case exprAlternative:
		for _, item := range e.items {
			if e.first.add(item.first) {
				changed = true
			}
			nullable = nullable || item.nullable
		}
	case exprRepetition, exprOption:
		if e.first.add(e.items[0].first) {
			changed = true
		}
		nullable = true
	}

	if nullable != e.nullable {
		e.nullable = nullable
		changed = true
	}
	return changed
}

func (c *compiler) check() error {
	for _, name := range c.table.Productions() {
		body := c.table.productions[name].body
		if len(body.first) == 0 && !body.nullable {
			return fmt.Errorf("production %q derives no terminal string", name)
		}
		if err := c.checkExpr(name, body); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) checkExpr(name string, e *expr) error {
	switch e.kind {
	case exprAlternative:
		nullables := 0
		for i, a := range e.items {
			if a.nullable {
				nullables++
			}
			for _, b := range e.items[i+1:] {
				if k, ok := c.overlap(a.first, b.first); ok {
					return fmt.Errorf("production %q: alternatives both start with %s", name, displayTerm(k))
				}
			}
		}
		if nullables > 1 {
			return fmt.Errorf("production %q: more than one alternative is empty", name)
		}
	case exprRepetition, exprOption:
		if e.items[0].nullable {
			return fmt.Errorf("production %q: repeated or optional body may be empty", name)
		}
	}
	for _, item := range e.items {
		if err := c.checkExpr(name, item); err != nil {
			return err
		}
	}
	return nil
}

// overlap returns a terminal that can begin both sets: a shared key, or a
// quoted token that a pattern in the other set also matches.
func (c *compiler) overlap(a, b termSet) (string, bool) {
	for k := range a {
		if b[k] {
			return k, true
		}
	}
	for _, pair := range [][2]termSet{{a, b}, {b, a}} {
		for k := range pair[0] {
			lit, ok := strings.CutPrefix(k, "lit:")
			if !ok {
				continue
			}
			for name, p := range c.table.patterns {
				if pair[1]["pat:"+name] && p.Match(lit) {
					return k, true
				}
			}
		}
	}
	return "", false
}
