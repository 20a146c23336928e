package syntax

import (
	"slices"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// pattern matches token text against the body of a lexical production.
// Lexical productions without a lexer class are recognized this way: a
// token belongs to the pattern when the whole of its text derives from the
// production.
type pattern struct {
	grammar ebnf.Grammar
	name    string
}

// memoKey identifies the match of one production at one offset.
type memoKey struct {
	name   string
	offset int
}

type matcher struct {
	grammar  ebnf.Grammar
	input    string
	memo     map[memoKey][]int
	visiting map[memoKey]bool
}

func (p *pattern) Match(text string) bool {
	if text == "" {
		return false
	}
	m := &matcher{
		grammar:  p.grammar,
		input:    text,
		memo:     make(map[memoKey][]int),
		visiting: make(map[memoKey]bool),
	}
	return slices.Contains(m.matchName(p.name, 0), len(text))
}

// match returns every offset at which a match of e starting at offset can
// end, in increasing order.
func (m *matcher) match(e ebnf.Expression, offset int) []int {
	switch e := e.(type) {
	case nil:
		return []int{offset}

	case *ebnf.Token:
		if len(m.input)-offset >= len(e.String) && m.input[offset:offset+len(e.String)] == e.String {
			return []int{offset + len(e.String)}
		}
		return nil

	case *ebnf.Range:
		if offset >= len(m.input) {
			return nil
		}
		lo, _ := utf8.DecodeRuneInString(e.Begin.String)
		hi, _ := utf8.DecodeRuneInString(e.End.String)
		r, size := utf8.DecodeRuneInString(m.input[offset:])
		if r >= lo && r <= hi {
			return []int{offset + size}
		}
		return nil

	case ebnf.Sequence:
		ends := []int{offset}
		for _, item := range e {
			var next []int
			for _, pos := range ends {
				next = union(next, m.match(item, pos))
			}
			if len(next) == 0 {
				return nil
			}
			ends = next
		}
		return ends

	case ebnf.Alternative:
		var ends []int
		for _, alt := range e {
			ends = union(ends, m.match(alt, offset))
		}
		return ends

	case *ebnf.Repetition:
		ends := []int{offset}
		frontier := []int{offset}
		for len(frontier) > 0 {
			var next []int
			for _, pos := range frontier {
				for _, end := range m.match(e.Body, pos) {
					if end > pos && !slices.Contains(ends, end) {
						next = union(next, []int{end})
					}
				}
			}
			ends = union(ends, next)
			frontier = next
		}
		return ends

	case *ebnf.Option:
		return union([]int{offset}, m.match(e.Body, offset))

	case *ebnf.Group:
		return m.match(e.Body, offset)

	case *ebnf.Name:
		return m.matchName(e.String, offset)
	}
	return nil
}

// matchName matches a production with memoization. A production that
// refers back to itself at the same offset does not match there.
func (m *matcher) matchName(name string, offset int) []int {
	key := memoKey{name: name, offset: offset}
	if ends, ok := m.memo[key]; ok {
		return ends
	}
	if m.visiting[key] {
		return nil
	}

	prod, ok := m.grammar[name]
	if !ok {
		m.memo[key] = nil
		return nil
	}

	m.visiting[key] = true
	ends := m.match(prod.Expr, offset)
	delete(m.visiting, key)

	m.memo[key] = ends
	return ends
}

func union(a, b []int) []int {
	for _, x := range b {
		if !slices.Contains(a, x) {
			a = append(a, x)
		}
	}
	slices.Sort(a)
	return a
}
