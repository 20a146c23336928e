package syntax

import (
	"strings"
)

// Statement is one of *Assign, *Block or *ForLoop.
type Statement interface {
	Tag() string
	Pos() Position
	stmtNode()
}

// Program is the root of every accepted input.
type Program struct {
	Name     string
	NamePos  Position
	Body     []Statement
	StartPos Position
}

func (p *Program) Tag() string   { return "program" }
func (p *Program) Pos() Position { return p.StartPos }

// Assign is the counter statement "n = ;".
type Assign struct {
	Counter    Token
	Op         Token
	Terminator Token
}

func (s *Assign) Tag() string   { return "statement" }
func (s *Assign) Pos() Position { return s.Counter.Pos }
func (*Assign) stmtNode()       {}

// Block is a braced statement list.
type Block struct {
	Lbrace Position
	Body   []Statement
}

func (s *Block) Tag() string   { return "statement" }
func (s *Block) Pos() Position { return s.Lbrace }
func (*Block) stmtNode()       {}

// ForLoop wraps Body and carries a single statement as its header.
type ForLoop struct {
	For    Position
	Header Statement
	Body   []Statement
}

func (s *ForLoop) Tag() string   { return "for_loop" }
func (s *ForLoop) Pos() Position { return s.For }
func (*ForLoop) stmtNode()       {}

// String renders the program as nested tagged tuples, for example
// ('program', 'main', [('statement', 'n', '=', ';')]).
func (p *Program) String() string {
	var b strings.Builder
	b.WriteString("('program', ")
	writeQuoted(&b, p.Name)
	b.WriteString(", ")
	writeList(&b, p.Body)
	b.WriteString(")")
	return b.String()
}

func (s *Assign) String() string {
	var b strings.Builder
	writeStatement(&b, s)
	return b.String()
}

func (s *Block) String() string {
	var b strings.Builder
	writeStatement(&b, s)
	return b.String()
}

func (s *ForLoop) String() string {
	var b strings.Builder
	writeStatement(&b, s)
	return b.String()
}

func writeStatement(b *strings.Builder, s Statement) {
	b.WriteString("(")
	writeQuoted(b, s.Tag())
	switch s := s.(type) {
	case *Assign:
		for _, tok := range []Token{s.Counter, s.Op, s.Terminator} {
			b.WriteString(", ")
			writeQuoted(b, tok.Text())
		}
	case *Block:
		b.WriteString(", ")
		writeList(b, s.Body)
	case *ForLoop:
		b.WriteString(", ")
		writeStatement(b, s.Header)
		b.WriteString(", ")
		writeList(b, s.Body)
	}
	b.WriteString(")")
}

func writeList(b *strings.Builder, body []Statement) {
	b.WriteString("[")
	for i, s := range body {
		if i > 0 {
			b.WriteString(", ")
		}
		writeStatement(b, s)
	}
	b.WriteString("]")
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteString("'")
	b.WriteString(strings.ReplaceAll(s, "'", `\'`))
	b.WriteString("'")
}

// Dump renders the tree one node per line, indented by depth.
func (p *Program) Dump() string {
	var b strings.Builder
	b.WriteString("Program " + p.Name + "\n")
	for _, s := range p.Body {
		dumpStatement(&b, s, 1)
	}
	return b.String()
}

func dumpStatement(b *strings.Builder, s Statement, indent int) {
	prefix := strings.Repeat("  ", indent)
	switch s := s.(type) {
	case *Assign:
		b.WriteString(prefix + "Assign " + s.Counter.Text() + " " + s.Op.Text() + " " + s.Terminator.Text() + "\n")
	case *Block:
		b.WriteString(prefix + "Block\n")
		for _, child := range s.Body {
			dumpStatement(b, child, indent+1)
		}
	case *ForLoop:
		b.WriteString(prefix + "ForLoop\n")
		b.WriteString(prefix + "  Header\n")
		dumpStatement(b, s.Header, indent+2)
		for _, child := range s.Body {
			dumpStatement(b, child, indent+1)
		}
	}
}

// Walk calls fn for every statement in depth-first order, headers before
// bodies. It stops early when fn returns false.
func Walk(body []Statement, fn func(Statement) bool) bool {
	for _, s := range body {
		if !fn(s) {
			return false
		}
		switch s := s.(type) {
		case *Block:
			if !Walk(s.Body, fn) {
				return false
			}
		case *ForLoop:
			if !Walk([]Statement{s.Header}, fn) || !Walk(s.Body, fn) {
				return false
			}
		}
	}
	return true
}
