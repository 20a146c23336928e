// Package analysis runs the two syntax passes over one input and applies the
// reporting policy: lexical errors win, and the grammar is only checked for
// lexically clean input.
package analysis

import (
	"strings"

	"github.com/dhamidi/jfrag/syntax"
)

type Verdict string

const (
	VerdictAccepted     Verdict = "accepted"
	VerdictLexicalError Verdict = "lexical_error"
	VerdictSyntaxError  Verdict = "syntax_error"
)

// LabelCount is the number of tokens displayed under one label.
type LabelCount struct {
	Label syntax.Label
	Count int
}

type Report struct {
	Input         string
	Tokens        []syntax.Token
	Counts        []LabelCount
	LexicalErrors []*syntax.LexicalError
	// Parsed is false when lexical errors kept the recognizer from running.
	Parsed       bool
	SyntaxErrors []*syntax.SyntaxError
	Tree         *syntax.Program
}

func (r *Report) Verdict() Verdict {
	switch {
	case len(r.LexicalErrors) > 0:
		return VerdictLexicalError
	case len(r.SyntaxErrors) > 0:
		return VerdictSyntaxError
	}
	return VerdictAccepted
}

// Errors returns the error channel that decided the verdict.
func (r *Report) Errors() []error {
	var errs []error
	if len(r.LexicalErrors) > 0 {
		for _, err := range r.LexicalErrors {
			errs = append(errs, err)
		}
		return errs
	}
	for _, err := range r.SyntaxErrors {
		errs = append(errs, err)
	}
	return errs
}

// ErrorMessage joins the deciding errors with newlines. It is empty for
// accepted input.
func (r *Report) ErrorMessage() string {
	var lines []string
	for _, err := range r.Errors() {
		lines = append(lines, err.Error())
	}
	return strings.Join(lines, "\n")
}

// Analyzer checks inputs against one grammar table. It holds no per-input
// state, so a single Analyzer may serve concurrent requests.
type Analyzer struct {
	table *syntax.Table
}

func New(table *syntax.Table) *Analyzer {
	return &Analyzer{table: table}
}

// Analyze tokenizes input and, when that found no lexical errors, checks it
// against the grammar. Each call uses its own lexer and recognizer.
func (a *Analyzer) Analyze(input string) *Report {
	report := a.Tokenize(input)
	if len(report.LexicalErrors) > 0 {
		return report
	}

	report.Parsed = true
	report.Tree, report.SyntaxErrors = syntax.NewRecognizer(a.table).Parse(input)
	return report
}

// Tokenize runs only the lexical pass. The report is never Parsed and its
// verdict reflects lexical errors alone.
func (a *Analyzer) Tokenize(input string) *Report {
	return Tokenize(input)
}

// Tokenize runs the lexical pass without any grammar.
func Tokenize(input string) *Report {
	report := &Report{Input: input}
	report.Tokens, report.LexicalErrors = syntax.Tokenize(input)
	report.Counts = CountLabels(report.Tokens)
	return report
}

// Analyze runs the built-in grammar over input.
func Analyze(input string) *Report {
	return New(syntax.DefaultTable()).Analyze(input)
}

// CountLabels counts tokens per display label, in order of first appearance.
func CountLabels(tokens []syntax.Token) []LabelCount {
	var counts []LabelCount
	index := make(map[syntax.Label]int)
	for _, tok := range tokens {
		label := tok.Kind.Label()
		i, ok := index[label]
		if !ok {
			i = len(counts)
			index[label] = i
			counts = append(counts, LabelCount{Label: label})
		}
		counts[i].Count++
	}
	return counts
}
