package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/jfrag/analysis"
	"github.com/dhamidi/jfrag/syntax"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(report *analysis.Report) error
}

// Options select what an encoder includes beyond the verdict.
type Options struct {
	// TokensOnly leaves out the grammar result.
	TokensOnly bool
	Color      bool
}

// New returns the encoder for name: "text", "json" or "yaml".
func New(name string, w io.Writer, opts Options) (Encoder, error) {
	switch name {
	case "text":
		return NewTextEncoder(w, opts), nil
	case "json":
		return NewJSONEncoder(w, opts), nil
	case "yaml":
		return NewYAMLEncoder(w, opts), nil
	}
	return nil, fmt.Errorf("unknown format: %s", name)
}

type reportData struct {
	Verdict       string          `json:"verdict" yaml:"verdict"`
	Tokens        []tokenData     `json:"tokens" yaml:"tokens"`
	Counts        []countData     `json:"counts" yaml:"counts"`
	LexicalErrors []errorData     `json:"lexicalErrors,omitempty" yaml:"lexicalErrors,omitempty"`
	SyntaxErrors  []errorData     `json:"syntaxErrors,omitempty" yaml:"syntaxErrors,omitempty"`
	Tree          *syntax.Outline `json:"tree,omitempty" yaml:"tree,omitempty"`
}

type tokenData struct {
	Label string `json:"label" yaml:"label"`
	Kind  string `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	Line  int    `json:"line" yaml:"line"`
}

type countData struct {
	Label string `json:"label" yaml:"label"`
	Count int    `json:"count" yaml:"count"`
}

type errorData struct {
	Message  string   `json:"message" yaml:"message"`
	Line     int      `json:"line,omitempty" yaml:"line,omitempty"`
	Expected []string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

func buildReportData(r *analysis.Report, opts Options) *reportData {
	data := &reportData{
		Verdict: string(r.Verdict()),
		Tokens:  make([]tokenData, 0, len(r.Tokens)),
		Counts:  make([]countData, 0, len(r.Counts)),
	}
	for _, tok := range r.Tokens {
		data.Tokens = append(data.Tokens, tokenData{
			Label: string(tok.Kind.Label()),
			Kind:  tok.Kind.String(),
			Text:  tok.Text(),
			Line:  tok.Pos.Line,
		})
	}
	for _, c := range r.Counts {
		data.Counts = append(data.Counts, countData{Label: string(c.Label), Count: c.Count})
	}
	for _, err := range r.LexicalErrors {
		data.LexicalErrors = append(data.LexicalErrors, errorData{
			Message: err.Error(),
			Line:    err.Pos.Line,
		})
	}
	if opts.TokensOnly {
		if len(r.LexicalErrors) == 0 {
			data.Verdict = "tokenized"
		}
		return data
	}
	for _, err := range r.SyntaxErrors {
		e := errorData{Message: err.Error(), Expected: err.Expected}
		if !err.AtEnd() {
			e.Line = err.Token.Pos.Line
		}
		data.SyntaxErrors = append(data.SyntaxErrors, e)
	}
	if r.Tree != nil {
		data.Tree = r.Tree.Outline()
	}
	return data
}
