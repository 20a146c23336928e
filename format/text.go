package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/jfrag/analysis"
)

var (
	colorError   = lipgloss.Color("#EF4444")
	colorSuccess = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")

	headingStyle = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// TextEncoder writes a report as aligned columns for terminals.
type TextEncoder struct {
	w      io.Writer
	opts   Options
	report *analysis.Report
}

func NewTextEncoder(w io.Writer, opts Options) *TextEncoder {
	return &TextEncoder{w: w, opts: opts}
}

func (e *TextEncoder) Encode(report *analysis.Report) error {
	e.report = report
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TextEncoder) style(s lipgloss.Style, text string) string {
	if !e.opts.Color {
		return text
	}
	return s.Render(text)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	r := e.report

	sb.WriteString(e.style(headingStyle, "Tokens") + "\n")
	if len(r.Tokens) == 0 {
		sb.WriteString(e.style(mutedStyle, "  (none)") + "\n")
	}
	for _, tok := range r.Tokens {
		fmt.Fprintf(&sb, "  %4d  %-18s %s\n", tok.Pos.Line, tok.Kind.Label(), tok.Text())
	}

	sb.WriteString("\n" + e.style(headingStyle, "Counts") + "\n")
	for _, c := range r.Counts {
		fmt.Fprintf(&sb, "  %-18s %d\n", c.Label, c.Count)
	}

	if len(r.LexicalErrors) > 0 {
		sb.WriteString("\n" + e.style(headingStyle, "Lexical errors") + "\n")
		for _, err := range r.LexicalErrors {
			sb.WriteString("  " + e.style(errorStyle, err.Error()) + "\n")
		}
		return []byte(sb.String()), nil
	}
	if e.opts.TokensOnly {
		return []byte(sb.String()), nil
	}

	if len(r.SyntaxErrors) > 0 {
		sb.WriteString("\n" + e.style(headingStyle, "Syntax errors") + "\n")
		for _, err := range r.SyntaxErrors {
			sb.WriteString("  " + e.style(errorStyle, err.Error()) + "\n")
			if len(err.Expected) > 0 {
				sb.WriteString("  " + e.style(mutedStyle, "expected "+strings.Join(err.Expected, ", ")) + "\n")
			}
		}
		return []byte(sb.String()), nil
	}

	if r.Tree != nil {
		sb.WriteString("\n" + e.style(headingStyle, "Syntax tree") + "\n")
		sb.WriteString(r.Tree.String() + "\n")
	}
	sb.WriteString("\n" + e.style(successStyle, "accepted") + "\n")
	return []byte(sb.String()), nil
}
