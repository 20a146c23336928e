package syntax

import "fmt"

// LexicalError is a character that matched no scanning rule.
type LexicalError struct {
	Char rune
	Pos  Position
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("invalid character '%c' at line %d", e.Char, e.Pos.Line)
}

// SyntaxError is a token, or the end of input, that could not extend the
// production being recognized.
type SyntaxError struct {
	Token Token
	// Expected lists the terminals that would have been accepted.
	Expected []string
	// Depth is the nesting limit when that limit, not a mismatch, stopped
	// recognition. It is zero otherwise.
	Depth int
}

// AtEnd reports whether the input ran out before the program was complete.
func (e *SyntaxError) AtEnd() bool {
	return e.Token.Kind == TokenEOF
}

func (e *SyntaxError) Error() string {
	msg := "incomplete or unexpected input at end"
	if !e.AtEnd() {
		msg = fmt.Sprintf("unexpected token '%s' at line %d", e.Token.Text(), e.Token.Pos.Line)
	}
	if e.Depth > 0 {
		msg += fmt.Sprintf(": nesting exceeds %d levels", e.Depth)
	}
	return msg
}
