package lang

import (
	"strconv"
	"strings"
)

// SyntaxError reports a structural mismatch during parsing. It carries the
// position of the offending token, a description of what the parser
// expected, and what it actually found.
//
// Any syntax error aborts the entire parse; no partial document is
// returned. The only recoveries the parser performs are the enumerated
// silent-recovery rules of the grammar (stray characters, stray struct-body
// tokens, undefined constants, and arithmetic degradations).
type SyntaxError struct {
	Line     int
	Col      int
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	var sb strings.Builder

	sb.WriteString("syntax error at line ")
	sb.WriteString(strconv.Itoa(e.Line))
	sb.WriteString(", column ")
	sb.WriteString(strconv.Itoa(e.Col))
	sb.WriteString(": expected ")
	sb.WriteString(e.Expected)
	sb.WriteString(", got ")
	sb.WriteString(e.Actual)

	return sb.String()
}

// Snippet renders the offending source line with a caret marker pointing at
// the error column, for terminal display:
//
//	  3 | port = }
//	             ^
//
// An empty string is returned when the position falls outside the source.
func (e *SyntaxError) Snippet(source string) string {
	lines := strings.Split(source, "\n")
	if e.Line < 1 || e.Line > len(lines) {
		return ""
	}

	text := lines[e.Line-1]

	var sb strings.Builder

	sb.WriteString("  ")
	sb.WriteString(strconv.Itoa(e.Line))
	sb.WriteString(" | ")
	sb.WriteString(text)
	sb.WriteRune('\n')

	// Two leading spaces plus " | " around the line number.
	padding := len(strconv.Itoa(e.Line)) + 5
	if e.Col > 0 {
		padding += e.Col - 1
	}

	sb.WriteString(strings.Repeat(" ", padding))
	sb.WriteString("^\n")

	return sb.String()
}

// syntaxErrorAt builds a SyntaxError positioned at the given token.
func syntaxErrorAt(tok Token, expected string) *SyntaxError {
	return &SyntaxError{
		Line:     tok.Line,
		Col:      tok.Col,
		Expected: expected,
		Actual:   tok.Kind.String(),
	}
}
