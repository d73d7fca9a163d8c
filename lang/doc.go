// Package lang implements the strux configuration language: a permissive
// lexer, a single-pass recursive-descent parser, and ordered encoders for
// JSON and YAML output.
//
// A strux source is a sequence of statements binding names to values:
//
//	# constants are reusable in later statements
//	width  := 640
//	height := [/ width 2]
//
//	title = "strux \"demo\""
//	sizes = (list 1, 2, 0xFF)
//
//	window struct{
//		x = width,
//		y = height,
//		visible = true,
//	}
//
// Values are integers (decimal or hex), quoted text, booleans, ordered
// lists, ordered structs, bare identifiers, character conversions such as
// chr(65), and bracketed arithmetic expressions such as [+ 2 3] with the
// fixed operators + - * /.
//
// The grammar is deliberately lenient: unrecognized characters are skipped
// by the lexer, stray tokens inside struct bodies are skipped by the
// parser, references to undefined constants degrade to literal identifier
// values, and division by zero degrades to zero. Structural mismatches
// raise a SyntaxError carrying line and column; a syntax error aborts the
// whole parse and no partial document is produced.
package lang
