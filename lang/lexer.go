package lang

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// keywords are the literal patterns recognized by the lexer, in match order.
// Compound forms must precede their single-character prefixes so that
// "struct{" is not split into an identifier and "{", ":=" is not split into
// ":" and "=", and so on.
var keywords = []struct {
	pattern string
	kind    Kind
}{
	{"struct{", KindStructStart},
	{"(list", KindListStart},
	{"chr(", KindChrStart},
	{":=", KindDefine},
	{";", KindSemicolon},
	{"=", KindAssign},
	{",", KindComma},
	{"}", KindStructEnd},
	{")", KindParenEnd},
	{"true", KindTrue},
	{"false", KindFalse},
}

// exprOps are the operators accepted at the head of a bracket expression.
const exprOps = "+-*/"

// Lexer scans strux source text into a stream of tokens.
//
// The lexer is deliberately permissive: characters that match no rule are
// skipped silently, one rune at a time, and no error is ever returned.
// The cursor advances monotonically and never rewinds.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// NewLexer creates a lexer over the given source text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next returns the next token, or a KindEOF token once the input is
// exhausted. It may be called repeatedly after EOF.
func (l *Lexer) Next() Token {
	for l.pos < len(l.src) {
		ch, _ := utf8.DecodeRuneInString(l.src[l.pos:])

		if ch == '#' {
			l.skipLineComment()

			continue
		}

		if unicode.IsSpace(ch) {
			l.skipWhitespace()

			continue
		}

		if strings.HasPrefix(l.src[l.pos:], "{-") {
			l.skipBlockComment()

			continue
		}

		if ch == '[' {
			if tok, ok := l.scanExpr(); ok {
				return tok
			}
		}

		if tok, ok := l.scanKeywordOrName(); ok {
			return tok
		}

		if tok, ok := l.scanNumber(); ok {
			return tok
		}

		if tok, ok := l.scanString(); ok {
			return tok
		}

		// Permissive fallback: skip the unrecognized character.
		l.skipRune()
	}

	return Token{Kind: KindEOF, Line: l.line, Col: l.col}
}

// skipLineComment consumes a "#" comment through the end of line.
// The newline itself is consumed, advancing the line counter.
func (l *Lexer) skipLineComment() {
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
		l.col++
	}

	if l.pos < len(l.src) {
		l.pos++
		l.line++
		l.col = 1
	}
}

// skipBlockComment consumes a "{-" comment through the matching "-}".
// Block comments do not nest. An unterminated comment consumes the rest of
// the input without raising an error.
func (l *Lexer) skipBlockComment() {
	l.pos += 2
	l.col += 2

	for l.pos < len(l.src) {
		if strings.HasPrefix(l.src[l.pos:], "-}") {
			l.pos += 2
			l.col += 2

			return
		}

		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		l.pos++
	}
}

// skipWhitespace consumes a run of whitespace. Newlines advance the line
// counter and reset the column.
func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.src) {
		ch, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(ch) {
			return
		}

		if ch == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}

		l.pos += size
	}
}

// scanExpr attempts to recognize a bracketed arithmetic expression starting
// at the current "[". The matching "]" is found with a flat bracket counter.
// The interior must split into at least two whitespace-separated fields with
// an arithmetic operator first; otherwise the scan fails and the "[" falls
// through to the permissive fallback.
func (l *Lexer) scanExpr() (Token, bool) {
	depth := 0
	end := l.pos

	for end < len(l.src) {
		switch l.src[end] {
		case '[':
			depth++
		case ']':
			depth--
		}

		if depth == 0 {
			break
		}

		end++
	}

	if end == len(l.src) || depth != 0 {
		return Token{}, false
	}

	fields := strings.Fields(l.src[l.pos+1 : end])
	if len(fields) < 2 || len(fields[0]) != 1 ||
		!strings.Contains(exprOps, fields[0]) {
		return Token{}, false
	}

	text := l.src[l.pos : end+1]
	tok := Token{Kind: KindExpr, Text: text, Line: l.line, Col: l.col}

	l.pos = end + 1
	l.col += len(text)

	return tok, true
}

// scanKeywordOrName matches the fixed keyword table by literal prefix, then
// falls back to the identifier pattern. Keywords are matched without a word
// boundary, mirroring the reference grammar.
func (l *Lexer) scanKeywordOrName() (Token, bool) {
	for _, kw := range keywords {
		if strings.HasPrefix(l.src[l.pos:], kw.pattern) {
			tok := Token{
				Kind: kw.kind,
				Text: kw.pattern,
				Line: l.line,
				Col:  l.col,
			}

			l.pos += len(kw.pattern)
			l.col += len(kw.pattern)

			return tok, true
		}
	}

	if !isNameStart(l.src[l.pos]) {
		return Token{}, false
	}

	end := l.pos + 1
	for end < len(l.src) && isNameContinue(l.src[end]) {
		end++
	}

	tok := Token{
		Kind: KindName,
		Text: l.src[l.pos:end],
		Line: l.line,
		Col:  l.col,
	}

	l.col += end - l.pos
	l.pos = end

	return tok, true
}

// scanNumber matches a hexadecimal literal prefixed 0x/0X, or a decimal
// integer literal. The two forms are distinct token kinds.
func (l *Lexer) scanNumber() (Token, bool) {
	rest := l.src[l.pos:]

	if len(rest) > 2 && (rest[:2] == "0x" || rest[:2] == "0X") &&
		isHexDigit(rest[2]) {
		end := 3
		for end < len(rest) && isHexDigit(rest[end]) {
			end++
		}

		return l.takeNumber(end, KindHex), true
	}

	if !isDigit(rest[0]) {
		return Token{}, false
	}

	end := 1
	for end < len(rest) && isDigit(rest[end]) {
		end++
	}

	return l.takeNumber(end, KindNumber), true
}

func (l *Lexer) takeNumber(length int, kind Kind) Token {
	tok := Token{
		Kind: kind,
		Text: l.src[l.pos : l.pos+length],
		Line: l.line,
		Col:  l.col,
	}

	l.pos += length
	l.col += length

	return tok
}

// scanString matches a quoted string literal delimited by single or double
// quotes. A quote preceded by a backslash does not terminate the string.
// An unterminated string fails the scan without consuming anything, so the
// opening quote is skipped by the permissive fallback.
func (l *Lexer) scanString() (Token, bool) {
	quote := l.src[l.pos]
	if quote != '\'' && quote != '"' {
		return Token{}, false
	}

	line, col := l.line, l.col+1

	for i := l.pos + 1; i < len(l.src); i++ {
		if l.src[i] == quote && l.src[i-1] != '\\' {
			tok := Token{
				Kind: KindString,
				Text: l.src[l.pos : i+1],
				Line: l.line,
				Col:  l.col,
			}

			l.pos = i + 1
			l.line = line
			l.col = col + 1

			return tok, true
		}

		if l.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	return Token{}, false
}

// skipRune advances past one rune without emitting a token.
func (l *Lexer) skipRune() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	l.col++
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameContinue(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
