package lang

// Kind identifies the lexical class of a token.
type Kind int

const (
	// KindEOF marks the end of input.
	KindEOF Kind = iota

	// KindName is an identifier: a letter or underscore followed by
	// letters, digits, or underscores.
	KindName

	// KindNumber is a decimal integer literal.
	KindNumber

	// KindHex is a hexadecimal integer literal with a 0x or 0X prefix.
	KindHex

	// KindString is a quoted string literal, including its quotes.
	KindString

	// KindTrue and KindFalse are the boolean keywords.
	KindTrue
	KindFalse

	// KindListStart is the "(list" list-literal opener.
	KindListStart

	// KindParenEnd is the ")" closing a list or chr form.
	KindParenEnd

	// KindStructStart is the "struct{" struct-literal opener.
	KindStructStart

	// KindStructEnd is the "}" closing a struct literal.
	KindStructEnd

	// KindChrStart is the "chr(" character-conversion opener.
	KindChrStart

	// KindAssign is "=", KindDefine is ":=".
	KindAssign
	KindDefine

	// KindComma and KindSemicolon are the separators.
	KindComma
	KindSemicolon

	// KindExpr is an entire bracketed arithmetic expression such as
	// "[+ 2 3]", recognized atomically by the lexer.
	KindExpr
)

// String returns a human-readable name for the token kind, used in syntax
// error messages.
func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "end of input"
	case KindName:
		return "identifier"
	case KindNumber:
		return "number"
	case KindHex:
		return "hex number"
	case KindString:
		return "string"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindListStart:
		return "(list"
	case KindParenEnd:
		return ")"
	case KindStructStart:
		return "struct{"
	case KindStructEnd:
		return "}"
	case KindChrStart:
		return "chr("
	case KindAssign:
		return "="
	case KindDefine:
		return ":="
	case KindComma:
		return ","
	case KindSemicolon:
		return ";"
	case KindExpr:
		return "expression"
	default:
		return "unknown"
	}
}

// Token is one lexical unit with its position in the source.
// Tokens are immutable once produced by the lexer.
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}
