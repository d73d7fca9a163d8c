package lang

import (
	"testing"
)

// collect drains the lexer and returns every token before EOF.
func collect(t *testing.T, src string) []Token {
	t.Helper()

	lex := NewLexer(src)

	var toks []Token

	for tok := lex.Next(); tok.Kind != KindEOF; tok = lex.Next() {
		toks = append(toks, tok)

		if len(toks) > 10000 {
			t.Fatalf("lexer did not terminate on %q", src)
		}
	}

	return toks
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}

	return ks
}

func TestLexer_TokenKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{
			"assignment",
			`x = 1`,
			[]Kind{KindName, KindAssign, KindNumber},
		},
		{
			"definition",
			`x := 1`,
			[]Kind{KindName, KindDefine, KindNumber},
		},
		{
			"hex and decimal are distinct",
			`0xFF 255`,
			[]Kind{KindHex, KindNumber},
		},
		{
			"list literal",
			`(list 1, 2)`,
			[]Kind{
				KindListStart, KindNumber, KindComma, KindNumber,
				KindParenEnd,
			},
		},
		{
			"struct literal",
			`struct{x=1}`,
			[]Kind{
				KindStructStart, KindName, KindAssign, KindNumber,
				KindStructEnd,
			},
		},
		{
			"chr form",
			`chr(65)`,
			[]Kind{KindChrStart, KindNumber, KindParenEnd},
		},
		{
			"booleans",
			`true false`,
			[]Kind{KindTrue, KindFalse},
		},
		{
			"semicolons",
			`;;`,
			[]Kind{KindSemicolon, KindSemicolon},
		},
		{
			"bracket expression is one token",
			`[+ 2 3]`,
			[]Kind{KindExpr},
		},
		{
			"strings single and double quoted",
			`"a" 'b'`,
			[]Kind{KindString, KindString},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := collect(t, tt.src)

			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d %v",
					len(got), got, len(tt.want), tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexer_CompoundBeforePrefix(t *testing.T) {
	// "struct{" must not split into an identifier and "{"; ":=" must not
	// split into a skipped ":" and "=".
	toks := collect(t, `a := struct{`)

	want := []Kind{KindName, KindDefine, KindStructStart}
	got := kinds(toks)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_KeywordMatchesWithoutWordBoundary(t *testing.T) {
	// The keyword table matches by literal prefix, so "truex" lexes as
	// "true" followed by the identifier "x".
	toks := collect(t, `truex`)

	if len(toks) != 2 || toks[0].Kind != KindTrue || toks[1].Kind != KindName {
		t.Fatalf("got %v", toks)
	}

	if toks[1].Text != "x" {
		t.Errorf("trailing identifier = %q, want %q", toks[1].Text, "x")
	}
}

func TestLexer_LineComment(t *testing.T) {
	toks := collect(t, "# comment\nx = 1")

	if len(toks) != 3 || toks[0].Kind != KindName {
		t.Fatalf("got %v", toks)
	}

	if toks[0].Line != 2 || toks[0].Col != 1 {
		t.Errorf("position = %d:%d, want 2:1", toks[0].Line, toks[0].Col)
	}
}

func TestLexer_BlockComment(t *testing.T) {
	toks := collect(t, "{- skip\nall this -} x")

	if len(toks) != 1 || toks[0].Kind != KindName || toks[0].Text != "x" {
		t.Fatalf("got %v", toks)
	}

	if toks[0].Line != 2 {
		t.Errorf("line = %d, want 2", toks[0].Line)
	}
}

func TestLexer_UnterminatedBlockComment(t *testing.T) {
	// Scanning stops at end of input without an error and without tokens.
	if toks := collect(t, "{- never closed"); len(toks) != 0 {
		t.Fatalf("got %v, want none", toks)
	}
}

func TestLexer_UnterminatedString(t *testing.T) {
	// The opening quote is skipped; the remaining characters lex normally.
	toks := collect(t, `"abc`)

	if len(toks) != 1 || toks[0].Kind != KindName || toks[0].Text != "abc" {
		t.Fatalf("got %v", toks)
	}
}

func TestLexer_EscapedQuoteDoesNotTerminate(t *testing.T) {
	toks := collect(t, `"a\"b"`)

	if len(toks) != 1 || toks[0].Kind != KindString {
		t.Fatalf("got %v", toks)
	}

	if toks[0].Text != `"a\"b"` {
		t.Errorf("text = %q", toks[0].Text)
	}
}

func TestLexer_BracketScanFallback(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		// Fewer than two fields: "[" skipped, interior lexes normally.
		{"single field", "[5]", []Kind{KindNumber}},
		// First field is not an operator.
		{"no operator", "[x 5]", []Kind{KindName, KindNumber}},
		// No closing bracket.
		{"unterminated", "[+ 2 3", []Kind{KindNumber, KindNumber}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(collect(t, tt.src))

			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexer_PermissiveSkip(t *testing.T) {
	// Unrecognized punctuation is skipped one character at a time.
	toks := collect(t, `x @!% = $ 1`)

	want := []Kind{KindName, KindAssign, KindNumber}
	got := kinds(toks)

	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestLexer_Positions(t *testing.T) {
	toks := collect(t, "x = 1\n  y = 2")

	type pos struct{ line, col int }

	want := []pos{
		{1, 1}, {1, 3}, {1, 5},
		{2, 3}, {2, 5}, {2, 7},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}

	for i, tok := range toks {
		if tok.Line != want[i].line || tok.Col != want[i].col {
			t.Errorf("token %d (%q) at %d:%d, want %d:%d",
				i, tok.Text, tok.Line, tok.Col, want[i].line, want[i].col)
		}
	}
}

func TestLexer_NextAfterEOF(t *testing.T) {
	lex := NewLexer("x")

	if tok := lex.Next(); tok.Kind != KindName {
		t.Fatalf("got %v", tok)
	}

	for range 3 {
		if tok := lex.Next(); tok.Kind != KindEOF {
			t.Fatalf("expected EOF, got %v", tok)
		}
	}
}
