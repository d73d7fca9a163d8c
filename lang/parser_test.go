package lang

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// parse is a test helper running the full lexer/parser pipeline.
func parse(t *testing.T, src string) *Document {
	t.Helper()

	doc, err := NewParser(NewLexer(src)).Parse()
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}

	return doc
}

func mustGet(t *testing.T, doc *Document, name string) Value {
	t.Helper()

	v, ok := doc.Get(name)
	if !ok {
		t.Fatalf("document has no entry %q", name)
	}

	return v
}

func TestParser_ScalarValues(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"decimal", `x = 42`, IntegerValue(42)},
		{"hex", `x = 0xFF`, IntegerValue(255)},
		{"hex uppercase prefix", `x = 0X10`, IntegerValue(16)},
		{"negative via expr", `x = [- 0 7]`, IntegerValue(-7)},
		{"double quoted text", `x = "hello"`, TextValue("hello")},
		{"single quoted text", `x = 'hi'`, TextValue("hi")},
		{"escaped double quote", `x = "a\"b"`, TextValue(`a"b`)},
		{"escaped single quote", `x = 'a\'b'`, TextValue("a'b")},
		{"true", `x = true`, BooleanValue(true)},
		{"false", `x = false`, BooleanValue(false)},
		{"undefined name degrades", `x = missing`, IdentifierValue("missing")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustGet(t, parse(t, tt.src), "x")

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("x = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParser_ConstantSubstitution(t *testing.T) {
	doc := parse(t, "x := 7\ny = x\n")

	if got := mustGet(t, doc, "y"); !reflect.DeepEqual(got, IntegerValue(7)) {
		t.Errorf("y = %#v, want 7", got)
	}
}

func TestParser_ConstantSubstitutionIsOrderSensitive(t *testing.T) {
	// A later redefinition must not retroactively change an earlier
	// substitution: substitution copies the value at reference time.
	doc := parse(t, "x := 1\na = x\nx := 2\nb = x\n")

	if got := mustGet(t, doc, "a"); !reflect.DeepEqual(got, IntegerValue(1)) {
		t.Errorf("a = %#v, want 1", got)
	}

	if got := mustGet(t, doc, "b"); !reflect.DeepEqual(got, IntegerValue(2)) {
		t.Errorf("b = %#v, want 2", got)
	}

	// The document entry for x reflects the last definition.
	if got := mustGet(t, doc, "x"); !reflect.DeepEqual(got, IntegerValue(2)) {
		t.Errorf("x = %#v, want 2", got)
	}
}

func TestParser_AssignDoesNotDefineConstant(t *testing.T) {
	// "=" binds in the document only; a later reference to the name is an
	// unresolvable identifier.
	doc := parse(t, "x = 5\ny = x\n")

	if got := mustGet(t, doc, "y"); !reflect.DeepEqual(got, IdentifierValue("x")) {
		t.Errorf("y = %#v, want identifier x", got)
	}
}

func TestParser_BareNameSelfBinds(t *testing.T) {
	doc := parse(t, "flag\n")

	if got := mustGet(t, doc, "flag"); !reflect.DeepEqual(got, IdentifierValue("flag")) {
		t.Errorf("flag = %#v", got)
	}
}

func TestParser_BareValueUsesSyntheticKey(t *testing.T) {
	doc := parse(t, `"just text"`)

	if got := mustGet(t, doc, BareKey); !reflect.DeepEqual(got, TextValue("just text")) {
		t.Errorf("%s = %#v", BareKey, got)
	}
}

func TestParser_LastBareValueWins(t *testing.T) {
	doc := parse(t, "1\n2\n3\n")

	if got := mustGet(t, doc, BareKey); !reflect.DeepEqual(got, IntegerValue(3)) {
		t.Errorf("%s = %#v, want 3", BareKey, got)
	}

	if doc.Len() != 1 {
		t.Errorf("document has %d entries, want 1", doc.Len())
	}
}

func TestParser_EmptyStatements(t *testing.T) {
	doc := parse(t, ";;;\nx = 1;\n;")

	if doc.Len() != 1 {
		t.Errorf("document has %d entries, want 1", doc.Len())
	}
}

func TestParser_List(t *testing.T) {
	doc := parse(t, `l = (list 1, 2, 3)`)

	want := ListValue(IntegerValue(1), IntegerValue(2), IntegerValue(3))

	if got := mustGet(t, doc, "l"); !reflect.DeepEqual(got, want) {
		t.Errorf("l = %#v, want %#v", got, want)
	}
}

func TestParser_ListTrailingCommaAndNesting(t *testing.T) {
	doc := parse(t, `l = (list 1, (list 2, 3,), "x",)`)

	want := ListValue(
		IntegerValue(1),
		ListValue(IntegerValue(2), IntegerValue(3)),
		TextValue("x"),
	)

	if got := mustGet(t, doc, "l"); !reflect.DeepEqual(got, want) {
		t.Errorf("l = %#v, want %#v", got, want)
	}
}

func TestParser_EmptyList(t *testing.T) {
	doc := parse(t, `l = (list)`)

	if got := mustGet(t, doc, "l"); got.Type != TypeList || len(got.List) != 0 {
		t.Errorf("l = %#v, want empty list", got)
	}
}

func TestParser_StructWithoutOperator(t *testing.T) {
	doc := parse(t, `p struct{x=1,y=2}`)

	v := mustGet(t, doc, "p")
	if v.Type != TypeStruct {
		t.Fatalf("p has type %v", v.Type)
	}

	fields := v.Struct.Fields()
	if len(fields) != 2 {
		t.Fatalf("p has %d fields", len(fields))
	}

	if fields[0].Name != "x" || !reflect.DeepEqual(fields[0].Value, IntegerValue(1)) {
		t.Errorf("field 0 = %+v", fields[0])
	}

	if fields[1].Name != "y" || !reflect.DeepEqual(fields[1].Value, IntegerValue(2)) {
		t.Errorf("field 1 = %+v", fields[1])
	}
}

func TestParser_StructFieldOrderPreserved(t *testing.T) {
	doc := parse(t, `s = struct{z=1, a=2, m=3}`)

	var names []string
	for _, f := range mustGet(t, doc, "s").Struct.Fields() {
		names = append(names, f.Name)
	}

	if got := strings.Join(names, ","); got != "z,a,m" {
		t.Errorf("field order %q, want z,a,m", got)
	}
}

func TestParser_StructSkipsStrayTokens(t *testing.T) {
	// Non-identifier tokens inside a struct body are skipped silently.
	doc := parse(t, `s = struct{, 5 x=1, ; y=2}`)

	fields := mustGet(t, doc, "s").Struct.Fields()
	if len(fields) != 2 || fields[0].Name != "x" || fields[1].Name != "y" {
		t.Errorf("fields = %+v", fields)
	}
}

func TestParser_StructMissingAssignIsError(t *testing.T) {
	_, err := NewParser(NewLexer("s = struct{x 1}")).Parse()

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}

	if synErr.Expected != "=" {
		t.Errorf("expected %q, want %q", synErr.Expected, "=")
	}
}

func TestParser_NestedStructures(t *testing.T) {
	doc := parse(t, `
cfg struct{
	sizes = (list 1, struct{w=2}),
	inner = struct{deep = (list true)},
}
`)

	v := mustGet(t, doc, "cfg")
	if v.Type != TypeStruct {
		t.Fatalf("cfg type %v", v.Type)
	}

	sizes, ok := v.Struct.Get("sizes")
	if !ok || sizes.Type != TypeList || len(sizes.List) != 2 {
		t.Fatalf("sizes = %#v", sizes)
	}

	if sizes.List[1].Type != TypeStruct {
		t.Errorf("sizes[1] type %v", sizes.List[1].Type)
	}

	inner, ok := v.Struct.Get("inner")
	if !ok || inner.Type != TypeStruct {
		t.Fatalf("inner = %#v", inner)
	}
}

func TestParser_Chr(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Value
	}{
		{"integer argument", `c := chr(65)`, TextValue("A")},
		{"constant argument", "n := 97\nc = chr(n)", TextValue("a")},
		{"text degrades", `c = chr("x")`, TextValue("?")},
		{"boolean degrades", `c = chr(true)`, TextValue("?")},
		{"identifier degrades", `c = chr(nope)`, TextValue("?")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustGet(t, parse(t, tt.src), "c"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("c = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParser_ChrMissingParenIsError(t *testing.T) {
	_, err := NewParser(NewLexer(`c = chr(65`)).Parse()

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestParser_RedefinitionOverwritesInPlace(t *testing.T) {
	// Re-assigning a document name keeps its original position.
	doc := parse(t, "a = 1\nb = 2\na = 3\n")

	fields := doc.Fields()
	if len(fields) != 2 {
		t.Fatalf("got %d entries", len(fields))
	}

	if fields[0].Name != "a" || !reflect.DeepEqual(fields[0].Value, IntegerValue(3)) {
		t.Errorf("entry 0 = %+v", fields[0])
	}

	if fields[1].Name != "b" {
		t.Errorf("entry 1 = %+v", fields[1])
	}
}

func TestParser_SyntaxErrorCarriesPosition(t *testing.T) {
	_, err := NewParser(NewLexer("x =\n")).Parse()

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}

	if synErr.Line < 1 || synErr.Col < 1 {
		t.Errorf("position %d:%d not set", synErr.Line, synErr.Col)
	}

	if !strings.Contains(synErr.Error(), "syntax error at line") {
		t.Errorf("message %q", synErr.Error())
	}
}

func TestParser_NoPartialDocumentOnError(t *testing.T) {
	doc, err := NewParser(NewLexer("a = 1\nb = struct{x 2}\n")).Parse()
	if err == nil {
		t.Fatal("expected error")
	}

	if doc != nil {
		t.Errorf("expected nil document, got %d entries", doc.Len())
	}
}

func TestParser_Determinism(t *testing.T) {
	const src = `
width := 640
height := [/ width 2]
title = "demo"
p struct{x = width, y = height}
items = (list 1, 0x10, chr(33))
`

	a := parse(t, src)
	b := parse(t, src)

	if !reflect.DeepEqual(a.Fields(), b.Fields()) {
		t.Error("repeated parses differ")
	}
}

func TestSyntaxError_Snippet(t *testing.T) {
	src := "a = 1\nb = }\n"

	_, err := NewParser(NewLexer(src)).Parse()

	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}

	snippet := synErr.Snippet(src)
	if !strings.Contains(snippet, "b = }") {
		t.Errorf("snippet missing source line:\n%s", snippet)
	}

	if !strings.Contains(snippet, "^") {
		t.Errorf("snippet missing caret:\n%s", snippet)
	}
}
