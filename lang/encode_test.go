package lang

import (
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeJSON_Compact(t *testing.T) {
	doc := parse(t, `
a = 1
b = "x"
flag = true
items = (list 1, "two", false)
p struct{w = 2, h = 3}
`)

	var sb strings.Builder
	if err := EncodeJSON(&sb, doc, 0); err != nil {
		t.Fatal(err)
	}

	want := `{"a":1,"b":"x","flag":true,` +
		`"items":[1,"two",false],"p":{"w":2,"h":3}}` + "\n"

	if sb.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestEncodeJSON_Indented(t *testing.T) {
	doc := parse(t, "a = 1\np struct{w = 2}\n")

	var sb strings.Builder
	if err := EncodeJSON(&sb, doc, 4); err != nil {
		t.Fatal(err)
	}

	want := `{
    "a": 1,
    "p": {
        "w": 2
    }
}
`

	if sb.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestEncodeJSON_EmptyContainersStayOnOneLine(t *testing.T) {
	doc := parse(t, "l = (list)\ns = struct{}\n")

	var sb strings.Builder
	if err := EncodeJSON(&sb, doc, 2); err != nil {
		t.Fatal(err)
	}

	want := `{
  "l": [],
  "s": {}
}
`

	if sb.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", sb.String(), want)
	}
}

func TestEncodeJSON_EmptyDocument(t *testing.T) {
	var sb strings.Builder
	if err := EncodeJSON(&sb, NewDocument(), 4); err != nil {
		t.Fatal(err)
	}

	if sb.String() != "{}\n" {
		t.Errorf("got %q", sb.String())
	}
}

func TestEncodeJSON_NonASCIIUnescaped(t *testing.T) {
	doc := parse(t, `s = "héllo wörld 日本"`)

	var sb strings.Builder
	if err := EncodeJSON(&sb, doc, 0); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(sb.String(), "héllo wörld 日本") {
		t.Errorf("non-ASCII text was escaped: %s", sb.String())
	}
}

func TestEncodeJSON_NoHTMLEscaping(t *testing.T) {
	doc := parse(t, `s = "<a href=\"x\">&</a>"`)

	var sb strings.Builder
	if err := EncodeJSON(&sb, doc, 0); err != nil {
		t.Fatal(err)
	}

	out := sb.String()
	for _, forbidden := range []string{`\u003c`, `\u003e`, `\u0026`} {
		if strings.Contains(out, forbidden) {
			t.Errorf("output contains %s: %s", forbidden, out)
		}
	}

	if !strings.Contains(out, `<a href=\"x\">&</a>`) {
		t.Errorf("got %s", out)
	}
}

func TestAppendQuoted(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", `"abc"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"tab and return", "a\t\rb", `"a\t\rb"`},
		{"control", "a\x01b", `"a\u0001b"`},
		{"non-ascii", "héllo", `"héllo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(appendQuoted(nil, tt.in)); got != tt.want {
				t.Errorf("appendQuoted(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeYAML_PreservesOrder(t *testing.T) {
	doc := parse(t, "z = 1\na = 2\nm struct{y = 3, b = 4}\n")

	var sb strings.Builder
	if err := EncodeYAML(context.Background(), &sb, doc, 2); err != nil {
		t.Fatal(err)
	}

	out := sb.String()

	// Top-level keys must appear in insertion order, not sorted.
	zi := strings.Index(out, "z:")
	ai := strings.Index(out, "a:")
	mi := strings.Index(out, "m:")

	if zi < 0 || ai < 0 || mi < 0 || !(zi < ai && ai < mi) {
		t.Errorf("key order wrong:\n%s", out)
	}

	yi := strings.Index(out, "y:")
	bi := strings.Index(out, "b:")

	if yi < 0 || bi < 0 || yi > bi {
		t.Errorf("struct field order wrong:\n%s", out)
	}
}

func TestEncodeYAML_Values(t *testing.T) {
	doc := parse(t, "n = 42\ns = \"text\"\nflag = false\nl = (list 1, 2)\n")

	var sb strings.Builder
	if err := EncodeYAML(context.Background(), &sb, doc, 2); err != nil {
		t.Fatal(err)
	}

	out := sb.String()
	for _, want := range []string{"n: 42", "s: text", "flag: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestDocument_ToNative(t *testing.T) {
	doc := parse(t, `
n = 42
s = "text"
flag = true
l = (list 1, "x")
p struct{w = 2}
`)

	got := doc.ToNative()

	want := map[string]any{
		"n":    int64(42),
		"s":    "text",
		"flag": true,
		"l":    []any{int64(1), "x"},
		"p":    map[string]any{"w": int64(2)},
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("ToNative() = %#v, want %#v", got, want)
	}
}

func TestValue_ToNative_Identifier(t *testing.T) {
	// Unresolved identifiers serialize as their literal name.
	if got := IdentifierValue("free").ToNative(); got != "free" {
		t.Errorf("got %#v", got)
	}
}
