package repl

import (
	"context"
	"slices"
	"testing"

	"strux/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cursor int
		word   string
		start  int
		end    int
	}{
		{"empty", "", 0, "", 0, 0},
		{"single word", "width", 5, "width", 0, 5},
		{"cursor mid-word", "width", 2, "width", 0, 5},
		{"after assign", "x = wid", 7, "wid", 4, 7},
		{"after define", "x := wid", 8, "wid", 5, 8},
		{"cursor on space", "x = ", 4, "", 4, 4},
		{"inside list", "(list a, bc", 11, "bc", 9, 11},
		{"inside struct", "struct{x=val", 12, "val", 9, 12},
		{"after bracket op", "[+ wid", 6, "wid", 3, 6},
		{"cursor past end clamps", "abc", 10, "abc", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.word || start != tt.start || end != tt.end {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.word, tt.start, tt.end)
			}
		})
	}
}

func TestDocCandidates(t *testing.T) {
	doc, err := lang.ParseText(context.Background(),
		"width := 640\nheight = 480\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := docCandidates(doc)

	for _, want := range []string{"width", "height", "struct{", "(list"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected candidate %q in %v", want, got)
		}
	}
}

func TestDocCandidates_NilDocument(t *testing.T) {
	got := docCandidates(nil)

	if !slices.Equal(got, keywordCandidates) {
		t.Errorf("expected keyword candidates only, got %v", got)
	}
}

func TestDocCandidates_OmitsBareKey(t *testing.T) {
	doc, err := lang.ParseText(context.Background(), `"just a value"`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if slices.Contains(docCandidates(doc), lang.BareKey) {
		t.Errorf("bare value key should not be offered for completion")
	}
}
