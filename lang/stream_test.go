package lang

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"strux/log"
)

func TestParseText(t *testing.T) {
	doc, err := ParseText(context.Background(), "a = 1\nb = 2\n")
	if err != nil {
		t.Fatal(err)
	}

	if doc.Len() != 2 {
		t.Errorf("got %d entries, want 2", doc.Len())
	}
}

func TestParseText_CachesOptionFreeCalls(t *testing.T) {
	const src = "cached = 1\n"

	a, err := ParseText(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	b, err := ParseText(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	if a != b {
		t.Error("identical sources returned distinct documents")
	}
}

func TestParseText_OptionsBypassCache(t *testing.T) {
	const src = "uncached = 1\n"

	a, err := ParseText(context.Background(), src, WithLogger(log.Logger{}))
	if err != nil {
		t.Fatal(err)
	}

	b, err := ParseText(context.Background(), src, WithLogger(log.Logger{}))
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Error("option-bearing calls shared a cached document")
	}
}

func TestParseText_ErrorNotCached(t *testing.T) {
	const src = "bad = struct{x 1}\n"

	for range 2 {
		if _, err := ParseText(context.Background(), src); err == nil {
			t.Fatal("expected error")
		}
	}
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(context.Background(),
		strings.NewReader("x := 2\ny = [* x 3]\n"))
	if err != nil {
		t.Fatal(err)
	}

	if got := mustGet(t, doc, "y"); !reflect.DeepEqual(got, IntegerValue(6)) {
		t.Errorf("y = %#v", got)
	}
}

func TestParseReader_LargeInput(t *testing.T) {
	// Enough statements to force multiple read-ahead buffer refills.
	var sb strings.Builder
	for range 5000 {
		sb.WriteString("k := 1\nv = k\n")
	}

	doc, err := ParseReader(context.Background(), strings.NewReader(sb.String()))
	if err != nil {
		t.Fatal(err)
	}

	if doc.Len() != 2 {
		t.Errorf("got %d entries, want 2", doc.Len())
	}
}
