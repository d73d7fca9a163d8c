package pkg

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestMakeError(t *testing.T) {
	if MakeError() != nil {
		t.Error("MakeError() should be nil")
	}

	if MakeError(nil, nil) != nil {
		t.Error("nil arguments should be dropped")
	}

	a := errors.New("a")
	b := errors.New("b")

	e := MakeError(a, b)
	if len(e) != 2 || e[0] != a || e[1] != b {
		t.Errorf("e = %v", e)
	}
}

func TestMakeError_FlattensWrappedArguments(t *testing.T) {
	inner := errors.New("inner")
	outer := fmt.Errorf("outer: %w", inner)

	e := MakeError(outer)
	if len(e) != 2 {
		t.Fatalf("len = %d, want 2", len(e))
	}

	if e[0] != inner {
		t.Errorf("innermost = %v, want %v", e[0], inner)
	}
}

func TestError_Message(t *testing.T) {
	e := ErrParse.Wrap(errors.New("boom"))

	if got := e.Error(); got != "parse error: boom" {
		t.Errorf("message = %q", got)
	}
}

func TestError_Wrapf(t *testing.T) {
	e := ErrInvalidFormat.Wrapf("format %q", "xml")

	if got := e.Error(); got != `invalid format: format "xml"` {
		t.Errorf("message = %q", got)
	}
}

func TestError_IsReachesWrappedCause(t *testing.T) {
	e := ErrReadInput.Wrap(io.ErrUnexpectedEOF)

	if !errors.Is(e, io.ErrUnexpectedEOF) {
		t.Error("wrapped cause not found by errors.Is")
	}
}

type positionedError struct{ line int }

func (e *positionedError) Error() string {
	return fmt.Sprintf("error at line %d", e.line)
}

func TestError_AsReachesWrappedCause(t *testing.T) {
	e := ErrParse.Wrap(&positionedError{line: 3})

	var posErr *positionedError
	if !errors.As(e, &posErr) {
		t.Fatal("wrapped cause not found by errors.As")
	}

	if posErr.line != 3 {
		t.Errorf("line = %d", posErr.line)
	}
}

func TestUnwrapErrors(t *testing.T) {
	inner := errors.New("inner")
	mid := fmt.Errorf("mid: %w", inner)

	chain := UnwrapErrors(mid)
	if len(chain) != 2 || chain[0] != inner || chain[1] != mid {
		t.Errorf("chain = %v", chain)
	}

	if UnwrapErrors(nil) != nil {
		t.Error("UnwrapErrors(nil) should be nil")
	}
}

func TestError_Unwrap(t *testing.T) {
	a := errors.New("a")
	b := errors.New("b")

	e := Error{a, b}

	got := e.Unwrap()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Unwrap() = %v", got)
	}
}

func TestVersion(t *testing.T) {
	v := strings.TrimSpace(Version)

	if v == "" {
		t.Fatal("embedded version is empty")
	}

	if strings.Count(v, ".") != 2 {
		t.Errorf("version %q is not of the form major.minor.patch", v)
	}
}
