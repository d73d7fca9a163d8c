package lang

import (
	"strconv"
	"strings"
)

// evalExpr evaluates one bracketed arithmetic expression token of the form
// "[op arg1 arg2?]". The lexer guarantees the general shape, but the
// operands are validated here: each resolves against the constant table
// first, then as a hex or decimal integer literal.
//
// The single-operand form "[op arg1]" evaluates to arg1 unchanged; the
// operator is ignored. This is a documented quirk of the grammar and is
// preserved exactly.
func evalExpr(tok Token, consts *ConstTable) (Value, error) {
	fields := strings.Fields(tok.Text[1 : len(tok.Text)-1])

	if len(fields) < 2 {
		return Value{}, &SyntaxError{
			Line:     tok.Line,
			Col:      tok.Col,
			Expected: "operator with at least one operand",
			Actual:   tok.Text,
		}
	}

	op := fields[0]
	if len(op) != 1 || !strings.Contains(exprOps, op) {
		return Value{}, &SyntaxError{
			Line:     tok.Line,
			Col:      tok.Col,
			Expected: "arithmetic operator (+ - * /)",
			Actual:   op,
		}
	}

	arg1, ok1 := resolveOperand(fields[1], consts)

	if len(fields) == 2 {
		if !ok1 {
			return Value{}, numericError(tok)
		}

		return arg1, nil
	}

	arg2, ok2 := resolveOperand(fields[2], consts)

	if !ok1 || !ok2 ||
		arg1.Type != TypeInteger || arg2.Type != TypeInteger {
		return Value{}, numericError(tok)
	}

	a, b := arg1.Int, arg2.Int

	switch op {
	case "+":
		return IntegerValue(a + b), nil
	case "-":
		return IntegerValue(a - b), nil
	case "*":
		return IntegerValue(a * b), nil
	default:
		return IntegerValue(floorDiv(a, b)), nil
	}
}

// resolveOperand resolves one operand: a constant-table binding if the name
// is defined, otherwise an integer literal (hex when prefixed 0x/0X, else
// decimal).
func resolveOperand(s string, consts *ConstTable) (Value, bool) {
	if v, ok := consts.Lookup(s); ok {
		return v, true
	}

	var (
		n   int64
		err error
	)

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") {
		n, err = strconv.ParseInt(s[2:], 16, 64)
	} else {
		n, err = strconv.ParseInt(s, 10, 64)
	}

	if err != nil {
		return Value{}, false
	}

	return IntegerValue(n), true
}

// floorDiv divides truncating toward negative infinity. Division by zero
// degrades to zero instead of raising an error.
func floorDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}

	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}

func numericError(tok Token) *SyntaxError {
	return &SyntaxError{
		Line:     tok.Line,
		Col:      tok.Col,
		Expected: "arguments must be numeric",
		Actual:   tok.Text,
	}
}
