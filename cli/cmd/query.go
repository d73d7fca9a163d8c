package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"strux/lang"
	"strux/log"
	"strux/pkg"
)

// Query evaluates an expression against a parsed document and prints the
// result. Document entries are exposed as variables; structs become maps
// and lists become arrays, so member access and indexing work as usual:
//
//	strux query 'window.x + sizes[1]' -f demo.strux
type Query struct {
	Expr string `arg:"" help:"Expression to evaluate" name:"expr"`

	Source string `default:"-" help:"Source input file or '-' for stdin" short:"f"`
}

// Run executes the query command.
func (q *Query) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, err := readSource(q.Source)
	if err != nil {
		return err
	}

	doc, err := lang.ParseText(ctx, src)
	if err != nil {
		return pkg.ErrParse.Wrap(err)
	}

	env := doc.ToNative()

	program, err := expr.Compile(q.Expr,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return pkg.MakeErrorf("compile expression").Wrap(err)
	}

	result, err := expr.Run(program, env)
	if err != nil {
		return pkg.MakeErrorf("evaluate expression").Wrap(err)
	}

	log.DebugContext(ctx, "query evaluated",
		slog.String("expr", q.Expr),
		slog.Int("entries", doc.Len()),
	)

	fmt.Println(result)

	return nil
}
