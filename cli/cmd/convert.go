package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"strux/lang"
	"strux/log"
	"strux/pkg"
)

// Convert parses a source file and writes the document as JSON or YAML.
// The rendered output is both saved to the output file and echoed to
// stdout.
type Convert struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source" optional:""`

	Output string `default:"output.json" help:"Output file path"          short:"o" type:"path"`
	Format string `default:"json"        help:"Output format"                       enum:"json,yaml"`
	Indent int    `default:"4"           help:"Indent width for output"   short:"i"`
}

// Run executes the convert command.
func (c *Convert) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, err := readSource(c.Source)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "source loaded",
		slog.String("source", c.Source),
		slog.Int("length", len(src)),
	)

	doc, err := lang.ParseText(ctx, src)
	if err != nil {
		var synErr *lang.SyntaxError
		if errors.As(err, &synErr) {
			log.ErrorContext(ctx, "parse failed",
				slog.Int("line", synErr.Line),
				slog.Int("column", synErr.Col),
				slog.String("expected", synErr.Expected),
				slog.String("actual", synErr.Actual),
			)

			if snippet := synErr.Snippet(src); snippet != "" {
				fmt.Fprint(os.Stderr, snippet)
			}
		}

		return pkg.ErrParse.Wrap(err)
	}

	var buf bytes.Buffer

	switch c.Format {
	case "yaml":
		err = lang.EncodeYAML(ctx, &buf, doc, c.Indent)
	case "json":
		err = lang.EncodeJSON(&buf, doc, c.Indent)
	default:
		err = pkg.ErrInvalidFormat.Wrapf("%q", c.Format)
	}

	if err != nil {
		return err
	}

	if dir := filepath.Dir(c.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return pkg.ErrWriteOutput.Wrap(err)
		}
	}

	if err := os.WriteFile(c.Output, buf.Bytes(), 0o644); err != nil {
		return pkg.ErrWriteOutput.Wrap(err)
	}

	// Echo the rendered document so it can be piped.
	fmt.Print(buf.String())

	log.InfoContext(ctx, "document saved",
		slog.String("output", c.Output),
		slog.String("format", c.Format),
		slog.Int("entries", doc.Len()),
	)

	return nil
}
