package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"strux/lang"
	"strux/pkg"
)

// Tokens dumps the token stream produced by the lexer, for debugging
// sources that parse unexpectedly under the permissive grammar. Characters
// the lexer skipped do not appear in the stream.
type Tokens struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for stdin" name:"source" optional:""`

	Format string `default:"pretty" help:"Output format" enum:"pretty,json"`
}

// tokenRecord is the JSON shape of one token.
type tokenRecord struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

// Run executes the tokens command.
func (t *Tokens) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	src, err := readSource(t.Source)
	if err != nil {
		return err
	}

	lex := lang.NewLexer(src)

	if t.Format == "json" {
		records := []tokenRecord{}

		for tok := lex.Next(); tok.Kind != lang.KindEOF; tok = lex.Next() {
			records = append(records, tokenRecord{
				Kind: tok.Kind.String(),
				Text: tok.Text,
				Line: tok.Line,
				Col:  tok.Col,
			})
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		if err := enc.Encode(records); err != nil {
			return pkg.ErrJSONMarshal.Wrap(err)
		}

		return nil
	}

	for tok := lex.Next(); tok.Kind != lang.KindEOF; tok = lex.Next() {
		fmt.Printf("%4d:%-4d %-14s %q\n",
			tok.Line, tok.Col, tok.Kind.String(), tok.Text)
	}

	return nil
}
