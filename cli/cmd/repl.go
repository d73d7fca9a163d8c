package cmd

import (
	"context"
	"os"

	"strux/cli/cmd/repl"
	"strux/log"
	"strux/pkg"
)

// Repl starts an interactive session for editing and converting a document
// one statement at a time.
type Repl struct {
	Source string `arg:"" help:"Initial source file" optional:""`

	CacheDir string `default:"${cache}" hidden:"" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) {
		cancel(*err)
	}(&err)

	var initial string

	if r.Source != "" && r.Source != stdinSource {
		data, err := os.ReadFile(r.Source)
		if err != nil {
			return pkg.ErrReadInput.Wrap(err)
		}

		initial = string(data)
	}

	return repl.Run(ctx, initial, r.CacheDir, log.Default())
}
