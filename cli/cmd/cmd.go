package cmd

import (
	"bufio"
	"io"
	"os"
	"strings"

	"strux/pkg"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readSource returns the source text from path, falling back to stdin when
// path is empty, "-", or names a file that does not exist. Input consisting
// only of whitespace is rejected.
func readSource(path string) (string, error) {
	var r io.Reader = os.Stdin

	if path != "" && path != stdinSource {
		if _, err := os.Stat(path); err == nil {
			file, err := os.Open(path)
			if err != nil {
				return "", pkg.ErrReadInput.Wrap(err)
			}
			defer file.Close()

			r = file
		}
	}

	data, err := io.ReadAll(bufio.NewReader(r))
	if err != nil {
		return "", pkg.ErrReadInput.Wrap(err)
	}

	src := string(data)
	if strings.TrimSpace(src) == "" {
		return "", pkg.ErrEmptyInput
	}

	return src, nil
}
