package cmd

import (
	"fmt"
	"strings"

	"strux/pkg"
)

// Version prints version information.
type Version struct{}

// Run executes the version command.
func (Version) Run() error {
	fmt.Println(pkg.Name, strings.TrimSpace(pkg.Version))

	return nil
}
