// Package cmd implements the strux CLI subcommands.
package cmd

const (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the user cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the name of
	// the configuration file.
	ConfigIdentifier = "config"
)
