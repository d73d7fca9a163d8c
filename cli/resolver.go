package cli

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"strux/lang"
)

// resolve returns a [kong.ConfigurationLoader] that parses configuration
// files written in the strux language itself.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config")
//
// The loader looks up a struct bound to the given name in the parsed
// document and flattens its fields into flag values. Flag names with
// hyphens (e.g. "log-level") may use underscores in the config file
// (e.g. "log_level").
//
// Example strux config file:
//
//	config struct{
//	  log_level = "debug",
//	  log_format = "json",
//	  log_pretty = true,
//	}
//
// Command-line flags override config file values. A config file that fails
// to parse, or that lacks the named struct, contributes no values.
func resolve(ctx context.Context, name string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		doc, err := lang.ParseReader(ctx, r)
		if err != nil {
			return flagValues{}, nil
		}

		v, ok := doc.Get(name)
		if !ok || v.Type != lang.TypeStruct {
			return flagValues{}, nil
		}

		return structToFlags(v.Struct), nil
	}
}

// flagValues implements [kong.Resolver] for strux language configs.
type flagValues map[string]any

// Validate implements [kong.Resolver].
func (r flagValues) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r flagValues) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Kong flags use hyphens but strux identifiers cannot, so config files
	// use underscores instead.
	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	// Not found. Return nil to let Kong use defaults.
	return nil, nil
}

// structToFlags flattens a struct's fields into flag values.
// Kong requires numbers as strings for parsing.
func structToFlags(s *lang.Struct) flagValues {
	result := make(flagValues, s.Len())

	for name, v := range s.All() {
		if v.Type == lang.TypeInteger {
			result[name] = strconv.FormatInt(v.Int, 10)

			continue
		}

		result[name] = v.ToNative()
	}

	return result
}
