// Package cli contains the command line interface for strux.
//
// # Commands
//
//   - convert (default): parse a source file and write JSON or YAML
//   - query: evaluate an expression against a parsed document
//   - tokens: dump the token stream produced by the lexer
//   - repl: edit and convert a document interactively
//   - version: print version information
//
// # Configuration
//
// Flag defaults may be supplied from a configuration file in the user
// configuration directory. Both a JSON file (config.json) and a file
// written in the strux language itself (config, holding a struct bound to
// the name "config") are recognized. Command-line flags override config
// file values.
//
// # Logging Options
//
//   - --log-level: minimum log level (trace, debug, info, warn, error)
//   - --log-format: log output format (json, text)
//   - --log-time-layout: timestamp format (RFC3339, RFC3339Nano, ...)
//   - --log-caller: include caller information
//   - --log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: profile output directory
package cli
