// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers an additional Trace level below Debug, configurable
// time formatting, caller information, and output formats applied at
// logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithCaller(true))
//	logger.Info("parse complete", slog.Int("entries", n))
//
// The zero-value Logger is valid and discards all messages, so library
// code can log unconditionally and let callers opt in.
//
// A package-level default logger writes to standard error and is
// reconfigured with [Config]; the package-level functions [Trace],
// [Debug], [Info], [Warn], and [Error] (and their Context variants)
// forward to it.
package log
