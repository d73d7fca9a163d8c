// Package profile provides optional runtime profiling for the strux
// application.
//
// Profiling integrates [github.com/pkg/profile] and is compiled in only
// when the pprof build tag is set:
//
//	go build -tags pprof .
//
// Without the tag every operation is a no-op with zero overhead, so the
// CLI wiring can call [Config.Start] unconditionally.
//
// Supported modes when enabled: allocs, block, clock, cpu, goroutine,
// heap, mem, mutex, thread, trace. Use [Modes] to enumerate them at
// runtime. Profiles are written to the configured output directory with
// names matching the mode (cpu.pprof, mem.pprof, and so on) and analyzed
// with go tool pprof.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
