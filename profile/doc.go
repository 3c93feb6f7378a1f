// Package profile provides optional runtime profiling for scopelet.
//
// This package integrates [github.com/pkg/profile] behind the "pprof" build
// tag. Without the tag [Modes] is empty and [Profiler.Start] is a no-op, so
// callers configure and start profiling unconditionally.
//
// # Available Profiling Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// # Usage
//
//	p := profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath("/tmp/profiles"),
//	)
//	stop := p.Start()
//	defer stop.Stop()
//
// Profile files are written to the configured directory with names matching
// the mode (e.g., cpu.pprof, mem.pprof). Analyze them with go tool pprof:
//
//	go tool pprof -http=: /tmp/profiles/cpu.pprof
//
// The scopelet command exposes this package through its --pprof-mode and
// --pprof-dir flags:
//
//	go build -tags pprof -o scopelet .
//	./scopelet --pprof-mode cpu render letter.tmpl -d data.yaml
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
