//go:build !pprof

package profile

// Modes returns the supported profiling modes, which is always empty without
// the pprof build tag.
func Modes() []string { return nil }

func start(Profiler) interface{ Stop() } { return ignore{} }
