// Package cli contains the command line interface for scopelet.
//
// # Usage
//
// The default command is render, so a template file and data documents are
// enough:
//
//	scopelet letter.tmpl -d people.yaml
//	scopelet render -e 'Hello, {name}!' --set-string name=Ada
//	scopelet compile --format yaml letter.tmpl
//	scopelet repl -d people.yaml
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory (for example ~/.config/scopelet/config.yaml). Nested keys are
// joined with "-" to form flag names:
//
//	log:
//	  level: debug
//	  pretty: true
//
// Command-line flags override configuration values.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time: Set timestamp layout (RFC3339, Kitchen, none, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output or indent JSON output
//
// # Profiling Options
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: the pprof
//     directory under the user cache directory)
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o scopelet .
package cli
