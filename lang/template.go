package lang

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/ardnew/scopelet/log"
)

// DefaultMaxDepth is the default limit on nested block depth.
const DefaultMaxDepth = 100

// Template is a compiled template.
//
// A Template is immutable after compilation and may be expanded concurrently
// from multiple goroutines.
type Template struct {
	source string
	prog   Program
	opts   options
	logger log.Logger
}

// options holds compile-time settings.
type options struct {
	maxDepth int
}

// Option configures template compilation.
type Option func(*Template)

// WithMaxDepth sets the maximum nesting depth of section and repeat blocks.
// Non-positive values are ignored.
func WithMaxDepth(depth int) Option {
	return func(t *Template) {
		if depth > 0 {
			t.opts.maxDepth = depth
		}
	}
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(t *Template) {
		t.logger = logger
	}
}

// applyDefaults sets default option values on a Template.
func applyDefaults(t *Template) {
	t.opts.maxDepth = DefaultMaxDepth
}

// applyOptions applies functional options to a Template.
func applyOptions(t *Template, opts ...Option) {
	for _, opt := range opts {
		opt(t)
	}
}

// Compile compiles template source into a Template.
// No Template is returned if compilation fails.
func Compile(ctx context.Context, source string, opts ...Option) (*Template, error) {
	t := &Template{source: source}

	applyDefaults(t)
	applyOptions(t, opts...)

	t.logger.TraceContext(ctx, "compile start",
		slog.Int("source_length", len(source)),
		slog.Int("max_depth", t.opts.maxDepth))

	prog, err := newCompiler(source, t.opts.maxDepth).compileProgram()
	if err != nil {
		t.logger.TraceContext(ctx, "compile failed", slog.Any("error", err))

		return nil, err
	}

	t.prog = prog

	t.logger.TraceContext(ctx, "compile complete",
		slog.Int("instruction_count", len(prog)))

	return t, nil
}

// MustCompile is like [Compile] but panics if the source cannot be compiled.
func MustCompile(ctx context.Context, source string, opts ...Option) *Template {
	t, err := Compile(ctx, source, opts...)
	if err != nil {
		panic(err)
	}

	return t
}

// Source returns the source text the template was compiled from.
func (t *Template) Source() string { return t.source }

// Program returns the compiled instruction tree.
// The returned Program must not be modified.
func (t *Template) Program() Program { return t.prog }

// Expand renders the template against data.
//
// On failure it returns the empty string and the first error encountered;
// output rendered before the error is discarded.
func (t *Template) Expand(ctx context.Context, data any) (string, error) {
	t.logger.TraceContext(ctx, "expand start",
		slog.String("data_type", typeName(data)))

	var sb strings.Builder

	if err := render(NewScope(data), t.prog, &sb); err != nil {
		t.logger.TraceContext(ctx, "expand failed", slog.Any("error", err))

		return "", err
	}

	t.logger.TraceContext(ctx, "expand complete",
		slog.Int("output_length", sb.Len()))

	return sb.String(), nil
}

// Execute renders the template against data and writes the output to w.
// Nothing is written if rendering fails.
func (t *Template) Execute(ctx context.Context, w io.Writer, data any) error {
	out, err := t.Expand(ctx, data)
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, out); err != nil {
		return WrapError(err)
	}

	return nil
}
