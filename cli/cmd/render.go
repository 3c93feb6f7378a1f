package cmd

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
)

// Render expands a template against a data context.
type Render struct {
	Template string `arg:"" help:"Template file or '-' for stdin." name:"template" optional:""`

	Source `embed:""`
	Data   `embed:""`

	Output string `help:"Write output to FILE atomically instead of stdout." placeholder:"FILE" short:"o"`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	in := newInputs()

	tmpl, err := r.compile(ctx, in, r.Template)
	if err != nil {
		return err
	}

	data, err := r.Load(ctx, in)
	if err != nil {
		return err
	}

	out, err := tmpl.Expand(ctx, data)
	if err != nil {
		return lang.WrapError(err).With(slog.String("command", "render"))
	}

	if r.Output == "" || r.Output == stdinSource {
		_, err = io.WriteString(stdout(ctx), out)

		return err
	}

	if err := atomic.WriteFile(r.Output, strings.NewReader(out)); err != nil {
		return lang.WrapError(err).With(slog.String("output", r.Output))
	}

	log.DebugContext(ctx, "output written",
		slog.String("path", r.Output),
		slog.Int("bytes", len(out)),
	)

	return nil
}
