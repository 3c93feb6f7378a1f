package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/goccy/go-yaml"
)

// Compile prints the instruction tree a template compiles to.
type Compile struct {
	Template string `arg:"" help:"Template file or '-' for stdin." name:"template" optional:""`

	Source `embed:""`

	Format string `default:"tree" enum:"tree,json,yaml" help:"Output format (${enum})." short:"f"`
	Indent int    `default:"2"                          help:"Indent width."            short:"i"`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	tmpl, err := c.compile(ctx, newInputs(), c.Template)
	if err != nil {
		return err
	}

	prog := tmpl.Program()
	w := stdout(ctx)

	switch c.Format {
	case "tree":
		return prog.Print(w, strings.Repeat(" ", max(c.Indent, 0)))

	case "json":
		var data []byte

		if c.Indent > 0 {
			data, err = json.MarshalIndent(prog.ToNative(), "", strings.Repeat(" ", c.Indent))
		} else {
			data, err = json.Marshal(prog.ToNative())
		}

		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case "yaml":
		var opts []yaml.EncodeOption
		if c.Indent > 0 {
			opts = append(opts, yaml.Indent(c.Indent))
		} else {
			opts = append(opts, yaml.Flow(true))
		}

		data, err := yaml.MarshalContext(ctx, prog.ToNative(), opts...)
		if err != nil {
			return err
		}

		_, err = fmt.Fprint(w, string(data))

		return err

	default:
		return ErrInvalidFormat.With(slog.String("format", c.Format))
	}
}
