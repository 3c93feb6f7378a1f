package cmd

import (
	"context"

	"github.com/ardnew/scopelet/cli/cmd/repl"
	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
)

// Repl renders templates typed interactively against a data context.
type Repl struct {
	Data `embed:""`

	MaxDepth int    `default:"${maxDepth}" help:"Maximum nesting depth of blocks."`
	Cache    string `default:"${cache}"    help:"Directory holding the input history." hidden:"" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	data, err := r.Load(ctx, newInputs())
	if err != nil {
		return err
	}

	return repl.Run(ctx, data, r.Cache, log.Default(), lang.WithMaxDepth(r.MaxDepth))
}
