package cmd

import "github.com/ardnew/scopelet/lang"

// Command errors. Each is a [lang.Error], so callers can match them with
// [errors.Is] and log them with their attributes.
var (
	ErrNoTemplate        = lang.NewError("no template given (use TEMPLATE or --text)")
	ErrTemplateConflict  = lang.NewError("TEMPLATE and --text are mutually exclusive")
	ErrStdinConflict     = lang.NewError("stdin named more than once")
	ErrDuplicateInput    = lang.NewError("template already read as input")
	ErrInvalidAssignment = lang.NewError("invalid assignment")
	ErrExprEvaluate      = lang.NewError("evaluate expression")
	ErrSelect            = lang.NewError("select root context")
	ErrDecodeData        = lang.NewError("decode data document")
	ErrInvalidFormat     = lang.NewError("invalid output format")
)
