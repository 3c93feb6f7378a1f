package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/scopelet/lang"
	"github.com/ardnew/scopelet/log"
)

// Source selects the template a command operates on.
type Source struct {
	Text     string `help:"Template source given inline."   placeholder:"SRC" short:"e"`
	MaxDepth int    `help:"Maximum nesting depth of blocks." default:"${maxDepth}"`
}

// compile reads the template named by path, or uses the inline text, and
// compiles it.
func (s Source) compile(
	ctx context.Context,
	in *inputs,
	path string,
) (*lang.Template, error) {
	var text string

	switch {
	case path != "" && s.Text != "":
		return nil, ErrTemplateConflict.With(slog.String("template", path))

	case s.Text != "":
		text = s.Text

	case path != "":
		data, ok, err := in.read(path)
		if err != nil {
			return nil, lang.WrapError(err).With(slog.String("template", path))
		}

		if !ok {
			return nil, ErrDuplicateInput.With(slog.String("template", path))
		}

		text = string(data)

	default:
		return nil, ErrNoTemplate
	}

	return lang.Compile(ctx, text,
		lang.WithMaxDepth(s.MaxDepth),
		lang.WithLogger(log.Default()),
	)
}
