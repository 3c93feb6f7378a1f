package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/scopelet/pkg"
)

// Version prints the program name and version.
type Version struct {
	Authors bool `help:"Also print the authors." short:"a"`
}

// Run executes the version command.
func (v *Version) Run(ctx context.Context) error {
	w := stdout(ctx)

	if _, err := fmt.Fprintln(w, pkg.Name, pkg.Version); err != nil {
		return err
	}

	if !v.Authors {
		return nil
	}

	for _, author := range pkg.Author {
		if _, err := fmt.Fprintln(w, author); err != nil {
			return err
		}
	}

	return nil
}
