// Package pkg holds the identity of the scopelet module: its name, version,
// and authors.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"strings"
)

// Version is the semantic version of the scopelet module embedded at build
// time. It is printed by the CLI when users invoke the version subcommand.
//
//go:embed VERSION
var Version string

const (
	// Name is the canonical command and module identifier used across the
	// project. It appears in help text and default config and cache paths.
	Name = "scopelet"
	// Description is a short, human-readable summary of the project used in
	// help output.
	Description = "Render text templates with scoped sections and repeats"
)

// AuthorInfo represents an individual author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// String formats the author as "Name <Email>".
func (a AuthorInfo) String() string {
	if a.Email == "" {
		return a.Name
	}

	return a.Name + " <" + a.Email + ">"
}

// Author lists the primary author(s) of the project for display in metadata.
//
//nolint:gochecknoglobals
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

// Authors returns the authors joined by commas.
func Authors() string {
	part := make([]string, len(Author))
	for i, a := range Author {
		part[i] = a.String()
	}

	return strings.Join(part, ", ")
}
