// Package cmd implements the scopelet subcommands.
//
// Each command is a kong command struct with a Run method receiving the
// [context.Context] bound by the cli package. Commands that render share the
// [Data] flags, which assemble the root context from YAML or JSON documents,
// expression assignments and a JSONPath selection.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
