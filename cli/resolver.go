package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/scopelet/lang"
)

// ErrConfig reports a configuration file that cannot be decoded.
var ErrConfig = lang.NewError("invalid configuration file")

// resolve is a [kong.ConfigurationLoader] that reads a YAML configuration
// file.
//
// Nested mappings are flattened into flag names by joining keys with "-",
// so both of these set --log-level:
//
//	log:
//	  level: debug
//
//	log-level: debug
//
// Keys may use underscores in place of hyphens. Scalars are passed to kong as
// strings and sequences are joined with commas. An empty file is an empty
// configuration. Command-line flags override configuration values.
func resolve(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrConfig.Wrap(err)
	}

	cfg := config{}
	cfg.flatten("", doc)

	return cfg, nil
}

// config implements [kong.Resolver] for flattened YAML configuration.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found - return nil to let kong use defaults
	return nil, nil
}

// flatten stores every scalar in m under its joined key path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(name, sub)

			continue
		}

		c[name] = scalar(value)
	}
}

// scalar converts a decoded YAML value to the form kong parses flags from.
func scalar(v any) any {
	switch x := v.(type) {
	case bool, string:
		return x

	case int:
		return strconv.Itoa(x)

	case int64:
		return strconv.FormatInt(x, 10)

	case uint64:
		return strconv.FormatUint(x, 10)

	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)

	case []any:
		part := make([]string, len(x))
		for i, e := range x {
			part[i] = fmt.Sprint(scalar(e))
		}

		return strings.Join(part, ",")

	case nil:
		return nil

	default:
		return fmt.Sprint(x)
	}
}
