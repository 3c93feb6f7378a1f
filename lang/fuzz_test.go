package lang

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzCompile checks that compilation and expansion never panic, and that
// source without directives renders unchanged.
func FuzzCompile(f *testing.F) {
	f.Add("Hello, world!")
	f.Add("Hello, {name}!")
	f.Add("{.section a}{.section b}{x}{.end}{.end}")
	f.Add("{.section u}{u.name}{.or}Guest{.end}")
	f.Add("{.repeat items}[{@}]{.or}empty{.end}")
	f.Add("{.repeat}{@}{.end}")
	f.Add("{.end}{.or}")
	f.Add("{unterminated")
	f.Add("{.unknown}")
	f.Add("{}{ }{a{b}")

	data := map[string]any{
		"name":  "World",
		"x":     1,
		"a":     map[string]any{"b": map[string]any{"x": 3}},
		"u":     map[string]any{"name": "Ann"},
		"items": []any{1, "two", nil},
	}

	f.Fuzz(func(t *testing.T, src string) {
		if !utf8.ValidString(src) {
			t.Skip("invalid UTF-8")
		}

		tmpl, err := Compile(t.Context(), src)
		if err != nil {
			if tmpl != nil {
				t.Fatalf("Compile(%q) returned a template with error %v", src, err)
			}

			return
		}

		out, err := tmpl.Expand(t.Context(), data)
		if err != nil && out != "" {
			t.Fatalf("Expand(%q) returned partial output %q with error %v", src, out, err)
		}

		if !strings.ContainsRune(src, openDirective) && out != src {
			t.Fatalf("Expand(%q) = %q, want source unchanged", src, out)
		}
	})
}
