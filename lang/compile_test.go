package lang

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile_Program(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "literal and expand",
			input: "Hello, {name}!",
			want: `Literal "Hello, "
Expand name
Literal "!"
`,
		},
		{
			name:  "section with alternate",
			input: "a{.section x}b{.or}c{.end}",
			want: `Literal "a"
Section x
  Literal "b"
Or
  Literal "c"
`,
		},
		{
			name:  "empty alternate",
			input: "{.section x}b{.or}{.end}",
			want: `Section x
  Literal "b"
Or
`,
		},
		{
			name:  "nested repeat",
			input: "{.repeat items}{.section name}{@}{.end}{.end}",
			want: `Repeat items
  Section name
    Expand @
`,
		},
		{
			name:  "unnamed repeat",
			input: "{.repeat}[{@}]{.end}",
			want: `Repeat
  Literal "["
  Expand @
  Literal "]"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(t.Context(), tt.input)
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}

			if got := tmpl.Program().String(); got != tt.want {
				t.Errorf("Program() =\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestCompile_Alternate(t *testing.T) {
	tmpl := MustCompile(t.Context(), "{.section a}{.end}{.section b}{.or}{.end}")

	prog := tmpl.Program()
	if len(prog) != 2 {
		t.Fatalf("len(Program()) = %d, want 2", len(prog))
	}

	if prog[0].HasAlt() {
		t.Error("block without .or has an alternate")
	}

	if !prog[1].HasAlt() {
		t.Error("block with empty .or has no alternate")
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
		line  int
		col   int
	}{
		{"unmatched end", "text{.end}", ErrSyntax, 1, 5},
		{"unmatched or", "{.or}", ErrSyntax, 1, 1},
		{"unclosed section", "x\n{.section a}body", ErrSyntax, 2, 1},
		{"unclosed alternate", "{.section a}{.or}", ErrSyntax, 1, 1},
		{"second or", "{.section a}{.or}{.or}{.end}", ErrSyntax, 1, 18},
		{"extra end", "{.repeat}{.end}{.end}", ErrSyntax, 1, 16},
		{"unterminated", "{.section a}{name", ErrUnterminatedDirective, 1, 13},
		{"unknown", "ok {.if x}", ErrUnknownDirective, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Compile(t.Context(), tt.input)
			if err == nil {
				t.Fatalf("Compile() = %v, want error", tmpl.Program())
			}

			if tmpl != nil {
				t.Error("Compile() returned a template with an error")
			}

			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}

			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("error %T is not *Error", err)
			}

			pos, ok := e.Position()
			if !ok {
				t.Fatalf("error %v has no position", err)
			}

			if pos.Line != tt.line || pos.Column != tt.col {
				t.Errorf("position = %s, want line %d, column %d", pos, tt.line, tt.col)
			}
		})
	}
}

func nested(depth int) string {
	return strings.Repeat("{.section a}", depth) + strings.Repeat("{.end}", depth)
}

func TestCompile_MaxDepth(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		opts    []Option
		wantErr bool
	}{
		{"default limit", nested(DefaultMaxDepth), nil, false},
		{"beyond default", nested(DefaultMaxDepth + 1), nil, true},
		{"custom limit", nested(2), []Option{WithMaxDepth(2)}, false},
		{"beyond custom", nested(3), []Option{WithMaxDepth(2)}, true},
		{"non-positive ignored", nested(3), []Option{WithMaxDepth(0)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(t.Context(), tt.input, tt.opts...)

			if tt.wantErr {
				if !errors.Is(err, ErrMaxDepthExceeded) {
					t.Errorf("error = %v, want %v", err, ErrMaxDepthExceeded)
				}

				return
			}

			if err != nil {
				t.Errorf("Compile() error: %v", err)
			}
		})
	}
}

func TestCompile_Idempotent(t *testing.T) {
	const src = "{.repeat people}{name}{.section email} <{email}>{.end}\n{.end}"

	data := map[string]any{
		"people": []any{
			map[string]any{"name": "Ann", "email": "ann@example.com"},
			map[string]any{"name": "Bob"},
		},
	}

	a := MustCompile(t.Context(), src)
	b := MustCompile(t.Context(), src)

	if a.Program().String() != b.Program().String() {
		t.Fatalf("programs differ:\n%s\n%s", a.Program(), b.Program())
	}

	outA, errA := a.Expand(t.Context(), data)
	outB, errB := b.Expand(t.Context(), data)

	if errA != nil || errB != nil {
		t.Fatalf("Expand() errors: %v, %v", errA, errB)
	}

	if outA != outB {
		t.Errorf("outputs differ: %q vs %q", outA, outB)
	}

	if want := "Ann <ann@example.com>\nBob\n"; outA != want {
		t.Errorf("Expand() = %q, want %q", outA, want)
	}
}

func TestProgram_ToNative(t *testing.T) {
	tmpl := MustCompile(t.Context(), "a{.section x}{y}{.or}z{.end}")

	got := tmpl.Program().ToNative()
	if len(got) != 2 {
		t.Fatalf("len(ToNative()) = %d, want 2", len(got))
	}

	lit, _ := got[0].(map[string]any)
	if lit["op"] != "Literal" || lit["text"] != "a" {
		t.Errorf("ToNative()[0] = %v", lit)
	}

	sec, _ := got[1].(map[string]any)
	if sec["op"] != "Section" || sec["path"] != "x" {
		t.Errorf("ToNative()[1] = %v", sec)
	}

	body, _ := sec["body"].([]any)
	alt, _ := sec["alt"].([]any)

	if len(body) != 1 || len(alt) != 1 {
		t.Errorf("body = %v, alt = %v", body, alt)
	}
}
