package lang

import (
	"errors"
	"testing"
)

// scanAll returns every token of src through EOF.
func scanAll(t *testing.T, src string) []Token {
	t.Helper()

	l := newLexer(src)

	var toks []Token

	for {
		tok, err := l.next()
		if err != nil {
			t.Fatalf("next() error: %v", err)
		}

		toks = append(toks, tok)

		if tok.Kind == KindEOF {
			return toks
		}
	}
}

func TestLexer_Tokens(t *testing.T) {
	type tk struct {
		kind  Kind
		arg   string
		width int
	}

	tests := []struct {
		name  string
		input string
		want  []tk
	}{
		{
			name:  "empty",
			input: "",
			want:  []tk{{KindEOF, "", 0}},
		},
		{
			name:  "literal only",
			input: "Hello, world!",
			want:  []tk{{KindString, "Hello, world!", 13}, {KindEOF, "", 0}},
		},
		{
			name:  "expand between literals",
			input: "a{b}c",
			want: []tk{
				{KindString, "a", 1},
				{KindExpand, "b", 3},
				{KindString, "c", 1},
				{KindEOF, "", 0},
			},
		},
		{
			name:  "leading directive emits no empty literal",
			input: "{x}{y}",
			want: []tk{
				{KindExpand, "x", 3},
				{KindExpand, "y", 3},
				{KindEOF, "", 0},
			},
		},
		{
			name:  "expand path is trimmed",
			input: "{ user.name }",
			want:  []tk{{KindExpand, "user.name", 13}, {KindEOF, "", 0}},
		},
		{
			name:  "path with hyphens and digits",
			input: "{first-name.0}",
			want:  []tk{{KindExpand, "first-name.0", 14}, {KindEOF, "", 0}},
		},
		{
			name:  "self",
			input: "{@}",
			want:  []tk{{KindExpand, "@", 3}, {KindEOF, "", 0}},
		},
		{
			name:  "section with alternate",
			input: "{.section user}{.or}{.end}",
			want: []tk{
				{KindSection, "user", 15},
				{KindOr, "", 5},
				{KindEnd, "", 6},
				{KindEOF, "", 0},
			},
		},
		{
			name:  "named and unnamed repeat",
			input: "{.repeat items}{.repeat}",
			want: []tk{
				{KindRepeat, "items", 15},
				{KindRepeat, "", 9},
				{KindEOF, "", 0},
			},
		},
		{
			name:  "tab separated keyword",
			input: "{.section\tuser}",
			want:  []tk{{KindSection, "user", 15}, {KindEOF, "", 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll(t, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d tokens %v, want %d", len(got), got, len(tt.want))
			}

			for i, w := range tt.want {
				g := got[i]
				if g.Kind != w.kind || g.Arg != w.arg || g.Width != w.width {
					t.Errorf("token %d = {%s %q %d}, want {%s %q %d}",
						i, g.Kind, g.Arg, g.Width, w.kind, w.arg, w.width)
				}
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"missing close", "abc {name", ErrUnterminatedDirective},
		{"open before close", "{a{b}", ErrUnterminatedDirective},
		{"unknown keyword", "{.include x}", ErrUnknownDirective},
		{"empty body", "{}", ErrSyntax},
		{"blank body", "{  }", ErrSyntax},
		{"section without name", "{.section}", ErrSyntax},
		{"end with argument", "{.end x}", ErrSyntax},
		{"or with argument", "{.or x}", ErrSyntax},
		{"space in path", "{a b}", ErrSyntax},
		{"space in section name", "{.section a b}x{.end}", ErrSyntax},
		{"space in repeat name", "{.repeat a b}x{.end}", ErrSyntax},
		{"empty path segment", "{a..b}", ErrSyntax},
		{"trailing dot", "{a.}", ErrSyntax},
		{"self with member", "{@.name}", ErrSyntax},
		{"punctuation in path", "{a+b}", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLexer(tt.input)

			var err error
			for err == nil {
				var tok Token

				tok, err = l.next()
				if err == nil && tok.Kind == KindEOF {
					t.Fatalf("reached EOF without error")
				}
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLexer_Exhausted(t *testing.T) {
	l := newLexer("x")

	for range 2 {
		if _, err := l.next(); err != nil {
			t.Fatalf("next() error: %v", err)
		}
	}

	if _, err := l.next(); !errors.Is(err, ErrLexerExhausted) {
		t.Errorf("next() after EOF error = %v, want %v", err, ErrLexerExhausted)
	}
}

func TestLexer_PushBack(t *testing.T) {
	l := newLexer("a{b}")

	first, err := l.next()
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}

	if err := l.pushBack(first); err != nil {
		t.Fatalf("pushBack() error: %v", err)
	}

	if err := l.pushBack(first); !errors.Is(err, ErrInvalidPushBack) {
		t.Errorf("second pushBack() error = %v, want %v", err, ErrInvalidPushBack)
	}

	again, err := l.next()
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}

	if again != first {
		t.Errorf("token after pushBack = %v, want %v", again, first)
	}

	second, err := l.next()
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}

	if second.Kind != KindExpand || second.Arg != "b" {
		t.Errorf("next() = %v, want {b}", second)
	}

	if err := l.pushBack(first); !errors.Is(err, ErrInvalidPushBack) {
		t.Errorf("pushBack(stale) error = %v, want %v", err, ErrInvalidPushBack)
	}
}

func TestLexer_PushBackEOF(t *testing.T) {
	l := newLexer("")

	eof, err := l.next()
	if err != nil {
		t.Fatalf("next() error: %v", err)
	}

	if err := l.pushBack(eof); err != nil {
		t.Fatalf("pushBack(EOF) error: %v", err)
	}

	tok, err := l.next()
	if err != nil {
		t.Fatalf("next() after pushBack(EOF) error: %v", err)
	}

	if tok.Kind != KindEOF {
		t.Errorf("next() = %v, want EOF", tok)
	}
}

func TestLexer_Position(t *testing.T) {
	toks := scanAll(t, "line one\n  {name} é{x}")

	want := []Position{
		{Offset: 0, Line: 1, Column: 1},
		{Offset: 11, Line: 2, Column: 3},
		{Offset: 17, Line: 2, Column: 9},
		{Offset: 20, Line: 2, Column: 11},
		{Offset: 23, Line: 2, Column: 14},
	}

	if len(toks) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(toks), toks, len(want))
	}

	for i, w := range want {
		if toks[i].Pos != w {
			t.Errorf("token %d (%v) position = %+v, want %+v", i, toks[i], toks[i].Pos, w)
		}
	}
}
