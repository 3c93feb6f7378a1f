//go:generate go tool stringer --linecomment --type Kind --output token_string.go

package lang

import "strconv"

// Kind identifies the class of a lexical token.
type Kind int

const (
	// KindString is a run of literal text.
	KindString Kind = iota // String

	// KindExpand is a bare variable expansion such as {user.name}.
	KindExpand // Expand

	// KindSection opens a conditional block: {.section name}.
	KindSection // Section

	// KindRepeat opens an iteration block: {.repeat name} or {.repeat}.
	KindRepeat // Repeat

	// KindOr separates a block body from its alternate: {.or}.
	KindOr // Or

	// KindEnd closes the innermost open block: {.end}.
	KindEnd // End

	// KindEOF marks the end of input.
	KindEOF // EOF
)

// Token is a single lexical unit of template source.
type Token struct {
	Kind Kind
	// Arg is the literal text, variable path, or block name.
	// It is empty for Or, End, and EOF (and for an unnamed repeat).
	Arg string
	// Width is the number of source bytes the token consumed.
	Width int
	// Pos is the source position of the token's first byte.
	Pos Position
}

// String renders the token roughly as it appeared in source.
func (t Token) String() string {
	switch t.Kind {
	case KindString:
		return strconv.Quote(t.Arg)

	case KindExpand:
		return "{" + t.Arg + "}"

	case KindSection:
		return "{.section " + t.Arg + "}"

	case KindRepeat:
		if t.Arg == "" {
			return "{.repeat}"
		}

		return "{.repeat " + t.Arg + "}"

	case KindOr:
		return "{.or}"

	case KindEnd:
		return "{.end}"

	case KindEOF:
		return "end of input"

	default:
		return t.Kind.String()
	}
}

// Directive keywords.
const (
	keywordSection = ".section"
	keywordRepeat  = ".repeat"
	keywordOr      = ".or"
	keywordEnd     = ".end"
)

// Keywords returns the directive keywords, each with its leading dot.
func Keywords() []string {
	return []string{keywordSection, keywordRepeat, keywordOr, keywordEnd}
}

// Directive delimiters.
const (
	openDirective  = '{'
	closeDirective = '}'
)

// Self is the path that resolves to the current scope's own value.
const Self = "@"
