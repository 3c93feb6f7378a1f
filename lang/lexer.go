//go:generate go tool stringer --linecomment --type lexState --output lexer_string.go

package lang

import (
	"log/slog"
	"strings"
	"unicode"
)

// lexState is the lexer's recognition mode.
type lexState int

const (
	stateText      lexState = iota // text
	stateDirective                 // directive
	stateExhausted                 // exhausted
)

// lexer scans template source into tokens, one at a time.
//
// At most one token may be pushed back, and only the token most recently
// returned by next.
type lexer struct {
	src    string
	offset int
	state  lexState
	prev   lexState // state before the last token was scanned
	last   Token    // last token returned by next
	ready  bool     // last may be pushed back
	mark   Position // most recently computed position
}

func newLexer(src string) *lexer {
	return &lexer{
		src:   src,
		state: stateText,
		prev:  stateText,
		mark:  Position{Line: 1, Column: 1},
	}
}

// next returns the next token in the source.
// Once the EOF token has been returned, further calls fail with
// [ErrLexerExhausted] unless that EOF is pushed back.
func (l *lexer) next() (Token, error) {
	var (
		tok Token
		err error
	)

	state := l.state

	switch l.state {
	case stateText:
		tok, err = l.scanText()

	case stateDirective:
		tok, err = l.scanDirective()

	default:
		return Token{}, ErrLexerExhausted.WithPosition(l.position(l.offset))
	}

	if err != nil {
		l.ready = false

		return Token{}, err
	}

	l.prev = state
	l.last = tok
	l.ready = true

	return tok, nil
}

// pushBack undoes the most recent call to next, which must have returned tok.
func (l *lexer) pushBack(tok Token) error {
	if !l.ready || tok != l.last {
		return ErrInvalidPushBack.With(slog.String("token", tok.String())).
			WithPosition(tok.Pos)
	}

	l.offset -= tok.Width
	l.state = l.prev
	l.ready = false

	return nil
}

func (l *lexer) scanText() (Token, error) {
	start := l.offset

	if start >= len(l.src) {
		l.state = stateExhausted

		return Token{Kind: KindEOF, Pos: l.position(start)}, nil
	}

	n := strings.IndexByte(l.src[start:], openDirective)

	switch {
	case n == 0:
		// Never emit an empty literal run.
		l.state = stateDirective

		return l.scanDirective()

	case n < 0:
		n = len(l.src) - start

	default:
		l.state = stateDirective
	}

	l.offset += n

	return Token{
		Kind:  KindString,
		Arg:   l.src[start:l.offset],
		Width: n,
		Pos:   l.position(start),
	}, nil
}

func (l *lexer) scanDirective() (Token, error) {
	start := l.offset
	pos := l.position(start)
	rest := l.src[start+1:] // skip the opening brace

	n := strings.IndexAny(rest, "{}")
	if n < 0 || rest[n] == openDirective {
		return Token{}, ErrUnterminatedDirective.WithPosition(pos)
	}

	body := rest[:n]
	width := n + 2 // both braces

	tok, err := classifyDirective(body)
	if err != nil {
		return Token{}, WrapError(err).WithPosition(pos)
	}

	tok.Width = width
	tok.Pos = pos

	l.offset += width
	l.state = stateText

	return tok, nil
}

// classifyDirective maps a directive body (the text between braces) to its
// token kind and argument.
func classifyDirective(body string) (Token, error) {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return Token{}, ErrSyntax.With(slog.String("reason", "empty directive"))
	}

	if trimmed[0] != '.' {
		if err := checkPath(trimmed); err != nil {
			return Token{}, err
		}

		return Token{Kind: KindExpand, Arg: trimmed}, nil
	}

	keyword, arg := trimmed, ""
	if i := strings.IndexFunc(trimmed, unicode.IsSpace); i >= 0 {
		keyword, arg = trimmed[:i], strings.TrimSpace(trimmed[i:])
	}

	switch keyword {
	case keywordSection:
		if arg == "" {
			return Token{}, ErrSyntax.With(
				slog.String("reason", "missing section name"),
			)
		}

		if err := checkPath(arg); err != nil {
			return Token{}, err
		}

		return Token{Kind: KindSection, Arg: arg}, nil

	case keywordRepeat:
		if arg != "" {
			if err := checkPath(arg); err != nil {
				return Token{}, err
			}
		}

		return Token{Kind: KindRepeat, Arg: arg}, nil

	case keywordOr, keywordEnd:
		if arg != "" {
			return Token{}, ErrSyntax.With(
				slog.String("reason", "unexpected argument"),
				slog.String("directive", keyword),
				slog.String("argument", arg),
			)
		}

		if keyword == keywordOr {
			return Token{Kind: KindOr}, nil
		}

		return Token{Kind: KindEnd}, nil

	default:
		return Token{}, ErrUnknownDirective.With(
			slog.String("directive", keyword),
		)
	}
}

// checkPath verifies that path is either [Self] or a sequence of
// identifiers separated by single dots. Identifiers consist of letters,
// digits, underscores and hyphens.
func checkPath(path string) error {
	if path == Self {
		return nil
	}

	for seg := range strings.SplitSeq(path, ".") {
		if seg == "" || strings.IndexFunc(seg, notIdent) >= 0 {
			return ErrSyntax.With(
				slog.String("reason", "invalid path"),
				slog.String("path", path),
			)
		}
	}

	return nil
}

func notIdent(r rune) bool {
	return r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// position returns the Position of offset, scanning forward from the last
// computed position when possible.
func (l *lexer) position(offset int) Position {
	if offset < l.mark.Offset {
		l.mark = positionAt(l.src, offset)

		return l.mark
	}

	l.mark = advance(l.mark, l.src[l.mark.Offset:offset])

	return l.mark
}
