package lang

import (
	"log/slog"
	"strings"
)

// result reports why a body stopped compiling.
type result int

const (
	// endOfInput means the body ran to the EOF token.
	endOfInput result = iota
	// endOfBody means the body stopped at an .or or .end token, which was
	// pushed back for the enclosing block to consume.
	endOfBody
)

// compiler is a recursive-descent consumer of the lexer's token stream.
type compiler struct {
	lex      *lexer
	maxDepth int
	open     []Token // chain of open block tokens, outermost first
}

func newCompiler(src string, maxDepth int) *compiler {
	return &compiler{lex: newLexer(src), maxDepth: maxDepth}
}

// compileProgram consumes the entire token stream and returns the program.
func (c *compiler) compileProgram() (Program, error) {
	prog, res, err := c.expressions()
	if err != nil {
		return nil, err
	}

	if res == endOfBody {
		// Consume the pushed-back terminator to report it.
		tok, err := c.lex.next()
		if err != nil {
			return nil, err
		}

		return nil, ErrSyntax.With(
			slog.String("reason", "unexpected "+tok.String()),
		).WithPosition(tok.Pos)
	}

	return prog, nil
}

// expressions compiles instructions until EOF or a block terminator.
func (c *compiler) expressions() (Program, result, error) {
	prog := Program{}

	for {
		tok, err := c.lex.next()
		if err != nil {
			return nil, endOfInput, err
		}

		switch tok.Kind {
		case KindString:
			prog = append(prog, Instr{Op: OpLiteral, Arg: tok.Arg})

		case KindExpand:
			prog = append(prog, Instr{Op: OpExpand, Arg: tok.Arg})

		case KindSection, KindRepeat:
			in, err := c.block(tok)
			if err != nil {
				return nil, endOfInput, err
			}

			prog = append(prog, in)

		case KindEOF:
			return prog, endOfInput, nil

		default:
			if err := c.lex.pushBack(tok); err != nil {
				return nil, endOfInput, err
			}

			return prog, endOfBody, nil
		}
	}
}

// block compiles the body and optional alternate of the block opened by tok,
// through its closing .end.
func (c *compiler) block(tok Token) (Instr, error) {
	if len(c.open) >= c.maxDepth {
		return Instr{}, ErrMaxDepthExceeded.With(
			slog.Int("max_depth", c.maxDepth),
			slog.String("blocks", c.chain(tok)),
		).WithPosition(tok.Pos)
	}

	c.open = append(c.open, tok)
	defer func() { c.open = c.open[:len(c.open)-1] }()

	in := Instr{Op: OpSection, Arg: tok.Arg}
	if tok.Kind == KindRepeat {
		in.Op = OpRepeat
	}

	body, term, err := c.body(tok)
	if err != nil {
		return Instr{}, err
	}

	in.Body = body

	if term.Kind == KindEnd {
		return in, nil
	}

	alt, term, err := c.body(tok)
	if err != nil {
		return Instr{}, err
	}

	if term.Kind != KindEnd {
		return Instr{}, ErrSyntax.With(
			slog.String("reason", "unexpected "+term.String()),
			slog.String("block", tok.String()),
		).WithPosition(term.Pos)
	}

	in.Alt = alt

	return in, nil
}

// body compiles one branch of the block opened by tok and consumes the
// terminator that ends it.
func (c *compiler) body(tok Token) (Program, Token, error) {
	prog, res, err := c.expressions()
	if err != nil {
		return nil, Token{}, err
	}

	if res == endOfInput {
		return nil, Token{}, ErrSyntax.With(
			slog.String("reason", "unclosed "+tok.String()),
		).WithPosition(tok.Pos)
	}

	term, err := c.lex.next()
	if err != nil {
		return nil, Token{}, err
	}

	return prog, term, nil
}

// chain describes the open blocks followed by tok.
func (c *compiler) chain(tok Token) string {
	part := make([]string, 0, len(c.open)+1)

	for _, t := range c.open {
		part = append(part, t.String())
	}

	return strings.Join(append(part, tok.String()), " > ")
}
