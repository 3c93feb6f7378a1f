//go:generate go tool stringer --linecomment --type Op --output program_string.go

package lang

import (
	"fmt"
	"io"
	"strings"
)

// Op identifies the kind of a rendering instruction.
type Op int

const (
	// OpLiteral emits Arg verbatim.
	OpLiteral Op = iota // Literal
	// OpExpand emits the textual form of the value at path Arg.
	OpExpand // Expand
	// OpSection renders Body in the scope of the value at path Arg, or Alt
	// in the current scope if that value is absent.
	OpSection // Section
	// OpRepeat renders Body once per element of the array at path Arg (the
	// current value if Arg is empty), or Alt if the array is absent.
	OpRepeat // Repeat
)

// Instr is a single rendering instruction.
//
// Body and Alt are used only by block instructions. A nil Alt means the
// block has no alternate branch; a non-nil empty Alt is an alternate
// branch that renders nothing.
type Instr struct {
	Op   Op
	Arg  string
	Body Program
	Alt  Program
}

// Program is a compiled sequence of rendering instructions.
// It holds no reference to any runtime data.
type Program []Instr

// HasAlt reports whether the instruction has an alternate branch.
func (in Instr) HasAlt() bool { return in.Alt != nil }

// Print writes an indented tree representation of the program to w.
func (p Program) Print(w io.Writer, indent string) error {
	return p.print(w, indent, 0)
}

func (p Program) print(w io.Writer, indent string, depth int) error {
	prefix := strings.Repeat(indent, depth)

	for _, in := range p {
		var err error

		switch in.Op {
		case OpLiteral:
			_, err = fmt.Fprintf(w, "%s%s %q\n", prefix, in.Op, in.Arg)

		case OpExpand:
			_, err = fmt.Fprintf(w, "%s%s %s\n", prefix, in.Op, in.Arg)

		case OpSection, OpRepeat:
			err = in.printBlock(w, indent, depth)

		default:
			_, err = fmt.Fprintf(w, "%s%s\n", prefix, in.Op)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func (in Instr) printBlock(w io.Writer, indent string, depth int) error {
	prefix := strings.Repeat(indent, depth)

	head := prefix + in.Op.String()
	if in.Arg != "" {
		head += " " + in.Arg
	}

	if _, err := io.WriteString(w, head+"\n"); err != nil {
		return err
	}

	if err := in.Body.print(w, indent, depth+1); err != nil {
		return err
	}

	if !in.HasAlt() {
		return nil
	}

	if _, err := io.WriteString(w, prefix+"Or\n"); err != nil {
		return err
	}

	return in.Alt.print(w, indent, depth+1)
}

// String returns the tree representation of the program indented with two
// spaces per level.
func (p Program) String() string {
	var sb strings.Builder

	_ = p.Print(&sb, "  ")

	return sb.String()
}

// ToNative converts the program to nested maps and slices suitable for
// encoding as JSON or YAML.
func (p Program) ToNative() []any {
	out := make([]any, 0, len(p))

	for _, in := range p {
		out = append(out, in.ToNative())
	}

	return out
}

// ToNative converts the instruction to a map suitable for encoding.
func (in Instr) ToNative() map[string]any {
	m := map[string]any{"op": in.Op.String()}

	switch in.Op {
	case OpLiteral:
		m["text"] = in.Arg

	case OpExpand:
		m["path"] = in.Arg

	case OpSection, OpRepeat:
		if in.Arg != "" {
			m["path"] = in.Arg
		}

		m["body"] = in.Body.ToNative()

		if in.HasAlt() {
			m["alt"] = in.Alt.ToNative()
		}
	}

	return m
}
