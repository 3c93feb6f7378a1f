package lang

import "strings"

// render walks prog against s, appending output to sb.
func render(s *Scope, prog Program, sb *strings.Builder) error {
	for _, in := range prog {
		switch in.Op {
		case OpLiteral:
			sb.WriteString(in.Arg)

		case OpExpand:
			text, err := s.Expand(in.Arg)
			if err != nil {
				return err
			}

			sb.WriteString(text)

		case OpSection:
			err := s.Push(in.Arg, func(c *Scope) error {
				return render(c, in.Body, sb)
			}, alternate(s, in, sb))
			if err != nil {
				return err
			}

		case OpRepeat:
			if err := repeat(s, in, sb); err != nil {
				return err
			}
		}
	}

	return nil
}

// repeat renders a repeat block. An unnamed repeat iterates the value of s.
// A named repeat first enters the scope of the named value and iterates
// that, falling back to the alternate in s if the name is absent.
func repeat(s *Scope, in Instr, sb *strings.Builder) error {
	each := func(c *Scope) error { return render(c, in.Body, sb) }
	orElse := alternate(s, in, sb)

	if in.Arg == "" {
		return s.Repeat(each, orElse)
	}

	return s.Push(in.Arg, func(c *Scope) error {
		return c.Repeat(each, orElse)
	}, orElse)
}

// alternate returns a function rendering the alternate branch of in against
// s, or nil if in has no alternate.
func alternate(s *Scope, in Instr, sb *strings.Builder) func() error {
	if !in.HasAlt() {
		return nil
	}

	return func() error { return render(s, in.Alt, sb) }
}
