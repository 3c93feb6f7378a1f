package lang

import (
	"log/slog"
	"strings"
)

// Scope is a node in the chain of lookup contexts consulted while a template
// renders. Each node pairs a data value with the scope enclosing it.
//
// Scopes are created on entry to each section and repeat element and are
// discarded when rendering returns. Resolution performs no cycle detection.
type Scope struct {
	value  any
	parent *Scope
}

// NewScope returns a root scope wrapping value.
func NewScope(value any) *Scope {
	return &Scope{value: value}
}

// child returns a new scope wrapping value enclosed by s.
func (s *Scope) child(value any) *Scope {
	return &Scope{value: value, parent: s}
}

// Value returns the data value of the scope.
func (s *Scope) Value() any { return s.value }

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope { return s.parent }

// Resolve returns the value at path and whether it is present.
//
// The path [Self] yields the scope's own value. Otherwise the path is split
// on "." and its first segment is looked up in each scope from s outward;
// the innermost scope that defines it wins. Remaining segments descend into
// the result. Any absent step makes the whole path absent.
func (s *Scope) Resolve(path string) (any, bool) {
	if path == Self {
		return s.value, present(s.value)
	}

	first, rest, _ := strings.Cut(path, ".")

	var (
		v     any
		found bool
	)

	for sc := s; sc != nil && !found; sc = sc.parent {
		if present(sc.value) {
			v, found = member(sc.value, first)
		}
	}

	for found && rest != "" {
		var seg string

		seg, rest, _ = strings.Cut(rest, ".")
		v, found = member(v, seg)
	}

	if !found {
		return nil, false
	}

	return v, true
}

// Push resolves path and, if present, calls then with a child scope wrapping
// the resolved value. Otherwise it calls orElse, if non-nil, which renders
// against s itself.
func (s *Scope) Push(
	path string,
	then func(*Scope) error,
	orElse func() error,
) error {
	if v, ok := s.Resolve(path); ok {
		return then(s.child(v))
	}

	if orElse != nil {
		return orElse()
	}

	return nil
}

// Repeat calls then once per element of the scope's value, in index order,
// each with a child scope wrapping the element.
//
// The value must be a slice, an array or a string, whose elements are its
// characters; any other present value fails with [ErrTypeMismatch]. An empty
// slice or string calls neither then nor orElse. An absent value calls
// orElse, if non-nil.
func (s *Scope) Repeat(then func(*Scope) error, orElse func() error) error {
	if !present(s.value) {
		if orElse != nil {
			return orElse()
		}

		return nil
	}

	rv, ok := elements(s.value)
	if !ok {
		return ErrTypeMismatch.With(
			slog.String("reason", "cannot repeat over non-array value"),
			slog.String("type", typeName(s.value)),
		)
	}

	for i := range rv.Len() {
		if err := then(s.child(rv.Index(i).Interface())); err != nil {
			return err
		}
	}

	return nil
}

// Expand returns the textual form of the value at path.
// It fails with [ErrResolution] if the path is absent.
func (s *Scope) Expand(path string) (string, error) {
	v, ok := s.Resolve(path)
	if !ok {
		return "", ErrResolution.With(slog.String("path", path))
	}

	return format(v), nil
}
