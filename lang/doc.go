// Package lang implements a small text-templating language.
//
// Template source is literal text interspersed with directives enclosed in
// braces. Source is compiled once into a [Template] holding an instruction
// tree, which may then be expanded any number of times against different
// data.
//
// # Grammar
//
// Informal EBNF:
//
//	Template   → ( Literal | Directive )* EOF
//	Literal    → <any text not containing '{'>
//	Directive  → '{' Body '}'
//	Body       → '.section' WS Path
//	           | '.repeat' ( WS Path )?
//	           | '.or'
//	           | '.end'
//	           | Path
//	Path       → Identifier ( '.' Identifier )* | '@'
//
// A .section or .repeat opens a block that is closed by .end and may
// contain a single .or separating its body from an alternate branch.
// Blocks nest.
//
// # Example
//
//	Hello, {.section user}{name}{.or}Guest{.end}!
//	{.repeat items}[{@}]{.or}no items{.end}
//
// # Resolution
//
// Expansion resolves paths against a chain of scopes. The root scope wraps
// the data passed to [Template.Expand]; every section and every repeat
// element pushes a child scope wrapping the entered value. The first
// segment of a path is looked up from the innermost scope outward, so
// nearer bindings shadow farther ones. Remaining segments descend into the
// result. The path '@' names the current scope's own value.
//
// Members are found by map key (string-keyed maps), by exported struct field
// name or json/yaml tag, by decimal index into slices, arrays and strings, or
// through the [Lookuper] interface.
//
// A value is absent if it is nil, a nil pointer or interface, or a member
// that does not exist; every other value is present, including zero values
// such as 0, "" and false. Absent paths behave as follows:
//
//   - {path} fails with [ErrResolution].
//   - {.section path} renders its alternate, or nothing.
//   - {.repeat path} renders its alternate, or nothing.
//
// A present .repeat value must be a slice or array, otherwise expansion
// fails with [ErrTypeMismatch]. An empty slice renders nothing and does not
// trigger the alternate.
//
// # Errors
//
// Every error is an [*Error] derived from one of the package sentinels and
// may be matched using [errors.Is]. Compile errors carry the source
// [Position] of the offending directive.
//
// Resolution does no cycle detection. Data graphs containing reference
// cycles reachable through member access are not supported.
package lang
