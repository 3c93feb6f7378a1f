package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"maps"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
	"github.com/ohler55/ojg/jp"

	"github.com/ardnew/scopelet/log"
)

// Data assembles the root context a template is expanded against.
//
// Documents are decoded and deep-merged left to right. Assignments from
// --set-string are applied next, then --set expressions, each evaluated
// against the context built so far. Finally --select replaces the root with
// the first value its JSONPath matches.
type Data struct {
	Files     []string `help:"YAML or JSON data document, or '-' for stdin." name:"data"       placeholder:"FILE"      short:"d"`
	Set       []string `help:"Assign the result of an expression."            name:"set"        placeholder:"KEY=EXPR"  sep:"none" short:"s"`
	SetString []string `help:"Assign a literal string."                       name:"set-string" placeholder:"KEY=VALUE" sep:"none"`
	Select    string   `help:"JSONPath selecting the root context."           name:"select"     placeholder:"PATH"`
}

// Load builds the root context.
func (d Data) Load(ctx context.Context, in *inputs) (any, error) {
	var root any

	for _, path := range d.Files {
		data, ok, err := in.read(path)
		if err != nil {
			return nil, ErrDecodeData.Wrap(err).With(slog.String("path", path))
		}

		if !ok {
			continue
		}

		doc, err := decode(ctx, data)
		if err != nil {
			return nil, ErrDecodeData.Wrap(err).With(slog.String("path", path))
		}

		root = merge(root, doc)

		log.TraceContext(ctx, "data loaded", slog.String("path", path))
	}

	root, err := d.assign(root)
	if err != nil {
		return nil, err
	}

	if d.Select == "" {
		return root, nil
	}

	return selectRoot(root, d.Select)
}

func (d Data) assign(root any) (any, error) {
	if len(d.Set) == 0 && len(d.SetString) == 0 {
		return root, nil
	}

	if root == nil {
		root = map[string]any{}
	}

	m, ok := root.(map[string]any)
	if !ok {
		return nil, ErrInvalidAssignment.With(
			slog.String("reason", "root context is not a mapping"))
	}

	for _, arg := range d.SetString {
		key, value, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}

		if err := setPath(m, key, value); err != nil {
			return nil, err
		}
	}

	for _, arg := range d.Set {
		key, src, err := splitAssignment(arg)
		if err != nil {
			return nil, err
		}

		value, err := expr.Eval(src, m)
		if err != nil {
			return nil, ErrExprEvaluate.Wrap(err).With(slog.String("expr", src))
		}

		if err := setPath(m, key, value); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// decode parses one YAML or JSON document. An empty document decodes to nil.
func decode(ctx context.Context, data []byte) (any, error) {
	var doc any

	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.DecodeContext(ctx, &doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return doc, nil
}

// merge combines src into dst. Mappings are merged key by key; any other
// value in src replaces the one in dst.
func merge(dst, src any) any {
	dm, dok := dst.(map[string]any)
	sm, sok := src.(map[string]any)

	if !dok || !sok {
		if src == nil {
			return dst
		}

		return src
	}

	out := maps.Clone(dm)

	for k, v := range sm {
		out[k] = merge(out[k], v)
	}

	return out
}

func splitAssignment(arg string) (key, value string, err error) {
	key, value, ok := strings.Cut(arg, "=")
	key = strings.TrimSpace(key)

	if !ok || key == "" {
		return "", "", ErrInvalidAssignment.With(slog.String("arg", arg))
	}

	return key, value, nil
}

// setPath stores value at the dotted key path in m, creating intermediate
// mappings as needed.
func setPath(m map[string]any, key string, value any) error {
	names := strings.Split(key, ".")

	for i, name := range names[:len(names)-1] {
		if name == "" {
			return ErrInvalidAssignment.With(slog.String("key", key))
		}

		switch next := m[name].(type) {
		case map[string]any:
			m = next

		case nil:
			child := map[string]any{}
			m[name] = child
			m = child

		default:
			return ErrInvalidAssignment.With(
				slog.String("key", key),
				slog.String("reason", strings.Join(names[:i+1], ".")+" is not a mapping"),
			)
		}
	}

	last := names[len(names)-1]
	if last == "" {
		return ErrInvalidAssignment.With(slog.String("key", key))
	}

	m[last] = value

	return nil
}

func selectRoot(root any, path string) (any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, ErrSelect.Wrap(err).With(slog.String("path", path))
	}

	found := x.Get(root)
	if len(found) == 0 {
		return nil, ErrSelect.With(
			slog.String("path", path),
			slog.String("reason", "no match"),
		)
	}

	return found[0], nil
}
