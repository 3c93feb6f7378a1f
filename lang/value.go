package lang

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Lookuper is implemented by values that resolve their own members.
// Lookup reports whether name is defined on the receiver.
type Lookuper interface {
	Lookup(name string) (any, bool)
}

// present reports whether v counts as a defined value.
// Untyped nil and nil pointers or interfaces are absent; every other value,
// including zero values, empty strings, and nil maps or slices, is present.
func present(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()

	default:
		return true
	}
}

// member returns the member of v named name.
// The bool result is false if v has no such member or its value is absent.
func member(v any, name string) (any, bool) {
	switch x := v.(type) {
	case map[string]any:
		m, ok := x[name]

		return m, ok && present(m)

	case Lookuper:
		m, ok := x.Lookup(name)

		return m, ok && present(m)
	}

	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return nil, false
	}

	var mv reflect.Value

	switch rv.Kind() {
	case reflect.Map:
		kt := rv.Type().Key()
		if kt.Kind() != reflect.String {
			return nil, false
		}

		mv = rv.MapIndex(reflect.ValueOf(name).Convert(kt))

	case reflect.Struct:
		mv = field(rv, name)

	case reflect.Slice, reflect.Array:
		i, ok := index(name, rv.Len())
		if !ok {
			return nil, false
		}

		mv = rv.Index(i)

	case reflect.String:
		r := []rune(rv.String())

		i, ok := index(name, len(r))
		if !ok {
			return nil, false
		}

		return string(r[i]), true

	default:
		return nil, false
	}

	if !mv.IsValid() || !mv.CanInterface() {
		return nil, false
	}

	m := mv.Interface()

	return m, present(m)
}

// indirect dereferences pointers and interfaces until reaching a concrete
// value. It returns the zero Value if a nil is encountered.
func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() &&
		(rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}

		rv = rv.Elem()
	}

	return rv
}

// field returns the exported field of struct rv named name, matching first
// the Go field name and then a json or yaml tag name.
func field(rv reflect.Value, name string) reflect.Value {
	rt := rv.Type()

	if sf, ok := rt.FieldByName(name); ok && sf.IsExported() {
		fv, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return reflect.Value{}
		}

		return fv
	}

	for _, sf := range reflect.VisibleFields(rt) {
		if !sf.IsExported() || sf.Anonymous {
			continue
		}

		if tagName(sf, "json") != name && tagName(sf, "yaml") != name {
			continue
		}

		fv, err := rv.FieldByIndexErr(sf.Index)
		if err != nil {
			return reflect.Value{}
		}

		return fv
	}

	return reflect.Value{}
}

func tagName(sf reflect.StructField, key string) string {
	tag, ok := sf.Tag.Lookup(key)
	if !ok {
		return ""
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}

	return name
}

// index parses a non-negative decimal index less than n.
func index(name string, n int) (int, bool) {
	i, err := strconv.Atoi(name)
	if err != nil || i < 0 || i >= n || name[0] == '+' {
		return 0, false
	}

	return i, true
}

// elements returns v as a reflected slice or array.
// A string yields a slice of its characters, one string per rune.
func elements(v any) (reflect.Value, bool) {
	rv := indirect(reflect.ValueOf(v))
	if !rv.IsValid() {
		return rv, false
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv, true

	case reflect.String:
		r := []rune(rv.String())
		chars := make([]string, len(r))

		for i, c := range r {
			chars[i] = string(c)
		}

		return reflect.ValueOf(chars), true

	default:
		return rv, false
	}
}

// format returns the textual form of v.
func format(v any) string {
	if !present(v) {
		return ""
	}

	switch x := v.(type) {
	case string:
		return x

	case []byte:
		return string(x)

	case fmt.Stringer:
		return x.String()

	case bool:
		return strconv.FormatBool(x)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()

	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)

	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)

	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)

	case reflect.Slice, reflect.Array:
		part := make([]string, rv.Len())
		for i := range part {
			part[i] = format(rv.Index(i).Interface())
		}

		return strings.Join(part, ",")

	case reflect.Pointer, reflect.Interface:
		return format(rv.Elem().Interface())

	default:
		return fmt.Sprint(v)
	}
}

// typeName describes the dynamic type of v for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return reflect.TypeOf(v).String()
}
