package graphql2go

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// EnumValue is a bare enum literal. Plain strings are encoded as quoted
// GraphQL strings, so enum values passed as literals must be wrapped:
//
//	WithArg("unit", graphql2go.EnumValue("FOOT"))
type EnumValue string

// EncodeValue renders a Go value as a GraphQL literal. Maps and structs
// become input object literals, slices become list literals, and map keys
// are emitted in sorted order so the output is deterministic.
func EncodeValue(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "null", nil
	case EnumValue:
		if err := checkName(string(v)); err != nil {
			return "", err
		}
		return string(v), nil
	case *Variable:
		return "$" + v.Name, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return "null", nil
		}
		return EncodeValue(rv.Elem().Interface())
	case reflect.String:
		return quoteString(rv.String()), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, rv.Type().Bits()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "null", nil
		}
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			s, err := EncodeValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", fmt.Errorf("graphql2go: cannot encode map with %s keys", rv.Type().Key())
		}
		if rv.IsNil() {
			return "null", nil
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			s, err := EncodeValue(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = k + ": " + s
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case reflect.Struct:
		return encodeStruct(rv)
	default:
		return "", fmt.Errorf("graphql2go: cannot encode %T as a GraphQL value", v)
	}
}

func encodeStruct(rv reflect.Value) (string, error) {
	var parts []string
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, omitEmpty := jsonFieldName(f)
		if name == "-" {
			continue
		}
		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}
		s, err := EncodeValue(fv.Interface())
		if err != nil {
			return "", err
		}
		parts = append(parts, name+": "+s)
	}
	return "{" + strings.Join(parts, ", ") + "}", nil
}

func jsonFieldName(f reflect.StructField) (name string, omitEmpty bool) {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name, false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = f.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

// quoteString renders a GraphQL string literal. The escape set is the one
// the GraphQL grammar defines; other control characters use \u escapes.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// ArgKind is the coarse kind of an argument's innermost type, used to check
// bound values before an operation is rendered.
type ArgKind uint8

const (
	KindAny ArgKind = iota // custom scalars: any value is accepted
	KindID
	KindString
	KindInt
	KindFloat
	KindBoolean
	KindEnum
	KindInput
)

// ArgSpec describes one argument accepted by a field.
type ArgSpec struct {
	Type       string // GraphQL notation, e.g. "ID!" or "[String!]"
	Kind       ArgKind
	Shape      *Shape
	HasDefault bool
}

// checkValue verifies that a Go value can satisfy the argument described by
// spec. Variables are checked by declared type instead, in checkVariable.
func checkValue(field, arg string, spec ArgSpec, v any) error {
	if err := checkShape(spec.Shape, reflect.ValueOf(v), spec.Kind); err != nil {
		return &ArgumentTypeError{Field: field, Argument: arg, Want: spec.Type, Reason: err.Error()}
	}
	return nil
}

func checkShape(s *Shape, rv reflect.Value, kind ArgKind) error {
	if !rv.IsValid() || isNilValue(rv) {
		if s != nil && s.NonNull {
			return fmt.Errorf("cannot use null for a non-null type")
		}
		return nil
	}
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if s != nil && s.Elem != nil {
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return fmt.Errorf("cannot use %s for a list type", rv.Type())
		}
		for i := 0; i < rv.Len(); i++ {
			if err := checkShape(s.Elem, rv.Index(i), kind); err != nil {
				return err
			}
		}
		return nil
	}
	return checkBaseKind(rv, kind)
}

func checkBaseKind(rv reflect.Value, kind ArgKind) error {
	ok := false
	switch kind {
	case KindAny:
		ok = true
	case KindString:
		ok = rv.Kind() == reflect.String
	case KindID:
		ok = rv.Kind() == reflect.String || isIntKind(rv.Kind())
	case KindInt:
		ok = isIntKind(rv.Kind())
	case KindFloat:
		ok = isIntKind(rv.Kind()) || rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64
	case KindBoolean:
		ok = rv.Kind() == reflect.Bool
	case KindEnum:
		ok = rv.Kind() == reflect.String
	case KindInput:
		ok = rv.Kind() == reflect.Map || rv.Kind() == reflect.Struct
	}
	if !ok {
		return fmt.Errorf("cannot use %s value", rv.Type())
	}
	return nil
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// checkVariable verifies that a variable's declared type can satisfy the
// argument's declared type. A non-null variable may be bound where a
// nullable argument is expected, but not the other way around.
func checkVariable(field, arg string, spec ArgSpec, v *Variable) error {
	if v.Type == spec.Type || v.Type == spec.Type+"!" {
		return nil
	}
	return &ArgumentTypeError{
		Field:    field,
		Argument: arg,
		Want:     spec.Type,
		Reason:   fmt.Sprintf("cannot use variable $%s of type %s", v.Name, v.Type),
	}
}
