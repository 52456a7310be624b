package graphql2go

import (
	"fmt"
	"strings"
)

// UnknownFieldError is returned when a selection names a field that does not
// exist on the type being selected.
type UnknownFieldError struct {
	Type       string
	Field      string
	Suggestion string // closest known field name, if any
}

func (err *UnknownFieldError) Error() string {
	msg := fmt.Sprintf("graphql2go: no field %q on type %s", err.Field, err.Type)
	if err.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", err.Suggestion)
	}
	return msg
}

// ArgumentTypeError is returned when a value bound to a field argument cannot
// satisfy the argument's declared type.
type ArgumentTypeError struct {
	Field    string
	Argument string
	Want     string // declared GraphQL type, e.g. "ID!"
	Reason   string
}

func (err *ArgumentTypeError) Error() string {
	msg := fmt.Sprintf("graphql2go: argument %q of field %q", err.Argument, err.Field)
	if err.Reason != "" {
		msg += ": " + err.Reason
	}
	if err.Want != "" {
		msg += fmt.Sprintf(" (want %s)", err.Want)
	}
	return msg
}

// RequiredFieldMissingError is returned when decoding finds a null or absent
// value where the schema requires one.
type RequiredFieldMissingError struct {
	Type string
	Path string // field name, possibly with list indices, e.g. "tags[2]"
	Null bool   // true when the value was an explicit JSON null
}

func (err *RequiredFieldMissingError) Error() string {
	what := "missing"
	if err.Null {
		what = "null"
	}
	return fmt.Sprintf("graphql2go: %s.%s: required value is %s", err.Type, err.Path, what)
}

// UnknownEnumValueError is returned when decoding finds a string that is not
// one of the enum's declared values.
type UnknownEnumValueError struct {
	Enum  string
	Value string
}

func (err *UnknownEnumValueError) Error() string {
	return fmt.Sprintf("graphql2go: %q is not a value of enum %s", err.Value, err.Enum)
}

// UnknownTypeNameError is returned when a concrete type name is not one of
// the possible types of an interface or union. It covers both inline
// fragments built against the wrong type and __typename discriminators
// received from a server.
type UnknownTypeNameError struct {
	Type     string
	TypeName string
	Possible []string
}

func (err *UnknownTypeNameError) Error() string {
	msg := fmt.Sprintf("graphql2go: %q is not a possible type of %s", err.TypeName, err.Type)
	if len(err.Possible) > 0 {
		msg += " (expecting one of: " + strings.Join(err.Possible, ", ") + ")"
	}
	return msg
}
