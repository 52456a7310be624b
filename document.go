// Package graphql2go is the runtime for code generated by the graphql2go
// command. It provides a small GraphQL document model with a textual
// renderer, schema-aware selection and operation builders driven by
// generated descriptor tables, and the validation helpers generated data
// models use while decoding responses.
package graphql2go

import (
	"fmt"
	"regexp"
	"strings"
)

// Operation types accepted by Operation and NewOperation.
const (
	OpQuery        = "query"
	OpMutation     = "mutation"
	OpSubscription = "subscription"
)

var nameRe = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

func checkName(name string) error {
	if !nameRe.MatchString(name) {
		return fmt.Errorf("graphql2go: invalid name %q", name)
	}
	return nil
}

// indentBlock prefixes every line of s with one indentation level.
func indentBlock(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}

// Variable is an operation variable declaration, e.g. $episode in
// query HeroNameAndFriends($episode: Episode = JEDI).
type Variable struct {
	Name    string
	Type    string // GraphQL type notation, e.g. "Episode" or "[ID!]!"
	Default string // literal rendered after "=", empty for none
}

func (v *Variable) decl() (string, error) {
	if err := checkName(v.Name); err != nil {
		return "", err
	}
	if v.Type == "" {
		return "", fmt.Errorf("graphql2go: variable $%s has no type", v.Name)
	}
	s := "$" + v.Name + ": " + v.Type
	if v.Default != "" {
		s += " = " + v.Default
	}
	return s, nil
}

// Argument is a single field argument. Value must be one of:
//
//   - string: a raw GraphQL literal, emitted verbatim
//   - *Variable: a variable reference, emitted as $name
//   - *Argument: an input object literal with one field
//   - []*Argument: an input object literal with several fields
//
// Go values are turned into raw literals with EncodeValue before they end
// up here.
type Argument struct {
	Name  string
	Value any
}

func (a *Argument) render() (string, error) {
	if err := checkName(a.Name); err != nil {
		return "", err
	}
	switch v := a.Value.(type) {
	case string:
		return a.Name + ": " + v, nil
	case *Variable:
		if err := checkName(v.Name); err != nil {
			return "", err
		}
		return a.Name + ": $" + v.Name, nil
	case *Argument:
		return a.renderObject([]*Argument{v})
	case []*Argument:
		return a.renderObject(v)
	case nil:
		return "", fmt.Errorf("graphql2go: argument %q has no value", a.Name)
	default:
		return "", fmt.Errorf("graphql2go: argument %q: unsupported value type %T", a.Name, a.Value)
	}
}

func (a *Argument) renderObject(fields []*Argument) (string, error) {
	lines := make([]string, len(fields))
	for i, f := range fields {
		s, err := f.render()
		if err != nil {
			return "", err
		}
		lines[i] = s
	}
	return a.Name + ": {\n" + indentBlock(strings.Join(lines, "\n")) + "\n}", nil
}

// renderArgs renders an argument list. When every argument fits on one line
// the list is emitted inline, comma separated; otherwise each argument gets
// its own line inside the parentheses.
func renderArgs(args []*Argument) (string, error) {
	if len(args) == 0 {
		return "", nil
	}
	parts := make([]string, len(args))
	multiline := false
	for i, a := range args {
		s, err := a.render()
		if err != nil {
			return "", err
		}
		parts[i] = s
		multiline = multiline || strings.Contains(s, "\n")
	}
	if !multiline {
		return "(" + strings.Join(parts, ", ") + ")", nil
	}
	return "(\n" + indentBlock(strings.Join(parts, "\n")) + "\n)", nil
}

// renderSelection renders one entry of a selection set. Entries may be
// plain field names, *Field, *InlineFragment, or *Fragment; a fragment is
// rendered as a spread of its name.
func renderSelection(entry any) (string, error) {
	switch e := entry.(type) {
	case string:
		if err := checkName(e); err != nil {
			return "", err
		}
		return e, nil
	case *Field:
		return e.Render()
	case *InlineFragment:
		return e.Render()
	case *Fragment:
		if err := checkName(e.Name); err != nil {
			return "", err
		}
		return "..." + e.Name, nil
	default:
		return "", fmt.Errorf("graphql2go: unsupported selection entry type %T", entry)
	}
}

func renderBlock(typename bool, selection []any) (string, error) {
	var lines []string
	if typename {
		lines = append(lines, "__typename")
	}
	for _, entry := range selection {
		s, err := renderSelection(entry)
		if err != nil {
			return "", err
		}
		lines = append(lines, s)
	}
	return " {\n" + indentBlock(strings.Join(lines, "\n")) + "\n}", nil
}

// Field is a field of a selection set. A field with neither sub-selection
// nor Typename renders as a bare leaf. With Typename set, __typename is
// emitted as the first entry of the sub-selection.
type Field struct {
	Name      string
	Alias     string
	Arguments []*Argument
	Typename  bool
	Selection []any
}

func (f *Field) Render() (string, error) {
	if err := checkName(f.Name); err != nil {
		return "", err
	}
	head := f.Name
	if f.Alias != "" {
		if err := checkName(f.Alias); err != nil {
			return "", err
		}
		head = f.Alias + ": " + f.Name
	}
	args, err := renderArgs(f.Arguments)
	if err != nil {
		return "", err
	}
	head += args
	if !f.Typename && len(f.Selection) == 0 {
		return head, nil
	}
	block, err := renderBlock(f.Typename, f.Selection)
	if err != nil {
		return "", err
	}
	return head + block, nil
}

// InlineFragment is a type-conditioned selection, e.g. ... on Human { .. }.
type InlineFragment struct {
	On        string
	Typename  bool
	Selection []any
}

func (f *InlineFragment) Render() (string, error) {
	if err := checkName(f.On); err != nil {
		return "", err
	}
	if !f.Typename && len(f.Selection) == 0 {
		return "", fmt.Errorf("graphql2go: inline fragment on %s has an empty selection", f.On)
	}
	block, err := renderBlock(f.Typename, f.Selection)
	if err != nil {
		return "", err
	}
	return "... on " + f.On + block, nil
}

// Fragment is a named fragment definition. Adding it to a selection set
// renders a spread (...Name); the definition itself is rendered by the
// operation that carries it.
type Fragment struct {
	Name      string
	On        string
	Typename  bool
	Selection []any
}

func (f *Fragment) Render() (string, error) {
	if err := checkName(f.Name); err != nil {
		return "", err
	}
	if err := checkName(f.On); err != nil {
		return "", err
	}
	if !f.Typename && len(f.Selection) == 0 {
		return "", fmt.Errorf("graphql2go: fragment %s has an empty selection", f.Name)
	}
	block, err := renderBlock(f.Typename, f.Selection)
	if err != nil {
		return "", err
	}
	return "fragment " + f.Name + " on " + f.On + block, nil
}

// Operation is a complete executable document: one operation with its
// variable declarations, root fields and fragment definitions.
type Operation struct {
	Type      string // OpQuery, OpMutation or OpSubscription; empty means query
	Name      string
	Variables []*Variable
	Queries   []*Field
	Fragments []*Fragment
}

func (op *Operation) Render() (string, error) {
	opType := op.Type
	if opType == "" {
		opType = OpQuery
	}
	switch opType {
	case OpQuery, OpMutation, OpSubscription:
	default:
		return "", fmt.Errorf("graphql2go: unsupported operation type %q", op.Type)
	}
	if len(op.Queries) == 0 {
		return "", fmt.Errorf("graphql2go: operation has no root fields")
	}

	head := opType
	if op.Name != "" {
		if err := checkName(op.Name); err != nil {
			return "", err
		}
		head += " " + op.Name
	}
	if len(op.Variables) > 0 {
		decls := make([]string, len(op.Variables))
		for i, v := range op.Variables {
			d, err := v.decl()
			if err != nil {
				return "", err
			}
			decls[i] = d
		}
		head += "(" + strings.Join(decls, ", ") + ")"
	}

	lines := make([]string, len(op.Queries))
	for i, q := range op.Queries {
		s, err := q.Render()
		if err != nil {
			return "", err
		}
		lines[i] = s
	}
	doc := head + " {\n" + indentBlock(strings.Join(lines, "\n")) + "\n}"

	for _, frag := range op.Fragments {
		s, err := frag.Render()
		if err != nil {
			return "", err
		}
		doc += "\n\n" + s
	}
	return doc, nil
}
