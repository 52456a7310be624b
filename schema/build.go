package schema

import (
	"github.com/vektah/gqlparser/v2/ast"
)

var builtinScalars = []string{"Int", "Float", "String", "Boolean", "ID"}

type builder struct {
	schema *Schema
	defs   map[string]*ast.Definition
}

// Build links and validates parsed SDL documents into a Schema. Several
// documents may be passed; they are treated as one schema, with
// declaration order running through them in document order. The five
// built-in scalars are pre-declared, everything else must be declared by
// the documents.
func Build(docs ...*ast.SchemaDocument) (*Schema, error) {
	if len(docs) == 0 {
		return nil, &Error{Message: "no schema documents"}
	}

	b := &builder{
		schema: &Schema{byName: make(map[string]*Type)},
		defs:   make(map[string]*ast.Definition),
	}
	for _, name := range builtinScalars {
		b.schema.byName[name] = &Type{Kind: Scalar, Name: name, BuiltIn: true}
	}

	for _, doc := range docs {
		if len(doc.Extensions) > 0 {
			return nil, errorf(doc.Extensions[0].Position, "type extensions are not supported")
		}
		for _, def := range doc.Definitions {
			if err := b.declare(def); err != nil {
				return nil, err
			}
		}
	}
	for _, t := range b.schema.Types {
		if err := b.link(t); err != nil {
			return nil, err
		}
	}
	if err := b.resolveRoots(docs); err != nil {
		return nil, err
	}
	if err := b.checkInterfaces(); err != nil {
		return nil, err
	}
	if err := b.checkInputCycles(); err != nil {
		return nil, err
	}
	return b.schema, nil
}

func (b *builder) declare(def *ast.Definition) error {
	var kind Kind
	switch def.Kind {
	case ast.Scalar:
		kind = Scalar
	case ast.Object:
		kind = Object
	case ast.Interface:
		kind = Interface
	case ast.Union:
		kind = Union
	case ast.Enum:
		kind = Enum
	case ast.InputObject:
		kind = InputObject
	default:
		return errorf(def.Position, "unsupported definition kind %s", def.Kind)
	}

	if prev := b.schema.byName[def.Name]; prev != nil {
		if prev.BuiltIn {
			return errorf(def.Position, "built-in type %q cannot be redeclared", def.Name)
		}
		return errorf(def.Position, "type %q defined more than once", def.Name)
	}

	t := &Type{Kind: kind, Name: def.Name, Desc: def.Description}
	b.schema.Types = append(b.schema.Types, t)
	b.schema.byName[def.Name] = t
	b.defs[def.Name] = def
	return nil
}

func (b *builder) link(t *Type) error {
	def := b.defs[t.Name]
	switch t.Kind {
	case Object, Interface:
		for _, name := range def.Interfaces {
			it := b.schema.byName[name]
			if it == nil {
				return errorf(def.Position, "undefined type %q", name)
			}
			if it.Kind != Interface {
				return errorf(def.Position, "type %q is not an interface", name)
			}
			t.Interfaces = append(t.Interfaces, it)
			if t.Kind == Object {
				it.Possible = append(it.Possible, t)
			}
		}
		fields, err := b.linkFields(def.Fields)
		if err != nil {
			return err
		}
		t.Fields = fields

	case Union:
		for _, name := range def.Types {
			mt := b.schema.byName[name]
			if mt == nil {
				return errorf(def.Position, "undefined type %q", name)
			}
			if mt.Kind != Object {
				return errorf(def.Position, "union member %q is not an object type", name)
			}
			t.Possible = append(t.Possible, mt)
		}

	case Enum:
		for _, ev := range def.EnumValues {
			deprecated, reason := deprecation(ev.Directives)
			t.EnumValues = append(t.EnumValues, &EnumValue{
				Name:              ev.Name,
				Desc:              ev.Description,
				Deprecated:        deprecated,
				DeprecationReason: reason,
			})
		}

	case InputObject:
		for _, f := range def.Fields {
			ref, err := b.resolveRef(f.Type)
			if err != nil {
				return err
			}
			if err := checkInputPosition(ref, f.Position); err != nil {
				return err
			}
			t.Inputs = append(t.Inputs, &InputValue{
				Name:    f.Name,
				Desc:    f.Description,
				Type:    ref,
				Default: literal(f.DefaultValue),
			})
		}
	}
	return nil
}

func (b *builder) linkFields(defs ast.FieldList) ([]*Field, error) {
	var fields []*Field
	for _, fd := range defs {
		ref, err := b.resolveRef(fd.Type)
		if err != nil {
			return nil, err
		}
		if named := ref.Unwrap(); named.Kind == InputObject {
			return nil, errorf(fd.Position, "input object %q cannot be used in an output position", named.Name)
		}
		var args []*InputValue
		for _, ad := range fd.Arguments {
			aref, err := b.resolveRef(ad.Type)
			if err != nil {
				return nil, err
			}
			if err := checkInputPosition(aref, ad.Position); err != nil {
				return nil, err
			}
			args = append(args, &InputValue{
				Name:    ad.Name,
				Desc:    ad.Description,
				Type:    aref,
				Default: literal(ad.DefaultValue),
			})
		}
		deprecated, reason := deprecation(fd.Directives)
		fields = append(fields, &Field{
			Name:              fd.Name,
			Desc:              fd.Description,
			Args:              args,
			Type:              ref,
			Deprecated:        deprecated,
			DeprecationReason: reason,
		})
	}
	return fields, nil
}

func (b *builder) resolveRef(at *ast.Type) (*TypeRef, error) {
	if at.Elem != nil {
		elem, err := b.resolveRef(at.Elem)
		if err != nil {
			return nil, err
		}
		return &TypeRef{NonNull: at.NonNull, Elem: elem}, nil
	}
	t := b.schema.byName[at.NamedType]
	if t == nil {
		return nil, errorf(at.Position, "undefined type %q", at.NamedType)
	}
	return &TypeRef{NonNull: at.NonNull, Named: t}, nil
}

func (b *builder) resolveRoots(docs []*ast.SchemaDocument) error {
	named := make(map[string]string)
	pos := make(map[string]*ast.Position)
	explicit := false
	for _, doc := range docs {
		for _, sd := range doc.Schema {
			explicit = true
			for _, ot := range sd.OperationTypes {
				op := string(ot.Operation)
				if named[op] != "" {
					return errorf(ot.Position, "schema defines the %s root more than once", op)
				}
				named[op] = ot.Type
				pos[op] = ot.Position
			}
		}
	}

	resolve := func(op, fallback string) (*Type, error) {
		name := named[op]
		if name == "" {
			if explicit {
				return nil, nil
			}
			name = fallback
		}
		t := b.schema.byName[name]
		if t == nil {
			if named[op] == "" {
				return nil, nil
			}
			return nil, errorf(pos[op], "undefined type %q for the %s root", name, op)
		}
		if t.Kind != Object {
			return nil, errorf(pos[op], "%s root type %q must be an object type", op, name)
		}
		return t, nil
	}

	var err error
	if b.schema.Query, err = resolve("query", "Query"); err != nil {
		return err
	}
	if b.schema.Mutation, err = resolve("mutation", "Mutation"); err != nil {
		return err
	}
	if b.schema.Subscription, err = resolve("subscription", "Subscription"); err != nil {
		return err
	}
	if b.schema.Query == nil {
		return &Error{Message: "schema has no query root"}
	}
	return nil
}

// checkInterfaces verifies that every object declares each field of every
// interface it implements.
func (b *builder) checkInterfaces() error {
	for _, t := range b.schema.Types {
		if t.Kind != Object {
			continue
		}
		for _, it := range t.Interfaces {
			for _, ifield := range it.Fields {
				if fieldByName(t.Fields, ifield.Name) == nil {
					return errorf(b.defs[t.Name].Position,
						"type %q does not implement %q: missing field %q", t.Name, it.Name, ifield.Name)
				}
			}
		}
	}
	return nil
}

// checkInputCycles rejects cycles of input object fields that are
// non-nullable and not behind a list level. A nullable field or a list
// field gives the cycle a finite value (null or the empty list), so those
// edges are skipped.
func (b *builder) checkInputCycles() error {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int)
	var stack []string

	var visit func(t *Type) *InputCycleError
	visit = func(t *Type) *InputCycleError {
		color[t.Name] = grey
		stack = append(stack, t.Name)
		for _, in := range t.Inputs {
			if in.Type.Elem != nil || !in.Type.NonNull {
				continue
			}
			next := in.Type.Named
			if next.Kind != InputObject {
				continue
			}
			switch color[next.Name] {
			case white:
				if err := visit(next); err != nil {
					return err
				}
			case grey:
				start := 0
				for i, name := range stack {
					if name == next.Name {
						start = i
						break
					}
				}
				path := append(append([]string{}, stack[start:]...), next.Name)
				return &InputCycleError{Path: path}
			}
		}
		stack = stack[:len(stack)-1]
		color[t.Name] = black
		return nil
	}

	for _, t := range b.schema.Types {
		if t.Kind == InputObject && color[t.Name] == white {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkInputPosition rejects output-only types where an input is expected,
// i.e. in argument and input object field declarations.
func checkInputPosition(ref *TypeRef, pos *ast.Position) error {
	switch named := ref.Unwrap(); named.Kind {
	case Object, Interface, Union:
		return errorf(pos, "type %q cannot be used in an input position", named.Name)
	}
	return nil
}

func fieldByName(fields []*Field, name string) *Field {
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

func literal(v *ast.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func deprecation(list ast.DirectiveList) (bool, string) {
	d := list.ForName("deprecated")
	if d == nil {
		return false, ""
	}
	var reason string
	if arg := d.Arguments.ForName("reason"); arg != nil && arg.Value != nil {
		reason = arg.Value.Raw
	}
	return true, reason
}
