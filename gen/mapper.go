package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/mathsolpro/graphql2go/schema"
)

// runtimePkg is the import path of the runtime package generated code
// depends on.
const runtimePkg = "github.com/mathsolpro/graphql2go"

// scalarMapping records how one custom scalar is represented. Decisions
// are memoized so both emitters render the scalar the same way.
type scalarMapping struct {
	qualPkg string // import path when the target is package-qualified
	ident   string // Go type name
	opaque  bool   // unmapped: emitted as a named string type
}

// mapper turns resolved type references into Go type expressions. The
// mapping composes innermost-first: the named type is mapped, then each
// list level wraps it in a slice, with optionality expressed as a pointer.
type mapper struct {
	schema  *schema.Schema
	names   *resolver
	scalars map[string]string
	decided map[string]scalarMapping
}

func newMapper(s *schema.Schema, names *resolver, scalars map[string]string) *mapper {
	return &mapper{
		schema:  s,
		names:   names,
		scalars: scalars,
		decided: make(map[string]scalarMapping),
	}
}

// scalar resolves the representation of a custom scalar. Configured
// targets may be bare Go types ("string") or package-qualified
// ("time.Time"); anything unmapped becomes an opaque named string type.
func (m *mapper) scalar(t *schema.Type) (scalarMapping, error) {
	if d, ok := m.decided[t.Name]; ok {
		return d, nil
	}
	var d scalarMapping
	if target := m.scalars[t.Name]; target != "" {
		if i := strings.LastIndex(target, "."); i >= 0 {
			d = scalarMapping{qualPkg: target[:i], ident: target[i+1:]}
		} else {
			d = scalarMapping{ident: target}
		}
	} else {
		ident, err := m.names.typeName(t.Name)
		if err != nil {
			return scalarMapping{}, err
		}
		d = scalarMapping{ident: ident, opaque: true}
	}
	m.decided[t.Name] = d
	return d, nil
}

// goType renders the Go type for a reference. Scalars and enums are
// pointers when nullable; composite types are always pointers; lists are
// slices at every level, with the nil slice standing in for null.
func (m *mapper) goType(ref *schema.TypeRef) (*jen.Statement, error) {
	if ref.Elem != nil {
		elem, err := m.goType(ref.Elem)
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil
	}
	base, err := m.baseType(ref.Named)
	if err != nil {
		return nil, err
	}
	switch ref.Named.Kind {
	case schema.Object, schema.Interface, schema.Union, schema.InputObject:
		return jen.Op("*").Add(base), nil
	default:
		if !ref.NonNull {
			return jen.Op("*").Add(base), nil
		}
		return base, nil
	}
}

func (m *mapper) baseType(t *schema.Type) (*jen.Statement, error) {
	if t.Kind == schema.Scalar {
		if t.BuiltIn {
			switch t.Name {
			case "Int":
				return jen.Int32(), nil
			case "Float":
				return jen.Float64(), nil
			case "Boolean":
				return jen.Bool(), nil
			default: // String, ID
				return jen.String(), nil
			}
		}
		d, err := m.scalar(t)
		if err != nil {
			return nil, err
		}
		if d.qualPkg != "" {
			return jen.Qual(d.qualPkg, d.ident), nil
		}
		return jen.Id(d.ident), nil
	}
	ident, err := m.names.typeName(t.Name)
	if err != nil {
		return nil, err
	}
	return jen.Id(ident), nil
}

// argKind names the runtime kind constant used to check values bound to
// an argument of this type.
func argKind(t *schema.Type) string {
	switch t.Kind {
	case schema.Enum:
		return "KindEnum"
	case schema.InputObject:
		return "KindInput"
	case schema.Scalar:
		if t.BuiltIn {
			switch t.Name {
			case "Int":
				return "KindInt"
			case "Float":
				return "KindFloat"
			case "Boolean":
				return "KindBoolean"
			case "ID":
				return "KindID"
			case "String":
				return "KindString"
			}
		}
	}
	return "KindAny"
}

// isLeaf reports whether a type terminates a selection.
func isLeaf(t *schema.Type) bool {
	return t.Kind == schema.Scalar || t.Kind == schema.Enum
}

// needsCheck reports whether any level of the reference is non-null, i.e.
// whether decoding must validate the value's shape.
func needsCheck(ref *schema.TypeRef) bool {
	for r := ref; r != nil; r = r.Elem {
		if r.NonNull {
			return true
		}
	}
	return false
}

// shapeLit renders the runtime Shape literal for a reference.
func shapeLit(ref *schema.TypeRef) *jen.Statement {
	d := jen.Dict{}
	if ref.NonNull {
		d[jen.Id("NonNull")] = jen.True()
	}
	if ref.Elem != nil {
		d[jen.Id("Elem")] = shapeLit(ref.Elem)
	}
	return jen.Op("&").Qual(runtimePkg, "Shape").Values(d)
}
