package gen

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/mathsolpro/graphql2go/schema"
)

// models emits the data-model file: one record type per schema type, with
// decode-time validation of non-null contracts and enum membership. Root
// object types are skipped unless some field refers back to them.
func (g *generator) models() (*jen.File, error) {
	f := newFile(g.opts.Package)

	referenced := g.referencedRoots()
	for _, t := range g.schema.Types {
		if g.schema.IsRoot(t) && !referenced[t.Name] {
			continue
		}
		var err error
		switch t.Kind {
		case schema.Scalar:
			err = g.scalarModel(f, t)
		case schema.Enum:
			err = g.enumModel(f, t)
		case schema.Object:
			err = g.objectModel(f, t)
		case schema.InputObject:
			err = g.inputModel(f, t)
		case schema.Interface, schema.Union:
			err = g.variantModel(f, t)
		}
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// referencedRoots returns the names of root types that appear as field
// types somewhere in the schema and therefore need a model after all.
func (g *generator) referencedRoots() map[string]bool {
	out := make(map[string]bool)
	for _, t := range g.schema.Types {
		if g.schema.IsRoot(t) {
			continue
		}
		for _, fd := range t.Fields {
			if named := fd.Type.Unwrap(); g.schema.IsRoot(named) {
				out[named.Name] = true
			}
		}
	}
	return out
}

// scalarModel emits an opaque named string type for a custom scalar that
// has no configured Go mapping. Mapped scalars render as their target type
// at every use site and need no declaration here.
func (g *generator) scalarModel(f *jen.File, t *schema.Type) error {
	d, err := g.mapper.scalar(t)
	if err != nil {
		return err
	}
	if !d.opaque {
		return nil
	}
	comment(f, t.Desc)
	f.Type().Id(d.ident).String()
	return nil
}

func (g *generator) enumModel(f *jen.File, t *schema.Type) error {
	name, err := g.names.typeName(t.Name)
	if err != nil {
		return err
	}
	comment(f, t.Desc)
	f.Type().Id(name).String()

	var defs []jen.Code
	for _, v := range t.EnumValues {
		if v.Deprecated && !g.opts.IncludeDeprecated {
			continue
		}
		constName, err := g.names.enumConst(t.Name, name, v.Name)
		if err != nil {
			return err
		}
		for _, line := range commentLines(v.Desc) {
			defs = append(defs, jen.Comment(line))
		}
		defs = append(defs, jen.Id(constName).Id(name).Op("=").Lit(v.Name))
	}
	if len(defs) > 0 {
		f.Const().Defs(defs...)
	}

	// The value set keeps deprecated values: servers may still send them.
	setName, err := g.names.packageIdent("values of "+t.Name, lowerFirst(name)+"Values")
	if err != nil {
		return err
	}
	dict := jen.Dict{}
	for _, v := range t.EnumValues {
		dict[jen.Lit(v.Name)] = jen.Values()
	}
	f.Var().Id(setName).Op("=").Map(jen.String()).Struct().Values(dict)

	f.Func().Params(jen.Id("v").Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("b").Index().Byte()).Error().Block(
		jen.Var().Id("s").String(),
		jen.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("s")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
		jen.If(
			jen.List(jen.Id("_"), jen.Id("ok")).Op(":=").Id(setName).Index(jen.Id("s")),
			jen.Op("!").Id("ok"),
		).Block(jen.Return(jen.Op("&").Qual(runtimePkg, "UnknownEnumValueError").Values(jen.Dict{
			jen.Id("Enum"):  jen.Lit(t.Name),
			jen.Id("Value"): jen.Id("s"),
		}))),
		jen.Op("*").Id("v").Op("=").Id(name).Call(jen.Id("s")),
		jen.Return(jen.Nil()),
	)
	return nil
}

func (g *generator) objectModel(f *jen.File, t *schema.Type) error {
	name, err := g.names.typeName(t.Name)
	if err != nil {
		return err
	}

	type checked struct {
		field string
		ref   *schema.TypeRef
	}
	var members []jen.Code
	var checks []checked
	for _, fd := range g.fields(t) {
		goName, err := g.names.memberName(name, fd.Name)
		if err != nil {
			return err
		}
		typ, err := g.mapper.goType(fd.Type)
		if err != nil {
			return err
		}
		tag := fd.Name
		if !fd.Type.NonNull {
			tag += ",omitempty"
		}
		members = append(members, jen.Id(goName).Add(typ).Tag(map[string]string{"json": tag}))
		if needsCheck(fd.Type) {
			checks = append(checks, checked{fd.Name, fd.Type})
		}
	}
	comment(f, t.Desc)
	f.Type().Id(name).Struct(members...)

	for _, it := range t.Interfaces {
		iname, err := g.names.typeName(it.Name)
		if err != nil {
			return err
		}
		marker, err := g.names.claim("members of "+name, t.Name+" implements "+it.Name, "Is"+iname)
		if err != nil {
			return err
		}
		f.Func().Params(jen.Op("*").Id(name)).Id(marker).Params().Block()
	}

	if len(checks) == 0 {
		return nil
	}
	stmts := []jen.Code{
		jen.Var().Id("raw").Map(jen.String()).Qual("encoding/json", "RawMessage"),
		jen.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("raw")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
	}
	for _, c := range checks {
		stmts = append(stmts, jen.If(
			jen.Err().Op(":=").Qual(runtimePkg, "CheckField").Call(
				jen.Lit(t.Name), jen.Lit(c.field), shapeLit(c.ref), jen.Id("raw").Index(jen.Lit(c.field)),
			),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())))
	}
	stmts = append(stmts,
		jen.Type().Id("plain").Id(name),
		jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(
			jen.Id("b"), jen.Parens(jen.Op("*").Id("plain")).Call(jen.Id("v")),
		)),
	)
	f.Func().Params(jen.Id("v").Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("b").Index().Byte()).Error().Block(stmts...)
	return nil
}

func (g *generator) inputModel(f *jen.File, t *schema.Type) error {
	name, err := g.names.typeName(t.Name)
	if err != nil {
		return err
	}
	var members []jen.Code
	for _, in := range t.Inputs {
		goName, err := g.names.memberName(name, in.Name)
		if err != nil {
			return err
		}
		typ, err := g.mapper.goType(in.Type)
		if err != nil {
			return err
		}
		tag := in.Name
		if !in.Type.NonNull {
			tag += ",omitempty"
		}
		members = append(members, jen.Id(goName).Add(typ).Tag(map[string]string{"json": tag}))
	}
	comment(f, t.Desc)
	f.Type().Id(name).Struct(members...)
	return nil
}

// variantModel emits the discriminated wrapper shared by interfaces and
// unions: a struct carrying __typename and a Value restricted to the
// closed set of possible types through a marker interface.
func (g *generator) variantModel(f *jen.File, t *schema.Type) error {
	name, err := g.names.typeName(t.Name)
	if err != nil {
		return err
	}
	valueName, err := g.names.packageIdent(t.Name+" value interface", name+"Value")
	if err != nil {
		return err
	}
	marker := "Is" + name

	comment(f, t.Desc)
	f.Type().Id(name).Struct(
		jen.Id("TypeName").String().Tag(map[string]string{"json": "__typename"}),
		jen.Id("Value").Id(valueName).Tag(map[string]string{"json": "-"}),
	)
	f.Type().Id(valueName).Interface(jen.Id(marker).Params())

	// Objects implementing an interface declare the marker next to their
	// struct; union members get theirs here.
	if t.Kind == schema.Union {
		for _, mt := range t.Possible {
			mname, err := g.names.typeName(mt.Name)
			if err != nil {
				return err
			}
			if _, err := g.names.claim("members of "+mname, mt.Name+" in union "+t.Name, marker); err != nil {
				return err
			}
			f.Func().Params(jen.Op("*").Id(mname)).Id(marker).Params().Block()
		}
	}

	var cases []jen.Code
	for _, mt := range t.Possible {
		mname, err := g.names.typeName(mt.Name)
		if err != nil {
			return err
		}
		cases = append(cases, jen.Case(jen.Lit(mt.Name)).Block(
			jen.Id("u").Dot("Value").Op("=").New(jen.Id(mname)),
		))
	}
	cases = append(cases,
		jen.Case(jen.Lit("")).Block(
			jen.Return(jen.Op("&").Qual(runtimePkg, "RequiredFieldMissingError").Values(jen.Dict{
				jen.Id("Type"): jen.Lit(t.Name),
				jen.Id("Path"): jen.Lit("__typename"),
			})),
		),
		jen.Default().Block(
			jen.Return(jen.Op("&").Qual(runtimePkg, "UnknownTypeNameError").Values(jen.Dict{
				jen.Id("Type"):     jen.Lit(t.Name),
				jen.Id("TypeName"): jen.Id("head").Dot("TypeName"),
				jen.Id("Possible"): jen.Index().String().ValuesFunc(func(vg *jen.Group) {
					for _, mt := range t.Possible {
						vg.Lit(mt.Name)
					}
				}),
			})),
		),
	)

	f.Func().Params(jen.Id("u").Op("*").Id(name)).Id("UnmarshalJSON").Params(jen.Id("b").Index().Byte()).Error().Block(
		jen.Var().Id("head").Struct(jen.Id("TypeName").String().Tag(map[string]string{"json": "__typename"})),
		jen.If(
			jen.Err().Op(":=").Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Op("&").Id("head")),
			jen.Err().Op("!=").Nil(),
		).Block(jen.Return(jen.Err())),
		jen.Switch(jen.Id("head").Dot("TypeName")).Block(cases...),
		jen.Id("u").Dot("TypeName").Op("=").Id("head").Dot("TypeName"),
		jen.Return(jen.Qual("encoding/json", "Unmarshal").Call(jen.Id("b"), jen.Id("u").Dot("Value"))),
	)
	return nil
}

func commentLines(desc string) []string {
	if desc == "" {
		return nil
	}
	return strings.Split(desc, "\n")
}
