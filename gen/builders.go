package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/mathsolpro/graphql2go/schema"
)

// selectionMethods are promoted from the embedded runtime builder and must
// not be shadowed by generated field helpers.
var selectionMethods = []string{"SelectionBuilder", "Select", "SelectTypename", "On", "Err", "Len", "Render", "Type"}

// operationMethods are the fixed methods of every generated operation
// builder.
var operationMethods = []string{"OperationName", "Alias", "Var", "Select", "Err", "Build"}

var opConsts = map[string]string{
	"query":        "OpQuery",
	"mutation":     "OpMutation",
	"subscription": "OpSubscription",
}

type wrapperNames struct {
	wrapper string
	ctor    string
}

// builders emits the query-builder file: a descriptor table per reachable
// composite type, a selection wrapper per non-root composite, and an
// operation builder per root field. Only types reachable from the
// operation roots are emitted; data-only types stay out of this file.
func (g *generator) builders() (*jen.File, error) {
	f := newFile(g.opts.Package)
	reach := g.reachable()

	descs := make(map[string]string)
	wrappers := make(map[string]wrapperNames)
	for _, t := range g.schema.Types {
		if !reach[t.Name] {
			continue
		}
		name, err := g.names.typeName(t.Name)
		if err != nil {
			return nil, err
		}
		descs[t.Name], err = g.names.packageIdent(t.Name+" descriptor", lowerFirst(name)+"Desc")
		if err != nil {
			return nil, err
		}
		if g.schema.IsRoot(t) {
			continue
		}
		w := wrapperNames{wrapper: name + "Selection"}
		w.ctor = "New" + w.wrapper
		if w.wrapper, err = g.names.packageIdent(t.Name+" selection builder", w.wrapper); err != nil {
			return nil, err
		}
		if w.ctor, err = g.names.packageIdent(t.Name+" selection constructor", w.ctor); err != nil {
			return nil, err
		}
		wrappers[t.Name] = w
	}

	for _, t := range g.schema.Types {
		if !reach[t.Name] {
			continue
		}
		if err := g.descVar(f, t, descs[t.Name]); err != nil {
			return nil, err
		}
	}
	for _, t := range g.schema.Types {
		if !reach[t.Name] || g.schema.IsRoot(t) {
			continue
		}
		if err := g.selectionWrapper(f, t, descs[t.Name], wrappers); err != nil {
			return nil, err
		}
	}
	for _, root := range g.schema.Roots() {
		for _, fd := range g.fields(root.Type) {
			if err := g.opBuilder(f, root, fd, descs[root.Type.Name], wrappers); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

// reachable returns the composite types reachable from the operation
// roots through field result types and possible types.
func (g *generator) reachable() map[string]bool {
	seen := make(map[string]bool)
	var queue []*schema.Type
	add := func(t *schema.Type) {
		switch t.Kind {
		case schema.Object, schema.Interface, schema.Union:
		default:
			return
		}
		if seen[t.Name] {
			return
		}
		seen[t.Name] = true
		queue = append(queue, t)
	}
	for _, root := range g.schema.Roots() {
		add(root.Type)
	}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, fd := range g.fields(t) {
			add(fd.Type.Unwrap())
		}
		for _, p := range t.Possible {
			add(p)
		}
	}
	return seen
}

func (g *generator) descVar(f *jen.File, t *schema.Type, ident string) error {
	dict := jen.Dict{jen.Id("Name"): jen.Lit(t.Name)}

	if t.Kind == schema.Object || t.Kind == schema.Interface {
		fieldsDict := jen.Dict{}
		for _, fd := range g.fields(t) {
			named := fd.Type.Unwrap()
			spec := jen.Dict{jen.Id("Type"): jen.Lit(named.Name)}
			if isLeaf(named) {
				spec[jen.Id("Leaf")] = jen.True()
			}
			if len(fd.Args) > 0 {
				argsDict := jen.Dict{}
				for _, a := range fd.Args {
					argDict := jen.Dict{
						jen.Id("Type"):  jen.Lit(a.Type.String()),
						jen.Id("Shape"): shapeLit(a.Type),
					}
					if kind := argKind(a.Type.Unwrap()); kind != "KindAny" {
						argDict[jen.Id("Kind")] = jen.Qual(runtimePkg, kind)
					}
					if a.Default != "" {
						argDict[jen.Id("HasDefault")] = jen.True()
					}
					argsDict[jen.Lit(a.Name)] = jen.Values(argDict)
				}
				spec[jen.Id("Args")] = jen.Map(jen.String()).Qual(runtimePkg, "ArgSpec").Values(argsDict)
			}
			fieldsDict[jen.Lit(fd.Name)] = jen.Values(spec)
		}
		dict[jen.Id("Fields")] = jen.Qual(runtimePkg, "FieldTable").Values(fieldsDict)
	}

	if t.Kind == schema.Interface || t.Kind == schema.Union {
		dict[jen.Id("Possible")] = jen.Index().String().ValuesFunc(func(vg *jen.Group) {
			for _, mt := range t.Possible {
				vg.Lit(mt.Name)
			}
		})
	}

	f.Var().Id(ident).Op("=").Op("&").Qual(runtimePkg, "TypeDesc").Values(dict)
	return nil
}

func (g *generator) selectionWrapper(f *jen.File, t *schema.Type, descIdent string, wrappers map[string]wrapperNames) error {
	w := wrappers[t.Name]
	scope := "members of " + w.wrapper
	g.names.reserve(scope, selectionMethods...)

	f.Commentf("%s selects fields of the %s type.", w.wrapper, t.Name)
	f.Type().Id(w.wrapper).Struct(jen.Op("*").Qual(runtimePkg, "SelectionBuilder"))
	f.Func().Id(w.ctor).Params().Op("*").Id(w.wrapper).Block(
		jen.Return(jen.Op("&").Id(w.wrapper).Values(jen.Qual(runtimePkg, "NewSelection").Call(jen.Id(descIdent)))),
	)

	for _, fd := range g.fields(t) {
		// Fields with arguments are selected through Select with WithArg
		// and friends; only argument-free fields get a shorthand.
		if len(fd.Args) > 0 {
			continue
		}
		named := fd.Type.Unwrap()
		if isLeaf(named) {
			mName, err := g.names.claim(scope, t.Name+"."+fd.Name, exportedName(fd.Name))
			if err != nil {
				return err
			}
			f.Commentf("%s selects the %s field.", mName, fd.Name)
			f.Func().Params(jen.Id("s").Op("*").Id(w.wrapper)).Id(mName).Params().Op("*").Id(w.wrapper).Block(
				jen.Id("s").Dot("Select").Call(jen.Lit(fd.Name)),
				jen.Return(jen.Id("s")),
			)
			continue
		}
		nested, ok := wrappers[named.Name]
		if !ok {
			continue
		}
		mName, err := g.names.claim(scope, t.Name+"."+fd.Name, exportedName(fd.Name))
		if err != nil {
			return err
		}
		f.Commentf("%s selects into the %s field.", mName, fd.Name)
		f.Func().Params(jen.Id("s").Op("*").Id(w.wrapper)).Id(mName).
			Params(jen.Id("fn").Func().Params(jen.Op("*").Id(nested.wrapper))).Op("*").Id(w.wrapper).Block(
			jen.Id("sel").Op(":=").Id(nested.ctor).Call(),
			jen.Id("fn").Call(jen.Id("sel")),
			jen.Id("s").Dot("Select").Call(jen.Lit(fd.Name), jen.Qual(runtimePkg, "WithSelection").Call(jen.Id("sel").Dot("SelectionBuilder"))),
			jen.Return(jen.Id("s")),
		)
	}

	if t.Kind == schema.Interface || t.Kind == schema.Union {
		for _, mt := range t.Possible {
			nested, ok := wrappers[mt.Name]
			if !ok {
				continue
			}
			mname, err := g.names.typeName(mt.Name)
			if err != nil {
				return err
			}
			onName, err := g.names.claim(scope, t.Name+" on "+mt.Name, "On"+mname)
			if err != nil {
				return err
			}
			f.Commentf("%s narrows the selection to %s.", onName, mt.Name)
			f.Func().Params(jen.Id("s").Op("*").Id(w.wrapper)).Id(onName).
				Params(jen.Id("fn").Func().Params(jen.Op("*").Id(nested.wrapper))).Op("*").Id(w.wrapper).Block(
				jen.Id("sel").Op(":=").Id(nested.ctor).Call(),
				jen.Id("fn").Call(jen.Id("sel")),
				jen.Id("s").Dot("On").Call(jen.Lit(mt.Name), jen.Id("sel").Dot("SelectionBuilder")),
				jen.Return(jen.Id("s")),
			)
		}
	}
	return nil
}

func (g *generator) opBuilder(f *jen.File, root schema.Root, fd *schema.Field, descIdent string, wrappers map[string]wrapperNames) error {
	bName, err := g.names.packageIdent(root.Type.Name+"."+fd.Name+" builder", capitalize(root.Op)+exportedName(fd.Name))
	if err != nil {
		return err
	}
	ctor, err := g.names.packageIdent(root.Type.Name+"."+fd.Name+" constructor", "New"+bName)
	if err != nil {
		return err
	}
	scope := "members of " + bName
	g.names.reserve(scope, operationMethods...)

	f.Commentf("%s builds the %s %s.", bName, fd.Name, root.Op)
	f.Type().Id(bName).Struct(jen.Id("b").Op("*").Qual(runtimePkg, "OperationBuilder"))
	f.Func().Id(ctor).Params().Op("*").Id(bName).Block(
		jen.Return(jen.Op("&").Id(bName).Values(jen.Qual(runtimePkg, "NewOperationBuilder").Call(
			jen.Qual(runtimePkg, opConsts[root.Op]),
			jen.Lit(fd.Name),
			jen.Id(descIdent).Dot("Fields").Index(jen.Lit(fd.Name)),
		))),
	)

	for _, a := range fd.Args {
		mName, err := g.names.claim(scope, root.Type.Name+"."+fd.Name+"."+a.Name, exportedName(a.Name))
		if err != nil {
			return err
		}
		typ, err := g.mapper.goType(a.Type)
		if err != nil {
			return err
		}
		f.Commentf("%s binds the %s argument.", mName, a.Name)
		f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id(mName).Params(jen.Id("v").Add(typ)).Op("*").Id(bName).Block(
			jen.Id("q").Dot("b").Dot("Arg").Call(jen.Lit(a.Name), jen.Id("v")),
			jen.Return(jen.Id("q")),
		)
	}

	if named := fd.Type.Unwrap(); !isLeaf(named) {
		if w, ok := wrappers[named.Name]; ok {
			f.Comment("Select builds the result selection.")
			f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("Select").
				Params(jen.Id("fn").Func().Params(jen.Op("*").Id(w.wrapper))).Op("*").Id(bName).Block(
				jen.Id("sel").Op(":=").Id(w.ctor).Call(),
				jen.Id("fn").Call(jen.Id("sel")),
				jen.Id("q").Dot("b").Dot("Select").Call(jen.Id("sel").Dot("SelectionBuilder")),
				jen.Return(jen.Id("q")),
			)
		}
	}

	f.Comment("OperationName names the operation in the rendered document.")
	f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("OperationName").Params(jen.Id("name").String()).Op("*").Id(bName).Block(
		jen.Id("q").Dot("b").Dot("Name").Call(jen.Id("name")),
		jen.Return(jen.Id("q")),
	)
	f.Comment("Alias sets the response alias of the root field.")
	f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("Alias").Params(jen.Id("alias").String()).Op("*").Id(bName).Block(
		jen.Id("q").Dot("b").Dot("Alias").Call(jen.Id("alias")),
		jen.Return(jen.Id("q")),
	)
	f.Comment("Var supplies the value of a variable referenced in the selection.")
	f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("Var").Params(jen.Id("name").String(), jen.Id("value").Interface()).Op("*").Id(bName).Block(
		jen.Id("q").Dot("b").Dot("Var").Call(jen.Id("name"), jen.Id("value")),
		jen.Return(jen.Id("q")),
	)
	f.Comment("Err returns the first error recorded while building.")
	f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("Err").Params().Error().Block(
		jen.Return(jen.Id("q").Dot("b").Dot("Err").Call()),
	)
	f.Comment("Build renders the document and the variable values to send with it.")
	f.Func().Params(jen.Id("q").Op("*").Id(bName)).Id("Build").Params().
		Params(jen.String(), jen.Map(jen.String()).Interface(), jen.Error()).Block(
		jen.Return(jen.Id("q").Dot("b").Dot("Build").Call()),
	)
	return nil
}
