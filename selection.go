package graphql2go

import (
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
)

// FieldTable maps field names of one composite type to their descriptors.
// Tables are emitted by the generator; hand-written tables work the same
// way.
type FieldTable map[string]FieldSpec

// FieldSpec describes one selectable field.
type FieldSpec struct {
	Type string // named result type, with list and non-null wrappers removed
	Leaf bool   // scalar or enum result: sub-selections are rejected
	Args map[string]ArgSpec
}

// TypeDesc describes one composite type of the schema. Possible is set for
// interfaces and unions and lists the concrete object types a selection may
// narrow to with On.
type TypeDesc struct {
	Name     string
	Fields   FieldTable
	Possible []string
}

// suggestField returns the known field name closest to name, or "" when
// nothing is close enough to be a plausible typo.
func suggestField(name string, table FieldTable) string {
	names := make([]string, 0, len(table))
	for n := range table {
		names = append(names, n)
	}
	sort.Strings(names)
	best, bestDist := "", 4
	for _, n := range names {
		if d := levenshtein.ComputeDistance(name, n); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

type pendingArg struct {
	name  string
	value any
}

type selectConfig struct {
	alias    string
	typename bool
	args     []pendingArg
	nested   *SelectionBuilder
}

// SelectOption configures a single Select call.
type SelectOption func(*selectConfig)

// WithAlias sets the response alias for the selected field.
func WithAlias(alias string) SelectOption {
	return func(cfg *selectConfig) { cfg.alias = alias }
}

// WithArg binds a literal argument value. The value is validated against
// the argument's declared type and encoded with EncodeValue. A *Variable
// value binds a variable reference instead.
func WithArg(name string, value any) SelectOption {
	return func(cfg *selectConfig) { cfg.args = append(cfg.args, pendingArg{name, value}) }
}

// WithVar binds a variable reference as an argument value. The variable is
// declared by the operation the selection ends up in; its value is supplied
// with OperationBuilder.Var.
func WithVar(name string, v *Variable) SelectOption {
	return func(cfg *selectConfig) { cfg.args = append(cfg.args, pendingArg{name, v}) }
}

// WithTypename adds __typename as the first entry of the field's
// sub-selection.
func WithTypename() SelectOption {
	return func(cfg *selectConfig) { cfg.typename = true }
}

// WithSelection attaches the sub-selection for a field with a composite
// result type. The nested builder must have been built for that type.
func WithSelection(nested *SelectionBuilder) SelectOption {
	return func(cfg *selectConfig) { cfg.nested = nested }
}

// SelectionBuilder accumulates a validated selection set for one composite
// type. Every method keeps the first error it hits and turns the rest of
// the chain into a no-op, so a chain can be written straight through and
// checked once with Err or Render.
type SelectionBuilder struct {
	desc    *TypeDesc
	entries []any
	err     error
}

// NewSelection returns an empty selection over the type desc describes.
func NewSelection(desc *TypeDesc) *SelectionBuilder {
	return &SelectionBuilder{desc: desc}
}

// Type returns the name of the type the selection is built for.
func (b *SelectionBuilder) Type() string { return b.desc.Name }

// Err returns the first error recorded by the chain, if any.
func (b *SelectionBuilder) Err() error { return b.err }

// Len returns the number of entries selected so far.
func (b *SelectionBuilder) Len() int { return len(b.entries) }

func (b *SelectionBuilder) fail(err error) *SelectionBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// SelectTypename adds the __typename meta field at the current position.
func (b *SelectionBuilder) SelectTypename() *SelectionBuilder {
	if b.err != nil {
		return b
	}
	b.entries = append(b.entries, "__typename")
	return b
}

// Select adds the named field to the selection. Fields keep the order they
// were selected in. Unknown names, unknown or ill-typed arguments, and
// sub-selection misuse are recorded as the builder's error.
func (b *SelectionBuilder) Select(name string, opts ...SelectOption) *SelectionBuilder {
	if b.err != nil {
		return b
	}
	spec, ok := b.desc.Fields[name]
	if !ok {
		return b.fail(&UnknownFieldError{
			Type:       b.desc.Name,
			Field:      name,
			Suggestion: suggestField(name, b.desc.Fields),
		})
	}

	var cfg selectConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	args, err := b.buildArgs(name, spec, cfg.args)
	if err != nil {
		return b.fail(err)
	}

	field := &Field{Name: name, Alias: cfg.alias, Arguments: args, Typename: cfg.typename}
	if spec.Leaf {
		if cfg.nested != nil || cfg.typename {
			return b.fail(fmt.Errorf("graphql2go: field %s.%s is a leaf and cannot have a sub-selection", b.desc.Name, name))
		}
	} else {
		if cfg.nested == nil {
			return b.fail(fmt.Errorf("graphql2go: field %s.%s requires a sub-selection", b.desc.Name, name))
		}
		if cfg.nested.err != nil {
			return b.fail(cfg.nested.err)
		}
		if cfg.nested.desc.Name != spec.Type {
			return b.fail(fmt.Errorf("graphql2go: selection built for %s cannot be used for field %s.%s of type %s",
				cfg.nested.desc.Name, b.desc.Name, name, spec.Type))
		}
		if cfg.nested.Len() == 0 && !cfg.typename {
			return b.fail(fmt.Errorf("graphql2go: empty sub-selection for field %s.%s", b.desc.Name, name))
		}
		field.Selection = cfg.nested.entries
	}

	b.entries = append(b.entries, field)
	return b
}

func (b *SelectionBuilder) buildArgs(field string, spec FieldSpec, pending []pendingArg) ([]*Argument, error) {
	if len(pending) == 0 {
		return nil, nil
	}
	args := make([]*Argument, 0, len(pending))
	for _, p := range pending {
		as, ok := spec.Args[p.name]
		if !ok {
			return nil, &ArgumentTypeError{Field: field, Argument: p.name, Reason: "not an argument of this field"}
		}
		if v, isVar := p.value.(*Variable); isVar {
			if err := checkVariable(field, p.name, as, v); err != nil {
				return nil, err
			}
			args = append(args, &Argument{Name: p.name, Value: v})
			continue
		}
		if err := checkValue(field, p.name, as, p.value); err != nil {
			return nil, err
		}
		lit, err := EncodeValue(p.value)
		if err != nil {
			return nil, err
		}
		args = append(args, &Argument{Name: p.name, Value: lit})
	}
	return args, nil
}

// On adds an inline fragment narrowing an interface or union selection to
// one of its possible concrete types.
func (b *SelectionBuilder) On(typeName string, nested *SelectionBuilder) *SelectionBuilder {
	if b.err != nil {
		return b
	}
	if b.desc.Possible == nil {
		return b.fail(fmt.Errorf("graphql2go: type %s is not an interface or union", b.desc.Name))
	}
	known := false
	for _, p := range b.desc.Possible {
		if p == typeName {
			known = true
			break
		}
	}
	if !known {
		return b.fail(&UnknownTypeNameError{Type: b.desc.Name, TypeName: typeName, Possible: b.desc.Possible})
	}
	if nested == nil || nested.Len() == 0 {
		return b.fail(fmt.Errorf("graphql2go: empty selection for fragment on %s", typeName))
	}
	if nested.err != nil {
		return b.fail(nested.err)
	}
	if nested.desc.Name != typeName {
		return b.fail(fmt.Errorf("graphql2go: selection built for %s cannot be used in a fragment on %s",
			nested.desc.Name, typeName))
	}
	b.entries = append(b.entries, &InlineFragment{On: typeName, Selection: nested.entries})
	return b
}

// Render renders the selection as a shorthand document:
//
//	{
//	  id
//	  name
//	}
func (b *SelectionBuilder) Render() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	if len(b.entries) == 0 {
		return "", fmt.Errorf("graphql2go: empty selection on %s", b.desc.Name)
	}
	block, err := renderBlock(false, b.entries)
	if err != nil {
		return "", err
	}
	return block[1:], nil // drop the leading space of " {"
}

// OperationBuilder assembles a single-field operation: the root field, its
// arguments bound as operation variables, and the result selection. Like
// SelectionBuilder it keeps the first error and reports it from Build.
type OperationBuilder struct {
	op    *Operation
	root  *Field
	spec  FieldSpec
	vars  map[string]any
	bound map[string]bool
	err   error
}

// NewOperationBuilder starts an operation of the given type around the root
// field named field, described by spec.
func NewOperationBuilder(opType, field string, spec FieldSpec) *OperationBuilder {
	b := &OperationBuilder{
		op:    &Operation{Type: opType},
		root:  &Field{Name: field},
		spec:  spec,
		vars:  make(map[string]any),
		bound: make(map[string]bool),
	}
	switch opType {
	case OpQuery, OpMutation, OpSubscription:
	default:
		b.err = fmt.Errorf("graphql2go: unsupported operation type %q", opType)
	}
	if err := checkName(field); err != nil && b.err == nil {
		b.err = err
	}
	return b
}

func (b *OperationBuilder) fail(err error) *OperationBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Name sets the operation name.
func (b *OperationBuilder) Name(name string) *OperationBuilder {
	b.op.Name = name
	return b
}

// Alias sets the response alias of the root field.
func (b *OperationBuilder) Alias(alias string) *OperationBuilder {
	b.root.Alias = alias
	return b
}

// Err returns the first error recorded by the chain, if any.
func (b *OperationBuilder) Err() error { return b.err }

// Arg binds a value to one of the root field's arguments. The value is
// validated against the argument's declared type and carried as an
// operation variable named after the argument. Passing a *Variable binds a
// reference to an explicitly managed variable instead.
func (b *OperationBuilder) Arg(name string, value any) *OperationBuilder {
	if b.err != nil {
		return b
	}
	spec, ok := b.spec.Args[name]
	if !ok {
		return b.fail(&ArgumentTypeError{Field: b.root.Name, Argument: name, Reason: "not an argument of this field"})
	}
	if b.bound[name] {
		return b.fail(fmt.Errorf("graphql2go: argument %q already bound", name))
	}
	b.bound[name] = true

	if v, isVar := value.(*Variable); isVar {
		if err := checkVariable(b.root.Name, name, spec, v); err != nil {
			return b.fail(err)
		}
		b.root.Arguments = append(b.root.Arguments, &Argument{Name: name, Value: v})
		return b
	}
	if err := checkValue(b.root.Name, name, spec, value); err != nil {
		return b.fail(err)
	}
	v := &Variable{Name: name, Type: spec.Type}
	b.vars[name] = value
	b.root.Arguments = append(b.root.Arguments, &Argument{Name: name, Value: v})
	return b
}

// Var supplies the value for a variable referenced somewhere in the
// operation, typically by a WithVar argument on a nested field.
func (b *OperationBuilder) Var(name string, value any) *OperationBuilder {
	b.vars[name] = value
	return b
}

// Select attaches the result selection. The builder must have been built
// for the root field's result type.
func (b *OperationBuilder) Select(sel *SelectionBuilder) *OperationBuilder {
	if b.err != nil {
		return b
	}
	if b.spec.Leaf {
		return b.fail(fmt.Errorf("graphql2go: field %s is a leaf and cannot have a sub-selection", b.root.Name))
	}
	if sel.err != nil {
		return b.fail(sel.err)
	}
	if sel.desc.Name != b.spec.Type {
		return b.fail(fmt.Errorf("graphql2go: selection built for %s cannot be used for field %s of type %s",
			sel.desc.Name, b.root.Name, b.spec.Type))
	}
	if sel.Len() == 0 {
		return b.fail(fmt.Errorf("graphql2go: empty selection for field %s", b.root.Name))
	}
	b.root.Selection = sel.entries
	return b
}

// Build renders the operation and returns the document text together with
// the variable values to send alongside it.
func (b *OperationBuilder) Build() (string, map[string]any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	argNames := make([]string, 0, len(b.spec.Args))
	for name := range b.spec.Args {
		argNames = append(argNames, name)
	}
	sort.Strings(argNames)
	for _, name := range argNames {
		spec := b.spec.Args[name]
		if spec.Shape != nil && spec.Shape.NonNull && !spec.HasDefault && !b.bound[name] {
			return "", nil, &ArgumentTypeError{Field: b.root.Name, Argument: name, Want: spec.Type, Reason: "required argument not bound"}
		}
	}
	if !b.spec.Leaf && len(b.root.Selection) == 0 && !b.root.Typename {
		return "", nil, fmt.Errorf("graphql2go: field %s requires a selection", b.root.Name)
	}

	decls, err := collectVariables(b.root)
	if err != nil {
		return "", nil, err
	}
	b.op.Variables = decls
	b.op.Queries = []*Field{b.root}
	query, err := b.op.Render()
	if err != nil {
		return "", nil, err
	}

	values := make(map[string]any)
	for _, decl := range decls {
		v, ok := b.vars[decl.Name]
		if !ok {
			if decl.Default == "" && isNonNullType(decl.Type) {
				return "", nil, fmt.Errorf("graphql2go: no value bound for variable $%s", decl.Name)
			}
			continue
		}
		values[decl.Name] = v
	}
	return query, values, nil
}

func isNonNullType(typ string) bool {
	return len(typ) > 0 && typ[len(typ)-1] == '!'
}

// collectVariables walks the finished field tree and gathers every distinct
// variable reference, in order of first appearance.
func collectVariables(root *Field) ([]*Variable, error) {
	var order []*Variable
	seen := make(map[string]*Variable)

	var addVar func(v *Variable) error
	addVar = func(v *Variable) error {
		if prev, ok := seen[v.Name]; ok {
			if prev.Type != v.Type {
				return fmt.Errorf("graphql2go: variable $%s declared as both %s and %s", v.Name, prev.Type, v.Type)
			}
			return nil
		}
		seen[v.Name] = v
		order = append(order, v)
		return nil
	}

	var walkArg func(a *Argument) error
	walkArg = func(a *Argument) error {
		switch v := a.Value.(type) {
		case *Variable:
			return addVar(v)
		case *Argument:
			return walkArg(v)
		case []*Argument:
			for _, nested := range v {
				if err := walkArg(nested); err != nil {
					return err
				}
			}
		}
		return nil
	}

	var walkField func(f *Field) error
	var walkEntries func(entries []any) error
	walkEntries = func(entries []any) error {
		for _, entry := range entries {
			switch e := entry.(type) {
			case *Field:
				if err := walkField(e); err != nil {
					return err
				}
			case *InlineFragment:
				if err := walkEntries(e.Selection); err != nil {
					return err
				}
			}
		}
		return nil
	}
	walkField = func(f *Field) error {
		for _, a := range f.Arguments {
			if err := walkArg(a); err != nil {
				return err
			}
		}
		return walkEntries(f.Selection)
	}

	if err := walkField(root); err != nil {
		return nil, err
	}
	return order, nil
}
