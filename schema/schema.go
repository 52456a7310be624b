// Package schema links parsed GraphQL SDL documents into a validated,
// declaration-ordered model. The model is the single source both code
// emitters consume: every reference is resolved to its declaration, roots
// are identified, and structural rules that the parser does not enforce
// (unknown names, union member kinds, interface contracts, input cycles)
// have been checked.
package schema

// Kind classifies a named type declaration.
type Kind string

const (
	Scalar      Kind = "SCALAR"
	Object      Kind = "OBJECT"
	Interface   Kind = "INTERFACE"
	Union       Kind = "UNION"
	Enum        Kind = "ENUM"
	InputObject Kind = "INPUT_OBJECT"
)

// Type is one named type of the schema. Only the slices that make sense
// for the kind are populated.
type Type struct {
	Kind    Kind
	Name    string
	Desc    string
	BuiltIn bool

	Fields     []*Field      // Object, Interface
	Interfaces []*Type       // Object: interfaces it implements
	Possible   []*Type       // Interface, Union: concrete object types
	EnumValues []*EnumValue  // Enum
	Inputs     []*InputValue // InputObject
}

// Field is an output field of an object or interface type.
type Field struct {
	Name              string
	Desc              string
	Args              []*InputValue
	Type              *TypeRef
	Deprecated        bool
	DeprecationReason string
}

// InputValue is a field argument or an input object field.
type InputValue struct {
	Name    string
	Desc    string
	Type    *TypeRef
	Default string // GraphQL literal, empty when absent
}

// EnumValue is one declared value of an enum type.
type EnumValue struct {
	Name              string
	Desc              string
	Deprecated        bool
	DeprecationReason string
}

// TypeRef is a reference to a named type together with its list and
// non-null wrappers. Exactly one of Elem and Named is set: Elem for a list
// level, Named for the innermost reference.
type TypeRef struct {
	NonNull bool
	Elem    *TypeRef
	Named   *Type
}

// Unwrap returns the named type behind all list wrappers.
func (r *TypeRef) Unwrap() *Type {
	for r.Elem != nil {
		r = r.Elem
	}
	return r.Named
}

// Depth returns the number of list wrappers.
func (r *TypeRef) Depth() int {
	n := 0
	for r.Elem != nil {
		n++
		r = r.Elem
	}
	return n
}

// String renders the reference in GraphQL notation, e.g. "[Episode!]!".
func (r *TypeRef) String() string {
	var s string
	if r.Elem != nil {
		s = "[" + r.Elem.String() + "]"
	} else {
		s = r.Named.Name
	}
	if r.NonNull {
		s += "!"
	}
	return s
}

// Root pairs an operation type with its root object type.
type Root struct {
	Op   string // "query", "mutation" or "subscription"
	Type *Type
}

// Schema is the linked model. Types holds the user's declarations in
// declaration order; built-in scalars are reachable through Lookup but are
// not listed.
type Schema struct {
	Types        []*Type
	Query        *Type
	Mutation     *Type
	Subscription *Type

	byName map[string]*Type
}

// Lookup returns the named type, or nil. Built-in scalars are included.
func (s *Schema) Lookup(name string) *Type {
	return s.byName[name]
}

// Roots returns the defined operation roots in query, mutation,
// subscription order.
func (s *Schema) Roots() []Root {
	var roots []Root
	if s.Query != nil {
		roots = append(roots, Root{Op: "query", Type: s.Query})
	}
	if s.Mutation != nil {
		roots = append(roots, Root{Op: "mutation", Type: s.Mutation})
	}
	if s.Subscription != nil {
		roots = append(roots, Root{Op: "subscription", Type: s.Subscription})
	}
	return roots
}

// IsRoot reports whether t is one of the operation root types.
func (s *Schema) IsRoot(t *Type) bool {
	return t == s.Query || t == s.Mutation || t == s.Subscription
}
