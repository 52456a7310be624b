package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/mathsolpro/graphql2go/schema"
)

func buildSchema(t *testing.T, sdl string) *schema.Schema {
	t.Helper()
	doc, err := parser.ParseSchema(&ast.Source{Name: "test.graphql", Input: sdl})
	require.NoError(t, err)
	s, err := schema.Build(doc)
	require.NoError(t, err)
	return s
}

func findField(t *testing.T, typ *schema.Type, name string) *schema.Field {
	t.Helper()
	for _, f := range typ.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no field %q on %s", name, typ.Name)
	return nil
}

const mapperSDL = `
scalar DateTime
scalar JSON

enum Color { RED GREEN }

input Filter { q: String }

interface Node { id: ID! }

type Widget implements Node {
  id: ID!
  count: Int!
  maybeCount: Int
  ratio: Float
  ok: Boolean!
  label: String
  color: Color!
  maybeColor: Color
  createdAt: DateTime!
  blob: JSON
  parts: [Widget!]!
  tags: [String!]
  grid: [[String!]]!
  grid2: [[String!]!]!
  node: Node
}

type Query {
  widget: Widget
}
`

func mapperFor(t *testing.T, scalars map[string]string) (*schema.Schema, *mapper) {
	t.Helper()
	s := buildSchema(t, mapperSDL)
	names := newResolver("")
	return s, newMapper(s, names, scalars)
}

func renderGoType(t *testing.T, m *mapper, ref *schema.TypeRef) string {
	t.Helper()
	stmt, err := m.goType(ref)
	require.NoError(t, err)
	return fmt.Sprintf("%#v", stmt)
}

func TestMapper_GoType(t *testing.T) {
	s, m := mapperFor(t, map[string]string{"DateTime": "time.Time"})
	widget := s.Lookup("Widget")

	tests := []struct {
		field string
		want  string
	}{
		{"id", "string"},
		{"count", "int32"},
		{"maybeCount", "*int32"},
		{"ratio", "*float64"},
		{"ok", "bool"},
		{"label", "*string"},
		{"color", "Color"},
		{"maybeColor", "*Color"},
		{"createdAt", "time.Time"},
		{"parts", "[]*Widget"},
		{"tags", "[]string"},
		{"grid", "[][]string"},
		{"node", "*Node"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			ref := findField(t, widget, tt.field).Type
			assert.Equal(t, tt.want, renderGoType(t, m, ref))
		})
	}
}

func TestMapper_OpaqueScalar(t *testing.T) {
	s, m := mapperFor(t, nil)
	widget := s.Lookup("Widget")

	ref := findField(t, widget, "createdAt").Type
	assert.Equal(t, "DateTime", renderGoType(t, m, ref))

	blob := findField(t, widget, "blob").Type
	assert.Equal(t, "*JSON", renderGoType(t, m, blob))
}

func TestMapper_ScalarMemoized(t *testing.T) {
	s, m := mapperFor(t, map[string]string{"DateTime": "string"})

	d1, err := m.scalar(s.Lookup("DateTime"))
	require.NoError(t, err)
	d2, err := m.scalar(s.Lookup("DateTime"))
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.False(t, d1.opaque)
	assert.Equal(t, "string", d1.ident)

	j, err := m.scalar(s.Lookup("JSON"))
	require.NoError(t, err)
	assert.True(t, j.opaque)
	assert.Equal(t, "JSON", j.ident)
}

// Same Go type, different runtime shapes: the shape literal is what keeps
// [[String!]]! and [[String!]!]! apart after mapping.
func TestMapper_ShapeDistinguishesNullability(t *testing.T) {
	s, m := mapperFor(t, nil)
	widget := s.Lookup("Widget")

	grid := findField(t, widget, "grid").Type   // [[String!]]!
	grid2 := findField(t, widget, "grid2").Type // [[String!]!]!

	assert.Equal(t, renderGoType(t, m, grid), renderGoType(t, m, grid2))

	shape1 := fmt.Sprintf("%#v", shapeLit(grid))
	shape2 := fmt.Sprintf("%#v", shapeLit(grid2))
	assert.NotEqual(t, shape1, shape2)
}

func TestNeedsCheck(t *testing.T) {
	s, _ := mapperFor(t, nil)
	widget := s.Lookup("Widget")

	assert.True(t, needsCheck(findField(t, widget, "id").Type))
	assert.True(t, needsCheck(findField(t, widget, "tags").Type)) // [String!]
	assert.False(t, needsCheck(findField(t, widget, "label").Type))
	assert.False(t, needsCheck(findField(t, widget, "ratio").Type))
}

func TestArgKind(t *testing.T) {
	s, _ := mapperFor(t, nil)

	assert.Equal(t, "KindID", argKind(s.Lookup("ID")))
	assert.Equal(t, "KindString", argKind(s.Lookup("String")))
	assert.Equal(t, "KindInt", argKind(s.Lookup("Int")))
	assert.Equal(t, "KindFloat", argKind(s.Lookup("Float")))
	assert.Equal(t, "KindBoolean", argKind(s.Lookup("Boolean")))
	assert.Equal(t, "KindEnum", argKind(s.Lookup("Color")))
	assert.Equal(t, "KindInput", argKind(s.Lookup("Filter")))
	assert.Equal(t, "KindAny", argKind(s.Lookup("DateTime")))
}

func TestIsLeaf(t *testing.T) {
	s, _ := mapperFor(t, nil)

	assert.True(t, isLeaf(s.Lookup("Color")))
	assert.True(t, isLeaf(s.Lookup("DateTime")))
	assert.False(t, isLeaf(s.Lookup("Widget")))
	assert.False(t, isLeaf(s.Lookup("Node")))
}
