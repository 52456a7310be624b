package introspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/mathsolpro/graphql2go/schema"
)

func TestLoad(t *testing.T) {
	inner := `{
		"queryType": {"name": "Query"},
		"types": [{"kind": "OBJECT", "name": "Query", "fields": []}]
	}`

	tests := []struct {
		name string
		data string
	}{
		{"response envelope", `{"data": {"__schema": ` + inner + `}}`},
		{"data object", `{"__schema": ` + inner + `}`},
		{"bare schema", inner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load([]byte(tt.data))
			require.NoError(t, err)
			require.NotNil(t, s.QueryType)
			assert.Equal(t, "Query", *s.QueryType.Name)
			require.Len(t, s.Types, 1)
			assert.Equal(t, TypeKindObject, s.Types[0].Kind)
		})
	}
}

func TestLoad_NoSchema(t *testing.T) {
	_, err := Load([]byte(`{"message": "not an introspection result"}`))
	require.EqualError(t, err, "introspection: no __schema object found")
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := Load([]byte(`{"data": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "introspection:")
}

const dumpJSON = `{
  "data": {
    "__schema": {
      "queryType": {"name": "Query"},
      "mutationType": null,
      "types": [
        {
          "kind": "OBJECT",
          "name": "Query",
          "fields": [
            {
              "name": "human",
              "args": [
                {"name": "id", "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "ID"}}}
              ],
              "type": {"kind": "OBJECT", "name": "Human"},
              "isDeprecated": false
            }
          ]
        },
        {
          "kind": "OBJECT",
          "name": "Human",
          "fields": [
            {"name": "id", "args": [], "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "ID"}}, "isDeprecated": false},
            {"name": "name", "args": [], "type": {"kind": "NON_NULL", "ofType": {"kind": "SCALAR", "name": "String"}}, "isDeprecated": false}
          ]
        },
        {"kind": "SCALAR", "name": "ID"},
        {"kind": "SCALAR", "name": "String"},
        {"kind": "OBJECT", "name": "__Schema", "fields": []}
      ]
    }
  }
}`

// A dumped endpoint schema must feed the same pipeline as an SDL file:
// decode, render, parse, link.
func TestLoad_RoundTrip(t *testing.T) {
	loaded, err := Load([]byte(dumpJSON))
	require.NoError(t, err)

	sdl := loaded.SDL()
	assert.Equal(t, `type Query {
  human(id: ID!): Human
}

type Human {
  id: ID!
  name: String!
}
`, sdl)

	doc, err := parser.ParseSchema(&ast.Source{Name: "introspection", Input: sdl})
	require.NoError(t, err)
	built, err := schema.Build(doc)
	require.NoError(t, err)

	human := built.Lookup("Human")
	require.NotNil(t, human)
	assert.Equal(t, schema.Object, human.Kind)
	assert.Equal(t, "ID!", human.Fields[0].Type.String())
}
