package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Header(t *testing.T) {
	out := generate(t, testSDL, Options{})

	for _, artifact := range [][]byte{out.Models, out.Builders} {
		assert.True(t, strings.HasPrefix(string(artifact), "// Code generated by graphql2go. DO NOT EDIT."))
	}
}

func TestGenerate_PackageName(t *testing.T) {
	out := generate(t, testSDL, Options{})
	assert.Contains(t, string(out.Models), "package api\n")
	assert.Contains(t, string(out.Builders), "package api\n")

	named := generate(t, testSDL, Options{Package: "starwars"})
	assert.Contains(t, string(named.Models), "package starwars\n")
	assert.Contains(t, string(named.Builders), "package starwars\n")
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(buildSchema(t, testSDL), Options{})
	require.NoError(t, err)
	second, err := Generate(buildSchema(t, testSDL), Options{})
	require.NoError(t, err)

	assert.Equal(t, string(first.Models), string(second.Models))
	assert.Equal(t, string(first.Builders), string(second.Builders))
}

func TestGenerate_RuntimeImport(t *testing.T) {
	out := generate(t, testSDL, Options{})

	assert.Contains(t, string(out.Models), `"github.com/mathsolpro/graphql2go"`)
	assert.Contains(t, string(out.Builders), `"github.com/mathsolpro/graphql2go"`)
}
