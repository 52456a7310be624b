// Package gen emits Go source from a linked schema: a data-model file with
// validated record types, and a builders file with descriptor tables and
// typed operation builders. Both artifacts share one name resolution and
// one scalar mapping, and both are deterministic: declarations follow the
// schema's declaration order, so regeneration from an unchanged schema is
// byte-identical.
package gen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/mathsolpro/graphql2go/schema"
)

const header = "Code generated by graphql2go. DO NOT EDIT."

// Options configure generation.
type Options struct {
	// Package is the package name of both generated files. Defaults to
	// "api".
	Package string

	// Scalars maps custom scalar names to Go types, either bare
	// ("string") or package-qualified ("time.Time"). Unmapped scalars
	// become opaque named string types.
	Scalars map[string]string

	// ReservedSuffix is appended when a schema name would collide with a
	// Go keyword or a reserved builder method. Defaults to "_".
	ReservedSuffix string

	// IncludeDeprecated emits deprecated fields and enum values instead
	// of dropping them.
	IncludeDeprecated bool
}

// Artifacts holds the rendered output files.
type Artifacts struct {
	Models   []byte
	Builders []byte
}

type generator struct {
	schema *schema.Schema
	opts   Options
	names  *resolver
	mapper *mapper
}

// Generate emits both artifacts for a schema.
func Generate(s *schema.Schema, opts Options) (*Artifacts, error) {
	if opts.Package == "" {
		opts.Package = "api"
	}
	names := newResolver(opts.ReservedSuffix)
	g := &generator{
		schema: s,
		opts:   opts,
		names:  names,
		mapper: newMapper(s, names, opts.Scalars),
	}

	models, err := g.models()
	if err != nil {
		return nil, err
	}
	builders, err := g.builders()
	if err != nil {
		return nil, err
	}

	out := new(Artifacts)
	if out.Models, err = render(models); err != nil {
		return nil, err
	}
	if out.Builders, err = render(builders); err != nil {
		return nil, err
	}
	return out, nil
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, fmt.Errorf("gen: %v", err)
	}
	return buf.Bytes(), nil
}

func newFile(pkg string) *jen.File {
	f := jen.NewFile(pkg)
	f.HeaderComment(header)
	return f
}

// comment emits a description as a comment block ahead of the next
// declaration.
func comment(f *jen.File, desc string) {
	if desc == "" {
		return
	}
	for _, line := range strings.Split(desc, "\n") {
		f.Comment(line)
	}
}

// fields returns the type's fields with deprecated ones filtered out
// unless they are requested.
func (g *generator) fields(t *schema.Type) []*schema.Field {
	if g.opts.IncludeDeprecated {
		return t.Fields
	}
	var out []*schema.Field
	for _, f := range t.Fields {
		if f.Deprecated {
			continue
		}
		out = append(out, f)
	}
	return out
}
