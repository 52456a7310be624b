package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/mathsolpro/graphql2go/gen"
	"github.com/mathsolpro/graphql2go/internal/config"
	"github.com/mathsolpro/graphql2go/internal/prompts"
	"github.com/mathsolpro/graphql2go/introspection"
	"github.com/mathsolpro/graphql2go/schema"
)

type generateOptions struct {
	configPath        string
	schemas           []string
	outDir            string
	pkg               string
	models            string
	builders          string
	scalars           []string
	reservedSuffix    string
	includeDeprecated bool
	quiet             bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate Go models and query builders",
		Long: `Generate two Go source files from a GraphQL schema: data models with
response validation, and chainable query builders. Sources ending in
.json are treated as introspection dumps, everything else as SDL.`,
		Example: `  # Using graphql2go.yaml
  graphql2go generate

  # Ad hoc
  graphql2go generate -s schema.graphql -o ./api --package api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Configuration file (default "+config.DefaultFileName+" if present)")
	cmd.Flags().StringSliceVarP(&opts.schemas, "schema", "s", nil, "Schema source file, repeatable (SDL or introspection JSON)")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "", "Package name of the generated files")
	cmd.Flags().StringVar(&opts.models, "models", "", "File name of the data model artifact")
	cmd.Flags().StringVar(&opts.builders, "builders", "", "File name of the query builder artifact")
	cmd.Flags().StringSliceVar(&opts.scalars, "scalar", nil, "Custom scalar mapping NAME=GOTYPE, repeatable")
	cmd.Flags().StringVar(&opts.reservedSuffix, "reserved-suffix", "", "Suffix for names clashing with reserved words")
	cmd.Flags().BoolVar(&opts.includeDeprecated, "include-deprecated", false, "Generate deprecated fields and enum values")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress the completion summary")

	return cmd
}

func runGenerate(opts *generateOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	s, err := loadSchema(cfg.Schema)
	if err != nil {
		return err
	}

	artifacts, err := gen.Generate(s, gen.Options{
		Package:           cfg.Output.Package,
		Scalars:           cfg.Scalars,
		ReservedSuffix:    cfg.ReservedSuffix,
		IncludeDeprecated: cfg.IncludeDeprecated,
	})
	if err != nil {
		return err
	}

	// Both artifacts rendered before anything touches the disk, so a
	// generation error never leaves a half-written output directory.
	if err := os.MkdirAll(cfg.Output.Dir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	modelsPath := filepath.Join(cfg.Output.Dir, cfg.Output.Models)
	buildersPath := filepath.Join(cfg.Output.Dir, cfg.Output.Builders)
	if err := os.WriteFile(modelsPath, artifacts.Models, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", modelsPath, err)
	}
	if err := os.WriteFile(buildersPath, artifacts.Builders, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", buildersPath, err)
	}

	if !opts.quiet {
		prompts.PrintResult([]prompts.ResultField{
			{Label: "Models", Value: modelsPath},
			{Label: "Builders", Value: buildersPath},
		}, "Generation completed")
	}
	return nil
}

// resolveConfig loads the configuration file, then lets flags override it.
func resolveConfig(opts *generateOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		cfg, err = config.Load(config.DefaultFileName)
		if os.IsNotExist(err) {
			cfg = config.Default()
		} else if err != nil {
			return nil, err
		}
	}

	if len(opts.schemas) > 0 {
		cfg.Schema = opts.schemas
	}
	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.pkg != "" {
		cfg.Output.Package = opts.pkg
	}
	if opts.models != "" {
		cfg.Output.Models = opts.models
	}
	if opts.builders != "" {
		cfg.Output.Builders = opts.builders
	}
	if opts.reservedSuffix != "" {
		cfg.ReservedSuffix = opts.reservedSuffix
	}
	if opts.includeDeprecated {
		cfg.IncludeDeprecated = true
	}
	for _, mapping := range opts.scalars {
		name, goType, ok := strings.Cut(mapping, "=")
		if !ok || name == "" || goType == "" {
			return nil, fmt.Errorf("invalid scalar mapping %q (want NAME=GOTYPE)", mapping)
		}
		if cfg.Scalars == nil {
			cfg.Scalars = make(map[string]string)
		}
		cfg.Scalars[name] = goType
	}
	return cfg, nil
}

// loadSchema reads every source file, converts introspection dumps to SDL,
// parses them, and builds one semantic schema from all documents.
func loadSchema(sources []string) (*schema.Schema, error) {
	docs := make([]*ast.SchemaDocument, 0, len(sources))
	for _, src := range sources {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		text := string(data)
		if strings.EqualFold(filepath.Ext(src), ".json") {
			dump, err := introspection.Load(data)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", src, err)
			}
			text = dump.SDL()
		}
		doc, err := parser.ParseSchema(&ast.Source{Name: src, Input: text})
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", src, err)
		}
		docs = append(docs, doc)
	}
	return schema.Build(docs...)
}
