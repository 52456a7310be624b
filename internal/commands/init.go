package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mathsolpro/graphql2go/internal/config"
	"github.com/mathsolpro/graphql2go/internal/prompts"
)

type initOptions struct {
	schemaPath        string
	outDir            string
	pkg               string
	includeDeprecated bool
	nonInteractive    bool
	force             bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a graphql2go.yaml configuration",
		Long: `Create a graphql2go.yaml in the current directory. Runs an interactive
form unless --non-interactive is given.`,
		Example: `  # Interactive mode
  graphql2go init

  # Non-interactive
  graphql2go init -s schema.graphql --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.schemaPath, "schema", "s", "schema.graphql", "Schema source file")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "./generated", "Output directory")
	cmd.Flags().StringVarP(&opts.pkg, "package", "p", "api", "Package name of the generated files")
	cmd.Flags().BoolVar(&opts.includeDeprecated, "include-deprecated", false, "Generate deprecated fields and enum values")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing configuration")

	return cmd
}

func runInit(opts *initOptions) error {
	if _, err := os.Stat(config.DefaultFileName); err == nil && !opts.force {
		return errors.New(config.DefaultFileName + " already exists (use --force to overwrite)")
	}

	if !opts.nonInteractive {
		if err := prompts.RunInitForm(&opts.schemaPath, &opts.outDir, &opts.pkg, &opts.includeDeprecated); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Schema = []string{opts.schemaPath}
	cfg.Output.Dir = opts.outDir
	cfg.Output.Package = opts.pkg
	cfg.IncludeDeprecated = opts.includeDeprecated
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(config.DefaultFileName); err != nil {
		return fmt.Errorf("config file couldn't be saved: %w", err)
	}

	prompts.PrintResult([]prompts.ResultField{
		{Label: "Config", Value: config.DefaultFileName},
		{Label: "Schema", Value: opts.schemaPath},
		{Label: "Output", Value: opts.outDir},
	}, `Run "graphql2go generate" to produce the artifacts`)
	return nil
}
