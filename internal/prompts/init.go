package prompts

import (
	"github.com/charmbracelet/huh"
)

// RunInitForm runs the interactive form for the init command.
// It fills the provided pointers with user input.
func RunInitForm(schemaPath, outDir, pkg *string, includeDeprecated *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Schema source").
				Description("Path to an SDL file or introspection JSON dump").
				Placeholder("schema.graphql").
				Validate(requiredValidator("schema source")).
				Value(schemaPath),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Placeholder("./generated").
				Validate(requiredValidator("output directory")).
				Value(outDir),
			huh.NewInput().
				Title("Package name").
				Description("Package clause of the generated files").
				Placeholder("api").
				Validate(packageNameValidator).
				Value(pkg),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("Deprecated schema members").
				Options(
					huh.NewOption("Skip deprecated fields and enum values", false),
					huh.NewOption("Generate them anyway", true),
				).
				Value(includeDeprecated),
		),
	).WithTheme(Theme()).Run()
}
