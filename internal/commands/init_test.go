package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathsolpro/graphql2go/internal/config"
)

func TestInitCommand_NonInteractive(t *testing.T) {
	chdir(t, t.TempDir())

	err := runCommand(t, "init", "--non-interactive",
		"-s", "api/schema.graphql", "-o", "./client", "-p", "client", "--include-deprecated")
	require.NoError(t, err)

	cfg, err := config.Load(config.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, config.CurrentVersion, cfg.Version)
	assert.Equal(t, []string{"api/schema.graphql"}, cfg.Schema)
	assert.Equal(t, "./client", cfg.Output.Dir)
	assert.Equal(t, "client", cfg.Output.Package)
	assert.True(t, cfg.IncludeDeprecated)
}

func TestInitCommand_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	err := runCommand(t, "init", "--non-interactive")
	require.NoError(t, err)

	cfg, err := config.Load(config.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, []string{"schema.graphql"}, cfg.Schema)
	assert.Equal(t, "./generated", cfg.Output.Dir)
	assert.Equal(t, "api", cfg.Output.Package)
	assert.NoError(t, cfg.Validate())
}

func TestInitCommand_ExistingConfig(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, runCommand(t, "init", "--non-interactive"))

	err := runCommand(t, "init", "--non-interactive")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	err = runCommand(t, "init", "--non-interactive", "-s", "other.graphql", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(config.DefaultFileName)
	require.NoError(t, err)
	assert.Equal(t, []string{"other.graphql"}, cfg.Schema)
}
