// Package internal wires the command tree for the graphql2go binary.
package internal

import (
	"context"

	"github.com/mathsolpro/graphql2go/internal/commands"
)

// Run builds the root command and executes it. main stays a thin shim so
// the exit path can be exercised without os.Exit.
func Run(ctx context.Context) error {
	return commands.NewRootCmd().ExecuteContext(ctx)
}
