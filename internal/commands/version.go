package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mathsolpro/graphql2go/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Info())
		},
	}
}
