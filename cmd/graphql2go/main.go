// Package main is the entry point for the graphql2go CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mathsolpro/graphql2go/cmd/graphql2go/internal"
)

func main() {
	if err := internal.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
