package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFiles []string

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backoffice",
		Short: "Residuos back-office: empresas, transportistas and their catalogs",
		Long: `Back-office for the waste-management platform.

Serves the configuration pages and JSON actions for empresas and
transportistas, applies database migrations and creates entries
interactively from the terminal.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files to load before reading the environment (default .env, .env.local)")

	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newCreateCmd(), newOpenAPICmd())
	return cmd
}

func execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
