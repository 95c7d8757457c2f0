package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/server"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
)

func newOpenAPICmd() *cobra.Command {
	var (
		formsDir string
		output   string
	)
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document of the JSON actions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			specs, err := forms.Load(formsDir)
			if err != nil {
				return err
			}
			doc, err := server.OpenAPI(cmd.Context(), orchestrator.New(orchestrator.WithForms(specs)))
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			data = append(data, '\n')
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "OpenAPI document written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVar(&formsDir, "forms", "", "directory with form definitions overriding the embedded ones")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
