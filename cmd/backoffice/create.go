package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/renderers/tui"
	"github.com/syms-residuos/backoffice/pkg/tableform"
)

// maxAttempts bounds how often an invalid entry is prompted again.
const maxAttempts = 3

type creator func(ctx context.Context, values model.Values) actions.ActionResult

func creators(a *actions.Actions) map[string]creator {
	return map[string]creator{
		forms.Empresa:       a.CreateEmpresa,
		forms.Transportista: a.CreateTransportista,
	}
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "create <empresa|transportista>",
		Short:     "Create an entry interactively using its form",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{forms.Empresa, forms.Transportista},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer func() { _ = logger.Sync() }()

			a, err := bootstrap(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			formID := strings.ToLower(strings.TrimSpace(args[0]))
			create, ok := creators(a.actions)[formID]
			if !ok {
				return fmt.Errorf("unknown entity %q", args[0])
			}
			prompts := tui.New(tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())))
			return createInteractive(cmd.Context(), cmd.OutOrStdout(), a.forms, prompts, formID, create)
		},
	}
}

// collector prompts for the values of a form.
type collector interface {
	Collect(ctx context.Context, form model.FormSpec, initial model.Values, errs map[string][]string) (model.Values, error)
}

// createInteractive prompts for the form, re-prompting with the field errors
// while the entry is invalid, and submits it once valid.
func createInteractive(ctx context.Context, out io.Writer, o *orchestrator.Orchestrator, prompts collector, formID string, create creator) error {
	form, err := o.Form(ctx, orchestrator.Request{
		FormID: formID,
		Submit: func(ctx context.Context, values model.Values) (bool, error) {
			res := create(ctx, values)
			if res.OK() {
				return true, nil
			}
			return false, tableform.Reject(*res.Error)
		},
		Options: []tableform.Option{tableform.WithMessages(forms.Messages(formID, false))},
	})
	if err != nil {
		return err
	}

	var state tableform.State
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		values, err := prompts.Collect(ctx, form.Spec(), state.Values, state.Errors)
		if err != nil {
			return err
		}
		result := form.Submit(ctx, values)
		switch result.Status {
		case tableform.StatusSucceeded:
			fmt.Fprintln(out, result.Notification.Message)
			return nil
		case tableform.StatusFailed:
			return errors.New(result.Notification.Message)
		}
		state = result.State()
	}
	return fmt.Errorf("%s: too many invalid attempts", formID)
}
