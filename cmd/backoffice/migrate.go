package main

import (
	"github.com/spf13/cobra"

	"github.com/syms-residuos/backoffice/internal/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer func() { _ = logger.Sync() }()

			db, err := store.Open(cmd.Context(), cfg.Database.URL, cfg.Database.MaxOpenConns)
			if err != nil {
				return err
			}
			s := store.New(db)
			defer s.Close()
			return runMigrations(cmd.Context(), s, logger)
		},
	}
}
