package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/server"
)

func newServeCmd() *cobra.Command {
	var templatesDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the back-office pages and JSON actions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg)
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()

			pages, err := server.NewPages(templatesDir)
			if err != nil {
				return err
			}
			srv, err := server.New(server.Deps{
				Actions: a.actions,
				Forms:   a.forms,
				Cache:   a.cache,
				Pages:   pages,
			},
				server.WithLogger(logger.Named("http")),
				server.WithMetrics(a.metrics, cfg.Metrics.Path),
			)
			if err != nil {
				return err
			}

			logger.Info("starting back-office",
				logging.String("cache", cfg.Cache.Backend),
				logging.Duration("listing_ttl", cfg.Cache.ListingTTL),
			)
			return srv.Serve(ctx, server.HTTPConfig{
				Addr:            cfg.HTTP.Addr,
				ReadTimeout:     cfg.HTTP.ReadTimeout,
				WriteTimeout:    cfg.HTTP.WriteTimeout,
				ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
			})
		},
	}
	cmd.Flags().StringVar(&templatesDir, "templates", "", "directory with page templates overriding the embedded ones")
	return cmd
}
