package main

import (
	"context"
	"fmt"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/config"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/metrics"
	"github.com/syms-residuos/backoffice/internal/revalidate"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/tableform"
)

// app holds the process-wide collaborators shared by the commands.
type app struct {
	cfg     *config.Configuration
	logger  *logging.Logger
	metrics *metrics.Metrics
	store   *store.Store
	cache   *revalidate.Cache
	redis   *revalidate.Redis
	actions *actions.Actions
	forms   *orchestrator.Orchestrator
}

func loadConfig() (*config.Configuration, error) {
	files := envFiles
	if len(files) == 0 {
		files = config.DefaultEnvFiles
	}
	return config.Load(files...)
}

func newLogger(cfg *config.Configuration) *logging.Logger {
	return logging.New(&logging.Config{
		Level:        logging.LevelFromString(cfg.Log.Level),
		Development:  cfg.Log.Development,
		EnableCaller: true,
	})
}

// bootstrap opens the database and cache and wires actions and forms.
func bootstrap(ctx context.Context, cfg *config.Configuration, logger *logging.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger, metrics: metrics.New()}

	db, err := store.Open(ctx, cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		return nil, err
	}
	a.store = store.New(db)

	if cfg.Database.MigrateOnStart {
		if err := runMigrations(ctx, a.store, logger); err != nil {
			a.close()
			return nil, err
		}
	}

	var backend revalidate.Backend
	if cfg.Cache.Backend == config.CacheRedis {
		a.redis, err = revalidate.DialRedis(ctx, cfg.Cache.RedisURL)
		if err != nil {
			a.close()
			return nil, err
		}
		backend = a.redis
	}
	a.cache = revalidate.New(backend,
		revalidate.WithTTL(cfg.Cache.ListingTTL),
		revalidate.WithLogger(logger.Named("revalidate")),
		revalidate.WithObserver(a.metrics),
	)

	a.actions = actions.New(actions.FromStore(a.store, a.cache), actions.WithLogger(logger.Named("actions")))

	specs, err := forms.Load(cfg.FormSpecDir)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("load forms: %w", err)
	}
	a.forms = orchestrator.New(
		orchestrator.WithForms(specs),
		orchestrator.WithSources(forms.Sources(a.actions)),
		orchestrator.WithFormOptions(
			tableform.WithLogger(logger.Named("forms").Zap()),
			tableform.WithObserver(a.metrics.ObserveSubmission),
		),
	)
	return a, nil
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("close redis", logging.Error(err))
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("close database", logging.Error(err))
		}
	}
}

func runMigrations(ctx context.Context, s *store.Store, logger *logging.Logger) error {
	reports, err := store.Migrate(ctx, s.DB().DB)
	if err != nil {
		return err
	}
	for _, report := range reports {
		logger.Info("migration applied",
			logging.Int64("version", report.Version),
			logging.String("path", report.Path),
			logging.Bool("empty", report.Empty),
		)
	}
	if len(reports) == 0 {
		logger.Info("database is up to date")
	}
	return nil
}
