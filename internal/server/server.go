// Package server exposes the back-office over HTTP: listing pages, entry
// forms, JSON actions, catalogs and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/syms-residuos/backoffice/components/catalogs"
	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/metrics"
	"github.com/syms-residuos/backoffice/internal/revalidate"
	"github.com/syms-residuos/backoffice/pkg/orchestrator"
	"github.com/syms-residuos/backoffice/pkg/render/template"
	"github.com/syms-residuos/backoffice/pkg/renderers/vanilla"
)

// Route prefixes.
const (
	APIPrefix      = "/api"
	CatalogsPrefix = APIPrefix + "/catalogs"
	AssetsPrefix   = "/assets/"
	OpenAPIPath    = APIPrefix + "/openapi.json"
)

// Deps are the collaborators the server routes to.
type Deps struct {
	Actions *actions.Actions
	Forms   *orchestrator.Orchestrator
	Cache   *revalidate.Cache
	Pages   template.TemplateRenderer
}

type Option func(*Server)

func WithLogger(logger *logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetrics records request metrics and serves them on path.
func WithMetrics(m *metrics.Metrics, path string) Option {
	return func(s *Server) {
		s.metrics = m
		if path != "" {
			s.metricsPath = path
		}
	}
}

// Server routes HTTP requests. Build one with New and mount Handler.
type Server struct {
	actions     *actions.Actions
	forms       *orchestrator.Orchestrator
	cache       *revalidate.Cache
	pages       template.TemplateRenderer
	catalogs    *catalogs.Component
	logger      *logging.Logger
	metrics     *metrics.Metrics
	metricsPath string
	entities    []entity
}

// New validates deps and builds a server.
func New(deps Deps, opts ...Option) (*Server, error) {
	if deps.Actions == nil {
		return nil, errors.New("server: actions are required")
	}
	if deps.Forms == nil {
		return nil, errors.New("server: form orchestrator is required")
	}
	if deps.Pages == nil {
		return nil, errors.New("server: page templates are required")
	}
	if deps.Cache == nil {
		deps.Cache = revalidate.New(nil)
	}

	s := &Server{
		actions:     deps.Actions,
		forms:       deps.Forms,
		cache:       deps.Cache,
		pages:       deps.Pages,
		catalogs:    catalogs.New(forms.Sources(deps.Actions)),
		logger:      logging.NewNop(),
		metricsPath: "/metrics",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.entities = entities(deps.Actions)
	return s, nil
}

// Router returns the route table with the request middleware applied.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	middlewares := []mux.MiddlewareFunc{logRequests(s.logger), recoverPanics(s.logger)}
	if s.metrics != nil {
		middlewares = append(middlewares, observeRequests(s.metrics))
	}
	r.Use(middlewares...)

	r.Handle("/", http.RedirectHandler("/dashboard", http.StatusFound)).Methods(http.MethodGet)
	r.HandleFunc("/dashboard", s.dashboard).Methods(http.MethodGet)
	r.PathPrefix(AssetsPrefix).Handler(http.StripPrefix(AssetsPrefix, http.FileServer(http.FS(vanilla.AssetsFS()))))

	for _, e := range s.entities {
		s.registerPages(r, e)
		s.registerAPI(r, e)
	}

	r.HandleFunc(OpenAPIPath, s.openAPI).Methods(http.MethodGet)
	for path, handler := range s.catalogs.Routes(CatalogsPrefix) {
		r.Handle(path, handler)
	}
	if s.metrics != nil {
		r.Handle(s.metricsPath, s.metrics.Handler()).Methods(http.MethodGet)
	}

	var notFound http.Handler = http.HandlerFunc(s.notFound)
	for i := len(middlewares) - 1; i >= 0; i-- {
		notFound = middlewares[i](notFound)
	}
	r.NotFoundHandler = notFound
	return r
}

// Handler returns the gzip-compressed router.
func (s *Server) Handler() http.Handler {
	return gziphandler.GzipHandler(s.Router())
}

// HTTPConfig tunes the listener.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Serve listens on cfg.Addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, cfg HTTPConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", logging.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
