package actions

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/form"
	"github.com/google/uuid"

	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
)

// Listing paths revalidated after a successful write.
const (
	EmpresasPath       = "/configuracion/empresas"
	TransportistasPath = "/configuracion/transportistas"
)

// MessageInvalidInput is reported when submitted values cannot be decoded.
const MessageInvalidInput = "Los datos enviados no son validos."

type EmpresaStore interface {
	List(ctx context.Context) ([]store.EmpresaDetail, error)
	Get(ctx context.Context, id string) (store.Empresa, error)
	Insert(ctx context.Context, empresa store.Empresa) error
	Update(ctx context.Context, empresa store.Empresa) error
	Delete(ctx context.Context, id string) error
}

type TransportistaStore interface {
	List(ctx context.Context) ([]store.TransportistaDetail, error)
	Get(ctx context.Context, id string) (store.Transportista, error)
	Insert(ctx context.Context, t store.Transportista) error
	Update(ctx context.Context, t store.Transportista) error
	Delete(ctx context.Context, id string) error
}

type CatalogStore interface {
	Regions(ctx context.Context) ([]store.Region, error)
	Ciudades(ctx context.Context, regionID int64) ([]store.Ciudad, error)
	Ciius(ctx context.Context) ([]store.Ciiu, error)
}

// Revalidator marks a cached listing path stale.
type Revalidator interface {
	Revalidate(ctx context.Context, path string) error
}

// Deps are the collaborators an Actions value needs.
type Deps struct {
	Empresas       EmpresaStore
	Transportistas TransportistaStore
	Catalogs       CatalogStore
	Cache          Revalidator
}

// FromStore builds Deps over the repositories of s.
func FromStore(s *store.Store, cache Revalidator) Deps {
	return Deps{
		Empresas:       s.Empresas,
		Transportistas: s.Transportistas,
		Catalogs:       s.Catalogs,
		Cache:          cache,
	}
}

// ActionResult reports a create or update. Error is nil on success and holds
// a message safe to show otherwise.
type ActionResult struct {
	Error *string `json:"error"`
}

// OK reports whether the action succeeded.
func (r ActionResult) OK() bool {
	return r.Error == nil
}

// DeleteResult reports a delete.
type DeleteResult struct {
	OK bool `json:"ok"`
}

type Option func(*Actions)

func WithLogger(logger *logging.Logger) Option {
	return func(a *Actions) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithIDGenerator replaces uuid.NewString for new rows.
func WithIDGenerator(fn func() string) Option {
	return func(a *Actions) {
		if fn != nil {
			a.newID = fn
		}
	}
}

// Actions performs single-row reads and writes and revalidates the affected
// listing. None of its methods panic; failures are reported in the result.
type Actions struct {
	deps    Deps
	logger  *logging.Logger
	decoder *form.Decoder
	newID   func() string
}

func New(deps Deps, opts ...Option) *Actions {
	a := &Actions{
		deps:    deps,
		logger:  logging.NewNop(),
		decoder: newDecoder(),
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// estado is decoded from the activo/inactivo select value.
type estado bool

func newDecoder() *form.Decoder {
	decoder := form.NewDecoder()
	decoder.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		if len(vals) == 0 {
			return estado(false), nil
		}
		native, err := forms.Estado.FromForm(vals[0])
		if err != nil {
			return nil, err
		}
		return estado(native.(bool)), nil
	}, estado(false))
	return decoder
}

func (a *Actions) decode(dst any, values model.Values) error {
	raw := make(url.Values, len(values))
	for key, value := range values {
		raw.Set(key, strings.TrimSpace(value))
	}
	return a.decoder.Decode(dst, raw)
}

// revalidate runs after a successful write. A cache failure leaves the
// write in place and is only logged.
func (a *Actions) revalidate(ctx context.Context, path string) {
	if a.deps.Cache == nil {
		return
	}
	if err := a.deps.Cache.Revalidate(ctx, path); err != nil {
		a.logger.Warn("revalidate failed", logging.String("path", path), logging.Error(err))
	}
}

func (a *Actions) failure(action string, err error, fields ...logging.Field) ActionResult {
	message := errorMessage(err)
	a.logger.Error(action+" failed", append(fields, logging.Error(err))...)
	return ActionResult{Error: &message}
}

// errorMessage picks the text shown to users for err.
func errorMessage(err error) string {
	var storeErr *store.Error
	if errors.As(err, &storeErr) && storeErr.Message != "" {
		return storeErr.Message
	}
	var decodeErr form.DecodeErrors
	if errors.As(err, &decodeErr) {
		return MessageInvalidInput
	}
	return store.MessageUnknown
}

func invalidID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.NewError(store.CodeNotFound, store.MessageNotFound, fmt.Errorf("invalid id %q: %w", id, err))
	}
	return nil
}
