package forms

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/formspec"
	"github.com/syms-residuos/backoffice/pkg/model"
	"github.com/syms-residuos/backoffice/pkg/tableform"
)

// Form ids declared in specs/.
const (
	Empresa       = "empresa"
	Transportista = "transportista"
)

// Catalog option source names used by optionsSource.
const (
	SourceRegion = "region"
	SourceCiudad = "ciudad"
	SourceCiiu   = "ciiu"
)

// Select values for the estado field.
const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// Estado maps the boolean estado column onto the activo/inactivo select.
var Estado = tableform.BoolSelect("estado", EstadoActivo, EstadoInactivo)

// Adapters are the field adapters shared by every entity edit form.
func Adapters() []tableform.FieldAdapter {
	return []tableform.FieldAdapter{Estado}
}

//go:embed specs/*.yaml
var specsFS embed.FS

// Embedded returns the bundled form definitions.
func Embedded() fs.FS {
	sub, err := fs.Sub(specsFS, "specs")
	if err != nil {
		panic(err)
	}
	return sub
}

// Load parses the embedded definitions and, when dir is set, overlays the
// definitions found there.
func Load(dir string) (*formspec.Store, error) {
	specs, err := formspec.LoadFS(Embedded())
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return specs, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("forms: override dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("forms: override %s is not a directory", dir)
	}
	overrides, err := formspec.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	specs.Merge(overrides)
	return specs, nil
}

// Catalogs loads the option lists referenced by optionsSource.
type Catalogs interface {
	RegionOptions(ctx context.Context) (model.OptionList, error)
	CiudadOptions(ctx context.Context) (model.OptionList, error)
	CiiuOptions(ctx context.Context) (model.OptionList, error)
}

// Sources wires catalogs into formspec.Bind.
func Sources(c Catalogs) formspec.Sources {
	return formspec.Sources{
		SourceRegion: c.RegionOptions,
		SourceCiudad: c.CiudadOptions,
		SourceCiiu:   c.CiiuOptions,
	}
}

// EmpresaRecord exposes an empresa row under the empresa form's field names.
func EmpresaRecord(e store.Empresa) model.Record {
	return model.Record{
		"nombre":             e.Nombre,
		"industria":          e.Industria,
		"ciiu":               e.CiiuID,
		"rut":                e.Rut,
		"representanteLegal": e.RepresentanteLegal,
		"email":              e.Email,
		"telefono":           e.Telefono,
		"direccion":          e.Ubicacion,
		"region":             e.RegionID,
		"ciudad":             e.CiudadID,
		"estado":             e.Estado,
	}
}

// TransportistaRecord exposes a transportista row under the transportista
// form's field names.
func TransportistaRecord(t store.Transportista) model.Record {
	return model.Record{
		"nombre":    t.Nombre,
		"rut":       t.Rut,
		"email":     t.Email,
		"telefono":  t.Telefono,
		"direccion": t.Direccion,
		"patente":   t.Patente,
		"region":    t.RegionID,
		"estado":    t.Estado,
	}
}

// Messages returns the notification texts for creating or editing an entity.
func Messages(formID string, editing bool) tableform.Messages {
	verb, done := "crear", "creada"
	if editing {
		verb, done = "editar", "editada"
	}
	switch formID {
	case Empresa:
		return tableform.EntityMessages(verb, "la empresa", "Empresa "+done)
	case Transportista:
		if editing {
			done = "editado"
		} else {
			done = "creado"
		}
		return tableform.EntityMessages(verb, "el transportista", "Transportista "+done)
	default:
		return tableform.DefaultMessages
	}
}
