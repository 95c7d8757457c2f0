package server

import (
	"context"

	"github.com/syms-residuos/backoffice/internal/actions"
	"github.com/syms-residuos/backoffice/internal/forms"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
)

// entity binds one editable table to its form, pages and actions.
type entity struct {
	formID   string
	path     string
	apiPath  string
	template string
	// schema names the row schema in the API document.
	schema string

	title      string
	createText string
	editText   string
	deleted    string
	deleteFail string

	list   func(ctx context.Context) (any, error)
	fetch  func(ctx context.Context, id string) (any, model.Record, error)
	create func(ctx context.Context, values model.Values) actions.ActionResult
	update func(ctx context.Context, id string, values model.Values) actions.ActionResult
	remove func(ctx context.Context, id string) actions.DeleteResult
}

func entities(a *actions.Actions) []entity {
	return []entity{
		{
			formID:     forms.Empresa,
			path:       actions.EmpresasPath,
			apiPath:    APIPrefix + "/empresas",
			template:   "empresas",
			schema:     "Empresa",
			title:      "Empresas",
			createText: "Nueva empresa",
			editText:   "Editar empresa",
			deleted:    "Empresa eliminada correctamente.",
			deleteFail: "Hubo un error al eliminar la empresa.",
			list: func(ctx context.Context) (any, error) {
				return a.ListEmpresas(ctx)
			},
			fetch: func(ctx context.Context, id string) (any, model.Record, error) {
				row, err := a.FetchEmpresaByID(ctx, id)
				if err != nil {
					return nil, nil, err
				}
				return row, forms.EmpresaRecord(row), nil
			},
			create: a.CreateEmpresa,
			update: a.UpdateEmpresa,
			remove: a.DeleteEmpresaByID,
		},
		{
			formID:     forms.Transportista,
			path:       actions.TransportistasPath,
			apiPath:    APIPrefix + "/transportistas",
			template:   "transportistas",
			schema:     "Transportista",
			title:      "Transportistas",
			createText: "Nuevo transportista",
			editText:   "Editar transportista",
			deleted:    "Transportista eliminado correctamente.",
			deleteFail: "Hubo un error al eliminar el transportista.",
			list: func(ctx context.Context) (any, error) {
				return a.ListTransportistas(ctx)
			},
			fetch: func(ctx context.Context, id string) (any, model.Record, error) {
				row, err := a.FetchTransportistaByID(ctx, id)
				if err != nil {
					return nil, nil, err
				}
				return row, forms.TransportistaRecord(row), nil
			},
			create: a.CreateTransportista,
			update: a.UpdateTransportista,
			remove: a.DeleteTransportistaByID,
		},
	}
}

// rowTypes pairs each API schema name with a zero row used to derive it.
var rowTypes = map[string]any{
	"Empresa":             store.Empresa{},
	"EmpresaDetail":       store.EmpresaDetail{},
	"Transportista":       store.Transportista{},
	"TransportistaDetail": store.TransportistaDetail{},
}
