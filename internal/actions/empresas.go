package actions

import (
	"context"
	"fmt"

	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
)

// EmpresasResult carries the empresa listing. Empresas is nil when there is
// nothing to show, including when the listing could not be read.
type EmpresasResult struct {
	Empresas []store.EmpresaDetail `json:"empresas"`
}

// EmpresaInput is the decoded empresa form.
type EmpresaInput struct {
	Nombre             string `form:"nombre" json:"nombre"`
	Industria          string `form:"industria" json:"industria"`
	Ciiu               int64  `form:"ciiu" json:"ciiu"`
	Rut                string `form:"rut" json:"rut"`
	RepresentanteLegal string `form:"representanteLegal" json:"representanteLegal"`
	Email              string `form:"email" json:"email"`
	Telefono           string `form:"telefono" json:"telefono"`
	Direccion          string `form:"direccion" json:"direccion"`
	Region             int64  `form:"region" json:"region"`
	Ciudad             int64  `form:"ciudad" json:"ciudad"`
	Estado             estado `form:"estado" json:"estado"`
}

func (in EmpresaInput) row(id string) store.Empresa {
	return store.Empresa{
		ID:                 id,
		Rut:                in.Rut,
		Nombre:             in.Nombre,
		Industria:          in.Industria,
		CiiuID:             in.Ciiu,
		RepresentanteLegal: in.RepresentanteLegal,
		Email:              in.Email,
		Telefono:           in.Telefono,
		Ubicacion:          in.Direccion,
		RegionID:           in.Region,
		CiudadID:           in.Ciudad,
		Estado:             bool(in.Estado),
	}
}

func (a *Actions) FetchEmpresas(ctx context.Context) EmpresasResult {
	rows, err := a.ListEmpresas(ctx)
	if err != nil {
		a.logger.Error("fetch empresas failed", logging.Error(err))
		return EmpresasResult{}
	}
	return EmpresasResult{Empresas: rows}
}

// ListEmpresas returns the expanded rows, nil when there are none, and the
// store error when the listing could not be read.
func (a *Actions) ListEmpresas(ctx context.Context) ([]store.EmpresaDetail, error) {
	rows, err := a.deps.Empresas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("actions: list empresas: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

func (a *Actions) FetchEmpresaByID(ctx context.Context, id string) (store.Empresa, error) {
	if err := invalidID(id); err != nil {
		return store.Empresa{}, err
	}
	return a.deps.Empresas.Get(ctx, id)
}

func (a *Actions) CreateEmpresa(ctx context.Context, values model.Values) ActionResult {
	var in EmpresaInput
	if err := a.decode(&in, values); err != nil {
		return a.failure("create empresa", err)
	}
	id := a.newID()
	if err := a.deps.Empresas.Insert(ctx, in.row(id)); err != nil {
		return a.failure("create empresa", err, logging.String("id", id))
	}
	a.logger.Info("empresa created", logging.String("id", id))
	a.revalidate(ctx, EmpresasPath)
	return ActionResult{}
}

func (a *Actions) UpdateEmpresa(ctx context.Context, id string, values model.Values) ActionResult {
	if err := invalidID(id); err != nil {
		return a.failure("update empresa", err, logging.String("id", id))
	}
	var in EmpresaInput
	if err := a.decode(&in, values); err != nil {
		return a.failure("update empresa", err, logging.String("id", id))
	}
	if err := a.deps.Empresas.Update(ctx, in.row(id)); err != nil {
		return a.failure("update empresa", err, logging.String("id", id))
	}
	a.logger.Info("empresa updated", logging.String("id", id))
	a.revalidate(ctx, EmpresasPath)
	return ActionResult{}
}

func (a *Actions) DeleteEmpresaByID(ctx context.Context, id string) DeleteResult {
	if err := invalidID(id); err != nil {
		a.logger.Warn("delete empresa rejected", logging.String("id", id), logging.Error(err))
		return DeleteResult{OK: false}
	}
	if err := a.deps.Empresas.Delete(ctx, id); err != nil {
		a.logger.Error("delete empresa failed", logging.String("id", id), logging.Error(err))
		return DeleteResult{OK: false}
	}
	a.revalidate(ctx, EmpresasPath)
	return DeleteResult{OK: true}
}
