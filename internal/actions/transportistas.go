package actions

import (
	"context"
	"fmt"

	"github.com/syms-residuos/backoffice/internal/logging"
	"github.com/syms-residuos/backoffice/internal/store"
	"github.com/syms-residuos/backoffice/pkg/model"
)

// TransportistasResult carries the transportista listing; nil means no rows.
type TransportistasResult struct {
	Transportistas []store.TransportistaDetail `json:"transportistas"`
}

type TransportistaInput struct {
	Nombre    string `form:"nombre" json:"nombre"`
	Rut       string `form:"rut" json:"rut"`
	Email     string `form:"email" json:"email"`
	Telefono  string `form:"telefono" json:"telefono"`
	Direccion string `form:"direccion" json:"direccion"`
	Patente   string `form:"patente" json:"patente"`
	Region    int64  `form:"region" json:"region"`
	Estado    estado `form:"estado" json:"estado"`
}

func (in TransportistaInput) row(id string) store.Transportista {
	return store.Transportista{
		ID:        id,
		Rut:       in.Rut,
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		Patente:   in.Patente,
		RegionID:  in.Region,
		Estado:    bool(in.Estado),
	}
}

func (a *Actions) FetchTransportistas(ctx context.Context) TransportistasResult {
	rows, err := a.ListTransportistas(ctx)
	if err != nil {
		a.logger.Error("fetch transportistas failed", logging.Error(err))
		return TransportistasResult{}
	}
	return TransportistasResult{Transportistas: rows}
}

// ListTransportistas returns the expanded rows, nil when there are none, and the
// store error when the listing could not be read.
func (a *Actions) ListTransportistas(ctx context.Context) ([]store.TransportistaDetail, error) {
	rows, err := a.deps.Transportistas.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("actions: list transportistas: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

func (a *Actions) FetchTransportistaByID(ctx context.Context, id string) (store.Transportista, error) {
	if err := invalidID(id); err != nil {
		return store.Transportista{}, err
	}
	return a.deps.Transportistas.Get(ctx, id)
}

func (a *Actions) CreateTransportista(ctx context.Context, values model.Values) ActionResult {
	var in TransportistaInput
	if err := a.decode(&in, values); err != nil {
		return a.failure("create transportista", err)
	}
	id := a.newID()
	if err := a.deps.Transportistas.Insert(ctx, in.row(id)); err != nil {
		return a.failure("create transportista", err, logging.String("id", id))
	}
	a.logger.Info("transportista created", logging.String("id", id))
	a.revalidate(ctx, TransportistasPath)
	return ActionResult{}
}

func (a *Actions) UpdateTransportista(ctx context.Context, id string, values model.Values) ActionResult {
	if err := invalidID(id); err != nil {
		return a.failure("update transportista", err, logging.String("id", id))
	}
	var in TransportistaInput
	if err := a.decode(&in, values); err != nil {
		return a.failure("update transportista", err, logging.String("id", id))
	}
	if err := a.deps.Transportistas.Update(ctx, in.row(id)); err != nil {
		return a.failure("update transportista", err, logging.String("id", id))
	}
	a.logger.Info("transportista updated", logging.String("id", id))
	a.revalidate(ctx, TransportistasPath)
	return ActionResult{}
}

func (a *Actions) DeleteTransportistaByID(ctx context.Context, id string) DeleteResult {
	if err := invalidID(id); err != nil {
		a.logger.Warn("delete transportista rejected", logging.String("id", id), logging.Error(err))
		return DeleteResult{OK: false}
	}
	if err := a.deps.Transportistas.Delete(ctx, id); err != nil {
		a.logger.Error("delete transportista failed", logging.String("id", id), logging.Error(err))
		return DeleteResult{OK: false}
	}
	a.revalidate(ctx, TransportistasPath)
	return DeleteResult{OK: true}
}
