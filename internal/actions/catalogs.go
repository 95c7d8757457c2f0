package actions

import (
	"context"
	"strconv"

	"github.com/syms-residuos/backoffice/pkg/model"
)

func (a *Actions) RegionOptions(ctx context.Context) (model.OptionList, error) {
	rows, err := a.deps.Catalogs.Regions(ctx)
	if err != nil {
		return nil, err
	}
	options := make(model.OptionList, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.Option{Value: strconv.FormatInt(row.ID, 10), Label: row.Nombre})
	}
	return options, nil
}

func (a *Actions) CiudadOptions(ctx context.Context) (model.OptionList, error) {
	rows, err := a.deps.Catalogs.Ciudades(ctx, 0)
	if err != nil {
		return nil, err
	}
	options := make(model.OptionList, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.Option{Value: strconv.FormatInt(row.ID, 10), Label: row.Nombre})
	}
	return options, nil
}

// CiiuOptions labels each activity with its code.
func (a *Actions) CiiuOptions(ctx context.Context) (model.OptionList, error) {
	rows, err := a.deps.Catalogs.Ciius(ctx)
	if err != nil {
		return nil, err
	}
	options := make(model.OptionList, 0, len(rows))
	for _, row := range rows {
		options = append(options, model.Option{Value: strconv.FormatInt(row.ID, 10), Label: row.Codigo})
	}
	return options, nil
}
