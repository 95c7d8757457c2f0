package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// CatalogRepository reads the lookup tables referenced by empresas and
// transportistas.
type CatalogRepository struct {
	db *sqlx.DB
}

func (r *CatalogRepository) Regions(ctx context.Context) ([]Region, error) {
	var rows []Region
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, nombre FROM region ORDER BY id`); err != nil {
		return nil, FromDBError(err)
	}
	return rows, nil
}

// Ciudades lists cities, optionally restricted to one region when regionID > 0.
func (r *CatalogRepository) Ciudades(ctx context.Context, regionID int64) ([]Ciudad, error) {
	var (
		rows []Ciudad
		err  error
	)
	if regionID > 0 {
		err = r.db.SelectContext(ctx, &rows, `SELECT id, nombre, region_id FROM ciudad WHERE region_id = $1 ORDER BY nombre`, regionID)
	} else {
		err = r.db.SelectContext(ctx, &rows, `SELECT id, nombre, region_id FROM ciudad ORDER BY nombre`)
	}
	if err != nil {
		return nil, FromDBError(err)
	}
	return rows, nil
}

func (r *CatalogRepository) Ciius(ctx context.Context) ([]Ciiu, error) {
	var rows []Ciiu
	if err := r.db.SelectContext(ctx, &rows, `SELECT id, codigo, descripcion FROM ciiu ORDER BY codigo`); err != nil {
		return nil, FromDBError(err)
	}
	return rows, nil
}
