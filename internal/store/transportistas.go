package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const transportistaDetailQuery = `SELECT t.id, t.rut, t.nombre, t.email, t.telefono, t.direccion, t.patente,
	COALESCE(r.nombre, '') AS region,
	t.estado
FROM transportistas t
LEFT JOIN region r ON r.id = t.region_id
ORDER BY t.nombre`

const transportistaColumns = `id, rut, nombre, email, telefono, direccion, patente, region_id, estado`

type TransportistaRepository struct {
	db *sqlx.DB
}

// List returns every transportista with its region name. An empty table
// yields a nil slice.
func (r *TransportistaRepository) List(ctx context.Context) ([]TransportistaDetail, error) {
	var rows []TransportistaDetail
	if err := r.db.SelectContext(ctx, &rows, transportistaDetailQuery); err != nil {
		return nil, FromDBError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

func (r *TransportistaRepository) Get(ctx context.Context, id string) (Transportista, error) {
	var t Transportista
	err := r.db.GetContext(ctx, &t, `SELECT `+transportistaColumns+` FROM transportistas WHERE id = $1`, id)
	if err != nil {
		return Transportista{}, FromDBError(err)
	}
	return t, nil
}

func (r *TransportistaRepository) Insert(ctx context.Context, t Transportista) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO transportistas (`+transportistaColumns+`)
VALUES (:id, :rut, :nombre, :email, :telefono, :direccion, :patente, :region_id, :estado)`, t)
	return FromDBError(err)
}

func (r *TransportistaRepository) Update(ctx context.Context, t Transportista) error {
	return execOne(ctx, r.db, `UPDATE transportistas SET
	rut = :rut, nombre = :nombre, email = :email, telefono = :telefono,
	direccion = :direccion, patente = :patente, region_id = :region_id, estado = :estado
WHERE id = :id`, t)
}

// Delete removes the row. Deleting an id that does not exist is not an error.
func (r *TransportistaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM transportistas WHERE id = $1`, id)
	return FromDBError(err)
}
