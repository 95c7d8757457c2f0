package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const empresaDetailQuery = `SELECT e.id, e.rut, e.nombre, e.industria,
	COALESCE(c.codigo, '') AS ciiu,
	e.representante_legal, e.email, e.telefono,
	e.ubicacion AS direccion,
	COALESCE(r.nombre, '') AS region,
	COALESCE(ci.nombre, '') AS ciudad,
	e.estado
FROM empresas e
LEFT JOIN ciiu c ON c.id = e.ciiu_id
LEFT JOIN region r ON r.id = e.region_id
LEFT JOIN ciudad ci ON ci.id = e.ciudad_id
ORDER BY e.nombre`

const empresaColumns = `id, rut, nombre, industria, ciiu_id, representante_legal, email, telefono, ubicacion, region_id, ciudad_id, estado`

type EmpresaRepository struct {
	db *sqlx.DB
}

// List returns every empresa with its catalog references expanded. An empty
// table yields a nil slice.
func (r *EmpresaRepository) List(ctx context.Context) ([]EmpresaDetail, error) {
	var rows []EmpresaDetail
	if err := r.db.SelectContext(ctx, &rows, empresaDetailQuery); err != nil {
		return nil, FromDBError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows, nil
}

func (r *EmpresaRepository) Get(ctx context.Context, id string) (Empresa, error) {
	var empresa Empresa
	err := r.db.GetContext(ctx, &empresa, `SELECT `+empresaColumns+` FROM empresas WHERE id = $1`, id)
	if err != nil {
		return Empresa{}, FromDBError(err)
	}
	return empresa, nil
}

func (r *EmpresaRepository) Insert(ctx context.Context, empresa Empresa) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO empresas (`+empresaColumns+`)
VALUES (:id, :rut, :nombre, :industria, :ciiu_id, :representante_legal, :email, :telefono, :ubicacion, :region_id, :ciudad_id, :estado)`, empresa)
	return FromDBError(err)
}

// Update overwrites every column of the row identified by empresa.ID.
func (r *EmpresaRepository) Update(ctx context.Context, empresa Empresa) error {
	return execOne(ctx, r.db, `UPDATE empresas SET
	rut = :rut, nombre = :nombre, industria = :industria, ciiu_id = :ciiu_id,
	representante_legal = :representante_legal, email = :email, telefono = :telefono,
	ubicacion = :ubicacion, region_id = :region_id, ciudad_id = :ciudad_id, estado = :estado
WHERE id = :id`, empresa)
}

// Delete removes the row. Deleting an id that does not exist is not an error.
func (r *EmpresaRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM empresas WHERE id = $1`, id)
	return FromDBError(err)
}
