package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palabra-api/internal/domain"
)

// CreatePalabraInput agrupa las columnas de una entrada nueva del catálogo.
type CreatePalabraInput struct {
	Palabra     string
	Nombre      string
	CodigoISO   string
	Region      string
	Descripcion string
}

// UpdatePalabraInput aplica cambios parciales: los campos nil no se tocan.
type UpdatePalabraInput struct {
	Nombre      *string
	CodigoISO   *string
	Region      *string
	Descripcion *string
}

// PalabraRepository define el contrato de persistencia para el catálogo
// de vocabulario. Ausencia se señala con pgx.ErrNoRows.
type PalabraRepository interface {
	GetByID(ctx context.Context, id int64) (domain.Palabra, error)
	GetByPalabra(ctx context.Context, palabra string) (domain.Palabra, error)
	List(ctx context.Context) ([]domain.Palabra, error)
	Create(ctx context.Context, input CreatePalabraInput) (domain.Palabra, error)
	Update(ctx context.Context, id int64, input UpdatePalabraInput) (domain.Palabra, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

const palabraColumns = `id, palabra, nombre, codigo_iso, region, descripcion, created_at`

// PgPalabraRepository implementa PalabraRepository usando pgxpool.
type PgPalabraRepository struct {
	pool *pgxpool.Pool
}

func NewPgPalabraRepository(pool *pgxpool.Pool) *PgPalabraRepository {
	return &PgPalabraRepository{pool: pool}
}

func (r *PgPalabraRepository) GetByID(ctx context.Context, id int64) (domain.Palabra, error) {
	const query = `SELECT ` + palabraColumns + ` FROM palabras WHERE id = $1`
	return scanPalabra(r.pool.QueryRow(ctx, query, id))
}

func (r *PgPalabraRepository) GetByPalabra(ctx context.Context, palabra string) (domain.Palabra, error) {
	const query = `SELECT ` + palabraColumns + ` FROM palabras WHERE palabra = $1`
	return scanPalabra(r.pool.QueryRow(ctx, query, palabra))
}

func (r *PgPalabraRepository) List(ctx context.Context) ([]domain.Palabra, error) {
	const query = `SELECT ` + palabraColumns + ` FROM palabras ORDER BY palabra`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Palabra
	for rows.Next() {
		p, err := scanPalabra(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *PgPalabraRepository) Create(ctx context.Context, input CreatePalabraInput) (domain.Palabra, error) {
	const query = `
		INSERT INTO palabras (palabra, nombre, codigo_iso, region, descripcion)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + palabraColumns
	p, err := scanPalabra(r.pool.QueryRow(ctx, query,
		input.Palabra,
		input.Nombre,
		input.CodigoISO,
		input.Region,
		input.Descripcion,
	))
	if err != nil {
		return domain.Palabra{}, wrapUnique(err)
	}
	return p, nil
}

func (r *PgPalabraRepository) Update(ctx context.Context, id int64, input UpdatePalabraInput) (domain.Palabra, error) {
	const query = `
		UPDATE palabras SET
			nombre      = COALESCE($2, nombre),
			codigo_iso  = COALESCE($3, codigo_iso),
			region      = COALESCE($4, region),
			descripcion = COALESCE($5, descripcion)
		WHERE id = $1
		RETURNING ` + palabraColumns
	p, err := scanPalabra(r.pool.QueryRow(ctx, query,
		id,
		input.Nombre,
		input.CodigoISO,
		input.Region,
		input.Descripcion,
	))
	if err != nil {
		return domain.Palabra{}, err
	}
	return p, nil
}

func (r *PgPalabraRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM palabras WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanPalabra(row pgx.Row) (domain.Palabra, error) {
	var p domain.Palabra
	err := row.Scan(
		&p.ID,
		&p.Palabra,
		&p.Nombre,
		&p.CodigoISO,
		&p.Region,
		&p.Descripcion,
		&p.CreatedAt,
	)
	return p, err
}
