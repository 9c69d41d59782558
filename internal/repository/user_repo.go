package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"palabra-api/internal/domain"
)

// ErrDuplicate indica que el store rechazó una fila por una restricción
// de unicidad. El mensaje envuelto incluye el nombre de la restricción.
var ErrDuplicate = errors.New("duplicate row")

// CreateUserInput agrupa las columnas que asigna el caller al crear un
// usuario; id y created_at los asigna el store.
type CreateUserInput struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// UpdateUserInput aplica cambios parciales: los campos nil no se tocan.
type UpdateUserInput struct {
	FirstName     *string
	LastName      *string
	AvatarURL     *string
	Bio           *string
	EmailVerified *bool
	IsActive      *bool
}

// UserRepository define el contrato de persistencia para usuarios.
// Las búsquedas señalan ausencia con pgx.ErrNoRows.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (domain.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// avatar_url y bio son opcionales en el esquema; se normalizan a ''
// aquí para que el scan no dependa de un DEFAULT en la tabla.
const userColumns = `id, username, email, first_name, last_name, COALESCE(avatar_url, ''), COALESCE(bio, ''), password, email_verified, is_active, created_at`

// PgUserRepository implementa UserRepository usando pgxpool.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

func (r *PgUserRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.pool.QueryRow(ctx, query, username))
}

func (r *PgUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PgUserRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PgUserRepository) Create(ctx context.Context, input CreateUserInput) (domain.User, error) {
	const query = `
		INSERT INTO users (username, email, first_name, last_name, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, query,
		input.Username,
		input.Email,
		input.FirstName,
		input.LastName,
		input.PasswordHash,
	))
	if err != nil {
		return domain.User{}, wrapUnique(err)
	}
	return user, nil
}

func (r *PgUserRepository) Update(ctx context.Context, id int64, input UpdateUserInput) (domain.User, error) {
	const query = `
		UPDATE users SET
			first_name     = COALESCE($2, first_name),
			last_name      = COALESCE($3, last_name),
			avatar_url     = COALESCE($4, avatar_url),
			bio            = COALESCE($5, bio),
			email_verified = COALESCE($6, email_verified),
			is_active      = COALESCE($7, is_active)
		WHERE id = $1
		RETURNING ` + userColumns
	user, err := scanUser(r.pool.QueryRow(ctx, query,
		id,
		input.FirstName,
		input.LastName,
		input.AvatarURL,
		input.Bio,
		input.EmailVerified,
		input.IsActive,
	))
	if err != nil {
		return domain.User{}, wrapUnique(err)
	}
	return user, nil
}

func (r *PgUserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM users WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.AvatarURL,
		&u.Bio,
		&u.PasswordHash,
		&u.EmailVerified,
		&u.IsActive,
		&u.CreatedAt,
	)
	return u, err
}

func wrapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
