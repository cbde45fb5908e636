package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crediya/auth/internal/apperrors"
	"github.com/crediya/auth/internal/models"
)

// DBTX is the subset of pgx pool and tx used by the repo
// Allows to run repo methods inside transaction in tests
type DBTX interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type UserRepo struct {
	db DBTX
}

func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{db: db}
}

const createUser = `-- name: CreateUser
INSERT INTO users (email, first_name, last_name, password_hash, base_salary, role_id)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, 0))
RETURNING id, created_at, email, first_name, last_name, password_hash, base_salary, COALESCE(role_id, 0)
`

func (r *UserRepo) Create(ctx context.Context, identity models.Identity) (models.Identity, error) {
	rows, _ := r.db.Query(ctx, createUser,
		identity.Email,
		identity.FirstName,
		identity.LastName,
		identity.PasswordHash,
		identity.BaseSalary,
		identity.RoleID,
	)
	created, err := pgx.CollectOneRow(rows, rowToIdentity)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return created, apperrors.ErrUserAlreadyExists
		}
	}

	return created, err
}

const lookupByEmail = `-- name: LookupByEmail
SELECT id, created_at, email, first_name, last_name, password_hash, base_salary, COALESCE(role_id, 0)
FROM users
WHERE email = $1
`

func (r *UserRepo) LookupByEmail(ctx context.Context, email string) (models.Identity, error) {
	rows, _ := r.db.Query(ctx, lookupByEmail, email)
	identity, err := pgx.CollectOneRow(rows, rowToIdentity)

	if err != nil && errors.Is(err, pgx.ErrNoRows) {
		return identity, apperrors.ErrUserNotFound
	}

	return identity, err
}

const setRole = `-- name: SetRole
UPDATE users
SET role_id = NULLIF($2, 0)
WHERE email = $1
`

func (r *UserRepo) SetRole(ctx context.Context, email string, roleID int64) error {
	tag, err := r.db.Exec(ctx, setRole, email, roleID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

func rowToIdentity(row pgx.CollectableRow) (models.Identity, error) {
	var i models.Identity
	err := row.Scan(&i.ID, &i.CreatedAt, &i.Email, &i.FirstName, &i.LastName, &i.PasswordHash, &i.BaseSalary, &i.RoleID)
	return i, err
}
