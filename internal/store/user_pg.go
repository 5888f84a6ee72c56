package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingapi/internal/entity"
	"lendingapi/internal/usecase"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, u *entity.User) error {
	const query = `
	INSERT INTO users (id, username, password, email, phone, address, civil_id, type, roles)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, ''), 'CUSTOMER'), $8)
	RETURNING id, type, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Password, u.Email, u.Phone, u.Address, u.CivilID, u.Type, u.Roles).
		Scan(&u.ID, &u.Type, &u.CreatedAt, &u.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	return r.getBy(ctx, `id`, id)
}

func (r *UserPG) GetByUsername(ctx context.Context, username string) (entity.User, error) {
	return r.getBy(ctx, `username`, username)
}

func (r *UserPG) getBy(ctx context.Context, column, value string) (entity.User, error) {
	query := `
	SELECT id, username, password, email, phone, address, civil_id, type, roles, created_at, updated_at
	FROM users
	WHERE ` + column + ` = $1
	LIMIT 1
	`
	var u entity.User
	err := r.db.QueryRow(ctx, query, value).Scan(
		&u.ID, &u.Username, &u.Password, &u.Email, &u.Phone, &u.Address,
		&u.CivilID, &u.Type, &u.Roles, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return u, nil
}
