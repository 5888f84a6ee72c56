package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingapi/internal/entity"
	"lendingapi/internal/usecase"
)

type CategoryPG struct {
	db *pgxpool.Pool
}

func NewCategoryPG(db *pgxpool.Pool) *CategoryPG {
	return &CategoryPG{db: db}
}

func (r *CategoryPG) Create(ctx context.Context, c *entity.BookCategory) error {
	const query = `
	INSERT INTO book_categories (id, name)
	VALUES (gen_random_uuid(), $1)
	RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return usecase.ErrAlreadyExists
	}
	return err
}

func (r *CategoryPG) GetByID(ctx context.Context, id string) (entity.BookCategory, error) {
	const query = `
	SELECT id, name, created_at, updated_at
	FROM book_categories
	WHERE id = $1
	LIMIT 1
	`
	var c entity.BookCategory
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.BookCategory{}, usecase.ErrNotFound
		}
		return entity.BookCategory{}, err
	}
	return c, nil
}

func (r *CategoryPG) Update(ctx context.Context, c *entity.BookCategory) error {
	const query = `
	UPDATE book_categories
	SET name = $2, updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query, c.ID, c.Name).Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return usecase.ErrNotFound
	}
	return err
}

func (r *CategoryPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM book_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

func (r *CategoryPG) List(ctx context.Context, p usecase.ListParams) ([]entity.BookCategory, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM book_categories`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `
	SELECT id, name, created_at, updated_at
	FROM book_categories
	ORDER BY name ASC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, dataSQL, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var categories []entity.BookCategory
	for rows.Next() {
		var c entity.BookCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		categories = append(categories, c)
	}
	return categories, total, rows.Err()
}
