package usecase

import (
	"context"

	"lendingapi/internal/entity"
)

// CategoryRepository defines the catalog store capability for book categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.BookCategory) error
	GetByID(ctx context.Context, id string) (entity.BookCategory, error)
	Update(ctx context.Context, c *entity.BookCategory) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p ListParams) ([]entity.BookCategory, int, error)
}
