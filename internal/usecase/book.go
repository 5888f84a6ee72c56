package usecase

import (
	"context"

	"lendingapi/internal/entity"
)

// ListParams carries pagination for the paged listing endpoints.
type ListParams struct {
	Limit  int
	Offset int
}

// BookRepository defines the catalog store capability for books.
type BookRepository interface {
	Create(ctx context.Context, b *entity.Book) error
	GetByID(ctx context.Context, id string) (entity.Book, error)
	Update(ctx context.Context, b *entity.Book) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p ListParams) ([]entity.Book, int, error)
	ListAvailable(ctx context.Context, categoryID string) ([]entity.Book, error)
}
