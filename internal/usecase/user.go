package usecase

import (
	"context"

	"lendingapi/internal/entity"
)

// UserRepository defines the identity store capability.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (entity.User, error)
	GetByUsername(ctx context.Context, username string) (entity.User, error)
}
