package usecase

import (
	"context"

	"lendingapi/internal/entity"
)

// TransactionRepository defines the lending ledger capability. CreateBorrow
// and CompleteReturn each persist the ledger entry and the matching inventory
// adjustment as one atomic unit: both writes land or neither does.
type TransactionRepository interface {
	// CreateBorrow inserts trx as outstanding and decrements the book's
	// amount by one, guarded so the amount can never go below zero. A lost
	// race on the last copy returns ErrBookNotAvailable.
	CreateBorrow(ctx context.Context, trx *entity.Transaction) error

	// CompleteReturn records trx's received date and increments the book's
	// amount by one. Returns ErrAlreadyReturned if the ledger row already
	// carries a received date.
	CompleteReturn(ctx context.Context, trx *entity.Transaction) error

	GetByID(ctx context.Context, id string) (entity.Transaction, error)
	List(ctx context.Context, p ListParams) ([]entity.Transaction, int, error)
	Delete(ctx context.Context, id string) error
}
