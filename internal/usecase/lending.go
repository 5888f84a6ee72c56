package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lendingapi/internal/entity"
)

// BorrowRequest asks to take one copy of a book out on loan.
type BorrowRequest struct {
	BookID     string
	ReturnDate *time.Time
}

// ReturnRequest hands a borrowed copy back.
type ReturnRequest struct {
	TransactionID string
	ReceivedDate  *time.Time
}

// LendingService orchestrates borrow and return operations. It is the only
// component with business rules: the inventory invariant (amount never
// negative, every decrement paired with exactly one increment) is enforced
// here and in the atomic repository operations it calls.
type LendingService struct {
	books  BookRepository
	ledger TransactionRepository
	log    *zap.Logger
	now    func() time.Time
}

// NewLendingService creates the lending workflow over the given catalog and
// ledger stores.
func NewLendingService(books BookRepository, ledger TransactionRepository, log *zap.Logger) *LendingService {
	return &LendingService{
		books:  books,
		ledger: ledger,
		log:    log,
		now:    time.Now,
	}
}

// Borrow checks out one copy of a book for the calling user and returns the
// id of the new ledger entry. callerID is the authenticated user's id,
// supplied explicitly by the transport layer; the workflow fails closed when
// it is absent rather than trusting the boundary to have rejected the call.
//
// All validations run before the first write. The ledger insert and the
// inventory decrement then commit as one atomic unit, so a borrow is either
// fully visible or not at all.
func (s *LendingService) Borrow(ctx context.Context, callerID string, req BorrowRequest) (string, error) {
	if callerID == "" {
		return "", ErrUnauthenticated
	}

	book, err := s.books.GetByID(ctx, req.BookID)
	if err != nil {
		return "", err
	}
	if book.Amount <= 0 {
		return "", ErrBookNotAvailable
	}
	if req.ReturnDate == nil || req.ReturnDate.IsZero() {
		return "", ErrReturnDateRequired
	}

	trx := entity.Transaction{
		UserID:     callerID,
		BookID:     book.ID,
		TrxDate:    s.now(),
		ReturnDate: req.ReturnDate,
	}
	if err := s.ledger.CreateBorrow(ctx, &trx); err != nil {
		return "", err
	}

	s.log.Info("book borrowed",
		zap.String("transaction_id", trx.ID),
		zap.String("book_id", book.ID),
		zap.String("user_id", callerID))
	return trx.ID, nil
}

// Return records that a borrowed copy came back and puts it on the shelf
// again. A transaction can be returned exactly once; a second return is
// rejected with ErrAlreadyReturned instead of double-incrementing the
// shelf count. A return is never blocked by current availability: handing a
// copy back must succeed even when the shelf count is zero.
func (s *LendingService) Return(ctx context.Context, callerID string, req ReturnRequest) error {
	if callerID == "" {
		return ErrUnauthenticated
	}

	trx, err := s.ledger.GetByID(ctx, req.TransactionID)
	if err != nil {
		return err
	}
	if !trx.Outstanding() {
		return ErrAlreadyReturned
	}
	if _, err := s.books.GetByID(ctx, trx.BookID); err != nil {
		return err
	}

	received := s.now()
	if req.ReceivedDate != nil && !req.ReceivedDate.IsZero() {
		received = *req.ReceivedDate
	}
	trx.ReceivedDate = &received
	trx.TrxDate = s.now()

	if err := s.ledger.CompleteReturn(ctx, &trx); err != nil {
		return err
	}

	s.log.Info("book returned",
		zap.String("transaction_id", trx.ID),
		zap.String("book_id", trx.BookID),
		zap.String("user_id", callerID))
	return nil
}
