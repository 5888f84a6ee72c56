package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"lendingapi/internal/entity"
	"lendingapi/internal/usecase"
)

// maxTxAttempts bounds internal retries of the borrow/return unit when the
// database reports a transient conflict.
const maxTxAttempts = 3

// TransactionPG is the lending ledger. Its borrow and return operations pair
// every ledger write with the matching inventory adjustment inside a single
// database transaction, so the amount invariant cannot be corrupted by a
// partial failure.
type TransactionPG struct {
	db *pgxpool.Pool
}

func NewTransactionPG(db *pgxpool.Pool) *TransactionPG {
	return &TransactionPG{db: db}
}

// CreateBorrow inserts an outstanding ledger entry and takes one copy off the
// shelf. The decrement carries an `amount > 0` guard, so of N concurrent
// borrows against k copies exactly min(N, k) commit; the rest roll back with
// ErrBookNotAvailable.
func (r *TransactionPG) CreateBorrow(ctx context.Context, trx *entity.Transaction) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		const insertSQL = `
		INSERT INTO transactions (id, user_id, book_id, trx_date, return_date)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id, created_at, updated_at
		`
		err := tx.QueryRow(ctx, insertSQL, trx.UserID, trx.BookID, trx.TrxDate, trx.ReturnDate).
			Scan(&trx.ID, &trx.CreatedAt, &trx.UpdatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return usecase.ErrNotFound
			}
			return err
		}

		const decrementSQL = `
		UPDATE books
		SET amount = amount - 1, updated_at = NOW()
		WHERE id = $1 AND amount > 0
		`
		tag, err := tx.Exec(ctx, decrementSQL, trx.BookID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			// Another borrower took the last copy between the
			// availability check and this decrement.
			return usecase.ErrBookNotAvailable
		}
		return nil
	})
}

// CompleteReturn stamps the ledger entry's received date and puts the copy
// back on the shelf. The update is guarded on `received_date IS NULL`, so a
// transaction can be returned exactly once.
func (r *TransactionPG) CompleteReturn(ctx context.Context, trx *entity.Transaction) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		const updateSQL = `
		UPDATE transactions
		SET received_date = $2, trx_date = $3, updated_at = NOW()
		WHERE id = $1 AND received_date IS NULL
		RETURNING updated_at
		`
		err := tx.QueryRow(ctx, updateSQL, trx.ID, trx.ReceivedDate, trx.TrxDate).
			Scan(&trx.UpdatedAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.classifyReturnMiss(ctx, tx, trx.ID)
			}
			return err
		}

		const incrementSQL = `
		UPDATE books
		SET amount = amount + 1, updated_at = NOW()
		WHERE id = $1
		`
		tag, err := tx.Exec(ctx, incrementSQL, trx.BookID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return usecase.ErrNotFound
		}
		return nil
	})
}

// classifyReturnMiss tells a missing ledger row apart from one that was
// already returned.
func (r *TransactionPG) classifyReturnMiss(ctx context.Context, tx pgx.Tx, id string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM transactions WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return usecase.ErrAlreadyReturned
	}
	return usecase.ErrNotFound
}

// inTx runs fn inside a database transaction, retrying transient conflicts a
// bounded number of times before surfacing ErrInventoryConflict.
func (r *TransactionPG) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{}, fn)
		if err == nil || !isRetryableTxError(err) {
			return err
		}
	}
	return usecase.ErrInventoryConflict
}

func (r *TransactionPG) GetByID(ctx context.Context, id string) (entity.Transaction, error) {
	const query = `
	SELECT id, user_id, book_id, trx_date, return_date, received_date, created_at, updated_at
	FROM transactions
	WHERE id = $1
	LIMIT 1
	`
	var trx entity.Transaction
	err := r.db.QueryRow(ctx, query, id).Scan(
		&trx.ID, &trx.UserID, &trx.BookID, &trx.TrxDate,
		&trx.ReturnDate, &trx.ReceivedDate, &trx.CreatedAt, &trx.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Transaction{}, usecase.ErrNotFound
		}
		return entity.Transaction{}, err
	}
	return trx, nil
}

func (r *TransactionPG) List(ctx context.Context, p usecase.ListParams) ([]entity.Transaction, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&total); err != nil {
		return nil, 0, err
	}

	const dataSQL = `
	SELECT id, user_id, book_id, trx_date, return_date, received_date, created_at, updated_at
	FROM transactions
	ORDER BY trx_date DESC
	LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, dataSQL, p.Limit, p.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var trxs []entity.Transaction
	for rows.Next() {
		var trx entity.Transaction
		if err := rows.Scan(
			&trx.ID, &trx.UserID, &trx.BookID, &trx.TrxDate,
			&trx.ReturnDate, &trx.ReceivedDate, &trx.CreatedAt, &trx.UpdatedAt); err != nil {
			return nil, 0, err
		}
		trxs = append(trxs, trx)
	}
	return trxs, total, rows.Err()
}

// Delete is the administrative escape hatch; the lending workflow itself
// never deletes ledger entries.
func (r *TransactionPG) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return usecase.ErrNotFound
	}
	return nil
}
