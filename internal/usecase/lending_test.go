package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lendingapi/internal/entity"
)

// fakeCatalog is an in-memory BookRepository. Its mutex doubles as the
// serialization point for the fakeLedger's atomic units, so concurrent
// borrows contend the same way they would against the database.
type fakeCatalog struct {
	mu    sync.Mutex
	books map[string]entity.Book
}

func newFakeCatalog(books ...entity.Book) *fakeCatalog {
	c := &fakeCatalog{books: make(map[string]entity.Book)}
	for _, b := range books {
		c.books[b.ID] = b
	}
	return c
}

func (c *fakeCatalog) Create(_ context.Context, b *entity.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.books[b.ID] = *b
	return nil
}

func (c *fakeCatalog) GetByID(_ context.Context, id string) (entity.Book, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.books[id]
	if !ok {
		return entity.Book{}, ErrNotFound
	}
	return b, nil
}

func (c *fakeCatalog) Update(_ context.Context, b *entity.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.books[b.ID]; !ok {
		return ErrNotFound
	}
	c.books[b.ID] = *b
	return nil
}

func (c *fakeCatalog) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.books, id)
	return nil
}

func (c *fakeCatalog) List(_ context.Context, _ ListParams) ([]entity.Book, int, error) {
	return nil, 0, nil
}

func (c *fakeCatalog) ListAvailable(_ context.Context, _ string) ([]entity.Book, error) {
	return nil, nil
}

// fakeLedger is an in-memory TransactionRepository whose CreateBorrow and
// CompleteReturn mutate the ledger and the catalog under one lock, matching
// the all-or-nothing contract of the Postgres implementation.
type fakeLedger struct {
	catalog *fakeCatalog
	trxs    map[string]entity.Transaction
	seq     int
}

func newFakeLedger(catalog *fakeCatalog) *fakeLedger {
	return &fakeLedger{catalog: catalog, trxs: make(map[string]entity.Transaction)}
}

func (l *fakeLedger) CreateBorrow(_ context.Context, trx *entity.Transaction) error {
	l.catalog.mu.Lock()
	defer l.catalog.mu.Unlock()

	book, ok := l.catalog.books[trx.BookID]
	if !ok {
		return ErrNotFound
	}
	if book.Amount <= 0 {
		return ErrBookNotAvailable
	}
	book.Amount--
	l.catalog.books[trx.BookID] = book

	l.seq++
	trx.ID = fmt.Sprintf("trx-%d", l.seq)
	l.trxs[trx.ID] = *trx
	return nil
}

func (l *fakeLedger) CompleteReturn(_ context.Context, trx *entity.Transaction) error {
	l.catalog.mu.Lock()
	defer l.catalog.mu.Unlock()

	stored, ok := l.trxs[trx.ID]
	if !ok {
		return ErrNotFound
	}
	if stored.ReceivedDate != nil {
		return ErrAlreadyReturned
	}
	l.trxs[trx.ID] = *trx

	book, ok := l.catalog.books[trx.BookID]
	if !ok {
		return ErrNotFound
	}
	book.Amount++
	l.catalog.books[trx.BookID] = book
	return nil
}

func (l *fakeLedger) GetByID(_ context.Context, id string) (entity.Transaction, error) {
	l.catalog.mu.Lock()
	defer l.catalog.mu.Unlock()
	trx, ok := l.trxs[id]
	if !ok {
		return entity.Transaction{}, ErrNotFound
	}
	return trx, nil
}

func (l *fakeLedger) List(_ context.Context, _ ListParams) ([]entity.Transaction, int, error) {
	return nil, 0, nil
}

func (l *fakeLedger) Delete(_ context.Context, id string) error {
	l.catalog.mu.Lock()
	defer l.catalog.mu.Unlock()
	delete(l.trxs, id)
	return nil
}

func newTestService(books ...entity.Book) (*LendingService, *fakeCatalog, *fakeLedger) {
	catalog := newFakeCatalog(books...)
	ledger := newFakeLedger(catalog)
	svc := NewLendingService(catalog, ledger, zap.NewNop())
	return svc, catalog, ledger
}

func datePtr(t time.Time) *time.Time { return &t }

func TestLendingService_Borrow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	returnDate := now.AddDate(0, 0, 7)

	t.Run("happy path decrements amount and records an outstanding transaction", func(t *testing.T) {
		svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Title: "Dracula", Amount: 3})
		svc.now = func() time.Time { return now }

		trxID, err := svc.Borrow(ctx, "user-1", BorrowRequest{BookID: "book-1", ReturnDate: datePtr(returnDate)})
		require.NoError(t, err)
		require.NotEmpty(t, trxID)

		book, err := catalog.GetByID(ctx, "book-1")
		require.NoError(t, err)
		assert.Equal(t, 2, book.Amount)

		trx, err := ledger.GetByID(ctx, trxID)
		require.NoError(t, err)
		assert.Equal(t, "user-1", trx.UserID)
		assert.Equal(t, "book-1", trx.BookID)
		assert.Equal(t, now, trx.TrxDate)
		assert.Equal(t, returnDate, *trx.ReturnDate)
		assert.True(t, trx.Outstanding())
	})

	t.Run("missing return date is rejected with no side effects", func(t *testing.T) {
		svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Amount: 3})

		_, err := svc.Borrow(ctx, "user-1", BorrowRequest{BookID: "book-1"})
		assert.ErrorIs(t, err, ErrReturnDateRequired)

		book, _ := catalog.GetByID(ctx, "book-1")
		assert.Equal(t, 3, book.Amount)
		assert.Empty(t, ledger.trxs)
	})

	t.Run("zero stock is rejected with no side effects", func(t *testing.T) {
		svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Amount: 0})

		_, err := svc.Borrow(ctx, "user-1", BorrowRequest{BookID: "book-1", ReturnDate: datePtr(returnDate)})
		assert.ErrorIs(t, err, ErrBookNotAvailable)

		book, _ := catalog.GetByID(ctx, "book-1")
		assert.Equal(t, 0, book.Amount)
		assert.Empty(t, ledger.trxs)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Borrow(ctx, "user-1", BorrowRequest{BookID: "missing", ReturnDate: datePtr(returnDate)})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty caller fails closed", func(t *testing.T) {
		svc, _, ledger := newTestService(entity.Book{ID: "book-1", Amount: 3})

		_, err := svc.Borrow(ctx, "", BorrowRequest{BookID: "book-1", ReturnDate: datePtr(returnDate)})
		assert.ErrorIs(t, err, ErrUnauthenticated)
		assert.Empty(t, ledger.trxs)
	})
}

func TestLendingService_Return(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	later := now.AddDate(0, 0, 5)

	borrow := func(t *testing.T, svc *LendingService) string {
		t.Helper()
		trxID, err := svc.Borrow(ctx, "user-1", BorrowRequest{BookID: "book-1", ReturnDate: datePtr(now.AddDate(0, 0, 7))})
		require.NoError(t, err)
		return trxID
	}

	t.Run("happy path stamps received date and restores amount", func(t *testing.T) {
		svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Amount: 3})
		svc.now = func() time.Time { return now }

		trxID := borrow(t, svc)
		svc.now = func() time.Time { return later }

		err := svc.Return(ctx, "user-1", ReturnRequest{TransactionID: trxID})
		require.NoError(t, err)

		trx, err := ledger.GetByID(ctx, trxID)
		require.NoError(t, err)
		require.NotNil(t, trx.ReceivedDate)
		assert.Equal(t, later, *trx.ReceivedDate)
		assert.Equal(t, later, trx.TrxDate)

		book, _ := catalog.GetByID(ctx, "book-1")
		assert.Equal(t, 3, book.Amount)
	})

	t.Run("caller supplied received date is kept", func(t *testing.T) {
		svc, _, ledger := newTestService(entity.Book{ID: "book-1", Amount: 1})
		svc.now = func() time.Time { return now }

		trxID := borrow(t, svc)
		received := now.AddDate(0, 0, 3)

		err := svc.Return(ctx, "user-1", ReturnRequest{TransactionID: trxID, ReceivedDate: datePtr(received)})
		require.NoError(t, err)

		trx, _ := ledger.GetByID(ctx, trxID)
		assert.Equal(t, received, *trx.ReceivedDate)
	})

	t.Run("return succeeds even when the shelf is empty", func(t *testing.T) {
		// The last copy is out on loan; handing it back must not be
		// blocked by the zero shelf count it is about to fix.
		svc, catalog, _ := newTestService(entity.Book{ID: "book-1", Amount: 1})
		svc.now = func() time.Time { return now }

		trxID := borrow(t, svc)
		book, _ := catalog.GetByID(ctx, "book-1")
		require.Equal(t, 0, book.Amount)

		err := svc.Return(ctx, "user-1", ReturnRequest{TransactionID: trxID})
		require.NoError(t, err)

		book, _ = catalog.GetByID(ctx, "book-1")
		assert.Equal(t, 1, book.Amount)
	})

	t.Run("second return is rejected and does not double increment", func(t *testing.T) {
		svc, catalog, _ := newTestService(entity.Book{ID: "book-1", Amount: 2})
		svc.now = func() time.Time { return now }

		trxID := borrow(t, svc)
		require.NoError(t, svc.Return(ctx, "user-1", ReturnRequest{TransactionID: trxID}))

		err := svc.Return(ctx, "user-1", ReturnRequest{TransactionID: trxID})
		assert.ErrorIs(t, err, ErrAlreadyReturned)

		book, _ := catalog.GetByID(ctx, "book-1")
		assert.Equal(t, 2, book.Amount)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _, _ := newTestService(entity.Book{ID: "book-1", Amount: 1})

		err := svc.Return(ctx, "user-1", ReturnRequest{TransactionID: "missing"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty caller fails closed", func(t *testing.T) {
		svc, _, _ := newTestService(entity.Book{ID: "book-1", Amount: 1})

		err := svc.Return(ctx, "", ReturnRequest{TransactionID: "trx-1"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestLendingService_ConcurrentBorrowLastCopy(t *testing.T) {
	ctx := context.Background()
	svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Amount: 1})
	returnDate := time.Now().AddDate(0, 0, 7)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Borrow(ctx, fmt.Sprintf("user-%d", i), BorrowRequest{BookID: "book-1", ReturnDate: &returnDate})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrBookNotAvailable)
		}
	}
	assert.Equal(t, 1, succeeded)

	book, _ := catalog.GetByID(ctx, "book-1")
	assert.Equal(t, 0, book.Amount)
	assert.Len(t, ledger.trxs, 1)
}

func TestLendingService_ConcurrentBorrowsNeverOversell(t *testing.T) {
	ctx := context.Background()
	const copies = 3
	const attempts = 8

	svc, catalog, ledger := newTestService(entity.Book{ID: "book-1", Amount: copies})
	returnDate := time.Now().AddDate(0, 0, 7)

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Borrow(ctx, fmt.Sprintf("user-%d", i), BorrowRequest{BookID: "book-1", ReturnDate: &returnDate})
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrBookNotAvailable)
		}
	}
	assert.Equal(t, copies, succeeded)

	book, _ := catalog.GetByID(ctx, "book-1")
	assert.Equal(t, 0, book.Amount)
	assert.Len(t, ledger.trxs, copies)
}
