package entity

import "time"

// Transaction is one ledger entry linking a user and a book. A transaction
// with a nil ReceivedDate is outstanding: the copy is out with the borrower.
type Transaction struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	BookID       string     `json:"book_id"`
	TrxDate      time.Time  `json:"trx_date"`
	ReturnDate   *time.Time `json:"return_date,omitempty"`
	ReceivedDate *time.Time `json:"received_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Outstanding reports whether the borrowed copy has not been received back.
func (t Transaction) Outstanding() bool {
	return t.ReceivedDate == nil
}
