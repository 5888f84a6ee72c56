package entity

import "time"

type Book struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	WriterName string    `json:"writer_name"`
	CategoryID string    `json:"category_id"`
	Amount     int       `json:"amount"` // copies currently on the shelf, never negative
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
