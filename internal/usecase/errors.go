package usecase

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when a unique constraint would be violated.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthenticated is returned when an operation that requires a
	// caller identity is invoked without one.
	ErrUnauthenticated = errors.New("caller is not authenticated")

	// ErrBookNotAvailable is returned when a borrow is attempted against a
	// book with no copies on the shelf.
	ErrBookNotAvailable = errors.New("book is not available")

	// ErrReturnDateRequired is returned when a borrow carries no planned
	// return date.
	ErrReturnDateRequired = errors.New("return date is required to borrow")

	// ErrAlreadyReturned is returned when a return targets a transaction
	// whose copy was already received back.
	ErrAlreadyReturned = errors.New("transaction already returned")

	// ErrInventoryConflict is returned when concurrent modifications kept
	// the borrow/return unit from committing after internal retries.
	ErrInventoryConflict = errors.New("inventory update conflict")
)
