package loan

import (
	"errors"
	"time"

	"libraryapi/internal/book"
)

var (
	// ErrNotFound is returned when no loan matches the lookup.
	ErrNotFound = errors.New("loan not found")

	// ErrBookAlreadyLoaned is returned by Save while an outstanding loan
	// exists for the same book. The message is surfaced verbatim.
	ErrBookAlreadyLoaned = errors.New("Book already loaned")

	// ErrMissingID is returned when Update receives a loan that was never
	// persisted.
	ErrMissingID = errors.New("loan id must not be zero")
)

// Loan represents one lending of a book to a customer. A nil or false
// Returned means the loan is outstanding.
type Loan struct {
	ID            int64     `json:"id"`
	BookID        int64     `json:"-"`
	Customer      string    `json:"customer"`
	CustomerEmail string    `json:"customerEmail"`
	LoanDate      time.Time `json:"loanDate"`
	Returned      *bool     `json:"returned"`
}

// Outstanding reports whether the book has not come back yet.
func (l Loan) Outstanding() bool {
	return l.Returned == nil || !*l.Returned
}

// WithBook is a loan joined with its book, the shape returned by Find.
type WithBook struct {
	Loan
	Book book.Book `json:"book"`
}

// Filter holds the search predicates for Find. Non-empty fields are
// OR-combined: a loan matches when its book's isbn or its customer equals
// the given value.
type Filter struct {
	ISBN     string
	Customer string
}
