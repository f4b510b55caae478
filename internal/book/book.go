package book

import "errors"

var (
	// ErrNotFound is returned when no book matches the lookup. Absence is a
	// normal outcome; only the transport layer turns it into a 404.
	ErrNotFound = errors.New("book not found")

	// ErrISBNTaken is returned by Save when the ISBN is already registered.
	// The message is surfaced verbatim in the error response.
	ErrISBNTaken = errors.New("Isbn ja Cadastrado")

	// ErrMissingID is returned when Update or Delete receives a book that
	// was never persisted. Callers are expected to pass stored books only.
	ErrMissingID = errors.New("book id must not be zero")
)

// Book represents a catalog entry.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// Filter holds the by-example search predicates for Find. Empty fields are
// ignored; non-empty fields are AND-combined equality matches.
type Filter struct {
	Title  string
	Author string
	ISBN   string
}
