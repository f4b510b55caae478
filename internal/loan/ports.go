package loan

import (
	"context"
	"time"

	"libraryapi/internal/pagination"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=loan

// Repository defines the contract for loan storage.
type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id int64) (Loan, error)
	ExistsOutstandingByBook(ctx context.Context, bookID int64) (bool, error)
	Update(ctx context.Context, l *Loan) error
	Find(ctx context.Context, f Filter, req pagination.PageRequest) ([]WithBook, int, error)
	FindByBook(ctx context.Context, bookID int64, req pagination.PageRequest) ([]Loan, int, error)
	AllLate(ctx context.Context, cutoff time.Time) ([]Loan, error)
}
