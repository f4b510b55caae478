package loan

import (
	"context"
	"time"

	"libraryapi/internal/pagination"
)

// Service applies the loan business rules on top of a Repository.
type Service struct {
	repo         Repository
	loanDuration time.Duration
	now          func() time.Time
}

// NewService creates a new loan service. loanDuration is how long a book may
// be out before the loan counts as late.
func NewService(repo Repository, loanDuration time.Duration) *Service {
	return &Service{
		repo:         repo,
		loanDuration: loanDuration,
		now:          time.Now,
	}
}

// Save creates a new loan. It fails with ErrBookAlreadyLoaned while an
// outstanding loan exists for the same book; the repository is not invoked
// for the rejected loan. The storage layer carries a partial unique index on
// (book_id) for outstanding loans that backstops this check under
// concurrency.
func (s *Service) Save(ctx context.Context, l Loan) (Loan, error) {
	outstanding, err := s.repo.ExistsOutstandingByBook(ctx, l.BookID)
	if err != nil {
		return Loan{}, err
	}
	if outstanding {
		return Loan{}, ErrBookAlreadyLoaned
	}
	if err := s.repo.Create(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// GetByID returns the loan with the given id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (Loan, error) {
	return s.repo.GetByID(ctx, id)
}

// Update overwrites the stored loan keyed by its id and returns the new
// value. This is the path that marks a loan returned. The zero-id guard
// matches Book.Update: both mutating operations reject unsaved entities.
func (s *Service) Update(ctx context.Context, l Loan) (Loan, error) {
	if l.ID == 0 {
		return Loan{}, ErrMissingID
	}
	if err := s.repo.Update(ctx, &l); err != nil {
		return Loan{}, err
	}
	return l, nil
}

// Find runs a paged search where the filter's non-empty isbn and customer
// fields are OR-combined.
func (s *Service) Find(ctx context.Context, f Filter, req pagination.PageRequest) (pagination.Page[WithBook], error) {
	loans, total, err := s.repo.Find(ctx, f, req)
	if err != nil {
		return pagination.Page[WithBook]{}, err
	}
	return pagination.NewPage(loans, total, req), nil
}

// GetLoansByBook returns the page of loans referencing the given book.
func (s *Service) GetLoansByBook(ctx context.Context, bookID int64, req pagination.PageRequest) (pagination.Page[Loan], error) {
	loans, total, err := s.repo.FindByBook(ctx, bookID, req)
	if err != nil {
		return pagination.Page[Loan]{}, err
	}
	return pagination.NewPage(loans, total, req), nil
}

// GetAllLateLoans returns every outstanding loan whose loan date is earlier
// than now minus the configured loan duration. This list feeds the
// notification job.
func (s *Service) GetAllLateLoans(ctx context.Context) ([]Loan, error) {
	cutoff := s.now().Add(-s.loanDuration)
	return s.repo.AllLate(ctx, cutoff)
}
