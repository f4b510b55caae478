package book

import (
	"context"

	"libraryapi/internal/pagination"
)

// Service applies the book business rules on top of a Repository.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save registers a new book. It fails with ErrISBNTaken when any book with
// the same ISBN exists; the check covers the whole table, so re-saving an
// already registered ISBN is rejected as well. The storage layer carries a
// unique constraint on isbn that backstops this check under concurrency.
func (s *Service) Save(ctx context.Context, b Book) (Book, error) {
	exists, err := s.repo.ExistsByISBN(ctx, b.ISBN)
	if err != nil {
		return Book{}, err
	}
	if exists {
		return Book{}, ErrISBNTaken
	}
	if err := s.repo.Create(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// GetByID returns the book with the given id, or ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id int64) (Book, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByISBN returns the book with the given isbn, or ErrNotFound.
func (s *Service) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	return s.repo.GetByISBN(ctx, isbn)
}

// Update overwrites the stored book keyed by its id and returns the new
// value. It does not verify the id exists first. A zero id is a caller
// defect and fails with ErrMissingID before any write.
func (s *Service) Update(ctx context.Context, b Book) (Book, error) {
	if b.ID == 0 {
		return Book{}, ErrMissingID
	}
	if err := s.repo.Update(ctx, &b); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Delete removes the stored book keyed by its id. A zero id fails with
// ErrMissingID before any write.
func (s *Service) Delete(ctx context.Context, b Book) error {
	if b.ID == 0 {
		return ErrMissingID
	}
	return s.repo.Delete(ctx, b.ID)
}

// Find runs a by-example paged search: the filter's non-empty fields become
// equality predicates.
func (s *Service) Find(ctx context.Context, f Filter, req pagination.PageRequest) (pagination.Page[Book], error) {
	books, total, err := s.repo.Find(ctx, f, req)
	if err != nil {
		return pagination.Page[Book]{}, err
	}
	return pagination.NewPage(books, total, req), nil
}
