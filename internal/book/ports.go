package book

import (
	"context"

	"libraryapi/internal/pagination"
)

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=book

// Repository defines the contract for book storage.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id int64) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	ExistsByISBN(ctx context.Context, isbn string) (bool, error)
	Update(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id int64) error
	Find(ctx context.Context, f Filter, req pagination.PageRequest) ([]Book, int, error)
}
