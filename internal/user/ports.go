package user

import "context"

//go:generate mockgen -source=ports.go -destination=mock_repository_test.go -package=user

// Repository defines the contract for user storage.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
}
