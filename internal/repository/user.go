package repository

import (
	"context"
	"errors"

	"user-api/internal/domain"
)

var (
	// ErrNotFound indicates no user matched the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail indicates a write collided with the unique email index.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ListOptions bounds a paginated listing.
type ListOptions struct {
	Status domain.AccountStatus
	Offset int
	Limit  int
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, opts ListOptions) ([]domain.User, error)
	Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
