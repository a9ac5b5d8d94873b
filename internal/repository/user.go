package repository

import (
	"context"
	"errors"

	"taskboard/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup matches no row. Task lookups are
	// scoped by owner, so "absent" and "not owned" are indistinguishable here.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when creating a user with an existing email.
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetIdentity resolves id, email and admin flag only; the password hash
	// is never loaded on this path.
	GetIdentity(ctx context.Context, id int64) (*domain.User, error)
}
