package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/bookshelf-auth/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	// Create inserts u and fills in its generated ID. Returns ErrDuplicate
	// when the email is already registered.
	Create(ctx context.Context, u *entity.User) error
	FindByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByResetCredentials returns the user whose id and reset token both
	// match and whose reset expiration is strictly after now, evaluated as a
	// single query.
	FindByResetCredentials(ctx context.Context, id, token string, now time.Time) (*entity.User, error)
	// SaveResetToken stores a reset token and its expiration for the user,
	// replacing any pending one. The password hash is left untouched.
	SaveResetToken(ctx context.Context, id, token string, expiresAt time.Time) error
	// ConsumeResetToken sets passwordHash and clears the reset state, but only
	// while id, token and expiration > now still match. The check and the write
	// are one atomic operation; ErrNotFound means nothing matched.
	ConsumeResetToken(ctx context.Context, id, token string, now time.Time, passwordHash string) error
}
