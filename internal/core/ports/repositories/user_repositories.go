package repositories

import (
	"context"

	"github.com/finvolt/banking-core/internal/core/domain"
)

// UserRepositoryFacade defines operations for user data.
type UserRepositoryFacade interface {
	// SaveUser persists a new user. Returns apperrors.ErrDuplicate when the
	// email is already registered.
	SaveUser(ctx context.Context, user domain.User) error

	// FindUserByID retrieves a user by ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
