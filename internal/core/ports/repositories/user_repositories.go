package repositories

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by its unique identifier.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByLoginID retrieves a user by its login identifier.
	FindUserByLoginID(ctx context.Context, loginID string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user and returns its generated ID.
	SaveUser(ctx context.Context, user domain.User) (int64, error)

	// DeleteUser removes a user.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
