package services

import (
	"context"

	"github.com/kyukyubank/banking-service/internal/core/domain"
	"github.com/kyukyubank/banking-service/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by its unique identifier.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// CreateUser registers a new user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// DeleteUser removes a user. Only the user itself may do this.
	DeleteUser(ctx context.Context, requesterID int64, userID int64) error
}

// AuthSvc defines authentication operations.
type AuthSvc interface {
	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	AuthSvc
}
