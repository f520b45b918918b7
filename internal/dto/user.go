package dto

import (
	"time"

	"github.com/kyukyubank/banking-service/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a new user.
type CreateUserRequest struct {
	LoginID     string `json:"loginID" binding:"required,min=4,max=30"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	// NameEn is the optional romanized name.
	NameEn string `json:"nameEn"`
	// DateOfBirth is yyyyMMdd.
	DateOfBirth string `json:"dateOfBirth" binding:"required,len=8,numeric"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	LoginID  string `json:"loginID" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token and the authenticated user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// UserResponse defines the data returned for a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID      int64     `json:"userID"`
	LoginID     string    `json:"loginID"`
	Name        string    `json:"name"`
	NameEn      string    `json:"nameEn,omitempty"`
	DateOfBirth string    `json:"dateOfBirth"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		LoginID:     user.LoginID,
		Name:        user.Name,
		NameEn:      user.NameEn,
		DateOfBirth: user.DateOfBirth,
		CreatedAt:   user.CreatedAt,
	}
}
