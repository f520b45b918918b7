package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/utils"
	"github.com/kyukyubank/banking-service/pkg/config"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, cfg: cfg}
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if existing, err := s.userRepo.FindUserByLoginID(ctx, req.LoginID); err != nil {
		return nil, fmt.Errorf("failed to check login id availability: %w", err)
	} else if existing != nil {
		return nil, fmt.Errorf("%w: login id %q is already taken", apperrors.ErrValidation, req.LoginID)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		LoginID:      req.LoginID,
		PasswordHash: hash,
		Name:         req.Name,
		NameEn:       req.NameEn,
		DateOfBirth:  req.DateOfBirth,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	userID, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.UserID = userID

	s.LogInfo(ctx, "User created", "userID", userID, "loginID", req.LoginID)
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, requesterID int64, userID int64) error {
	if requesterID != userID {
		return fmt.Errorf("%w: users may only delete themselves", apperrors.ErrUnauthorized)
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", "userID", userID)
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	s.LogInfo(ctx, "User deleted", "userID", userID)
	return nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByLoginID(ctx, req.LoginID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		// Same error for unknown login and bad password.
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(strconv.FormatInt(user.UserID, 10), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", "userID", user.UserID)
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", "userID", user.UserID)
	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.cfg.JWTExpiryDuration),
		User:        dto.ToUserResponse(user),
	}, nil
}
