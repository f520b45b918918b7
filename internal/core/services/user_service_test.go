package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/core/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/utils"
	"github.com/kyukyubank/banking-service/pkg/config"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testServiceConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret-test-secret-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "banking-service-test",
	}
}

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockUserRepo, testServiceConfig())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		LoginID:     "hong.gildong",
		Password:    "s3cret-pass",
		Name:        "Hong Gildong",
		DateOfBirth: "19900101",
	}

	s.mockUserRepo.On("FindUserByLoginID", ctx, req.LoginID).Return(nil, nil).Once()
	s.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.LoginID == req.LoginID && u.Name == req.Name && u.PasswordHash != req.Password
	})).Return(int64(42), nil).Once()

	user, err := s.service.CreateUser(ctx, req)

	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(int64(42), user.UserID)
	s.Equal(req.LoginID, user.LoginID)
	s.True(utils.CheckPasswordHash(req.Password, user.PasswordHash))
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_DuplicateLoginID() {
	ctx := context.Background()
	existing := &domain.User{UserID: 1, LoginID: "hong.gildong"}
	s.mockUserRepo.On("FindUserByLoginID", ctx, "hong.gildong").Return(existing, nil).Once()

	user, err := s.service.CreateUser(ctx, dto.CreateUserRequest{
		LoginID:     "hong.gildong",
		Password:    "s3cret-pass",
		Name:        "Hong Gildong",
		DateOfBirth: "19900101",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(user)
	s.mockUserRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByID", ctx, int64(7)).Return(nil, nil).Once()

	user, err := s.service.GetUserByID(ctx, 7)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(user)
}

func (s *UserServiceTestSuite) TestDeleteUser_OnlySelf() {
	ctx := context.Background()

	err := s.service.DeleteUser(ctx, 1, 2)

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.mockUserRepo.AssertNotCalled(s.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-pass")
	s.Require().NoError(err)
	user := &domain.User{UserID: 9, LoginID: "kim.cs", PasswordHash: hash, Name: "Kim Cheolsu"}

	s.mockUserRepo.On("FindUserByLoginID", ctx, "kim.cs").Return(user, nil).Once()

	res, err := s.service.Login(ctx, dto.LoginRequest{LoginID: "kim.cs", Password: "correct-pass"})

	s.Require().NoError(err)
	s.Require().NotNil(res)
	s.NotEmpty(res.AccessToken)
	s.Equal(int64(9), res.User.UserID)

	claims, err := utils.ParseAndValidateJWT(res.AccessToken, testServiceConfig().JWTSecret)
	s.Require().NoError(err)
	s.Equal("9", claims.Subject)
}

func (s *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-pass")
	s.Require().NoError(err)
	user := &domain.User{UserID: 9, LoginID: "kim.cs", PasswordHash: hash}

	s.mockUserRepo.On("FindUserByLoginID", ctx, "kim.cs").Return(user, nil).Once()

	res, err := s.service.Login(ctx, dto.LoginRequest{LoginID: "kim.cs", Password: "wrong"})

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Nil(res)
}

func (s *UserServiceTestSuite) TestLogin_UnknownLoginID() {
	ctx := context.Background()
	s.mockUserRepo.On("FindUserByLoginID", ctx, "nobody").Return(nil, nil).Once()

	res, err := s.service.Login(ctx, dto.LoginRequest{LoginID: "nobody", Password: "whatever"})

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Nil(res)
}
