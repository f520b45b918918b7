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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransferServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	mockUserRepo    *MockUserRepository
	service         portssvc.TransferSvcFacade
}

func (s *TransferServiceTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.mockUserRepo = new(MockUserRepository)
	s.service = services.NewTransferService(s.mockAccountRepo, s.mockTxnRepo, s.mockUserRepo)
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}

func (s *TransferServiceTestSuite) account(accountID, userID int64, number, balance string) *domain.Account {
	hash, err := utils.HashPassword("1234")
	s.Require().NoError(err)
	return &domain.Account{
		AccountID:     accountID,
		UserID:        userID,
		AccountNumber: number,
		PasswordHash:  hash,
		BankCode:      domain.KyukyuBank,
		Type:          domain.Deposit,
		CurrencyCode:  "KRW",
		Status:        domain.AccountActive,
		Balance:       decimal.RequireFromString(balance),
		OpenedAt:      time.Now(),
	}
}

func (s *TransferServiceTestSuite) TestTransfer_Success() {
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "1000.00")
	receiver := s.account(2, 200, "100000000021", "500.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000021").Return(receiver, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(100)).Return(&domain.User{UserID: 100, Name: "Kim Minsu"}, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(200)).Return(&domain.User{UserID: 200, Name: "Lee Jiyoung"}, nil).Once()
	s.mockTxnRepo.On("NextTransactionGroupSequence", ctx).Return(int64(55), nil).Once()
	s.mockTxnRepo.On("SaveTransfer", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Category == domain.Internal &&
				txn.SenderName == "Kim Minsu" &&
				txn.ReceiverName == "Lee Jiyoung" &&
				txn.Status == domain.StatusSuccess &&
				txn.Amount.Equal(decimal.RequireFromString("250.50")) &&
				txn.SenderAccountID != nil && *txn.SenderAccountID == 1 &&
				txn.ReceiverAccountID != nil && *txn.ReceiverAccountID == 2
		}),
	).Return(int64(777), map[int64]decimal.Decimal{
		1: decimal.RequireFromString("749.50"),
		2: decimal.RequireFromString("750.50"),
	}, nil).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000021",
		Amount:                decimal.RequireFromString("250.50"),
		Password:              "1234",
	})

	s.Require().NoError(err)
	s.Equal(int64(777), res.TransactionID)
	s.Equal(int64(1), res.AccountID)
	s.True(res.Balance.Equal(decimal.RequireFromString("749.50")))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransferServiceTestSuite) TestTransfer_BadCheckDigit() {
	ctx := context.Background()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000019",
		Amount:                decimal.NewFromInt(100),
		Password:              "1234",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(res)
	// The bad number is rejected before any repository access.
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (s *TransferServiceTestSuite) TestTransfer_SelfTransfer() {
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "1000.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000013").Return(sender, nil).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000013",
		Amount:                decimal.NewFromInt(100),
		Password:              "1234",
	})

	s.Require().ErrorIs(err, apperrors.ErrValidation)
	s.Nil(res)
}

func (s *TransferServiceTestSuite) TestTransfer_InsufficientBalance() {
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "50.00")
	receiver := s.account(2, 200, "100000000021", "500.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000021").Return(receiver, nil).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000021",
		Amount:                decimal.NewFromInt(100),
		Password:              "1234",
	})

	s.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.Nil(res)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransfer", mock.Anything, mock.Anything)
}

func (s *TransferServiceTestSuite) TestTransfer_ReportsBalanceFromLockedRows() {
	// A concurrent movement commits between the sender pre-read and the row
	// lock; the balance handed back must be the one SaveTransfer computed
	// under lock.
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "1000.00")
	receiver := s.account(2, 200, "100000000021", "500.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000021").Return(receiver, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(100)).Return(&domain.User{UserID: 100, Name: "Kim Minsu"}, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(200)).Return(&domain.User{UserID: 200, Name: "Lee Jiyoung"}, nil).Once()
	s.mockTxnRepo.On("NextTransactionGroupSequence", ctx).Return(int64(56), nil).Once()
	s.mockTxnRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(int64(778), map[int64]decimal.Decimal{
			1: decimal.RequireFromString("599.50"),
			2: decimal.RequireFromString("900.50"),
		}, nil).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000021",
		Amount:                decimal.RequireFromString("250.50"),
		Password:              "1234",
	})

	s.Require().NoError(err)
	s.True(res.Balance.Equal(decimal.RequireFromString("599.50")))
	s.mockTxnRepo.AssertExpectations(s.T())
}

func (s *TransferServiceTestSuite) TestTransfer_InsufficientBalanceUnderLock() {
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "1000.00")
	receiver := s.account(2, 200, "100000000021", "500.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000021").Return(receiver, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(100)).Return(&domain.User{UserID: 100, Name: "Kim Minsu"}, nil).Once()
	s.mockUserRepo.On("FindUserByID", ctx, int64(200)).Return(&domain.User{UserID: 200, Name: "Lee Jiyoung"}, nil).Once()
	s.mockTxnRepo.On("NextTransactionGroupSequence", ctx).Return(int64(57), nil).Once()
	s.mockTxnRepo.On("SaveTransfer", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(int64(0), nil, apperrors.ErrInsufficientBalance).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000021",
		Amount:                decimal.RequireFromString("250.50"),
		Password:              "1234",
	})

	s.Require().ErrorIs(err, apperrors.ErrInsufficientBalance)
	s.Nil(res)
}

func (s *TransferServiceTestSuite) TestTransfer_UnknownReceiver() {
	ctx := context.Background()
	sender := s.account(1, 100, "100000000013", "1000.00")

	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(sender, nil).Once()
	s.mockAccountRepo.On("FindAccountByNumber", ctx, "100000000021").Return(nil, nil).Once()

	res, err := s.service.Transfer(ctx, 100, 1, dto.TransferRequest{
		ReceiverAccountNumber: "100000000021",
		Amount:                decimal.NewFromInt(100),
		Password:              "1234",
	})

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(res)
}

func (s *TransferServiceTestSuite) TestGetTransaction_VisibleToReceiverSide() {
	ctx := context.Background()
	senderAccountID, receiverAccountID := int64(1), int64(2)
	txn := &domain.Transaction{
		TransactionID:     321,
		Category:          domain.Internal,
		SenderAccountID:   &senderAccountID,
		ReceiverAccountID: &receiverAccountID,
		Amount:            decimal.NewFromInt(10),
		Status:            domain.StatusSuccess,
	}
	senderAccount := s.account(1, 100, "100000000013", "0")
	receiverAccount := s.account(2, 200, "100000000021", "0")

	s.mockTxnRepo.On("FindTransactionByID", ctx, int64(321)).Return(txn, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(senderAccount, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, int64(2)).Return(receiverAccount, nil).Once()

	got, err := s.service.GetTransaction(ctx, 200, 321)

	s.Require().NoError(err)
	s.Equal(int64(321), got.TransactionID)
}

func (s *TransferServiceTestSuite) TestGetTransaction_HiddenFromStrangers() {
	ctx := context.Background()
	senderAccountID := int64(1)
	txn := &domain.Transaction{
		TransactionID:   321,
		Category:        domain.Withdrawal,
		SenderAccountID: &senderAccountID,
		Amount:          decimal.NewFromInt(10),
		Status:          domain.StatusSuccess,
	}
	senderAccount := s.account(1, 100, "100000000013", "0")

	s.mockTxnRepo.On("FindTransactionByID", ctx, int64(321)).Return(txn, nil).Once()
	s.mockAccountRepo.On("FindAccountByID", ctx, int64(1)).Return(senderAccount, nil).Once()

	got, err := s.service.GetTransaction(ctx, 999, 321)

	s.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	s.Nil(got)
}
