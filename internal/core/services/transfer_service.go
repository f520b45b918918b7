package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kyukyubank/banking-service/internal/apperrors"
	"github.com/kyukyubank/banking-service/internal/core/domain"
	portsrepo "github.com/kyukyubank/banking-service/internal/core/ports/repositories"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/utils"
	"github.com/kyukyubank/banking-service/internal/utils/accountnumber"
	"github.com/shopspring/decimal"
)

type transferService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
	userRepo        portsrepo.UserRepositoryFacade
}

// NewTransferService creates the transfer service.
func NewTransferService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.TransferSvcFacade {
	return &transferService{accountRepo: accountRepo, transactionRepo: transactionRepo, userRepo: userRepo}
}

func (s *transferService) Transfer(ctx context.Context, userID int64, senderAccountID int64, req dto.TransferRequest) (*domain.TransferResult, error) {
	// Offline validation happens before any database work.
	if !accountnumber.Validate(req.ReceiverAccountNumber) {
		return nil, fmt.Errorf("%w: receiver account number %q fails check-digit validation",
			apperrors.ErrValidation, req.ReceiverAccountNumber)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: transfer amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}

	sender, err := s.loadSender(ctx, userID, senderAccountID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, sender.PasswordHash) {
		return nil, fmt.Errorf("%w: wrong account password", apperrors.ErrUnauthorized)
	}

	receiver, err := s.accountRepo.FindAccountByNumber(ctx, req.ReceiverAccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to load receiver account: %w", err)
	}
	if receiver == nil {
		return nil, fmt.Errorf("%w: no account with number %s", apperrors.ErrNotFound, req.ReceiverAccountNumber)
	}
	if receiver.AccountID == sender.AccountID {
		return nil, fmt.Errorf("%w: sender and receiver must differ", apperrors.ErrValidation)
	}
	if receiver.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: receiver account is %s", apperrors.ErrInactiveAccount, receiver.Status)
	}
	// Fast fail on an obviously short balance; the authoritative check runs
	// against the locked rows inside SaveTransfer.
	if sender.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is below requested %s",
			apperrors.ErrInsufficientBalance, sender.Balance, req.Amount)
	}

	senderName, err := s.holderName(ctx, sender.UserID)
	if err != nil {
		return nil, err
	}
	receiverName, err := s.holderName(ctx, receiver.UserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	groupSeq, err := s.transactionRepo.NextTransactionGroupSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve transaction group sequence: %w", err)
	}
	groupID, err := utils.NewTransactionGroupID(now, groupSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction group id: %w", err)
	}

	txn := domain.Transaction{
		GroupID:               groupID,
		Category:              domain.Internal,
		SenderAccountID:       &sender.AccountID,
		SenderName:            senderName,
		ReceiverBankCode:      string(domain.KyukyuBank),
		ReceiverAccountNumber: receiver.AccountNumber,
		ReceiverAccountID:     &receiver.AccountID,
		ReceiverName:          receiverName,
		Amount:                req.Amount,
		Status:                domain.StatusSuccess,
		TransactionDate:       now,
	}

	// The decomposition and the resulting balances are computed inside
	// SaveTransfer from the locked rows, never from the reads above.
	txnID, newBalances, err := s.transactionRepo.SaveTransfer(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist transfer", "groupID", groupID)
		return nil, fmt.Errorf("failed to persist transfer: %w", err)
	}

	s.LogInfo(ctx, "Transfer recorded",
		"transactionID", txnID, "groupID", groupID,
		"senderAccountID", sender.AccountID, "receiverAccountID", receiver.AccountID,
		"amount", req.Amount.String())
	return &domain.TransferResult{
		TransactionID: txnID,
		GroupID:       groupID,
		AccountID:     sender.AccountID,
		Balance:       newBalances[sender.AccountID],
	}, nil
}

func (s *transferService) GetTransaction(ctx context.Context, userID int64, transactionID int64) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", transactionID, err)
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transaction %d", apperrors.ErrNotFound, transactionID)
	}
	if err := s.authorizeTransactionAccess(ctx, userID, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transferService) ListTransactions(ctx context.Context, userID int64, accountID int64, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	if _, err := s.loadOwned(ctx, userID, accountID); err != nil {
		return nil, err
	}
	// One extra row is fetched so the response can report whether more exist.
	txns, err := s.transactionRepo.ListTransactionsByAccountID(ctx, accountID, params.Limit+1, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %d: %w", accountID, err)
	}
	return txns, nil
}

// authorizeTransactionAccess permits access when the user owns either side of
// the transaction.
func (s *transferService) authorizeTransactionAccess(ctx context.Context, userID int64, txn *domain.Transaction) error {
	for _, accountID := range []*int64{txn.SenderAccountID, txn.ReceiverAccountID} {
		if accountID == nil {
			continue
		}
		account, err := s.accountRepo.FindAccountByID(ctx, *accountID)
		if err != nil {
			return fmt.Errorf("failed to load account %d: %w", *accountID, err)
		}
		if account != nil && account.UserID == userID {
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %d is not visible to user %d", apperrors.ErrUnauthorized, txn.TransactionID, userID)
}

func (s *transferService) loadSender(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	account, err := s.loadOwned(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account %d is %s", apperrors.ErrInactiveAccount, accountID, account.Status)
	}
	return account, nil
}

func (s *transferService) loadOwned(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account %d: %w", accountID, err)
	}
	if account == nil {
		return nil, fmt.Errorf("%w: account %d", apperrors.ErrNotFound, accountID)
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %d does not belong to user %d", apperrors.ErrUnauthorized, accountID, userID)
	}
	return account, nil
}

func (s *transferService) holderName(ctx context.Context, userID int64) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load account holder %d: %w", userID, err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: user %d", apperrors.ErrNotFound, userID)
	}
	return user.Name, nil
}
