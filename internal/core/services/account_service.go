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

const defaultCurrencyCode = "KRW"

type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionRepositoryFacade
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, transactionRepo portsrepo.TransactionRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, transactionRepo: transactionRepo}
}

func (s *accountService) CreateAccount(ctx context.Context, userID int64, req dto.CreateAccountRequest) (*domain.Account, error) {
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.Type)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash account password: %w", err)
	}

	seq, err := s.accountRepo.NextAccountNumberSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve account number sequence: %w", err)
	}

	number, err := accountnumber.Generate(req.Type.Code(), seq)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	// The sequence guarantees uniqueness per type code; a hit here means the
	// sequence and the accounts table diverged.
	taken, err := s.accountRepo.ExistsByAccountNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to check account number availability: %w", err)
	}
	if taken {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrDuplicateAccountNumber, number)
	}

	currency := req.CurrencyCode
	if currency == "" {
		currency = defaultCurrencyCode
	}

	now := time.Now()
	account := domain.Account{
		UserID:        userID,
		AccountNumber: number,
		PasswordHash:  hash,
		BankCode:      domain.KyukyuBank,
		Type:          req.Type,
		CurrencyCode:  currency,
		Status:        domain.AccountActive,
		Balance:       decimal.Zero,
		OpenedAt:      now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	accountID, err := s.accountRepo.SaveAccount(ctx, account)
	if err != nil {
		s.LogError(ctx, err, "Failed to save account", "userID", userID)
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	account.AccountID = accountID

	s.LogInfo(ctx, "Account opened", "accountID", accountID, "accountNumber", number, "type", req.Type)
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	return s.loadOwnedAccount(ctx, userID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, userID int64) ([]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %d: %w", userID, err)
	}
	return accounts, nil
}

func (s *accountService) CloseAccount(ctx context.Context, userID int64, accountID int64) error {
	account, err := s.loadOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return err
	}
	if account.Status == domain.AccountClosed {
		return nil
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: account %d still holds %s %s",
			apperrors.ErrValidation, accountID, account.Balance, account.CurrencyCode)
	}
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, domain.AccountClosed); err != nil {
		return fmt.Errorf("failed to close account %d: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account closed", "accountID", accountID)
	return nil
}

func (s *accountService) Deposit(ctx context.Context, userID int64, accountID int64, req dto.DepositRequest) (*domain.TransferResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: deposit amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	account, err := s.loadOwnedActiveAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		Category:              domain.DepositTx,
		SenderName:            "ATM",
		ReceiverBankCode:      string(domain.KyukyuBank),
		ReceiverAccountNumber: account.AccountNumber,
		ReceiverAccountID:     &account.AccountID,
		Amount:                req.Amount,
		Status:                domain.StatusSuccess,
		TransactionDate:       time.Now(),
	}
	return s.recordMovement(ctx, txn, account)
}

func (s *accountService) Withdraw(ctx context.Context, userID int64, accountID int64, req dto.WithdrawRequest) (*domain.TransferResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive, got %s", apperrors.ErrValidation, req.Amount)
	}
	account, err := s.loadOwnedActiveAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, account.PasswordHash) {
		return nil, fmt.Errorf("%w: wrong account password", apperrors.ErrUnauthorized)
	}
	// Fast fail on an obviously short balance; the authoritative check runs
	// against the locked row inside SaveTransfer.
	if account.Balance.LessThan(req.Amount) {
		return nil, fmt.Errorf("%w: balance %s is below requested %s",
			apperrors.ErrInsufficientBalance, account.Balance, req.Amount)
	}

	txn := domain.Transaction{
		Category:        domain.Withdrawal,
		SenderAccountID: &account.AccountID,
		ReceiverName:    "ATM",
		Amount:          req.Amount,
		Status:          domain.StatusSuccess,
		TransactionDate: time.Now(),
	}
	return s.recordMovement(ctx, txn, account)
}

// recordMovement assigns a group ID and persists the movement atomically.
// SaveTransfer computes the ledger decomposition from the locked account
// rows, so the balance reported back reflects any concurrent movements that
// committed first. The mover is the account whose resulting balance is
// reported back.
func (s *accountService) recordMovement(ctx context.Context, txn domain.Transaction, mover *domain.Account) (*domain.TransferResult, error) {
	groupSeq, err := s.transactionRepo.NextTransactionGroupSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve transaction group sequence: %w", err)
	}
	groupID, err := utils.NewTransactionGroupID(txn.TransactionDate, groupSeq)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction group id: %w", err)
	}
	txn.GroupID = groupID

	txnID, newBalances, err := s.transactionRepo.SaveTransfer(ctx, txn)
	if err != nil {
		if errors.Is(err, apperrors.ErrInsufficientBalance) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to persist money movement", "groupID", groupID)
		return nil, fmt.Errorf("failed to persist money movement: %w", err)
	}

	s.LogInfo(ctx, "Money movement recorded",
		"transactionID", txnID, "groupID", groupID,
		"category", txn.Category, "amount", txn.Amount.String())
	return &domain.TransferResult{
		TransactionID: txnID,
		GroupID:       groupID,
		AccountID:     mover.AccountID,
		Balance:       newBalances[mover.AccountID],
	}, nil
}

func (s *accountService) loadOwnedAccount(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
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

func (s *accountService) loadOwnedActiveAccount(ctx context.Context, userID int64, accountID int64) (*domain.Account, error) {
	account, err := s.loadOwnedAccount(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account %d is %s", apperrors.ErrInactiveAccount, accountID, account.Status)
	}
	return account, nil
}
