package usecase

import (
	"context"
	"errors"
	"fmt"

	"journal_server/internal/domain"
	"journal_server/pkg/id"
)

type AccountService struct {
	accountRepo domain.TradingAccountRepository
}

func NewAccountService(accountRepo domain.TradingAccountRepository) (*AccountService, error) {
	if accountRepo == nil {
		return nil, errors.New("trading account repository required")
	}
	return &AccountService{accountRepo: accountRepo}, nil
}

type TradingAccountInput struct {
	Name     string
	Balance  float64
	Currency string
}

func validateAccountInput(in TradingAccountInput) error {
	if in.Name == "" {
		return domain.Invalid("name", "account name is required")
	}
	if in.Balance <= 0 {
		return domain.Invalid("balance", "balance must be positive")
	}
	return nil
}

func (s *AccountService) Create(ctx context.Context, userID string, in TradingAccountInput) (domain.TradingAccount, error) {
	if userID == "" {
		return domain.TradingAccount{}, domain.ErrUnauthorized
	}
	if err := validateAccountInput(in); err != nil {
		return domain.TradingAccount{}, err
	}

	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}

	account := domain.TradingAccount{
		ID:       id.New(),
		UserID:   userID,
		Name:     in.Name,
		Balance:  in.Balance,
		Currency: currency,
		IsActive: true,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return domain.TradingAccount{}, fmt.Errorf("create trading account: %w", err)
	}

	return s.accountRepo.GetByID(ctx, userID, account.ID)
}

func (s *AccountService) Update(ctx context.Context, userID, accountID string, in TradingAccountInput) (domain.TradingAccount, error) {
	if userID == "" {
		return domain.TradingAccount{}, domain.ErrUnauthorized
	}
	if err := validateAccountInput(in); err != nil {
		return domain.TradingAccount{}, err
	}

	existing, err := s.accountRepo.GetByID(ctx, userID, accountID)
	if err != nil {
		return domain.TradingAccount{}, err
	}

	existing.Name = in.Name
	existing.Balance = in.Balance
	if in.Currency != "" {
		existing.Currency = in.Currency
	}

	if err := s.accountRepo.Update(ctx, existing); err != nil {
		return domain.TradingAccount{}, fmt.Errorf("update trading account: %w", err)
	}

	return s.accountRepo.GetByID(ctx, userID, accountID)
}

// Delete refuses to remove an account that operations still reference.
func (s *AccountService) Delete(ctx context.Context, userID, accountID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	if _, err := s.accountRepo.GetByID(ctx, userID, accountID); err != nil {
		return err
	}

	count, err := s.accountRepo.CountOperations(ctx, accountID)
	if err != nil {
		return fmt.Errorf("count account operations: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: cannot delete account with existing operations", domain.ErrConflict)
	}

	return s.accountRepo.Delete(ctx, accountID)
}

func (s *AccountService) GetByID(ctx context.Context, userID, accountID string) (domain.TradingAccount, error) {
	if userID == "" {
		return domain.TradingAccount{}, domain.ErrUnauthorized
	}
	return s.accountRepo.GetByID(ctx, userID, accountID)
}

func (s *AccountService) List(ctx context.Context, userID string) ([]domain.TradingAccount, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.accountRepo.ListByUser(ctx, userID)
}

func (s *AccountService) ListActive(ctx context.Context, userID string) ([]domain.TradingAccount, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.accountRepo.ListActive(ctx, userID)
}

func (s *AccountService) ToggleStatus(ctx context.Context, userID, accountID string, isActive bool) (domain.TradingAccount, error) {
	if userID == "" {
		return domain.TradingAccount{}, domain.ErrUnauthorized
	}
	if _, err := s.accountRepo.GetByID(ctx, userID, accountID); err != nil {
		return domain.TradingAccount{}, err
	}
	if err := s.accountRepo.SetActive(ctx, accountID, isActive); err != nil {
		return domain.TradingAccount{}, fmt.Errorf("toggle account status: %w", err)
	}
	return s.accountRepo.GetByID(ctx, userID, accountID)
}
