package services

import (
	"context"

	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// AccountReaderSvc defines read operations for the account registry.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account by its ID.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves multiple accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves all accounts ordered by code.
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)

	// NormalSide returns the side on which the account's balance grows.
	NormalSide(ctx context.Context, accountID string) (domain.Side, error)
}

// AccountWriterSvc defines write operations for the account registry.
type AccountWriterSvc interface {
	// RegisterAccount registers a new account. Fails with
	// apperrors.ErrDuplicateCode when the code is taken.
	RegisterAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates names/description of an account; the account
	// type is immutable.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount soft-disables an account.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountSvcFacade combines all account service interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
