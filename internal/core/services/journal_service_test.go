package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks-app/openbooks_backend/internal/apperrors"
	"github.com/openbooks-app/openbooks_backend/internal/core/domain"
	portssvc "github.com/openbooks-app/openbooks_backend/internal/core/ports/services"
	"github.com/openbooks-app/openbooks_backend/internal/core/services"
	"github.com/openbooks-app/openbooks_backend/internal/dto"
)

// MockEntryRepository is a mock type for the EntryRepositoryWithTx interface
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateDraftEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, entryID, from, to, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return entries, token, args.Error(2)
}

func (m *MockEntryRepository) ListLedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}

// MockAccountSvc is a mock type for the AccountSvcFacade interface
type MockAccountSvc struct {
	mock.Mock
}

func (m *MockAccountSvc) RegisterAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}

func (m *MockAccountSvc) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) NormalSide(ctx context.Context, accountID string) (domain.Side, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(domain.Side), args.Error(1)
}

// MockCurrencySvc is a mock type for the CurrencySvcFacade interface
type MockCurrencySvc struct {
	mock.Mock
}

func (m *MockCurrencySvc) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencySvc) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencySvc) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Test Suite Setup ---

type JournalServiceTestSuite struct {
	suite.Suite
	mockRepo        *MockEntryRepository
	mockAccountSvc  *MockAccountSvc
	mockCurrencySvc *MockCurrencySvc
	service         portssvc.EntrySvcFacade
	ctx             context.Context

	usd         domain.Currency
	cashAccount domain.Account
	revAccount  domain.Account
}

func (s *JournalServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockEntryRepository)
	s.mockAccountSvc = new(MockAccountSvc)
	s.mockCurrencySvc = new(MockCurrencySvc)
	s.service = services.NewJournalService(s.mockRepo, s.mockAccountSvc, s.mockCurrencySvc)
	s.ctx = context.Background()

	s.usd = domain.Currency{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2}
	s.cashAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Code:         "1000",
		AccountType:  domain.Asset,
		CurrencyCode: "USD",
		Names:        map[string]string{"en": "Cash"},
		IsActive:     true,
	}
	s.revAccount = domain.Account{
		AccountID:    uuid.NewString(),
		Code:         "4000",
		AccountType:  domain.Income,
		CurrencyCode: "USD",
		Names:        map[string]string{"en": "Sales Revenue"},
		IsActive:     true,
	}
}

func (s *JournalServiceTestSuite) accountsMap() map[string]domain.Account {
	return map[string]domain.Account{
		s.cashAccount.AccountID: s.cashAccount,
		s.revAccount.AccountID:  s.revAccount,
	}
}

func (s *JournalServiceTestSuite) createRequest() dto.CreateEntryRequest {
	return dto.CreateEntryRequest{
		EntryNumber:  "JE-000001",
		Date:         time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Cash sale",
		CurrencyCode: "USD",
		Lines: []dto.CreateLineRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.RequireFromString("100.00")},
			{AccountID: s.revAccount.AccountID, Credit: decimal.RequireFromString("100.00")},
		},
	}
}

func (s *JournalServiceTestSuite) draftEntry(lines ...domain.JournalLine) *domain.JournalEntry {
	entry := &domain.JournalEntry{
		EntryID:      uuid.NewString(),
		EntryNumber:  "JE-000001",
		JournalDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Description:  "Cash sale",
		CurrencyCode: "USD",
		Status:       domain.Draft,
	}
	if len(lines) == 0 {
		lines = []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: s.cashAccount.AccountID, Debit: decimal.RequireFromString("100.00")},
			{LineID: uuid.NewString(), EntryID: entry.EntryID, AccountID: s.revAccount.AccountID, Credit: decimal.RequireFromString("100.00")},
		}
	}
	entry.Lines = lines
	return entry
}

// --- CreateEntry ---

func (s *JournalServiceTestSuite) TestCreateEntry_Success() {
	req := s.createRequest()

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.Require().NotNil(entry)
	s.Equal(domain.Draft, entry.Status)
	s.Equal("JE-000001", entry.EntryNumber)
	s.Len(entry.Lines, 2)
	s.Equal("tester", entry.CreatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestCreateEntry_UnbalancedDraftAllowed() {
	// Drafts may be unbalanced; the full gate runs at posting time.
	req := s.createRequest()
	req.Lines[1].Credit = decimal.RequireFromString("50.00")

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.Anything, mock.Anything).Return(nil).Once()

	entry, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().NoError(err)
	s.NotNil(entry)
}

func (s *JournalServiceTestSuite) TestCreateEntry_MinLines() {
	req := s.createRequest()
	req.Lines = req.Lines[:1]

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrMinLines)
	s.mockRepo.AssertNotCalled(s.T(), "SaveEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestCreateEntry_UnknownCurrency() {
	req := s.createRequest()
	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := s.createRequest()
	// Only cash comes back; the revenue account is unknown.
	partial := map[string]domain.Account{s.cashAccount.AccountID: s.cashAccount}

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(partial, nil).Once()

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrUnknownAccount)
}

func (s *JournalServiceTestSuite) TestCreateEntry_MixedLine() {
	req := s.createRequest()
	req.Lines[0].Credit = decimal.RequireFromString("10.00")

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrMixedLine)
}

func (s *JournalServiceTestSuite) TestCreateEntry_PrecisionRejected() {
	req := s.createRequest()
	req.Lines[0].Debit = decimal.RequireFromString("100.005")
	req.Lines[1].Credit = decimal.RequireFromString("100.005")

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrPrecision)
}

func (s *JournalServiceTestSuite) TestCreateEntry_DuplicateEntryNumber() {
	req := s.createRequest()

	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("SaveEntry", s.ctx, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicateEntryNumber).Once()

	_, err := s.service.CreateEntry(s.ctx, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicateEntryNumber)
}

// --- ValidateEntry ---

func (s *JournalServiceTestSuite) TestValidateEntry_Valid() {
	entry := s.draftEntry()

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	result, err := s.service.ValidateEntry(s.ctx, entry.EntryID)

	s.Require().NoError(err)
	s.True(result.Valid)
	s.Empty(result.Error)
}

func (s *JournalServiceTestSuite) TestValidateEntry_UnbalancedReportedInBand() {
	entry := s.draftEntry()
	entry.Lines[1].Credit = decimal.RequireFromString("99.00")

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	result, err := s.service.ValidateEntry(s.ctx, entry.EntryID)

	// A failing validation is a result, not an error.
	s.Require().NoError(err)
	s.False(result.Valid)
	s.Contains(result.Error, "does not balance")
}

func (s *JournalServiceTestSuite) TestValidateEntry_NotFound() {
	s.mockRepo.On("FindEntryByID", s.ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ValidateEntry(s.ctx, "missing")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- PostEntry ---

func (s *JournalServiceTestSuite) TestPostEntry_Success() {
	entry := s.draftEntry()

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("TransitionEntryStatus", s.ctx, entry.EntryID, domain.Draft, domain.Posted, "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := s.service.PostEntry(s.ctx, entry.EntryID, "tester")

	s.Require().NoError(err)
	s.Equal(domain.Posted, posted.Status)
	s.Equal("tester", posted.LastUpdatedBy)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *JournalServiceTestSuite) TestPostEntry_UnbalancedBlocked() {
	entry := s.draftEntry()
	entry.Lines[1].Credit = decimal.RequireFromString("50.00")

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()

	_, err := s.service.PostEntry(s.ctx, entry.EntryID, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockRepo.AssertNotCalled(s.T(), "TransitionEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestPostEntry_AlreadyPosted() {
	entry := s.draftEntry()
	entry.Status = domain.Posted

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	_, err := s.service.PostEntry(s.ctx, entry.EntryID, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *JournalServiceTestSuite) TestPostEntry_LostRace() {
	entry := s.draftEntry()

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("TransitionEntryStatus", s.ctx, entry.EntryID, domain.Draft, domain.Posted, "tester", mock.AnythingOfType("time.Time")).Return(apperrors.ErrStaleState).Once()

	_, err := s.service.PostEntry(s.ctx, entry.EntryID, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrStaleState)
	s.ErrorIs(err, apperrors.ErrConflict)
}

// --- CancelEntry ---

func (s *JournalServiceTestSuite) TestCancelEntry_FromDraft() {
	entry := s.draftEntry()

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockRepo.On("TransitionEntryStatus", s.ctx, entry.EntryID, domain.Draft, domain.Cancelled, "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := s.service.CancelEntry(s.ctx, entry.EntryID, "tester")

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, cancelled.Status)
}

func (s *JournalServiceTestSuite) TestCancelEntry_FromPosted() {
	entry := s.draftEntry()
	entry.Status = domain.Posted

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()
	s.mockRepo.On("TransitionEntryStatus", s.ctx, entry.EntryID, domain.Posted, domain.Cancelled, "tester", mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := s.service.CancelEntry(s.ctx, entry.EntryID, "tester")

	s.Require().NoError(err)
	s.Equal(domain.Cancelled, cancelled.Status)
}

func (s *JournalServiceTestSuite) TestCancelEntry_AlreadyCancelled() {
	entry := s.draftEntry()
	entry.Status = domain.Cancelled

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	_, err := s.service.CancelEntry(s.ctx, entry.EntryID, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "TransitionEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateDraftEntry ---

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_PostedImmutable() {
	entry := s.draftEntry()
	entry.Status = domain.Posted
	newDesc := "amended"

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()

	_, err := s.service.UpdateDraftEntry(s.ctx, entry.EntryID, dto.UpdateEntryRequest{Description: &newDesc}, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateDraftEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_HeaderOnly() {
	entry := s.draftEntry()
	newDesc := "amended description"

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockRepo.On("UpdateDraftEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.Anything).Return(nil).Once()
	s.mockRepo.On("FindLinesByEntryID", s.ctx, entry.EntryID).Return(entry.Lines, nil).Once()

	updated, err := s.service.UpdateDraftEntry(s.ctx, entry.EntryID, dto.UpdateEntryRequest{Description: &newDesc}, "tester")

	s.Require().NoError(err)
	s.Equal("amended description", updated.Description)
	s.Len(updated.Lines, 2)
}

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_ReplaceLines() {
	entry := s.draftEntry()
	req := dto.UpdateEntryRequest{
		Lines: []dto.CreateLineRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.RequireFromString("250.00")},
			{AccountID: s.revAccount.AccountID, Credit: decimal.RequireFromString("250.00")},
		},
	}

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("UpdateDraftEntry", s.ctx, mock.AnythingOfType("domain.JournalEntry"), mock.AnythingOfType("[]domain.JournalLine")).Return(nil).Once()

	updated, err := s.service.UpdateDraftEntry(s.ctx, entry.EntryID, req, "tester")

	s.Require().NoError(err)
	s.Len(updated.Lines, 2)
	s.True(updated.Lines[0].Debit.Equal(decimal.RequireFromString("250.00")))
}

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_HeaderAndLinesSingleWrite() {
	entry := s.draftEntry()
	newDesc := "amended with new lines"
	req := dto.UpdateEntryRequest{
		Description: &newDesc,
		Lines: []dto.CreateLineRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.RequireFromString("80.00")},
			{AccountID: s.revAccount.AccountID, Credit: decimal.RequireFromString("80.00")},
		},
	}

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	// Header change and line replacement reach the repository as one call
	// so they commit or roll back together.
	s.mockRepo.On("UpdateDraftEntry", s.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == newDesc
	}), mock.MatchedBy(func(lines []domain.JournalLine) bool {
		return len(lines) == 2
	})).Return(nil).Once()

	updated, err := s.service.UpdateDraftEntry(s.ctx, entry.EntryID, req, "tester")

	s.Require().NoError(err)
	s.Equal(newDesc, updated.Description)
	s.Len(updated.Lines, 2)
	s.mockRepo.AssertNumberOfCalls(s.T(), "UpdateDraftEntry", 1)
}

func (s *JournalServiceTestSuite) TestUpdateDraftEntry_RewriteFailureChangesNothing() {
	entry := s.draftEntry()
	newDesc := "never applied"
	req := dto.UpdateEntryRequest{
		Description: &newDesc,
		Lines: []dto.CreateLineRequest{
			{AccountID: s.cashAccount.AccountID, Debit: decimal.RequireFromString("80.00")},
			{AccountID: s.revAccount.AccountID, Credit: decimal.RequireFromString("80.00")},
		},
	}

	s.mockRepo.On("FindEntryByID", s.ctx, entry.EntryID).Return(entry, nil).Once()
	s.mockCurrencySvc.On("GetCurrencyByCode", s.ctx, "USD").Return(&s.usd, nil).Once()
	s.mockAccountSvc.On("GetAccountsByIDs", s.ctx, mock.AnythingOfType("[]string")).Return(s.accountsMap(), nil).Once()
	s.mockRepo.On("UpdateDraftEntry", s.ctx, mock.Anything, mock.Anything).Return(apperrors.ErrStaleState).Once()

	_, err := s.service.UpdateDraftEntry(s.ctx, entry.EntryID, req, "tester")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrStaleState)
	s.mockRepo.AssertNumberOfCalls(s.T(), "UpdateDraftEntry", 1)
}

// --- ListEntries ---

func (s *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	token := "next-page"
	entries := []domain.JournalEntry{*s.draftEntry()}

	s.mockRepo.On("ListEntries", s.ctx, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := s.service.ListEntries(s.ctx, dto.ListEntriesParams{})

	s.Require().NoError(err)
	s.Len(resp.Entries, 1)
	s.Require().NotNil(resp.NextToken)
	s.Equal("next-page", *resp.NextToken)
}

func TestJournalServiceTestSuite(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
