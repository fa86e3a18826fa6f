package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finbooks/fin_books_app/internal/apperrors"
	"github.com/finbooks/fin_books_app/internal/core/domain"
	portssvc "github.com/finbooks/fin_books_app/internal/core/ports/services"
	"github.com/finbooks/fin_books_app/internal/core/services"
	"github.com/finbooks/fin_books_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
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

func (m *MockJournalRepository) CountEntriesByReferenceType(ctx context.Context, referenceType string) (int, error) {
	args := m.Called(ctx, referenceType)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, postedBy string, postedAt time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, postedBy, postedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) UnpostEntry(ctx context.Context, entryID string, updatedBy string, now time.Time) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID, updatedBy, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRegistry ---
type MockAccountRegistry struct {
	mock.Mock
}

func (m *MockAccountRegistry) Rebuild(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAccountRegistry) Refresh(ctx context.Context, accountIDs []string) error {
	args := m.Called(ctx, accountIDs)
	return args.Error(0)
}

func (m *MockAccountRegistry) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRegistry) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRegistry) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRegistry) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRegistry) ListActiveLeafAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite ---
type PostingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockJournalRepository
	mockRegistry *MockAccountRegistry
	service      portssvc.PostingSvc
}

func (suite *PostingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockJournalRepository)
	suite.mockRegistry = new(MockAccountRegistry)
	suite.service = services.NewPostingService(suite.mockRepo, suite.mockRegistry)
}

func postableAccount(id, code string) *domain.Account {
	return &domain.Account{
		AccountID:   id,
		Code:        code,
		Name:        "Account " + code,
		AccountType: domain.Asset,
		NormalSide:  domain.DebitSide,
		IsActive:    true,
	}
}

func balancedCreateRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:     time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
		ReferenceType: "Sales",
		ReferenceID:   "inv-77",
		Description:   "Invoice 77",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: "acc-cash", DebitAmount: decimal.NewFromInt(100)},
			{AccountID: "acc-sales", CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_Success() {
	ctx := context.Background()
	req := balancedCreateRequest()

	suite.mockRegistry.On("GetAccountByID", ctx, "acc-cash").Return(postableAccount("acc-cash", "1000"), nil).Once()
	suite.mockRegistry.On("GetAccountByID", ctx, "acc-sales").Return(postableAccount("acc-sales", "4000"), nil).Once()
	suite.mockRepo.On("CountEntriesByReferenceType", ctx, "Sales").Return(41, nil).Once()
	suite.mockRepo.On("SaveEntry", ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return len(e.Lines) == 2 && !e.IsPosted && e.IsBalanced()
	})).Return(nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.False(entry.IsPosted)
	suite.Equal("100.00", entry.TotalDebits().StringFixed(2))
	suite.Equal("100.00", entry.TotalCredits().StringFixed(2))

	wantNumber := fmt.Sprintf("JE-SAL-0042-%s", time.Now().UTC().Format("200601"))
	suite.Equal(wantNumber, entry.EntryNumber)

	// Lines carry denormalized account snapshots.
	suite.Equal("1000", entry.Lines[0].AccountCode)
	suite.Equal("4000", entry.Lines[1].AccountCode)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_TooFewLines() {
	ctx := context.Background()
	req := balancedCreateRequest()
	req.Lines = req.Lines[:1]

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_AccountNotFound() {
	ctx := context.Background()
	req := balancedCreateRequest()

	suite.mockRegistry.On("GetAccountByID", ctx, "acc-cash").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_LockedAccountRejected() {
	ctx := context.Background()
	req := balancedCreateRequest()

	locked := postableAccount("acc-cash", "1000")
	locked.IsLocked = true
	suite.mockRegistry.On("GetAccountByID", ctx, "acc-cash").Return(locked, nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_LineWithBothSides() {
	ctx := context.Background()
	req := balancedCreateRequest()
	req.Lines[0].CreditAmount = decimal.NewFromInt(100)

	suite.mockRegistry.On("GetAccountByID", ctx, "acc-cash").Return(postableAccount("acc-cash", "1000"), nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestCreateJournalEntry_Unbalanced() {
	ctx := context.Background()
	req := balancedCreateRequest()
	req.Lines[1].CreditAmount = decimal.NewFromFloat(99.50)

	suite.mockRegistry.On("GetAccountByID", ctx, "acc-cash").Return(postableAccount("acc-cash", "1000"), nil).Once()
	suite.mockRegistry.On("GetAccountByID", ctx, "acc-sales").Return(postableAccount("acc-sales", "4000"), nil).Once()

	entry, err := suite.service.CreateJournalEntry(ctx, req, "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CountEntriesByReferenceType", mock.Anything, mock.Anything)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournalEntry_Success() {
	ctx := context.Background()
	postedAt := time.Now().UTC()
	posted := &domain.JournalEntry{
		EntryID:     "entry-1",
		EntryNumber: "JE-SAL-0001-202505",
		IsPosted:    true,
		PostedDate:  &postedAt,
		PostedBy:    "user-1",
		Lines: []domain.JournalLine{
			{LineID: "l1", EntryID: "entry-1", AccountID: "acc-cash", DebitAmount: decimal.NewFromInt(100)},
			{LineID: "l2", EntryID: "entry-1", AccountID: "acc-sales", CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockRepo.On("PostEntry", ctx, "entry-1", "user-1", mock.AnythingOfType("time.Time")).Return(posted, nil).Once()
	suite.mockRegistry.On("Refresh", ctx, []string{"acc-cash", "acc-sales"}).Return(nil).Once()

	entry, err := suite.service.PostJournalEntry(ctx, "entry-1", "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.IsPosted)
	suite.Equal("user-1", entry.PostedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestPostJournalEntry_AlreadyPosted() {
	ctx := context.Background()

	suite.mockRepo.On("PostEntry", ctx, "entry-1", "user-1", mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("%w: entry entry-1 is already posted", apperrors.ErrState)).Once()

	entry, err := suite.service.PostJournalEntry(ctx, "entry-1", "user-1")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockRegistry.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournalEntry_MissingPostedBy() {
	entry, err := suite.service.PostJournalEntry(context.Background(), "entry-1", "")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestPostJournalEntry_RefreshFailureIsNotFatal() {
	ctx := context.Background()
	posted := &domain.JournalEntry{
		EntryID: "entry-1",
		Lines: []domain.JournalLine{
			{AccountID: "acc-cash", DebitAmount: decimal.NewFromInt(10)},
			{AccountID: "acc-sales", CreditAmount: decimal.NewFromInt(10)},
		},
		IsPosted: true,
	}

	suite.mockRepo.On("PostEntry", ctx, "entry-1", "user-1", mock.AnythingOfType("time.Time")).Return(posted, nil).Once()
	suite.mockRegistry.On("Refresh", ctx, mock.Anything).Return(fmt.Errorf("store unavailable")).Once()

	entry, err := suite.service.PostJournalEntry(ctx, "entry-1", "user-1")

	// The post committed; a stale cache must not surface as a failure.
	suite.Require().NoError(err)
	suite.NotNil(entry)
}

func (suite *PostingServiceTestSuite) TestUnpostJournalEntry_Success() {
	ctx := context.Background()
	unposted := &domain.JournalEntry{
		EntryID:     "entry-1",
		EntryNumber: "JE-SAL-0001-202505",
		IsPosted:    false,
	}

	suite.mockRepo.On("UnpostEntry", ctx, "entry-1", "user-2", mock.AnythingOfType("time.Time")).Return(unposted, nil).Once()

	entry, err := suite.service.UnpostJournalEntry(ctx, "entry-1", "user-2")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.False(entry.IsPosted)

	// Unposting leaves applied balances alone, so the registry never refreshes.
	suite.mockRegistry.AssertNotCalled(suite.T(), "Refresh", mock.Anything, mock.Anything)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestUnpostJournalEntry_NotPosted() {
	ctx := context.Background()

	suite.mockRepo.On("UnpostEntry", ctx, "entry-1", "user-2", mock.AnythingOfType("time.Time")).
		Return(nil, fmt.Errorf("%w: entry entry-1 is not posted", apperrors.ErrState)).Once()

	entry, err := suite.service.UnpostJournalEntry(ctx, "entry-1", "user-2")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrState)
}

func (suite *PostingServiceTestSuite) TestGetJournalEntryByID() {
	ctx := context.Background()
	header := &domain.JournalEntry{EntryID: "entry-1", EntryNumber: "JE-SAL-0001-202505"}
	lines := []domain.JournalLine{
		{LineID: "l1", AccountID: "acc-cash", DebitAmount: decimal.NewFromInt(100)},
		{LineID: "l2", AccountID: "acc-sales", CreditAmount: decimal.NewFromInt(100)},
	}

	suite.mockRepo.On("FindEntryByID", ctx, "entry-1").Return(header, nil).Once()
	suite.mockRepo.On("FindLinesByEntryID", ctx, "entry-1").Return(lines, nil).Once()

	entry, err := suite.service.GetJournalEntryByID(ctx, "entry-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Len(entry.Lines, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *PostingServiceTestSuite) TestGetJournalEntryByID_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	entry, err := suite.service.GetJournalEntryByID(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *PostingServiceTestSuite) TestListJournalEntries_DefaultLimit() {
	ctx := context.Background()
	token := "next-page"
	entries := []domain.JournalEntry{{EntryID: "entry-1"}, {EntryID: "entry-2"}}

	suite.mockRepo.On("ListEntries", ctx, 20, (*string)(nil)).Return(entries, &token, nil).Once()

	resp, err := suite.service.ListJournalEntries(ctx, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Entries, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
