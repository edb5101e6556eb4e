package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/handlers"
	"github.com/finbook/finbook-backend/internal/utils/reckon"
	"github.com/finbook/finbook-backend/pkg/config"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) AppendEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}
func (m *MockLedgerService) ListEntries(ctx context.Context, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) AllEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) Summarize(ctx context.Context, from, to *time.Time) (domain.Money, domain.Money, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(domain.Money), args.Get(1).(domain.Money), args.Error(2)
}
func (m *MockLedgerService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock WalletService ---
type MockWalletService struct {
	mock.Mock
}

func (m *MockWalletService) EnsureDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockWalletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Wallet), args.Error(1)
}
func (m *MockWalletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	args := m.Called(ctx, walletID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}
func (m *MockWalletService) DeleteWallet(ctx context.Context, walletID string) error {
	args := m.Called(ctx, walletID)
	return args.Error(0)
}
func (m *MockWalletService) TouchAllLastReconciled(ctx context.Context, at time.Time) error {
	args := m.Called(ctx, at)
	return args.Error(0)
}
func (m *MockWalletService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.WalletSvcFacade = (*MockWalletService)(nil)

// --- Mock BalanceSnapshotService ---
type MockBalanceSnapshotService struct {
	mock.Mock
}

func (m *MockBalanceSnapshotService) Capture(ctx context.Context, balances map[string]domain.Money) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, balances)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}
func (m *MockBalanceSnapshotService) Latest(ctx context.Context) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}
func (m *MockBalanceSnapshotService) List(ctx context.Context) ([]domain.BalanceSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceSnapshot), args.Error(1)
}
func (m *MockBalanceSnapshotService) GetByID(ctx context.Context, snapshotID string) (*domain.BalanceSnapshot, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSnapshot), args.Error(1)
}
func (m *MockBalanceSnapshotService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.BalanceSnapshotSvcFacade = (*MockBalanceSnapshotService)(nil)

// --- Mock AssetService ---
type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*domain.Asset, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}
func (m *MockAssetService) UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	args := m.Called(ctx, assetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) UpdateBalance(ctx context.Context, assetID string, balance domain.Money) (*domain.Asset, error) {
	args := m.Called(ctx, assetID, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetService) DeleteAsset(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}
func (m *MockAssetService) NetWorth(ctx context.Context) (domain.Money, domain.Money, domain.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Money), args.Get(1).(domain.Money), args.Get(2).(domain.Money), args.Error(3)
}
func (m *MockAssetService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.AssetSvcFacade = (*MockAssetService)(nil)

// --- Mock AssetSnapshotService ---
type MockAssetSnapshotService struct {
	mock.Mock
}

func (m *MockAssetSnapshotService) Capture(ctx context.Context) (*domain.AssetSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetSnapshot), args.Error(1)
}
func (m *MockAssetSnapshotService) Latest(ctx context.Context) (*domain.AssetSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetSnapshot), args.Error(1)
}
func (m *MockAssetSnapshotService) List(ctx context.Context) ([]domain.AssetSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetSnapshot), args.Error(1)
}
func (m *MockAssetSnapshotService) GetByID(ctx context.Context, snapshotID string) (*domain.AssetSnapshot, error) {
	args := m.Called(ctx, snapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetSnapshot), args.Error(1)
}
func (m *MockAssetSnapshotService) Reload(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portssvc.AssetSnapshotSvcFacade = (*MockAssetSnapshotService)(nil)

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) Reconcile(ctx context.Context, oldSnapshotID *string, newSnapshotID string) (*reckon.Result, error) {
	args := m.Called(ctx, oldSnapshotID, newSnapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reckon.Result), args.Error(1)
}
func (m *MockReconciliationService) AssetDeltas(ctx context.Context, oldSnapshotID *string, newSnapshotID string) ([]reckon.AssetDelta, error) {
	args := m.Called(ctx, oldSnapshotID, newSnapshotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reckon.AssetDelta), args.Error(1)
}

var _ portssvc.ReconciliationSvcFacade = (*MockReconciliationService)(nil)

// --- Test Suite ---
type EntryHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	cfg               *config.Config
	mockLedger        *MockLedgerService
	mockWallet        *MockWalletService
	mockSnapshot      *MockBalanceSnapshotService
	mockAsset         *MockAssetService
	mockAssetSnapshot *MockAssetSnapshotService
	mockRecon         *MockReconciliationService
}

func (suite *EntryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()

	suite.cfg = &config.Config{
		CurrencyCode:      "USD",
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "finbook-test",
		APIUsername:       "owner",
		APIPassword:       "hunter2",
		LoginRateLimit:    "100-M",
	}

	suite.mockLedger = new(MockLedgerService)
	suite.mockWallet = new(MockWalletService)
	suite.mockSnapshot = new(MockBalanceSnapshotService)
	suite.mockAsset = new(MockAssetService)
	suite.mockAssetSnapshot = new(MockAssetSnapshotService)
	suite.mockRecon = new(MockReconciliationService)

	container := &portssvc.ServiceContainer{
		Ledger:         suite.mockLedger,
		Wallet:         suite.mockWallet,
		Snapshot:       suite.mockSnapshot,
		Asset:          suite.mockAsset,
		AssetSnapshot:  suite.mockAssetSnapshot,
		Reconciliation: suite.mockRecon,
	}

	handlers.RegisterRoutes(suite.router, suite.cfg, container)
}

func (suite *EntryHandlerTestSuite) generateTestToken() string {
	claims := jwt.RegisteredClaims{
		Issuer:    suite.cfg.JWTIssuer,
		Subject:   suite.cfg.APIUsername,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.cfg.JWTSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *EntryHandlerTestSuite) doJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *EntryHandlerTestSuite) TestCreateEntry_Success() {
	token := suite.generateTestToken()
	occurredAt := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	walletID := uuid.NewString()

	entry := &domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		Amount:     2500,
		Kind:       domain.Expense,
		OccurredAt: occurredAt,
		WalletID:   walletID,
		CreatedAt:  time.Now().UTC(),
	}
	suite.mockLedger.On("AppendEntry", mock.Anything, mock.MatchedBy(func(req dto.CreateEntryRequest) bool {
		return req.Amount == 2500 && req.Kind == domain.Expense
	})).Return(entry, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", token, gin.H{
		"amount":     2500,
		"kind":       "EXPENSE",
		"occurredAt": occurredAt.Format(time.RFC3339),
		"walletID":   walletID,
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.EntryID)
	suite.Equal(int64(2500), resp.Amount)
	// An empty category id renders as the uncategorized bucket.
	suite.Equal(dto.UncategorizedID, resp.CategoryID)
	suite.Empty(resp.Warning)
	suite.mockLedger.AssertExpectations(suite.T())
}

// A persist failure is not a request failure: the entry was applied, so the
// handler returns 201 with a warning attached.
func (suite *EntryHandlerTestSuite) TestCreateEntry_PersistWarning() {
	token := suite.generateTestToken()

	entry := &domain.LedgerEntry{EntryID: uuid.NewString(), Amount: 100, Kind: domain.Income}
	persistErr := fmt.Errorf("%w: save entry: connection refused", apperrors.ErrPersist)
	suite.mockLedger.On("AppendEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest")).Return(entry, persistErr).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", token, gin.H{
		"amount":     100,
		"kind":       "INCOME",
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
		"walletID":   uuid.NewString(),
	})

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.EntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Warning)
	suite.Contains(resp.Warning, "not saved")
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_InvalidAmount() {
	token := suite.generateTestToken()

	suite.mockLedger.On("AppendEntry", mock.Anything, mock.AnythingOfType("dto.CreateEntryRequest")).
		Return(nil, fmt.Errorf("%w: got -5", apperrors.ErrInvalidAmount)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/entries", token, gin.H{
		"amount":     -5,
		"kind":       "EXPENSE",
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
		"walletID":   uuid.NewString(),
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *EntryHandlerTestSuite) TestCreateEntry_Unauthorized() {
	w := suite.doJSON(http.MethodPost, "/api/v1/entries", "", gin.H{
		"amount":     100,
		"kind":       "INCOME",
		"occurredAt": time.Now().UTC().Format(time.RFC3339),
		"walletID":   uuid.NewString(),
	})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockLedger.AssertNotCalled(suite.T(), "AppendEntry", mock.Anything, mock.Anything)
}

func (suite *EntryHandlerTestSuite) TestDeleteEntry_NoContent() {
	token := suite.generateTestToken()
	entryID := uuid.NewString()

	suite.mockLedger.On("DeleteEntry", mock.Anything, entryID).Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/entries/"+entryID, token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestSummary() {
	token := suite.generateTestToken()

	suite.mockLedger.On("Summarize", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).
		Return(domain.Money(50000), domain.Money(12000), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries/summary", token, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.EntrySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(int64(50000), resp.Income)
	suite.Equal(int64(12000), resp.Expense)
	suite.Equal(int64(38000), resp.Net)
	suite.Equal("380.00", resp.NetDisplay)
}

func (suite *EntryHandlerTestSuite) TestListEntries_BadWindow() {
	token := suite.generateTestToken()

	w := suite.doJSON(http.MethodGet, "/api/v1/entries?from=yesterday", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *EntryHandlerTestSuite) TestSystemReload() {
	token := suite.generateTestToken()

	suite.mockLedger.On("Reload", mock.Anything).Return(nil).Once()
	suite.mockWallet.On("Reload", mock.Anything).Return(nil).Once()
	suite.mockSnapshot.On("Reload", mock.Anything).Return(nil).Once()
	suite.mockAsset.On("Reload", mock.Anything).Return(nil).Once()
	suite.mockAssetSnapshot.On("Reload", mock.Anything).Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/system/reload", token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLedger.AssertExpectations(suite.T())
	suite.mockWallet.AssertExpectations(suite.T())
}

func (suite *EntryHandlerTestSuite) TestLogin() {
	w := suite.doJSON(http.MethodPost, "/auth/login", "", gin.H{
		"username": "owner",
		"password": "hunter2",
	})
	suite.Equal(http.StatusOK, w.Code)

	var resp dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Token)

	w = suite.doJSON(http.MethodPost, "/auth/login", "", gin.H{
		"username": "owner",
		"password": "wrong",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestEntryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(EntryHandlerTestSuite))
}
