package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/core/services"
	"github.com/finbook/finbook-backend/internal/dto"
)

// --- Mock AssetSnapshotRepository ---
type MockAssetSnapshotRepository struct {
	mock.Mock
}

func (m *MockAssetSnapshotRepository) SaveAssetSnapshot(ctx context.Context, snap domain.AssetSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockAssetSnapshotRepository) FetchAllAssetSnapshots(ctx context.Context) ([]domain.AssetSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AssetSnapshot), args.Error(1)
}

// --- Test Suite ---
// Uses a real asset service behind the snapshot service so capture reads
// actual registry state.
type AssetSnapshotServiceTestSuite struct {
	suite.Suite
	mockSnapRepo  *MockAssetSnapshotRepository
	mockAssetRepo *MockAssetRepository
	assetSvc      portssvc.AssetSvcFacade
	service       portssvc.AssetSnapshotSvcFacade
}

func (suite *AssetSnapshotServiceTestSuite) SetupTest() {
	suite.mockSnapRepo = new(MockAssetSnapshotRepository)
	suite.mockAssetRepo = new(MockAssetRepository)
	suite.assetSvc = services.NewAssetService(suite.mockAssetRepo)
	suite.service = services.NewAssetSnapshotService(suite.mockSnapRepo, suite.assetSvc)
}

func (suite *AssetSnapshotServiceTestSuite) registerAsset(name string, kind domain.AssetKind, balance int64) *domain.Asset {
	suite.mockAssetRepo.On("SaveAsset", mock.Anything, mock.AnythingOfType("domain.Asset")).Return(nil).Once()
	asset, err := suite.assetSvc.CreateAsset(context.Background(), dto.CreateAssetRequest{
		Name:    name,
		Kind:    kind,
		Balance: balance,
	})
	suite.Require().NoError(err)
	suite.Require().NotNil(asset)
	return asset
}

// --- Test Cases ---

// At the moment of capture the frozen aggregates must equal the live derived
// ones; both run through the same aggregation.
func (suite *AssetSnapshotServiceTestSuite) TestCapture_FrozenEqualsLive() {
	ctx := context.Background()

	suite.registerAsset("Savings", domain.CurrentAsset, 500000)
	suite.registerAsset("Stocks", domain.InvestmentAsset, 2000000)
	suite.registerAsset("Loan", domain.LiabilityAsset, 800000)

	suite.mockSnapRepo.On("SaveAssetSnapshot", ctx, mock.AnythingOfType("domain.AssetSnapshot")).Return(nil).Once()

	snap, err := suite.service.Capture(ctx)
	suite.Require().NoError(err)

	liveAssets, liveLiabilities, liveNet, err := suite.assetSvc.NetWorth(ctx)
	suite.Require().NoError(err)

	suite.Equal(liveAssets, snap.TotalAssets)
	suite.Equal(liveLiabilities, snap.TotalLiabilities)
	suite.Equal(liveNet, snap.NetWorth)
	suite.Equal(domain.Money(2500000), snap.TotalAssets)
	suite.Equal(domain.Money(800000), snap.TotalLiabilities)
	suite.Equal(domain.Money(1700000), snap.NetWorth)
	suite.Len(snap.Balances, 3)
	suite.mockSnapRepo.AssertExpectations(suite.T())
}

// Deleting or retyping an asset after capture must not disturb the frozen
// snapshot.
func (suite *AssetSnapshotServiceTestSuite) TestCapture_FrozenStableAfterRegistryChanges() {
	ctx := context.Background()

	stocks := suite.registerAsset("Stocks", domain.InvestmentAsset, 2000000)
	suite.registerAsset("Savings", domain.CurrentAsset, 500000)

	suite.mockSnapRepo.On("SaveAssetSnapshot", ctx, mock.AnythingOfType("domain.AssetSnapshot")).Return(nil).Once()
	snap, err := suite.service.Capture(ctx)
	suite.Require().NoError(err)

	suite.mockAssetRepo.On("DeleteAsset", ctx, stocks.AssetID).Return(nil).Once()
	suite.Require().NoError(suite.assetSvc.DeleteAsset(ctx, stocks.AssetID))

	frozen, err := suite.service.GetByID(ctx, snap.SnapshotID)
	suite.Require().NoError(err)
	suite.Equal(domain.Money(2500000), frozen.TotalAssets)
	suite.Equal(domain.Money(2000000), frozen.Balances[stocks.AssetID])

	// The live view has moved on.
	liveAssets, _, _, err := suite.assetSvc.NetWorth(ctx)
	suite.Require().NoError(err)
	suite.Equal(domain.Money(500000), liveAssets)
}

func (suite *AssetSnapshotServiceTestSuite) TestCapture_PersistFailureStillRetained() {
	ctx := context.Background()
	suite.registerAsset("Savings", domain.CurrentAsset, 100)

	suite.mockSnapRepo.On("SaveAssetSnapshot", ctx, mock.AnythingOfType("domain.AssetSnapshot")).Return(assert.AnError).Once()

	snap, err := suite.service.Capture(ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPersist)
	suite.Require().NotNil(snap)

	stored, getErr := suite.service.GetByID(ctx, snap.SnapshotID)
	suite.Require().NoError(getErr)
	suite.Equal(snap.SnapshotID, stored.SnapshotID)
}

func (suite *AssetSnapshotServiceTestSuite) TestLatest_EmptyStore() {
	_, err := suite.service.Latest(context.Background())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAssetSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetSnapshotServiceTestSuite))
}
