package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/core/services"
	"github.com/finbook/finbook-backend/internal/dto"
)

// --- Mock AssetRepository ---
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) FetchAllAssets(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}

// --- Test Suite ---
type AssetServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAssetRepository
	service  portssvc.AssetSvcFacade
}

func (suite *AssetServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAssetRepository)
	suite.service = services.NewAssetService(suite.mockRepo)
}

func (suite *AssetServiceTestSuite) createAsset(name string, kind domain.AssetKind, balance int64, order int) *domain.Asset {
	suite.mockRepo.On("SaveAsset", mock.Anything, mock.AnythingOfType("domain.Asset")).Return(nil).Once()
	asset, err := suite.service.CreateAsset(context.Background(), dto.CreateAssetRequest{
		Name:         name,
		Kind:         kind,
		Balance:      balance,
		DisplayOrder: order,
	})
	suite.Require().NoError(err)
	return asset
}

// --- Test Cases ---

func (suite *AssetServiceTestSuite) TestCreateAsset_Success() {
	ctx := context.Background()
	req := dto.CreateAssetRequest{Name: "Index Fund", Kind: domain.InvestmentAsset, Balance: 5000000}

	suite.mockRepo.On("SaveAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.Name == req.Name && a.Kind == domain.InvestmentAsset && a.Balance == domain.Money(req.Balance)
	})).Return(nil).Once()

	asset, err := suite.service.CreateAsset(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(asset)
	suite.NotEmpty(asset.AssetID)
	suite.False(asset.BalanceUpdatedAt.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestCreateAsset_UnknownKindRejected() {
	ctx := context.Background()

	asset, err := suite.service.CreateAsset(ctx, dto.CreateAssetRequest{Name: "?", Kind: "CRYPTO"})

	suite.Require().Error(err)
	suite.Nil(asset)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAsset", mock.Anything, mock.Anything)
}

// Listing groups by kind (current, investment, liability) and orders within
// each group by display order.
func (suite *AssetServiceTestSuite) TestListAssets_GroupedByKind() {
	ctx := context.Background()

	suite.createAsset("Mortgage", domain.LiabilityAsset, 20000000, 0)
	suite.createAsset("Stocks", domain.InvestmentAsset, 1000000, 1)
	suite.createAsset("Checking", domain.CurrentAsset, 300000, 1)
	suite.createAsset("Savings", domain.CurrentAsset, 800000, 0)

	assets, err := suite.service.ListAssets(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(assets, 4)
	suite.Equal("Savings", assets[0].Name)
	suite.Equal("Checking", assets[1].Name)
	suite.Equal("Stocks", assets[2].Name)
	suite.Equal("Mortgage", assets[3].Name)
}

func (suite *AssetServiceTestSuite) TestUpdateBalance() {
	ctx := context.Background()
	asset := suite.createAsset("Checking", domain.CurrentAsset, 100000, 0)

	suite.mockRepo.On("UpdateAsset", ctx, mock.MatchedBy(func(a domain.Asset) bool {
		return a.AssetID == asset.AssetID && a.Balance == domain.Money(123456)
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBalance(ctx, asset.AssetID, 123456)

	suite.Require().NoError(err)
	suite.Equal(domain.Money(123456), updated.Balance)
	suite.True(updated.BalanceUpdatedAt.After(asset.BalanceUpdatedAt) || updated.BalanceUpdatedAt.Equal(asset.BalanceUpdatedAt))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AssetServiceTestSuite) TestUpdateBalance_NotFound() {
	_, err := suite.service.UpdateBalance(context.Background(), "missing", 1)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// A rejected update must leave the asset exactly as it was; no field may be
// applied before validation.
func (suite *AssetServiceTestSuite) TestUpdateAsset_InvalidKindLeavesAssetUntouched() {
	ctx := context.Background()
	asset := suite.createAsset("Savings", domain.CurrentAsset, 100000, 0)

	newName := "Renamed"
	badKind := domain.AssetKind("CRYPTO")
	updated, err := suite.service.UpdateAsset(ctx, asset.AssetID, dto.UpdateAssetRequest{Name: &newName, Kind: &badKind})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(updated)

	assets, err := suite.service.ListAssets(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(assets, 1)
	suite.Equal("Savings", assets[0].Name)
	suite.Equal(domain.CurrentAsset, assets[0].Kind)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAsset", mock.Anything, mock.Anything)
}

func (suite *AssetServiceTestSuite) TestUpdateAsset_KindChangeRegroups() {
	ctx := context.Background()
	asset := suite.createAsset("Car Loan", domain.CurrentAsset, 100, 0)
	suite.createAsset("Stocks", domain.InvestmentAsset, 100, 0)

	liability := domain.LiabilityAsset
	suite.mockRepo.On("UpdateAsset", ctx, mock.AnythingOfType("domain.Asset")).Return(nil).Once()

	updated, err := suite.service.UpdateAsset(ctx, asset.AssetID, dto.UpdateAssetRequest{Kind: &liability})

	suite.Require().NoError(err)
	suite.Equal(domain.LiabilityAsset, updated.Kind)

	assets, err := suite.service.ListAssets(ctx)
	suite.Require().NoError(err)
	suite.Equal("Car Loan", assets[len(assets)-1].Name)
}

// NetWorth sends a liability's magnitude to the liability total regardless
// of its stored sign.
func (suite *AssetServiceTestSuite) TestNetWorth_LiabilitySignConvention() {
	ctx := context.Background()

	suite.createAsset("Savings", domain.CurrentAsset, 500000, 0)
	suite.createAsset("Stocks", domain.InvestmentAsset, 2000000, 0)
	suite.createAsset("Loan", domain.LiabilityAsset, -800000, 0)

	totalAssets, totalLiabilities, netWorth, err := suite.service.NetWorth(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.Money(2500000), totalAssets)
	suite.Equal(domain.Money(800000), totalLiabilities)
	suite.Equal(domain.Money(1700000), netWorth)
}

func (suite *AssetServiceTestSuite) TestDeleteAsset() {
	ctx := context.Background()
	asset := suite.createAsset("Doomed", domain.CurrentAsset, 1, 0)

	suite.mockRepo.On("DeleteAsset", ctx, asset.AssetID).Return(nil).Once()
	suite.Require().NoError(suite.service.DeleteAsset(ctx, asset.AssetID))

	assets, err := suite.service.ListAssets(ctx)
	suite.Require().NoError(err)
	suite.Empty(assets)

	suite.ErrorIs(suite.service.DeleteAsset(ctx, asset.AssetID), apperrors.ErrNotFound)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestAssetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AssetServiceTestSuite))
}
