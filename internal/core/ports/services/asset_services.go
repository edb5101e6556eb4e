package services

import (
	"context"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/dto"
)

// AssetSvcFacade defines CRUD over the asset registry plus live balance
// updates and the derived net-worth aggregates.
type AssetSvcFacade interface {
	CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*domain.Asset, error)

	// ListAssets returns assets grouped by kind (Current, Investment,
	// Liability) and ordered within each group.
	ListAssets(ctx context.Context) ([]domain.Asset, error)

	UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error)

	// UpdateBalance sets the live balance and last_updated immediately; no
	// snapshot is required.
	UpdateBalance(ctx context.Context, assetID string, balance domain.Money) (*domain.Asset, error)

	DeleteAsset(ctx context.Context, assetID string) error

	// NetWorth derives the live aggregates from the current registry. The
	// same aggregation backs snapshot capture, so the two agree at the
	// moment of capture.
	NetWorth(ctx context.Context) (totalAssets, totalLiabilities, netWorth domain.Money, err error)

	Reloader
}
