package repositories

import (
	"context"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// AssetReader defines read operations for asset data.
type AssetReader interface {
	// FetchAllAssets retrieves every persisted asset ordered by kind then
	// display order.
	FetchAllAssets(ctx context.Context) ([]domain.Asset, error)
}

// AssetWriter defines write operations for asset data.
type AssetWriter interface {
	// SaveAsset persists a new asset.
	SaveAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset updates an existing asset's details or live balance.
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	// DeleteAsset removes an asset by id. Asset snapshots referencing it keep
	// their frozen balances and totals.
	DeleteAsset(ctx context.Context, assetID string) error
}

// AssetRepository combines all asset repository operations.
type AssetRepository interface {
	AssetReader
	AssetWriter
}
