package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
)

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository creates a new repository for asset data.
func NewAssetRepository(pool *pgxpool.Pool) portsrepo.AssetRepository {
	return &assetRepository{pool: pool}
}

func (r *assetRepository) SaveAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		INSERT INTO assets (asset_id, name, icon, color, kind, display_order, balance, balance_updated_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		asset.AssetID,
		asset.Name,
		asset.Icon,
		asset.Color,
		asset.Kind,
		asset.DisplayOrder,
		int64(asset.Balance),
		asset.BalanceUpdatedAt,
		asset.CreatedAt,
		asset.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save asset %s: %w", asset.AssetID, err)
	}
	return nil
}

func (r *assetRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	query := `
		UPDATE assets
		SET name = $2, icon = $3, color = $4, kind = $5, display_order = $6, balance = $7, balance_updated_at = $8, last_updated_at = $9
		WHERE asset_id = $1;
	`
	_, err := r.pool.Exec(ctx, query,
		asset.AssetID,
		asset.Name,
		asset.Icon,
		asset.Color,
		asset.Kind,
		asset.DisplayOrder,
		int64(asset.Balance),
		asset.BalanceUpdatedAt,
		asset.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update asset %s: %w", asset.AssetID, err)
	}
	return nil
}

func (r *assetRepository) DeleteAsset(ctx context.Context, assetID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE asset_id = $1;`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}
	return nil
}

func (r *assetRepository) FetchAllAssets(ctx context.Context) ([]domain.Asset, error) {
	query := `
		SELECT asset_id, name, icon, color, kind, display_order, balance, balance_updated_at, created_at, last_updated_at
		FROM assets
		ORDER BY kind ASC, display_order ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assets: %w", err)
	}
	defer rows.Close()

	var assets []domain.Asset
	for rows.Next() {
		var a domain.Asset
		var balance int64
		if err := rows.Scan(&a.AssetID, &a.Name, &a.Icon, &a.Color, &a.Kind, &a.DisplayOrder, &balance, &a.BalanceUpdatedAt, &a.CreatedAt, &a.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset row: %w", err)
		}
		a.Balance = domain.Money(balance)
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading asset rows: %w", err)
	}
	return assets, nil
}
