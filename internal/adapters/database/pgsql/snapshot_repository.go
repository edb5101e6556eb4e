package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
)

// Balances are stored as a jsonb map of wallet/asset id to minor units.
// JSON numbers round-trip exactly here because the values are int64 counts,
// never floats.

type balanceSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewBalanceSnapshotRepository creates a new repository for balance snapshots.
func NewBalanceSnapshotRepository(pool *pgxpool.Pool) portsrepo.BalanceSnapshotRepository {
	return &balanceSnapshotRepository{pool: pool}
}

func (r *balanceSnapshotRepository) SaveSnapshot(ctx context.Context, snap domain.BalanceSnapshot) error {
	balances, err := json.Marshal(snap.Balances)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot balances: %w", err)
	}

	query := `
		INSERT INTO balance_snapshots (snapshot_id, captured_at, balances)
		VALUES ($1, $2, $3);
	`
	if _, err := r.pool.Exec(ctx, query, snap.SnapshotID, snap.CapturedAt, balances); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.SnapshotID, err)
	}
	return nil
}

func (r *balanceSnapshotRepository) FetchAllSnapshots(ctx context.Context) ([]domain.BalanceSnapshot, error) {
	query := `
		SELECT snapshot_id, captured_at, balances
		FROM balance_snapshots
		ORDER BY captured_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.BalanceSnapshot
	for rows.Next() {
		var s domain.BalanceSnapshot
		var balances []byte
		if err := rows.Scan(&s.SnapshotID, &s.CapturedAt, &balances); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		if err := json.Unmarshal(balances, &s.Balances); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %s balances: %w", s.SnapshotID, err)
		}
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading snapshot rows: %w", err)
	}
	return snaps, nil
}

type assetSnapshotRepository struct {
	pool *pgxpool.Pool
}

// NewAssetSnapshotRepository creates a new repository for asset snapshots.
func NewAssetSnapshotRepository(pool *pgxpool.Pool) portsrepo.AssetSnapshotRepository {
	return &assetSnapshotRepository{pool: pool}
}

func (r *assetSnapshotRepository) SaveAssetSnapshot(ctx context.Context, snap domain.AssetSnapshot) error {
	balances, err := json.Marshal(snap.Balances)
	if err != nil {
		return fmt.Errorf("failed to encode asset snapshot balances: %w", err)
	}

	query := `
		INSERT INTO asset_snapshots (snapshot_id, captured_at, balances, total_assets, total_liabilities, net_worth)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = r.pool.Exec(ctx, query,
		snap.SnapshotID,
		snap.CapturedAt,
		balances,
		int64(snap.TotalAssets),
		int64(snap.TotalLiabilities),
		int64(snap.NetWorth),
	)
	if err != nil {
		return fmt.Errorf("failed to save asset snapshot %s: %w", snap.SnapshotID, err)
	}
	return nil
}

func (r *assetSnapshotRepository) FetchAllAssetSnapshots(ctx context.Context) ([]domain.AssetSnapshot, error) {
	query := `
		SELECT snapshot_id, captured_at, balances, total_assets, total_liabilities, net_worth
		FROM asset_snapshots
		ORDER BY captured_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch asset snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []domain.AssetSnapshot
	for rows.Next() {
		var s domain.AssetSnapshot
		var balances []byte
		var totalAssets, totalLiabilities, netWorth int64
		if err := rows.Scan(&s.SnapshotID, &s.CapturedAt, &balances, &totalAssets, &totalLiabilities, &netWorth); err != nil {
			return nil, fmt.Errorf("failed to scan asset snapshot row: %w", err)
		}
		if err := json.Unmarshal(balances, &s.Balances); err != nil {
			return nil, fmt.Errorf("failed to decode asset snapshot %s balances: %w", s.SnapshotID, err)
		}
		s.TotalAssets = domain.Money(totalAssets)
		s.TotalLiabilities = domain.Money(totalLiabilities)
		s.NetWorth = domain.Money(netWorth)
		snaps = append(snaps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading asset snapshot rows: %w", err)
	}
	return snaps, nil
}
