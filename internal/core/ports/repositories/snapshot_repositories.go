package repositories

import (
	"context"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// BalanceSnapshotRepository persists wallet balance snapshots. Snapshots are
// append-only from the core's point of view; no update or delete is exposed.
type BalanceSnapshotRepository interface {
	// SaveSnapshot persists a new balance snapshot.
	SaveSnapshot(ctx context.Context, snap domain.BalanceSnapshot) error

	// FetchAllSnapshots retrieves every persisted snapshot, newest first.
	FetchAllSnapshots(ctx context.Context) ([]domain.BalanceSnapshot, error)
}

// AssetSnapshotRepository persists asset snapshots, append-only like
// BalanceSnapshotRepository.
type AssetSnapshotRepository interface {
	// SaveAssetSnapshot persists a new asset snapshot with its frozen totals.
	SaveAssetSnapshot(ctx context.Context, snap domain.AssetSnapshot) error

	// FetchAllAssetSnapshots retrieves every persisted asset snapshot, newest first.
	FetchAllAssetSnapshots(ctx context.Context) ([]domain.AssetSnapshot, error)
}
