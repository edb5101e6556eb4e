package services

import (
	"context"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// BalanceSnapshotSvcFacade captures and reads immutable wallet balance
// snapshots.
type BalanceSnapshotSvcFacade interface {
	// Capture records a new snapshot from the supplied per-wallet balances.
	// Wallets absent from the map count as zero towards the total. On
	// success every wallet's last_reconciled_at is touched to the snapshot's
	// timestamp as part of the same operation.
	Capture(ctx context.Context, balances map[string]domain.Money) (*domain.BalanceSnapshot, error)

	// Latest returns the maximum-timestamp snapshot, or apperrors.ErrNotFound.
	Latest(ctx context.Context) (*domain.BalanceSnapshot, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]domain.BalanceSnapshot, error)

	// GetByID returns a specific snapshot, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, snapshotID string) (*domain.BalanceSnapshot, error)

	Reloader
}

// AssetSnapshotSvcFacade captures and reads immutable asset snapshots.
type AssetSnapshotSvcFacade interface {
	// Capture reads the live balance of every registered asset and freezes
	// the balances together with totalAssets/totalLiabilities/netWorth.
	Capture(ctx context.Context) (*domain.AssetSnapshot, error)

	// Latest returns the maximum-timestamp snapshot, or apperrors.ErrNotFound.
	Latest(ctx context.Context) (*domain.AssetSnapshot, error)

	// List returns all snapshots, newest first.
	List(ctx context.Context) ([]domain.AssetSnapshot, error)

	// GetByID returns a specific snapshot, or apperrors.ErrNotFound.
	GetByID(ctx context.Context, snapshotID string) (*domain.AssetSnapshot, error)

	Reloader
}
