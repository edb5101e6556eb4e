package repositories

import (
	"context"
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// WalletReader defines read operations for wallet data.
type WalletReader interface {
	// FetchAllWallets retrieves every persisted wallet ordered by display order.
	FetchAllWallets(ctx context.Context) ([]domain.Wallet, error)

	// HasSeededDefaults reports whether the one-shot default seeding has ever
	// run for this registry. The marker survives the registry becoming empty
	// again, so deleted defaults are never resurrected.
	HasSeededDefaults(ctx context.Context) (bool, error)
}

// WalletWriter defines write operations for wallet data.
type WalletWriter interface {
	// SaveWallet persists a new wallet.
	SaveWallet(ctx context.Context, wallet domain.Wallet) error

	// UpdateWallet updates an existing wallet's details.
	UpdateWallet(ctx context.Context, wallet domain.Wallet) error

	// DeleteWallet removes a wallet by id. Ledger entries referencing it are
	// left in place (weak references).
	DeleteWallet(ctx context.Context, walletID string) error

	// TouchLastReconciled sets last_reconciled_at on every wallet.
	TouchLastReconciled(ctx context.Context, at time.Time) error

	// MarkDefaultsSeeded durably records that default seeding has run.
	MarkDefaultsSeeded(ctx context.Context) error
}

// WalletRepository combines all wallet repository operations.
type WalletRepository interface {
	WalletReader
	WalletWriter
}
