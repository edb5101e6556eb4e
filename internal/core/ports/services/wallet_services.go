package services

import (
	"context"
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/dto"
)

// WalletSvcFacade defines CRUD over the wallet registry plus the one-shot
// default seeding.
type WalletSvcFacade interface {
	// EnsureDefaults seeds the fixed default wallet set iff the registry is
	// empty AND has never been seeded before. Subsequent empty states do not
	// re-seed.
	EnsureDefaults(ctx context.Context) error

	CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error)
	ListWallets(ctx context.Context) ([]domain.Wallet, error)
	UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error)
	DeleteWallet(ctx context.Context, walletID string) error

	// TouchAllLastReconciled stamps last_reconciled_at on every wallet in the
	// registry as a single critical section. Called by the snapshot service
	// when a balance snapshot is captured.
	TouchAllLastReconciled(ctx context.Context, at time.Time) error

	Reloader
}
