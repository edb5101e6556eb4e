package services

import (
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
)

// NewServiceContainer creates a service container with properly initialized
// dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.EntryRepo)
	container.Wallet = NewWalletService(repos.WalletRepo)

	// The snapshot service stamps last_reconciled_at through the wallet
	// service, so it is wired after it.
	container.Snapshot = NewBalanceSnapshotService(repos.SnapshotRepo, container.Wallet)

	container.Asset = NewAssetService(repos.AssetRepo)
	container.AssetSnapshot = NewAssetSnapshotService(repos.AssetSnapshotRepo, container.Asset)

	container.Reconciliation = NewReconciliationService(
		container.Ledger,
		container.Snapshot,
		container.Asset,
		container.AssetSnapshot,
	)

	return container
}
