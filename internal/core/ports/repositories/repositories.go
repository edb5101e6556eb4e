// Package repositories defines the contracts the core expects from its
// persistence collaborator. The core calls these synchronously after every
// mutation; implementations either succeed or report an error. The core does
// not retry, queue, or batch persistence.
package repositories

// RepositoryProvider bundles every repository the service container needs.
type RepositoryProvider struct {
	EntryRepo         EntryRepository
	WalletRepo        WalletRepository
	SnapshotRepo      BalanceSnapshotRepository
	AssetRepo         AssetRepository
	AssetSnapshotRepo AssetSnapshotRepository
}
