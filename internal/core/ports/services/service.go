package services

import "context"

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what the
// handlers are wired against.
type ServiceContainer struct {
	Ledger         LedgerSvcFacade
	Wallet         WalletSvcFacade
	Snapshot       BalanceSnapshotSvcFacade
	Asset          AssetSvcFacade
	AssetSnapshot  AssetSnapshotSvcFacade
	Reconciliation ReconciliationSvcFacade
}

// Reloader is implemented by every store-backed service: it discards the
// in-memory state and re-fetches everything from the persistence
// collaborator. Idempotent.
type Reloader interface {
	Reload(ctx context.Context) error
}

// ReloadAll handles the external-change notification: every store is
// reloaded from persistence, discarding in-memory state. Safe to call
// repeatedly.
func (c *ServiceContainer) ReloadAll(ctx context.Context) error {
	for _, r := range []Reloader{c.Ledger, c.Wallet, c.Snapshot, c.Asset, c.AssetSnapshot} {
		if err := r.Reload(ctx); err != nil {
			return err
		}
	}
	return nil
}
