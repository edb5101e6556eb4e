package services

import (
	"context"

	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// ReconciliationSvcFacade answers "does what I recorded match what I actually
// have?". It is a stateless facade over the pure reckon routines; it never
// mutates any store and is only ever invoked on demand.
type ReconciliationSvcFacade interface {
	// Reconcile compares the balance change between two snapshots against
	// the ledger entries in that window. A nil oldSnapshotID is the
	// bootstrap case. Unknown snapshot ids yield apperrors.ErrNotFound.
	Reconcile(ctx context.Context, oldSnapshotID *string, newSnapshotID string) (*reckon.Result, error)

	// AssetDeltas reports per-asset movement between two asset snapshots for
	// every asset currently in the registry.
	AssetDeltas(ctx context.Context, oldSnapshotID *string, newSnapshotID string) ([]reckon.AssetDelta, error)
}
