package services

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/middleware"
	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// reconciliationService resolves snapshot ids and delegates to the pure
// reckon routines. It holds no state and mutates nothing; it only ever runs
// on demand.
type reconciliationService struct {
	ledgerSvc    portssvc.LedgerSvcFacade
	snapshotSvc  portssvc.BalanceSnapshotSvcFacade
	assetSvc     portssvc.AssetSvcFacade
	assetSnapSvc portssvc.AssetSnapshotSvcFacade
}

// NewReconciliationService creates the reconciliation facade.
func NewReconciliationService(
	ledgerSvc portssvc.LedgerSvcFacade,
	snapshotSvc portssvc.BalanceSnapshotSvcFacade,
	assetSvc portssvc.AssetSvcFacade,
	assetSnapSvc portssvc.AssetSnapshotSvcFacade,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		ledgerSvc:    ledgerSvc,
		snapshotSvc:  snapshotSvc,
		assetSvc:     assetSvc,
		assetSnapSvc: assetSnapSvc,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) Reconcile(ctx context.Context, oldSnapshotID *string, newSnapshotID string) (*reckon.Result, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	newSnap, err := s.snapshotSvc.GetByID(ctx, newSnapshotID)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerSvc.AllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for reconciliation: %w", err)
	}

	if oldSnapshotID == nil {
		res := reckon.Reconcile(nil, *newSnap, entries)
		logger.Info("Bootstrap reconciliation computed", slog.Int64("drift", int64(res.Drift)))
		return &res, nil
	}

	oldSnapVal, err := s.snapshotSvc.GetByID(ctx, *oldSnapshotID)
	if err != nil {
		return nil, err
	}

	res := reckon.Reconcile(oldSnapVal, *newSnap, entries)
	logger.Info("Reconciliation computed",
		slog.Int64("actual_change", int64(res.ActualChange)),
		slog.Int64("recorded_change", int64(res.RecordedChange)),
		slog.Int64("drift", int64(res.Drift)),
	)
	return &res, nil
}

func (s *reconciliationService) AssetDeltas(ctx context.Context, oldSnapshotID *string, newSnapshotID string) ([]reckon.AssetDelta, error) {
	newSnap, err := s.assetSnapSvc.GetByID(ctx, newSnapshotID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetSvc.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets for deltas: %w", err)
	}

	if oldSnapshotID == nil {
		return reckon.AssetDeltas(nil, *newSnap, assets), nil
	}

	oldSnap, err := s.assetSnapSvc.GetByID(ctx, *oldSnapshotID)
	if err != nil {
		return nil, err
	}
	return reckon.AssetDeltas(oldSnap, *newSnap, assets), nil
}
