package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/middleware"
	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// assetSnapshotService retains immutable asset snapshots newest-first.
// Capture takes no external balances: it reads the live balance of every
// registered asset and freezes the aggregates at that instant.
type assetSnapshotService struct {
	repo     portsrepo.AssetSnapshotRepository
	assetSvc portssvc.AssetSvcFacade

	mu    sync.Mutex
	snaps []domain.AssetSnapshot
}

// NewAssetSnapshotService creates a new asset snapshot service.
func NewAssetSnapshotService(repo portsrepo.AssetSnapshotRepository, assetSvc portssvc.AssetSvcFacade) portssvc.AssetSnapshotSvcFacade {
	return &assetSnapshotService{repo: repo, assetSvc: assetSvc}
}

var _ portssvc.AssetSnapshotSvcFacade = (*assetSnapshotService)(nil)

func (s *assetSnapshotService) Capture(ctx context.Context) (*domain.AssetSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assets, err := s.assetSvc.ListAssets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets for snapshot: %w", err)
	}

	balances := make(map[string]domain.Money, len(assets))
	for _, a := range assets {
		balances[a.AssetID] = a.Balance
	}
	totalAssets, totalLiabilities, netWorth := reckon.AggregateAssets(assets)

	snap := domain.AssetSnapshot{
		SnapshotID:       uuid.NewString(),
		CapturedAt:       time.Now().UTC(),
		Balances:         balances,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		NetWorth:         netWorth,
	}

	s.mu.Lock()
	s.snaps = append([]domain.AssetSnapshot{snap}, s.snaps...)
	err = s.repo.SaveAssetSnapshot(ctx, snap)
	s.mu.Unlock()

	out := snap
	out.Balances = snap.CloneBalances()
	if err != nil {
		logger.Warn("Asset snapshot applied in memory but not persisted", slog.String("snapshot_id", snap.SnapshotID), slog.String("error", err.Error()))
		return &out, fmt.Errorf("%w: save asset snapshot %s: %v", apperrors.ErrPersist, snap.SnapshotID, err)
	}

	logger.Info("Asset snapshot captured", slog.String("snapshot_id", snap.SnapshotID), slog.Int("assets", len(balances)))
	return &out, nil
}

// Latest returns the maximum-timestamp snapshot, ties broken by insertion
// order.
func (s *assetSnapshotService) Latest(ctx context.Context) (*domain.AssetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snaps) == 0 {
		return nil, apperrors.ErrNotFound
	}

	best := 0
	for i := 1; i < len(s.snaps); i++ {
		if s.snaps[i].CapturedAt.After(s.snaps[best].CapturedAt) {
			best = i
		}
	}

	out := s.snaps[best]
	out.Balances = s.snaps[best].CloneBalances()
	return &out, nil
}

func (s *assetSnapshotService) List(ctx context.Context) ([]domain.AssetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.AssetSnapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		c := snap
		c.Balances = snap.CloneBalances()
		out = append(out, c)
	}
	return out, nil
}

func (s *assetSnapshotService) GetByID(ctx context.Context, snapshotID string) (*domain.AssetSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range s.snaps {
		if snap.SnapshotID == snapshotID {
			out := snap
			out.Balances = snap.CloneBalances()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: asset snapshot %s", apperrors.ErrNotFound, snapshotID)
}

// Reload discards the in-memory snapshots and re-fetches from persistence.
func (s *assetSnapshotService) Reload(ctx context.Context) error {
	snaps, err := s.repo.FetchAllAssetSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload asset snapshots: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = snaps

	middleware.GetLoggerFromCtx(ctx).Info("Asset snapshots reloaded", slog.Int("count", len(snaps)))
	return nil
}
