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
)

// balanceSnapshotService retains immutable balance snapshots newest-first.
// Every accessor hands out cloned balance maps; nothing outside this service
// can mutate a snapshot once captured.
type balanceSnapshotService struct {
	repo      portsrepo.BalanceSnapshotRepository
	walletSvc portssvc.WalletSvcFacade

	mu    sync.Mutex
	snaps []domain.BalanceSnapshot
}

// NewBalanceSnapshotService creates a new balance snapshot service. The
// wallet service is needed to stamp last_reconciled_at on capture.
func NewBalanceSnapshotService(repo portsrepo.BalanceSnapshotRepository, walletSvc portssvc.WalletSvcFacade) portssvc.BalanceSnapshotSvcFacade {
	return &balanceSnapshotService{repo: repo, walletSvc: walletSvc}
}

var _ portssvc.BalanceSnapshotSvcFacade = (*balanceSnapshotService)(nil)

func (s *balanceSnapshotService) Capture(ctx context.Context, balances map[string]domain.Money) (*domain.BalanceSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	owned := make(map[string]domain.Money, len(balances))
	for id, b := range balances {
		owned[id] = b
	}

	snap := domain.BalanceSnapshot{
		SnapshotID: uuid.NewString(),
		CapturedAt: time.Now().UTC(),
		Balances:   owned,
	}

	// Capture and the wallet touch form one compound operation: the lock is
	// held across both, so no reader of the snapshot store can slip between
	// the insert and the wallet stamp. The wallet service takes its own lock
	// inside the touch and never calls back into this service.
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps = append([]domain.BalanceSnapshot{snap}, s.snaps...)

	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		logger.Warn("Snapshot applied in memory but not persisted", slog.String("snapshot_id", snap.SnapshotID), slog.String("error", err.Error()))
		out := snap
		out.Balances = snap.CloneBalances()
		return &out, fmt.Errorf("%w: save snapshot %s: %v", apperrors.ErrPersist, snap.SnapshotID, err)
	}

	if err := s.walletSvc.TouchAllLastReconciled(ctx, snap.CapturedAt); err != nil {
		logger.Warn("Snapshot captured but wallet touch failed", slog.String("snapshot_id", snap.SnapshotID), slog.String("error", err.Error()))
		out := snap
		out.Balances = snap.CloneBalances()
		return &out, fmt.Errorf("%w: touch wallets for snapshot %s: %v", apperrors.ErrPersist, snap.SnapshotID, err)
	}

	logger.Info("Balance snapshot captured", slog.String("snapshot_id", snap.SnapshotID), slog.Int("wallets", len(owned)))
	out := snap
	out.Balances = snap.CloneBalances()
	return &out, nil
}

// Latest returns the maximum-timestamp snapshot, ties broken by insertion
// order (the most recently inserted wins).
func (s *balanceSnapshotService) Latest(ctx context.Context) (*domain.BalanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.snaps) == 0 {
		return nil, apperrors.ErrNotFound
	}

	// snaps is newest-inserted-first, so a strict After comparison makes the
	// earliest index win timestamp ties.
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

func (s *balanceSnapshotService) List(ctx context.Context) ([]domain.BalanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.BalanceSnapshot, 0, len(s.snaps))
	for _, snap := range s.snaps {
		c := snap
		c.Balances = snap.CloneBalances()
		out = append(out, c)
	}
	return out, nil
}

func (s *balanceSnapshotService) GetByID(ctx context.Context, snapshotID string) (*domain.BalanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range s.snaps {
		if snap.SnapshotID == snapshotID {
			out := snap
			out.Balances = snap.CloneBalances()
			return &out, nil
		}
	}
	return nil, fmt.Errorf("%w: snapshot %s", apperrors.ErrNotFound, snapshotID)
}

// Reload discards the in-memory snapshots and re-fetches from persistence.
func (s *balanceSnapshotService) Reload(ctx context.Context) error {
	snaps, err := s.repo.FetchAllSnapshots(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload balance snapshots: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = snaps

	middleware.GetLoggerFromCtx(ctx).Info("Balance snapshots reloaded", slog.Int("count", len(snaps)))
	return nil
}
