package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finbook/finbook-backend/internal/apperrors"
	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
	portssvc "github.com/finbook/finbook-backend/internal/core/ports/services"
	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/middleware"
)

// walletService holds the wallet registry in memory. Ordering is a display
// concern only.
type walletService struct {
	repo portsrepo.WalletRepository

	mu      sync.Mutex
	wallets []domain.Wallet
}

// NewWalletService creates a new wallet service backed by the given repository.
func NewWalletService(repo portsrepo.WalletRepository) portssvc.WalletSvcFacade {
	return &walletService{repo: repo}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// defaultWallets is the fixed set seeded exactly once per registry lifetime.
func defaultWallets(now time.Time) []domain.Wallet {
	defs := []struct {
		name, icon, color string
	}{
		{"Cash", "banknote", "#4CAF50"},
		{"Bank", "building-bank", "#2196F3"},
		{"E-Wallet 1", "wallet", "#FF9800"},
		{"E-Wallet 2", "wallet", "#9C27B0"},
	}

	wallets := make([]domain.Wallet, 0, len(defs))
	for i, d := range defs {
		wallets = append(wallets, domain.Wallet{
			WalletID:     uuid.NewString(),
			Name:         d.name,
			Icon:         d.icon,
			Color:        d.color,
			DisplayOrder: i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}
	return wallets
}

// EnsureDefaults seeds the default wallet set iff the registry is empty AND
// has never been seeded. The seed marker is persisted, so a user who deletes
// every default wallet does not get them resurrected on the next start.
func (s *walletService) EnsureDefaults(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.wallets) > 0 {
		return nil
	}

	seeded, err := s.repo.HasSeededDefaults(ctx)
	if err != nil {
		return fmt.Errorf("failed to check seed marker: %w", err)
	}
	if seeded {
		return nil
	}

	now := time.Now().UTC()
	s.wallets = defaultWallets(now)

	for _, w := range s.wallets {
		if err := s.repo.SaveWallet(ctx, w); err != nil {
			logger.Warn("Default wallet applied in memory but not persisted", slog.String("wallet_id", w.WalletID), slog.String("error", err.Error()))
			return fmt.Errorf("%w: save default wallet %s: %v", apperrors.ErrPersist, w.WalletID, err)
		}
	}
	if err := s.repo.MarkDefaultsSeeded(ctx); err != nil {
		return fmt.Errorf("%w: mark defaults seeded: %v", apperrors.ErrPersist, err)
	}

	logger.Info("Default wallets seeded", slog.Int("count", len(s.wallets)))
	return nil
}

func (s *walletService) CreateWallet(ctx context.Context, req dto.CreateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID:     uuid.NewString(),
		Name:         req.Name,
		Icon:         req.Icon,
		Color:        req.Color,
		DisplayOrder: req.DisplayOrder,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.wallets = append(s.wallets, wallet)
	s.sortLocked()

	if err := s.repo.SaveWallet(ctx, wallet); err != nil {
		logger.Warn("Wallet applied in memory but not persisted", slog.String("wallet_id", wallet.WalletID), slog.String("error", err.Error()))
		return &wallet, fmt.Errorf("%w: save wallet %s: %v", apperrors.ErrPersist, wallet.WalletID, err)
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("name", wallet.Name))
	return &wallet, nil
}

func (s *walletService) ListWallets(ctx context.Context) ([]domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Wallet, len(s.wallets))
	copy(out, s.wallets)
	return out, nil
}

func (s *walletService) UpdateWallet(ctx context.Context, walletID string, req dto.UpdateWalletRequest) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(walletID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}

	w := &s.wallets[idx]
	if req.Name != nil {
		w.Name = *req.Name
	}
	if req.Icon != nil {
		w.Icon = *req.Icon
	}
	if req.Color != nil {
		w.Color = *req.Color
	}
	if req.DisplayOrder != nil {
		w.DisplayOrder = *req.DisplayOrder
	}
	w.LastUpdatedAt = time.Now().UTC()
	s.sortLocked()

	// The sort may have moved the wallet, so look it up again by id before
	// copying and persisting.
	idx = s.indexLocked(walletID)
	updated := s.wallets[idx]
	if err := s.repo.UpdateWallet(ctx, updated); err != nil {
		logger.Warn("Wallet update applied in memory but not persisted", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		return &updated, fmt.Errorf("%w: update wallet %s: %v", apperrors.ErrPersist, walletID, err)
	}

	logger.Info("Wallet updated", slog.String("wallet_id", walletID))
	return &updated, nil
}

// DeleteWallet removes a wallet. Ledger entries and snapshots that reference
// it are untouched; their wallet id becomes an orphaned weak reference that
// readers resolve to a "missing wallet" state.
func (s *walletService) DeleteWallet(ctx context.Context, walletID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(walletID)
	if idx < 0 {
		return fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	s.wallets = append(s.wallets[:idx], s.wallets[idx+1:]...)

	if err := s.repo.DeleteWallet(ctx, walletID); err != nil {
		logger.Warn("Wallet removed from memory but delete not persisted", slog.String("wallet_id", walletID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: delete wallet %s: %v", apperrors.ErrPersist, walletID, err)
	}

	logger.Info("Wallet deleted", slog.String("wallet_id", walletID))
	return nil
}

// TouchAllLastReconciled stamps every wallet's last_reconciled_at in one
// critical section so a concurrent reader never sees a half-touched registry.
func (s *walletService) TouchAllLastReconciled(ctx context.Context, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.wallets {
		t := at
		s.wallets[i].LastReconciledAt = &t
		s.wallets[i].LastUpdatedAt = at
	}

	if err := s.repo.TouchLastReconciled(ctx, at); err != nil {
		return fmt.Errorf("%w: touch last reconciled: %v", apperrors.ErrPersist, err)
	}
	return nil
}

// Reload discards the in-memory registry and re-fetches it from persistence.
func (s *walletService) Reload(ctx context.Context) error {
	wallets, err := s.repo.FetchAllWallets(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload wallets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallets = wallets
	s.sortLocked()

	middleware.GetLoggerFromCtx(ctx).Info("Wallet registry reloaded", slog.Int("count", len(wallets)))
	return nil
}

func (s *walletService) sortLocked() {
	sort.SliceStable(s.wallets, func(i, j int) bool {
		return s.wallets[i].DisplayOrder < s.wallets[j].DisplayOrder
	})
}

func (s *walletService) indexLocked(walletID string) int {
	for i := range s.wallets {
		if s.wallets[i].WalletID == walletID {
			return i
		}
	}
	return -1
}
