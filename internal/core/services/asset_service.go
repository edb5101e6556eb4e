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
	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// kindRank fixes the display grouping: current, then investment, then
// liability.
var kindRank = map[domain.AssetKind]int{
	domain.CurrentAsset:    0,
	domain.InvestmentAsset: 1,
	domain.LiabilityAsset:  2,
}

// assetService holds the typed asset registry in memory. Assets carry a live
// balance, unlike wallets whose balance only exists in snapshots.
type assetService struct {
	repo portsrepo.AssetRepository

	mu     sync.Mutex
	assets []domain.Asset
}

// NewAssetService creates a new asset service backed by the given repository.
func NewAssetService(repo portsrepo.AssetRepository) portssvc.AssetSvcFacade {
	return &assetService{repo: repo}
}

var _ portssvc.AssetSvcFacade = (*assetService)(nil)

func (s *assetService) CreateAsset(ctx context.Context, req dto.CreateAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown asset kind %q", apperrors.ErrValidation, req.Kind)
	}

	now := time.Now().UTC()
	asset := domain.Asset{
		AssetID:          uuid.NewString(),
		Name:             req.Name,
		Icon:             req.Icon,
		Color:            req.Color,
		Kind:             req.Kind,
		DisplayOrder:     req.DisplayOrder,
		Balance:          domain.Money(req.Balance),
		BalanceUpdatedAt: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.assets = append(s.assets, asset)
	s.sortLocked()

	if err := s.repo.SaveAsset(ctx, asset); err != nil {
		logger.Warn("Asset applied in memory but not persisted", slog.String("asset_id", asset.AssetID), slog.String("error", err.Error()))
		return &asset, fmt.Errorf("%w: save asset %s: %v", apperrors.ErrPersist, asset.AssetID, err)
	}

	logger.Info("Asset created", slog.String("asset_id", asset.AssetID), slog.String("kind", string(asset.Kind)))
	return &asset, nil
}

func (s *assetService) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Asset, len(s.assets))
	copy(out, s.assets)
	return out, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, assetID string, req dto.UpdateAssetRequest) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(assetID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}

	// Validate before touching the asset so a rejected request leaves it
	// exactly as it was.
	if req.Kind != nil && !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown asset kind %q", apperrors.ErrValidation, *req.Kind)
	}

	a := &s.assets[idx]
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Icon != nil {
		a.Icon = *req.Icon
	}
	if req.Color != nil {
		a.Color = *req.Color
	}
	if req.Kind != nil {
		a.Kind = *req.Kind
	}
	if req.DisplayOrder != nil {
		a.DisplayOrder = *req.DisplayOrder
	}
	a.LastUpdatedAt = time.Now().UTC()
	s.sortLocked()

	idx = s.indexLocked(assetID)
	updated := s.assets[idx]
	if err := s.repo.UpdateAsset(ctx, updated); err != nil {
		logger.Warn("Asset update applied in memory but not persisted", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		return &updated, fmt.Errorf("%w: update asset %s: %v", apperrors.ErrPersist, assetID, err)
	}

	logger.Info("Asset updated", slog.String("asset_id", assetID))
	return &updated, nil
}

// UpdateBalance sets the live balance immediately; no snapshot involved.
func (s *assetService) UpdateBalance(ctx context.Context, assetID string, balance domain.Money) (*domain.Asset, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(assetID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}

	now := time.Now().UTC()
	a := &s.assets[idx]
	a.Balance = balance
	a.BalanceUpdatedAt = now
	a.LastUpdatedAt = now

	updated := *a
	if err := s.repo.UpdateAsset(ctx, updated); err != nil {
		logger.Warn("Balance update applied in memory but not persisted", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		return &updated, fmt.Errorf("%w: update asset %s: %v", apperrors.ErrPersist, assetID, err)
	}

	logger.Info("Asset balance updated", slog.String("asset_id", assetID))
	return &updated, nil
}

// DeleteAsset removes an asset from the registry. Snapshots that reference it
// keep their frozen balances and totals.
func (s *assetService) DeleteAsset(ctx context.Context, assetID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(assetID)
	if idx < 0 {
		return fmt.Errorf("%w: asset %s", apperrors.ErrNotFound, assetID)
	}
	s.assets = append(s.assets[:idx], s.assets[idx+1:]...)

	if err := s.repo.DeleteAsset(ctx, assetID); err != nil {
		logger.Warn("Asset removed from memory but delete not persisted", slog.String("asset_id", assetID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: delete asset %s: %v", apperrors.ErrPersist, assetID, err)
	}

	logger.Info("Asset deleted", slog.String("asset_id", assetID))
	return nil
}

// NetWorth derives the live aggregates. The same reckon routine freezes these
// values into asset snapshots, so both paths agree at the moment of capture.
func (s *assetService) NetWorth(ctx context.Context) (domain.Money, domain.Money, domain.Money, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totalAssets, totalLiabilities, netWorth := reckon.AggregateAssets(s.assets)
	return totalAssets, totalLiabilities, netWorth, nil
}

// Reload discards the in-memory registry and re-fetches it from persistence.
func (s *assetService) Reload(ctx context.Context) error {
	assets, err := s.repo.FetchAllAssets(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload assets: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets = assets
	s.sortLocked()

	middleware.GetLoggerFromCtx(ctx).Info("Asset registry reloaded", slog.Int("count", len(assets)))
	return nil
}

func (s *assetService) indexLocked(assetID string) int {
	for i := range s.assets {
		if s.assets[i].AssetID == assetID {
			return i
		}
	}
	return -1
}

func (s *assetService) sortLocked() {
	sort.SliceStable(s.assets, func(i, j int) bool {
		if kindRank[s.assets[i].Kind] != kindRank[s.assets[j].Kind] {
			return kindRank[s.assets[i].Kind] < kindRank[s.assets[j].Kind]
		}
		return s.assets[i].DisplayOrder < s.assets[j].DisplayOrder
	})
}
