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
	"github.com/finbook/finbook-backend/internal/dto"
	"github.com/finbook/finbook-backend/internal/middleware"
	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// ledgerService holds the append/delete log of entries in memory and
// persists every mutation synchronously. Mutations are applied in memory
// first and are not rolled back if persistence fails; the persist error is
// surfaced wrapped in apperrors.ErrPersist instead.
type ledgerService struct {
	repo portsrepo.EntryRepository

	mu sync.Mutex
	// Most recent first for display. Queries filter and sum; they never rely
	// on position.
	entries []domain.LedgerEntry
}

// NewLedgerService creates a new ledger service backed by the given repository.
func NewLedgerService(repo portsrepo.EntryRepository) portssvc.LedgerSvcFacade {
	return &ledgerService{repo: repo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) AppendEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Validation happens before any state change.
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidAmount, req.Amount)
	}
	if !req.Kind.Valid() {
		return nil, fmt.Errorf("%w: unknown entry kind %q", apperrors.ErrValidation, req.Kind)
	}
	if req.Kind == domain.Transfer && req.ToWalletID == "" {
		return nil, fmt.Errorf("%w: transfer requires a destination wallet", apperrors.ErrValidation)
	}

	toWallet := ""
	if req.Kind == domain.Transfer {
		toWallet = req.ToWalletID
	}

	entry := domain.LedgerEntry{
		EntryID:    uuid.NewString(),
		Amount:     domain.Money(req.Amount),
		Kind:       req.Kind,
		CategoryID: req.CategoryID,
		Note:       req.Note,
		OccurredAt: req.OccurredAt,
		WalletID:   req.WalletID,
		ToWalletID: toWallet,
		CreatedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]domain.LedgerEntry{entry}, s.entries...)

	if err := s.repo.SaveEntry(ctx, entry); err != nil {
		logger.Warn("Entry applied in memory but not persisted", slog.String("entry_id", entry.EntryID), slog.String("error", err.Error()))
		return &entry, fmt.Errorf("%w: save entry %s: %v", apperrors.ErrPersist, entry.EntryID, err)
	}

	logger.Info("Ledger entry appended", slog.String("entry_id", entry.EntryID), slog.String("kind", string(entry.Kind)))
	return &entry, nil
}

func (s *ledgerService) DeleteEntry(ctx context.Context, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	// Idempotent: deleting an absent id is not an error.
	for i, e := range s.entries {
		if e.EntryID == entryID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			break
		}
	}

	if err := s.repo.DeleteEntry(ctx, entryID); err != nil {
		logger.Warn("Entry removed from memory but delete not persisted", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return fmt.Errorf("%w: delete entry %s: %v", apperrors.ErrPersist, entryID, err)
	}

	logger.Info("Ledger entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ListEntries returns entries within the half-open window [from, to). This
// convention is distinct from the closed window reconciliation uses; the two
// must not be merged.
func (s *ledgerService) ListEntries(ctx context.Context, from, to *time.Time) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LedgerEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if from != nil && e.OccurredAt.Before(*from) {
			continue
		}
		if to != nil && !e.OccurredAt.Before(*to) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *ledgerService) AllEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.LedgerEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *ledgerService) Summarize(ctx context.Context, from, to *time.Time) (domain.Money, domain.Money, error) {
	window, err := s.ListEntries(ctx, from, to)
	if err != nil {
		return 0, 0, err
	}
	return reckon.SumByKind(window, domain.Income), reckon.SumByKind(window, domain.Expense), nil
}

// Reload discards the in-memory log and re-fetches it from persistence.
func (s *ledgerService) Reload(ctx context.Context) error {
	entries, err := s.repo.FetchAllEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to reload ledger entries: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries

	middleware.GetLoggerFromCtx(ctx).Info("Ledger reloaded", slog.Int("count", len(entries)))
	return nil
}
