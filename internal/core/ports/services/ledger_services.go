package services

import (
	"context"
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/dto"
)

// LedgerReaderSvc defines read operations over the entry log.
type LedgerReaderSvc interface {
	// ListEntries returns entries within the half-open window
	// [from, to); an entry stamped exactly at to is excluded. A nil bound
	// is unbounded on that side.
	ListEntries(ctx context.Context, from, to *time.Time) ([]domain.LedgerEntry, error)

	// AllEntries returns every entry in the log.
	AllEntries(ctx context.Context) ([]domain.LedgerEntry, error)

	// Summarize returns the recorded income and expense magnitudes over the
	// half-open window [from, to). Transfers contribute to neither.
	Summarize(ctx context.Context, from, to *time.Time) (income, expense domain.Money, err error)
}

// LedgerWriterSvc defines mutation operations over the entry log.
type LedgerWriterSvc interface {
	// AppendEntry validates and records a new entry. A non-positive amount is
	// rejected with apperrors.ErrInvalidAmount before any state change. On a
	// persistence failure the entry is still returned alongside an error
	// wrapping apperrors.ErrPersist.
	AppendEntry(ctx context.Context, req dto.CreateEntryRequest) (*domain.LedgerEntry, error)

	// DeleteEntry removes an entry regardless of age. Absent ids are a no-op.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerSvcFacade combines all ledger service operations.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
	Reloader
}
