package repositories

import (
	"context"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// EntryReader defines read operations for ledger entries.
type EntryReader interface {
	// FetchAllEntries retrieves every persisted entry, most recent first.
	FetchAllEntries(ctx context.Context) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for ledger entries.
type EntryWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes an entry by id. Deleting an absent id is not an error.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryRepository combines all ledger-entry repository operations.
type EntryRepository interface {
	EntryReader
	EntryWriter
}
