package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
)

type entryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new repository for ledger entries.
func NewEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepository {
	return &entryRepository{pool: pool}
}

func (r *entryRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (entry_id, amount, kind, category_id, note, occurred_at, wallet_id, to_wallet_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	var toWallet *string
	if entry.ToWalletID != "" {
		toWallet = &entry.ToWalletID
	}

	_, err := r.pool.Exec(ctx, query,
		entry.EntryID,
		int64(entry.Amount),
		entry.Kind,
		entry.CategoryID,
		entry.Note,
		entry.OccurredAt,
		entry.WalletID,
		toWallet,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *entryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	// No row matched is fine: delete is idempotent.
	_, err := r.pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	return nil
}

func (r *entryRepository) FetchAllEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, amount, kind, category_id, note, occurred_at, wallet_id, to_wallet_id, created_at
		FROM ledger_entries
		ORDER BY occurred_at DESC, created_at DESC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var amount int64
		var toWallet *string
		if err := rows.Scan(&e.EntryID, &amount, &e.Kind, &e.CategoryID, &e.Note, &e.OccurredAt, &e.WalletID, &toWallet, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		e.Amount = domain.Money(amount)
		if toWallet != nil {
			e.ToWalletID = *toWallet
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading entry rows: %w", err)
	}
	return entries, nil
}
