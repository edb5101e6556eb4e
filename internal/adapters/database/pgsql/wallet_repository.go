package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbook/finbook-backend/internal/core/domain"
	portsrepo "github.com/finbook/finbook-backend/internal/core/ports/repositories"
)

// walletDefaultsSeededFlag is the durable marker for the one-shot default
// seeding. Its presence, not the registry being non-empty, is what prevents
// re-seeding.
const walletDefaultsSeededFlag = "wallet_defaults_seeded"

type walletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new repository for wallet data.
func NewWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepository {
	return &walletRepository{pool: pool}
}

func (r *walletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		INSERT INTO wallets (wallet_id, name, icon, color, display_order, last_reconciled_at, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		wallet.WalletID,
		wallet.Name,
		wallet.Icon,
		wallet.Color,
		wallet.DisplayOrder,
		wallet.LastReconciledAt,
		wallet.CreatedAt,
		wallet.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save wallet %s: %w", wallet.WalletID, err)
	}
	return nil
}

func (r *walletRepository) UpdateWallet(ctx context.Context, wallet domain.Wallet) error {
	query := `
		UPDATE wallets
		SET name = $2, icon = $3, color = $4, display_order = $5, last_reconciled_at = $6, last_updated_at = $7
		WHERE wallet_id = $1;
	`
	_, err := r.pool.Exec(ctx, query,
		wallet.WalletID,
		wallet.Name,
		wallet.Icon,
		wallet.Color,
		wallet.DisplayOrder,
		wallet.LastReconciledAt,
		wallet.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update wallet %s: %w", wallet.WalletID, err)
	}
	return nil
}

func (r *walletRepository) DeleteWallet(ctx context.Context, walletID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM wallets WHERE wallet_id = $1;`, walletID)
	if err != nil {
		return fmt.Errorf("failed to delete wallet %s: %w", walletID, err)
	}
	return nil
}

func (r *walletRepository) TouchLastReconciled(ctx context.Context, at time.Time) error {
	_, err := r.pool.Exec(ctx, `UPDATE wallets SET last_reconciled_at = $1, last_updated_at = $1;`, at)
	if err != nil {
		return fmt.Errorf("failed to touch last_reconciled_at: %w", err)
	}
	return nil
}

func (r *walletRepository) FetchAllWallets(ctx context.Context) ([]domain.Wallet, error) {
	query := `
		SELECT wallet_id, name, icon, color, display_order, last_reconciled_at, created_at, last_updated_at
		FROM wallets
		ORDER BY display_order ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wallets: %w", err)
	}
	defer rows.Close()

	var wallets []domain.Wallet
	for rows.Next() {
		var w domain.Wallet
		if err := rows.Scan(&w.WalletID, &w.Name, &w.Icon, &w.Color, &w.DisplayOrder, &w.LastReconciledAt, &w.CreatedAt, &w.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet row: %w", err)
		}
		wallets = append(wallets, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading wallet rows: %w", err)
	}
	return wallets, nil
}

func (r *walletRepository) HasSeededDefaults(ctx context.Context) (bool, error) {
	var seeded bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM app_flags WHERE flag = $1);`, walletDefaultsSeededFlag).Scan(&seeded)
	if err != nil {
		return false, fmt.Errorf("failed to check seed marker: %w", err)
	}
	return seeded, nil
}

func (r *walletRepository) MarkDefaultsSeeded(ctx context.Context) error {
	query := `
		INSERT INTO app_flags (flag, set_at)
		VALUES ($1, NOW())
		ON CONFLICT (flag) DO NOTHING;
	`
	if _, err := r.pool.Exec(ctx, query, walletDefaultsSeededFlag); err != nil {
		return fmt.Errorf("failed to mark defaults seeded: %w", err)
	}
	return nil
}
