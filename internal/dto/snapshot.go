package dto

import (
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/utils/moneyfmt"
)

// CaptureSnapshotRequest carries the per-wallet balances for a new balance
// snapshot, in minor units. The UI pre-fills every wallet, but wallets may be
// skipped; a missing wallet counts as zero.
type CaptureSnapshotRequest struct {
	Balances map[string]int64 `json:"balances" binding:"required"`
}

// BalanceSnapshotResponse defines the data returned for a balance snapshot.
type BalanceSnapshotResponse struct {
	SnapshotID   string           `json:"snapshotID"`
	CapturedAt   time.Time        `json:"capturedAt"`
	Balances     map[string]int64 `json:"balances"`
	TotalBalance int64            `json:"totalBalance"`
	TotalDisplay string           `json:"totalDisplay"`
	Warning      string           `json:"warning,omitempty"`
}

// ToBalanceSnapshotResponse converts a domain.BalanceSnapshot to its
// response DTO.
func ToBalanceSnapshotResponse(s *domain.BalanceSnapshot, currencyCode string) BalanceSnapshotResponse {
	balances := make(map[string]int64, len(s.Balances))
	for id, b := range s.Balances {
		balances[id] = int64(b)
	}
	total := s.TotalBalance()
	return BalanceSnapshotResponse{
		SnapshotID:   s.SnapshotID,
		CapturedAt:   s.CapturedAt,
		Balances:     balances,
		TotalBalance: int64(total),
		TotalDisplay: moneyfmt.Display(total, currencyCode),
	}
}

// ToBalanceSnapshotListResponse converts a slice of snapshots.
func ToBalanceSnapshotListResponse(snaps []domain.BalanceSnapshot, currencyCode string) []BalanceSnapshotResponse {
	out := make([]BalanceSnapshotResponse, 0, len(snaps))
	for i := range snaps {
		out = append(out, ToBalanceSnapshotResponse(&snaps[i], currencyCode))
	}
	return out
}
