package dto

import (
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/utils/moneyfmt"
)

// UncategorizedID is the display category for entries whose category id is
// empty or no longer known. Unknown categories never error.
const UncategorizedID = "uncategorized"

// CreateEntryRequest defines the data needed to append a ledger entry.
// Amount is a positive magnitude in minor units; the sign is derived from
// Kind, never stored.
type CreateEntryRequest struct {
	Amount     int64            `json:"amount" binding:"required"`
	Kind       domain.EntryKind `json:"kind" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	CategoryID string           `json:"categoryID"`
	Note       string           `json:"note"`
	OccurredAt time.Time        `json:"occurredAt" binding:"required"`
	WalletID   string           `json:"walletID" binding:"required"`
	ToWalletID string           `json:"toWalletID"` // required for TRANSFER
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID       string           `json:"entryID"`
	Amount        int64            `json:"amount"`
	AmountDisplay string           `json:"amountDisplay"`
	Kind          domain.EntryKind `json:"kind"`
	CategoryID    string           `json:"categoryID"`
	Note          string           `json:"note,omitempty"`
	OccurredAt    time.Time        `json:"occurredAt"`
	WalletID      string           `json:"walletID"`
	ToWalletID    string           `json:"toWalletID,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	Warning       string           `json:"warning,omitempty"`
}

// EntrySummaryResponse reports recorded income/expense over a window.
type EntrySummaryResponse struct {
	Income         int64  `json:"income"`
	Expense        int64  `json:"expense"`
	Net            int64  `json:"net"`
	IncomeDisplay  string `json:"incomeDisplay"`
	ExpenseDisplay string `json:"expenseDisplay"`
	NetDisplay     string `json:"netDisplay"`
}

// ToEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToEntryResponse(e *domain.LedgerEntry, currencyCode string) EntryResponse {
	category := e.CategoryID
	if category == "" {
		category = UncategorizedID
	}
	return EntryResponse{
		EntryID:       e.EntryID,
		Amount:        int64(e.Amount),
		AmountDisplay: moneyfmt.Display(e.Amount, currencyCode),
		Kind:          e.Kind,
		CategoryID:    category,
		Note:          e.Note,
		OccurredAt:    e.OccurredAt,
		WalletID:      e.WalletID,
		ToWalletID:    e.ToWalletID,
		CreatedAt:     e.CreatedAt,
	}
}

// ToEntryListResponse converts a slice of entries.
func ToEntryListResponse(entries []domain.LedgerEntry, currencyCode string) []EntryResponse {
	out := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, ToEntryResponse(&entries[i], currencyCode))
	}
	return out
}
