package domain

import "time"

// EntryKind classifies a ledger entry. The sign of an entry's contribution to
// any aggregate is derived from its kind; the stored amount is always a
// positive magnitude.
type EntryKind string

const (
	Income   EntryKind = "INCOME"
	Expense  EntryKind = "EXPENSE"
	Transfer EntryKind = "TRANSFER"
)

// Valid reports whether k is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	switch k {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// LedgerEntry is a single dated income/expense/transfer record. Entries are
// immutable once created; the only lifecycle operation after creation is
// deletion.
type LedgerEntry struct {
	EntryID    string    `json:"entryID"`
	Amount     Money     `json:"amount"` // positive magnitude; sign derives from Kind
	Kind       EntryKind `json:"kind"`
	CategoryID string    `json:"categoryID"` // opaque; unknown ids render as "uncategorized"
	Note       string    `json:"note"`
	OccurredAt time.Time `json:"occurredAt"`
	WalletID   string    `json:"walletID"`     // weak reference, may be orphaned
	ToWalletID string    `json:"toWalletID"`   // set for Transfer only
	CreatedAt  time.Time `json:"createdAt"`
}

// SignedAmount is the entry's contribution to an aggregate balance change.
// Transfers move money between wallets without changing the total, so they
// contribute zero.
func (e LedgerEntry) SignedAmount() Money {
	switch e.Kind {
	case Income:
		return e.Amount
	case Expense:
		return e.Amount.Neg()
	default:
		return 0
	}
}
