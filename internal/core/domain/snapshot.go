package domain

import "time"

// BalanceSnapshot is an immutable point-in-time capture of per-wallet
// balances. The latest snapshot by CapturedAt (insertion order breaking ties)
// is treated as current truth; older snapshots are historical record only.
//
// Wallets are referenced by id. A wallet missing from Balances counts as zero
// towards the total; a balance for a wallet that was later deleted still
// counts.
type BalanceSnapshot struct {
	SnapshotID string           `json:"snapshotID"`
	CapturedAt time.Time        `json:"capturedAt"`
	Balances   map[string]Money `json:"balances"` // wallet id -> balance
}

// TotalBalance sums every balance in the snapshot.
func (s BalanceSnapshot) TotalBalance() Money {
	var total Money
	for _, b := range s.Balances {
		total = total.Add(b)
	}
	return total
}

// CloneBalances returns a copy of the balance map so callers can never
// mutate a captured snapshot through a shared reference.
func (s BalanceSnapshot) CloneBalances() map[string]Money {
	out := make(map[string]Money, len(s.Balances))
	for id, b := range s.Balances {
		out[id] = b
	}
	return out
}
