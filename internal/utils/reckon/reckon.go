// Package reckon holds the pure reconciliation and aggregation routines
// shared by services and handlers. Every function here is a total function of
// its inputs: no state, no side effects, integer arithmetic only.
package reckon

import (
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// Result reports how a window of recorded ledger entries compares to the
// balance change actually observed between two snapshots.
type Result struct {
	ActualChange    domain.Money
	RecordedIncome  domain.Money
	RecordedExpense domain.Money
	RecordedChange  domain.Money
	Drift           domain.Money
	WindowStart     *time.Time // nil on the bootstrap reconciliation
	WindowEnd       time.Time
}

// AssetDelta is the movement of a single asset between two snapshots.
type AssetDelta struct {
	AssetID    string
	OldBalance domain.Money
	NewBalance domain.Money
	Change     domain.Money
}

// SumByKind returns the summed magnitude of all entries of the given kind.
func SumByKind(entries []domain.LedgerEntry, kind domain.EntryKind) domain.Money {
	var total domain.Money
	for _, e := range entries {
		if e.Kind == kind {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// Reconcile compares the balance change observed between oldSnap and newSnap
// against the change implied by the ledger entries inside that window.
//
// The window is closed on BOTH ends: entries stamped exactly at either
// snapshot instant are counted. This deliberately differs from the half-open
// convention of general ledger window queries; collapsing the two would
// silently change which boundary-instant entries get counted.
//
// oldSnap may be nil (first-ever reconciliation): the actual change is then
// the new total itself and the window is unbounded below. Transfer entries
// never contribute to the recorded change.
//
// Precondition: newSnap.CapturedAt must not precede oldSnap.CapturedAt; the
// drift sign is undefined otherwise. Callers guard this, the engine does not.
func Reconcile(oldSnap *domain.BalanceSnapshot, newSnap domain.BalanceSnapshot, entries []domain.LedgerEntry) Result {
	res := Result{WindowEnd: newSnap.CapturedAt}

	res.ActualChange = newSnap.TotalBalance()
	if oldSnap != nil {
		res.ActualChange = res.ActualChange.Sub(oldSnap.TotalBalance())
		start := oldSnap.CapturedAt
		res.WindowStart = &start
	}

	window := entriesInClosedWindow(entries, res.WindowStart, res.WindowEnd)
	res.RecordedIncome = SumByKind(window, domain.Income)
	res.RecordedExpense = SumByKind(window, domain.Expense)
	res.RecordedChange = res.RecordedIncome.Sub(res.RecordedExpense)
	res.Drift = res.ActualChange.Sub(res.RecordedChange)
	return res
}

// entriesInClosedWindow filters entries with start <= OccurredAt <= end.
// A nil start means unbounded below.
func entriesInClosedWindow(entries []domain.LedgerEntry, start *time.Time, end time.Time) []domain.LedgerEntry {
	out := make([]domain.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if start != nil && e.OccurredAt.Before(*start) {
			continue
		}
		if e.OccurredAt.After(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// AssetDeltas reports, for every asset currently in the registry, how its
// balance moved between two snapshots. A balance missing from either snapshot
// counts as zero; assets deleted since newSnap was taken are excluded. This
// answers "how did my current assets move", not "what did history contain".
func AssetDeltas(oldSnap *domain.AssetSnapshot, newSnap domain.AssetSnapshot, assets []domain.Asset) []AssetDelta {
	deltas := make([]AssetDelta, 0, len(assets))
	for _, a := range assets {
		var old domain.Money
		if oldSnap != nil {
			old = oldSnap.Balances[a.AssetID]
		}
		nu := newSnap.Balances[a.AssetID]
		deltas = append(deltas, AssetDelta{
			AssetID:    a.AssetID,
			OldBalance: old,
			NewBalance: nu,
			Change:     nu.Sub(old),
		})
	}
	return deltas
}

// AggregateAssets computes the live net-worth aggregates from a set of
// assets. Liability balances contribute their magnitude to totalLiabilities
// regardless of stored sign and never to totalAssets.
//
// The same routine backs both the derived (dashboard) and the frozen
// (snapshot) code paths, which is what guarantees they agree at the moment
// of capture.
func AggregateAssets(assets []domain.Asset) (totalAssets, totalLiabilities, netWorth domain.Money) {
	for _, a := range assets {
		if a.Kind == domain.LiabilityAsset {
			totalLiabilities = totalLiabilities.Add(a.Balance.Abs())
		} else {
			totalAssets = totalAssets.Add(a.Balance)
		}
	}
	netWorth = totalAssets.Sub(totalLiabilities)
	return totalAssets, totalLiabilities, netWorth
}
