package domain

import "time"

// AssetKind is the fundamental classification of a holding.
type AssetKind string

const (
	CurrentAsset    AssetKind = "CURRENT"
	InvestmentAsset AssetKind = "INVESTMENT"
	LiabilityAsset  AssetKind = "LIABILITY"
)

// Valid reports whether k is one of the known asset kinds.
func (k AssetKind) Valid() bool {
	switch k {
	case CurrentAsset, InvestmentAsset, LiabilityAsset:
		return true
	}
	return false
}

// Asset is a typed holding tracked for net worth. Unlike a Wallet it carries
// a live Balance, updated directly by the user without taking a snapshot.
// For LiabilityAsset the balance is the magnitude owed, irrespective of its
// stored sign; for the other kinds it is the magnitude held.
type Asset struct {
	AssetID          string    `json:"assetID"`
	Name             string    `json:"name"`
	Icon             string    `json:"icon"`
	Color            string    `json:"color"`
	Kind             AssetKind `json:"kind"`
	DisplayOrder     int       `json:"displayOrder"` // ordering within the kind group
	Balance          Money     `json:"balance"`
	BalanceUpdatedAt time.Time `json:"balanceUpdatedAt"` // last direct balance update
	AuditFields
}

// AssetSnapshot is an immutable point-in-time capture of every registered
// asset's balance. TotalAssets, TotalLiabilities and NetWorth are computed
// and frozen at capture time, so historical snapshots stay accurate even if
// assets are later deleted or retyped.
type AssetSnapshot struct {
	SnapshotID       string           `json:"snapshotID"`
	CapturedAt       time.Time        `json:"capturedAt"`
	Balances         map[string]Money `json:"balances"` // asset id -> balance at capture
	TotalAssets      Money            `json:"totalAssets"`
	TotalLiabilities Money            `json:"totalLiabilities"`
	NetWorth         Money            `json:"netWorth"`
}

// CloneBalances returns a copy of the balance map so callers can never
// mutate a captured snapshot through a shared reference.
func (s AssetSnapshot) CloneBalances() map[string]Money {
	out := make(map[string]Money, len(s.Balances))
	for id, b := range s.Balances {
		out[id] = b
	}
	return out
}
