package dto

import (
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
	"github.com/finbook/finbook-backend/internal/utils/moneyfmt"
)

// CreateAssetRequest defines the data needed to register an asset. Balance is
// in minor units; for LIABILITY it is the magnitude owed.
type CreateAssetRequest struct {
	Name         string           `json:"name" binding:"required"`
	Icon         string           `json:"icon"`
	Color        string           `json:"color"`
	Kind         domain.AssetKind `json:"kind" binding:"required,oneof=CURRENT INVESTMENT LIABILITY"`
	DisplayOrder int              `json:"displayOrder"`
	Balance      int64            `json:"balance"`
}

// UpdateAssetRequest defines the fields allowed when updating an asset's
// descriptive attributes. Balance changes go through the dedicated balance
// endpoint.
type UpdateAssetRequest struct {
	Name         *string           `json:"name"`
	Icon         *string           `json:"icon"`
	Color        *string           `json:"color"`
	Kind         *domain.AssetKind `json:"kind"`
	DisplayOrder *int              `json:"displayOrder"`
}

// UpdateAssetBalanceRequest sets an asset's live balance.
type UpdateAssetBalanceRequest struct {
	Balance int64 `json:"balance"`
}

// AssetResponse defines the data returned for an asset.
type AssetResponse struct {
	AssetID          string           `json:"assetID"`
	Name             string           `json:"name"`
	Icon             string           `json:"icon"`
	Color            string           `json:"color"`
	Kind             domain.AssetKind `json:"kind"`
	DisplayOrder     int              `json:"displayOrder"`
	Balance          int64            `json:"balance"`
	BalanceDisplay   string           `json:"balanceDisplay"`
	BalanceUpdatedAt time.Time        `json:"balanceUpdatedAt"`
	LastUpdatedAt    time.Time        `json:"lastUpdatedAt"`
	CreatedAt        time.Time        `json:"createdAt"`
	Warning          string           `json:"warning,omitempty"`
}

// NetWorthResponse reports the live derived aggregates.
type NetWorthResponse struct {
	TotalAssets        int64  `json:"totalAssets"`
	TotalLiabilities   int64  `json:"totalLiabilities"`
	NetWorth           int64  `json:"netWorth"`
	TotalAssetsDisplay string `json:"totalAssetsDisplay"`
	LiabilitiesDisplay string `json:"totalLiabilitiesDisplay"`
	NetWorthDisplay    string `json:"netWorthDisplay"`
}

// AssetSnapshotResponse defines the data returned for an asset snapshot. The
// totals are the values frozen at capture time, never recomputed.
type AssetSnapshotResponse struct {
	SnapshotID       string           `json:"snapshotID"`
	CapturedAt       time.Time        `json:"capturedAt"`
	Balances         map[string]int64 `json:"balances"`
	TotalAssets      int64            `json:"totalAssets"`
	TotalLiabilities int64            `json:"totalLiabilities"`
	NetWorth         int64            `json:"netWorth"`
	NetWorthDisplay  string           `json:"netWorthDisplay"`
	Warning          string           `json:"warning,omitempty"`
}

// ToAssetResponse converts a domain.Asset to its response DTO.
func ToAssetResponse(a *domain.Asset, currencyCode string) AssetResponse {
	return AssetResponse{
		AssetID:          a.AssetID,
		Name:             a.Name,
		Icon:             a.Icon,
		Color:            a.Color,
		Kind:             a.Kind,
		DisplayOrder:     a.DisplayOrder,
		Balance:          int64(a.Balance),
		BalanceDisplay:   moneyfmt.Display(a.Balance, currencyCode),
		BalanceUpdatedAt: a.BalanceUpdatedAt,
		LastUpdatedAt:    a.LastUpdatedAt,
		CreatedAt:        a.CreatedAt,
	}
}

// ToAssetListResponse converts a slice of assets.
func ToAssetListResponse(assets []domain.Asset, currencyCode string) []AssetResponse {
	out := make([]AssetResponse, 0, len(assets))
	for i := range assets {
		out = append(out, ToAssetResponse(&assets[i], currencyCode))
	}
	return out
}

// ToNetWorthResponse builds the live aggregates response.
func ToNetWorthResponse(totalAssets, totalLiabilities, netWorth domain.Money, currencyCode string) NetWorthResponse {
	return NetWorthResponse{
		TotalAssets:        int64(totalAssets),
		TotalLiabilities:   int64(totalLiabilities),
		NetWorth:           int64(netWorth),
		TotalAssetsDisplay: moneyfmt.Display(totalAssets, currencyCode),
		LiabilitiesDisplay: moneyfmt.Display(totalLiabilities, currencyCode),
		NetWorthDisplay:    moneyfmt.Display(netWorth, currencyCode),
	}
}

// ToAssetSnapshotResponse converts a domain.AssetSnapshot to its response DTO.
func ToAssetSnapshotResponse(s *domain.AssetSnapshot, currencyCode string) AssetSnapshotResponse {
	balances := make(map[string]int64, len(s.Balances))
	for id, b := range s.Balances {
		balances[id] = int64(b)
	}
	return AssetSnapshotResponse{
		SnapshotID:       s.SnapshotID,
		CapturedAt:       s.CapturedAt,
		Balances:         balances,
		TotalAssets:      int64(s.TotalAssets),
		TotalLiabilities: int64(s.TotalLiabilities),
		NetWorth:         int64(s.NetWorth),
		NetWorthDisplay:  moneyfmt.Display(s.NetWorth, currencyCode),
	}
}

// ToAssetSnapshotListResponse converts a slice of asset snapshots.
func ToAssetSnapshotListResponse(snaps []domain.AssetSnapshot, currencyCode string) []AssetSnapshotResponse {
	out := make([]AssetSnapshotResponse, 0, len(snaps))
	for i := range snaps {
		out = append(out, ToAssetSnapshotResponse(&snaps[i], currencyCode))
	}
	return out
}
