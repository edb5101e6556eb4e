package dto

import (
	"time"

	"github.com/finbook/finbook-backend/internal/utils/moneyfmt"
	"github.com/finbook/finbook-backend/internal/utils/reckon"
)

// ReconcileRequest names the two snapshots to compare. OldSnapshotID is nil
// for the first-ever reconciliation.
type ReconcileRequest struct {
	OldSnapshotID *string `json:"oldSnapshotID"`
	NewSnapshotID string  `json:"newSnapshotID" binding:"required"`
}

// ReconcileResponse reports actual vs recorded change and their drift.
type ReconcileResponse struct {
	ActualChange    int64      `json:"actualChange"`
	RecordedIncome  int64      `json:"recordedIncome"`
	RecordedExpense int64      `json:"recordedExpense"`
	RecordedChange  int64      `json:"recordedChange"`
	Drift           int64      `json:"drift"`
	DriftDisplay    string     `json:"driftDisplay"`
	WindowStart     *time.Time `json:"windowStart,omitempty"`
	WindowEnd       time.Time  `json:"windowEnd"`
}

// AssetDeltasRequest names the two asset snapshots to compare.
type AssetDeltasRequest struct {
	OldSnapshotID *string `json:"oldSnapshotID"`
	NewSnapshotID string  `json:"newSnapshotID" binding:"required"`
}

// AssetDeltaResponse is the movement of one currently-registered asset.
type AssetDeltaResponse struct {
	AssetID       string `json:"assetID"`
	OldBalance    int64  `json:"oldBalance"`
	NewBalance    int64  `json:"newBalance"`
	Change        int64  `json:"change"`
	ChangeDisplay string `json:"changeDisplay"`
}

// ToReconcileResponse converts a reckon.Result to its response DTO.
func ToReconcileResponse(r *reckon.Result, currencyCode string) ReconcileResponse {
	return ReconcileResponse{
		ActualChange:    int64(r.ActualChange),
		RecordedIncome:  int64(r.RecordedIncome),
		RecordedExpense: int64(r.RecordedExpense),
		RecordedChange:  int64(r.RecordedChange),
		Drift:           int64(r.Drift),
		DriftDisplay:    moneyfmt.Display(r.Drift, currencyCode),
		WindowStart:     r.WindowStart,
		WindowEnd:       r.WindowEnd,
	}
}

// ToAssetDeltaListResponse converts reckon asset deltas.
func ToAssetDeltaListResponse(deltas []reckon.AssetDelta, currencyCode string) []AssetDeltaResponse {
	out := make([]AssetDeltaResponse, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, AssetDeltaResponse{
			AssetID:       d.AssetID,
			OldBalance:    int64(d.OldBalance),
			NewBalance:    int64(d.NewBalance),
			Change:        int64(d.Change),
			ChangeDisplay: moneyfmt.Display(d.Change, currencyCode),
		})
	}
	return out
}
