package dto

import (
	"time"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// CreateWalletRequest defines the data needed to create a wallet.
type CreateWalletRequest struct {
	Name         string `json:"name" binding:"required"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateWalletRequest defines the fields allowed when updating a wallet.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateWalletRequest struct {
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
	DisplayOrder *int    `json:"displayOrder"`
}

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID         string     `json:"walletID"`
	Name             string     `json:"name"`
	Icon             string     `json:"icon"`
	Color            string     `json:"color"`
	DisplayOrder     int        `json:"displayOrder"`
	LastReconciledAt *time.Time `json:"lastReconciledAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	LastUpdatedAt    time.Time  `json:"lastUpdatedAt"`
	Warning          string     `json:"warning,omitempty"`
}

// ToWalletResponse converts a domain.Wallet to its response DTO.
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:         w.WalletID,
		Name:             w.Name,
		Icon:             w.Icon,
		Color:            w.Color,
		DisplayOrder:     w.DisplayOrder,
		LastReconciledAt: w.LastReconciledAt,
		CreatedAt:        w.CreatedAt,
		LastUpdatedAt:    w.LastUpdatedAt,
	}
}

// ToWalletListResponse converts a slice of wallets.
func ToWalletListResponse(wallets []domain.Wallet) []WalletResponse {
	out := make([]WalletResponse, 0, len(wallets))
	for i := range wallets {
		out = append(out, ToWalletResponse(&wallets[i]))
	}
	return out
}
