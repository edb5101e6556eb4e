package domain

import "time"

// Wallet is a named liquidity source (cash, bank account, e-wallet). Wallets
// do not carry a live balance; the latest BalanceSnapshot is the only source
// of truth for what a wallet currently holds.
type Wallet struct {
	WalletID         string     `json:"walletID"`
	Name             string     `json:"name"`
	Icon             string     `json:"icon"`
	Color            string     `json:"color"`
	DisplayOrder     int        `json:"displayOrder"` // display sequence only, no semantics
	LastReconciledAt *time.Time `json:"lastReconciledAt"`
	AuditFields
}
