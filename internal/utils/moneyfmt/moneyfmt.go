// Package moneyfmt renders minor-unit amounts for display. Formatting is a
// presentation concern only: stored amounts stay exact integers, so none of
// these conversions ever round.
package moneyfmt

import (
	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/finbook/finbook-backend/internal/core/domain"
)

// Display renders an amount with the currency's symbol and grouping,
// e.g. Money(1234567) with "USD" -> "$12,345.67".
func Display(m domain.Money, currencyCode string) string {
	return money.New(int64(m), currencyCode).Display()
}

// Plain renders an amount as minorUnits/100 with two fraction digits and no
// currency symbol, e.g. Money(1234567) -> "12345.67".
func Plain(m domain.Money) string {
	return decimal.New(int64(m), -2).StringFixed(2)
}
