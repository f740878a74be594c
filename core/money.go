package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a monetary value in the gateway's unit of account.
type Amount = decimal.Decimal

// MoneyString renders an amount the way the processor expects it on the
// wire: two decimal places, half-up rounding, no thousand separators.
func MoneyString(value Amount) string {
	return value.Round(2).StringFixed(2)
}

// UnitPrice divides a line amount by its quantity and rounds to two
// decimal places half-up. Quantity zero is treated as one so a malformed
// line never divides by zero.
func UnitPrice(lineAmount Amount, quantity int) Amount {
	if quantity <= 0 {
		quantity = 1
	}
	return lineAmount.DivRound(decimal.NewFromInt(int64(quantity)), 2)
}

// ParseAmount parses a processor-formatted decimal string. Empty input
// yields zero.
func ParseAmount(value string) (Amount, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(trimmed)
}
