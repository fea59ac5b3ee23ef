package decimal

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// amountPattern is the only amount shape the QR format allows: up to 13
// integer digits, optionally followed by exactly two decimals.
var amountPattern = regexp.MustCompile(`^\d{1,13}(\.\d{2})?$`)

// IsAmount reports whether s is a well-formed QR amount
func IsAmount(s string) bool {
	return amountPattern.MatchString(s)
}

// ParseAmount parses a QR amount field
func ParseAmount(s string) (decimal.Decimal, error) {
	if !IsAmount(s) {
		return Zero, fmt.Errorf("invalid amount %q", s)
	}
	return decimal.NewFromString(s)
}

// FormatAmount renders d the way the QR format writes amounts (two decimals).
// Negative values, values with more than two decimals and values with more
// than 13 integer digits cannot be represented and return an error.
func FormatAmount(d decimal.Decimal) (string, error) {
	if !d.Equal(d.Round(2)) {
		return "", fmt.Errorf("amount %s has more than two decimals", d)
	}
	s := d.StringFixed(2)
	if !IsAmount(s) {
		return "", fmt.Errorf("amount %s cannot be represented in a QR code", d)
	}
	return s, nil
}

// OrZero dereferences an optional amount
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return Zero
	}
	return *d
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}
