package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// ParseOptional parses an amount attribute value. Empty input means the
// attribute was absent and an unparsable value is treated the same way:
// both yield nil, never an error.
func ParseOptional(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// FromFloat creates a decimal from float rounded to centavos
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// RoundMXN rounds to centavos (MXN has two decimal places)
func RoundMXN(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// SumOptional sums the non-nil amounts in a slice, skipping nils
func SumOptional(values []*decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		if v != nil {
			result = result.Add(*v)
		}
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
