package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Bounds for quantities and prices. They keep every product of two amounts
// and every sum of them cheap to compute and to render.
const (
	MaxAmountScale         = 10
	MaxAmountIntegerDigits = 20

	maxAmountLiteral = 64
)

// ValidateAmount rejects decimals with more than MaxAmountScale fractional
// digits or more than MaxAmountIntegerDigits integer digits.
func ValidateAmount(d decimal.Decimal) error {
	exp := int(d.Exponent())
	if -exp > MaxAmountScale {
		return fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, MaxAmountScale)
	}
	if d.NumDigits()+exp > MaxAmountIntegerDigits {
		return fmt.Errorf("%w: more than %d integer digits", ErrInvalidAmount, MaxAmountIntegerDigits)
	}
	return nil
}

// ParseAmount decodes a JSON number into a bounded decimal. Strings and null
// are refused.
func ParseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] == '"' || bytes.Equal(trimmed, []byte("null")) {
		return decimal.Zero, fmt.Errorf("%w: must be a number", ErrInvalidAmount)
	}
	if len(trimmed) > maxAmountLiteral {
		return decimal.Zero, fmt.Errorf("%w: number literal too long", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(string(trimmed))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: must be a number", ErrInvalidAmount)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
