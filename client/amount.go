package client

import (
	"github.com/shopspring/decimal"
)

// maxAmount is the provider's upper bound on a single transaction.
var maxAmount = decimal.RequireFromString("9999999999")

// ValidateAmount checks that a monetary amount is an exact decimal string
// the provider will accept: positive, at most two decimal places, within
// bounds. Amounts stay strings end-to-end; nothing in the client ever parses
// one into binary floating point.
func ValidateAmount(amount string) error {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return &ValidationError{Field: "amount", Message: "not a decimal number"}
	}
	if !d.IsPositive() {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if d.Exponent() < -2 {
		return &ValidationError{Field: "amount", Message: "at most two decimal places"}
	}
	if d.GreaterThan(maxAmount) {
		return &ValidationError{Field: "amount", Message: "exceeds maximum"}
	}
	return nil
}

// NormalizeAmount trims trailing zeros from a decimal amount ("100.00" ->
// "100") without ever producing scientific notation.
//
// Normalization is deliberately not applied inside RequestDeposit or
// RequestPayout: the request body carries the caller's exact string, so the
// content digest is computed once over final bytes and responses echo the
// input unchanged. Callers who want canonical amounts apply this before
// building the request, never after.
func NormalizeAmount(amount string) (string, error) {
	if err := ValidateAmount(amount); err != nil {
		return "", err
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", &ValidationError{Field: "amount", Message: "not a decimal number"}
	}
	return d.String(), nil
}
