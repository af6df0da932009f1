package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxTenure        = 600
	MaxPrincipal     = "1000000000000" // 1 trillion
	MinPrincipal     = "0.01"
	MinPaymentAmount = "0.01"
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
	"IDR": true, "PHP": true, "THB": true, "VND": true,
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidLoanTerms, currency)
	}

	return nil
}

// ValidatePrincipal validates the principal against system-wide bounds
func ValidatePrincipal(principal decimal.Decimal) error {
	minPrincipal, _ := decimal.NewFromString(MinPrincipal)
	if principal.LessThan(minPrincipal) {
		return fmt.Errorf("%w: minimum principal is %s", ErrInvalidLoanTerms, MinPrincipal)
	}

	maxPrincipal, _ := decimal.NewFromString(MaxPrincipal)
	if principal.GreaterThan(maxPrincipal) {
		return fmt.Errorf("%w: maximum principal is %s", ErrInvalidLoanTerms, MaxPrincipal)
	}

	return nil
}

// ValidateTenure validates the tenure against system-wide bounds
func ValidateTenure(tenure int) error {
	if tenure < 1 {
		return fmt.Errorf("%w: tenure must be at least 1", ErrInvalidLoanTerms)
	}

	if tenure > MaxTenure {
		return fmt.Errorf("%w: tenure exceeds %d installments", ErrInvalidLoanTerms, MaxTenure)
	}

	return nil
}

// ValidatePaymentAmount validates a recorded payment amount
func ValidatePaymentAmount(amount decimal.Decimal) error {
	minAmount, _ := decimal.NewFromString(MinPaymentAmount)
	if amount.LessThan(minAmount) {
		return fmt.Errorf("%w: minimum payment is %s", ErrInvalidPayment, MinPaymentAmount)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
