// Package money converts integer minor-unit amounts into display form.
// Balances stay int64 everywhere in the core; decimals are for humans.
package money

import "github.com/shopspring/decimal"

// minorUnitDigits maps currency codes to their minor-unit exponent. Anything
// not listed uses the common two-digit convention.
var minorUnitDigits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"OMR": 3,
}

// Exponent returns the minor-unit exponent for a currency code.
func Exponent(currencyCode string) int32 {
	if d, ok := minorUnitDigits[currencyCode]; ok {
		return d
	}
	return 2
}

// FromMinorUnits converts a minor-unit amount into a decimal major-unit
// amount, e.g. 12345 INR -> 123.45.
func FromMinorUnits(amount int64, currencyCode string) decimal.Decimal {
	return decimal.New(amount, -Exponent(currencyCode))
}

// FormatMinorUnits renders a minor-unit amount with its currency code,
// e.g. FormatMinorUnits(12345, "INR") == "123.45 INR".
func FormatMinorUnits(amount int64, currencyCode string) string {
	return FromMinorUnits(amount, currencyCode).StringFixed(Exponent(currencyCode)) + " " + currencyCode
}
