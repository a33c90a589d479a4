// Package money formats integer minor-unit amounts for display.
//
// All monetary arithmetic in this codebase is done in int64 cents; rounding
// to two decimals happens only here, at the presentation boundary.
package money

import "fmt"

// Format renders an amount in cents as a two-decimal string, e.g. 1999 -> "19.99".
func Format(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatWithCurrency renders an amount with its ISO currency code, e.g. "USD 19.99".
func FormatWithCurrency(cents int64, currency string) string {
	return currency + " " + Format(cents)
}
