// Package money formats integer cent amounts for people.
package money

import (
	"github.com/shopspring/decimal"
)

// FormatCents renders cents as a dollar string, e.g. 1500 -> "$15.00" and -250 -> "-$2.50".
func FormatCents(cents int64) string {
	d := decimal.New(cents, -2)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Dollars converts cents to a decimal dollar amount without rounding.
func Dollars(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
