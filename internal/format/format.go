// Package format renders prices, percentages, and large counts for display,
// matching the dashboard's presentation of backend values.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer is the locale-aware message printer for number formatting.
// English locale keeps thousand separators consistent across terminals.
//
//nolint:gochecknoglobals // Global printer is idiomatic for x/text/message usage.
var printer = message.NewPrinter(language.English)

// currencySymbols maps ISO codes the backend actually reports to display
// symbols. Unknown codes fall back to "CODE " as a prefix.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"IDR": "Rp",
}

// Number formats an integer with thousand separators.
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Price formats a monetary value with its currency symbol.
// Example: Price(1234.5, "USD") returns "$1,234.50".
func Price(v float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		if currency == "" {
			symbol = "$"
		} else {
			symbol = currency + " "
		}
	}
	return symbol + Float(v, 2)
}

// Percent formats a ratio change as a signed percentage with two decimals.
// Example: Percent(1.2345) returns "+1.23%".
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Float formats a float with the given precision and thousand separators in
// the integer part.
func Float(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}

	multiplier := math.Pow(10, float64(precision))
	v = math.Round(v*multiplier) / multiplier

	sign := ""
	if v < 0 {
		sign = "-"
	}
	if precision == 0 {
		return sign + Number(int64(math.Abs(v)))
	}

	formatted := fmt.Sprintf("%.*f", precision, math.Abs(v))
	dot := strings.IndexByte(formatted, '.')
	intPart, err := strconv.ParseInt(formatted[:dot], 10, 64)
	if err != nil {
		return sign + formatted
	}
	return sign + Number(intPart) + formatted[dot:]
}

// MarketCap abbreviates a market capitalization into K/M/B/T units.
// Example: MarketCap(2.5e12, "USD") returns "$2.50T".
func MarketCap(v float64, currency string) string {
	symbol, ok := currencySymbols[currency]
	if !ok {
		symbol = "$"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%s%.2fT", symbol, v/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%s%.2fB", symbol, v/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s%.2fM", symbol, v/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s%.2fK", symbol, v/1e3)
	default:
		return symbol + Float(v, 2)
	}
}

// Ratio formats an optional metric value, rendering nil as an em dash so
// missing fundamentals stay visually distinct from zero.
func Ratio(v *float64) string {
	if v == nil {
		return "—"
	}
	return Float(*v, 2)
}
