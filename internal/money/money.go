// Package money normalizes locale-formatted monetary text as it appears in
// tagged filing documents into exact decimal values.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// symbols are the currency markers and grouping characters stripped before
// parsing. Locale-specific decimal separators are deliberately not handled;
// anything left unparseable surfaces as an explicit error to the caller.
var symbols = strings.NewReplacer(
	"£", "",
	"$", "",
	"€", "",
	",", "",
	" ", "",
	" ", "",
)

// Normalize parses a monetary string into an exact decimal. It strips
// currency symbols and thousands separators, and interprets a fully
// parenthesized value as negative per UK accounting convention.
func Normalize(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && len(s) > 2 {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSpace(symbols.Replace(s))
	if s == "" {
		return decimal.Zero, fmt.Errorf("no numeric content in %q", raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse numeric value %q: %w", raw, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}
