// Package normalize converts locale-formatted bank amounts and dates into
// canonical values. Callers are expected to degrade to safe defaults (zero
// amount, current day) when normalization fails, never to abort an import.
package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Signed parses a bank amount string keeping its sign. Comma-decimal formats
// ("R$ 1.234,56") have thousands dots removed and the comma converted to a
// decimal point; everything except digits, '.' and '-' is then stripped.
func Signed(raw string) (decimal.Decimal, bool) {
	s := raw
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Amount parses a bank amount string and returns its absolute value. The sign
// is never carried in stored amounts; direction is captured separately as the
// transaction type.
func Amount(raw string) (decimal.Decimal, bool) {
	d, ok := Signed(raw)
	if !ok {
		return decimal.Zero, false
	}
	return d.Abs(), true
}

// Date parses a date string with a fixed per-format layout, anchored to the
// local calendar day so no timezone shift can move it to an adjacent day.
func Date(raw, layout string) (time.Time, bool) {
	t, err := time.ParseInLocation(layout, strings.TrimSpace(raw), time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
