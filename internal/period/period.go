// Package period formats and parses invoice billing-period ids.
package period

import (
	"fmt"
	"strconv"
	"strings"
)

// Format returns a period id like "2025-03".
func Format(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// Parse parses "2025-03" into year and month.
func Parse(id string) (year, month int, err error) {
	parts := strings.SplitN(id, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid period format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid year in period %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month in period %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("month out of range in period %q", id)
	}

	return year, month, nil
}

// Label renders a period id for display, "2025-03" -> "03/2025".
// Unparseable ids are returned as-is.
func Label(id string) string {
	year, month, err := Parse(id)
	if err != nil {
		return id
	}
	return fmt.Sprintf("%02d/%04d", month, year)
}
