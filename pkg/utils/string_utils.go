package utils

import "strings"

// NormalizeSearch trims a raw search query for use in ILIKE filters.
func NormalizeSearch(s string) string {
	return strings.TrimSpace(s)
}
