package prices

import "strings"

// Canonical column keys recognized in an uploaded sheet.
const (
	ColGrade      = "GRADE"
	ColStd        = "STD"
	ColPrice      = "PRICE"
	ColBulk       = "BULK"
	ColKg10       = "10KG"
	ColKg5        = "5KG"
	ColCarton1kg  = "1KG CARTON"
	ColCarton500g = "500G CARTON"
	ColCarton250g = "250G CARTON"
	ColCarton100g = "100G CARTON"
)

var knownColumns = map[string]struct{}{
	ColGrade:      {},
	ColStd:        {},
	ColPrice:      {},
	ColBulk:       {},
	ColKg10:       {},
	ColKg5:        {},
	ColCarton1kg:  {},
	ColCarton500g: {},
	ColCarton250g: {},
	ColCarton100g: {},
}

// NormalizeHeader maps a raw column header to its canonical key: surrounding
// whitespace is trimmed and the result upper-cased.
func NormalizeHeader(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// IsKnownColumn reports whether key is one of the canonical column keys.
func IsKnownColumn(key string) bool {
	_, ok := knownColumns[key]
	return ok
}
