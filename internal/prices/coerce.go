package prices

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceString trims a raw cell. An empty result means the field is absent.
func CoerceString(raw string) string {
	return strings.TrimSpace(raw)
}

// CoerceNumber parses a raw cell as a decimal number after dropping comma
// thousands separators. Blank or unparseable cells yield nil, never zero.
func CoerceNumber(raw string) *float64 {
	t := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if t == "" {
		return nil
	}
	d, err := decimal.NewFromString(t)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
