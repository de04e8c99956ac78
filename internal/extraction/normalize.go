package extraction

import (
	"strconv"
	"strings"
)

// canonicalUnits maps unit spellings seen in IHM tables to the four
// canonical units. Unrecognized spellings are kept verbatim.
var canonicalUnits = map[string]string{
	"pc":     "pcs",
	"pcs":    "pcs",
	"piece":  "pcs",
	"pieces": "pcs",
	"ea":     "pcs",
	"each":   "pcs",
	"unit":   "pcs",
	"units":  "pcs",

	"l":      "L",
	"lt":     "L",
	"ltr":    "L",
	"liter":  "L",
	"liters": "L",
	"litre":  "L",
	"litres": "L",

	"m3":   "m3",
	"m³":   "m3",
	"cbm":  "m3",
	"cu.m": "m3",
	"cu m": "m3",

	"kg":        "kg",
	"kgs":       "kg",
	"kilogram":  "kg",
	"kilograms": "kg",
}

// NormalizeUnit canonicalizes a quantity unit to one of pcs, L, m3, or kg.
// Ambiguous units are returned unchanged, per the source document.
func NormalizeUnit(raw string) string {
	key := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(raw, ".")))
	if canonical, ok := canonicalUnits[key]; ok {
		return canonical
	}
	return strings.TrimSpace(raw)
}

// ParseQuantity converts a quantity string to a number, accepting European
// comma decimals ("2,7"), thousands separators ("1.200,5"), and approximate
// prefixes ("~", "approx."). Ranges and non-numeric values return false.
func ParseQuantity(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "~")
	s = strings.TrimPrefix(s, "approx.")
	s = strings.TrimPrefix(s, "approx")
	s = strings.TrimPrefix(s, "ca.")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, false
	}

	if strings.Contains(s, ",") {
		// Comma as decimal separator; any dots are thousands separators.
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
