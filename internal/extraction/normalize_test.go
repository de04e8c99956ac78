package extraction

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected float64
		ok       bool
	}{
		{"plain integer", "12", 12, true},
		{"dot decimal", "2.7", 2.7, true},
		{"comma decimal", "2,7", 2.7, true},
		{"thousands with comma decimal", "1.200,5", 1200.5, true},
		{"approximate prefix", "~40", 40, true},
		{"approx word", "approx. 15", 15, true},
		{"range stays unparsed", "10-20", 0, false},
		{"empty", "", 0, false},
		{"text", "several", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v, ok := ParseQuantity(tc.raw)
			if ok != tc.ok {
				t.Fatalf("expected ok=%v, got %v", tc.ok, ok)
			}
			if ok && v != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, v)
			}
		})
	}
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"pcs", "pcs"},
		{"PC", "pcs"},
		{"each", "pcs"},
		{"L", "L"},
		{"ltr", "L"},
		{"Litres", "L"},
		{"m3", "m3"},
		{"m³", "m3"},
		{"cbm", "m3"},
		{"KG", "kg"},
		{"kgs.", "kg"},
		{"drums", "drums"},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			if got := NormalizeUnit(tc.raw); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestQuantityUnmarshal(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		number *float64
		raw    string
	}{
		{"number", `{"quantity_value": 2.7}`, func() *float64 { v := 2.7; return &v }(), ""},
		{"string", `{"quantity_value": "2,7"}`, nil, "2,7"},
		{"null", `{"quantity_value": null}`, nil, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var p rowPayload
			if err := json.Unmarshal([]byte(tc.json), &p); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.number != nil {
				if p.QuantityValue.number == nil || *p.QuantityValue.number != *tc.number {
					t.Errorf("expected number %v, got %v", *tc.number, p.QuantityValue.number)
				}
			} else if p.QuantityValue.number != nil {
				t.Errorf("expected no number, got %v", *p.QuantityValue.number)
			}
			if p.QuantityValue.raw != tc.raw {
				t.Errorf("expected raw %q, got %q", tc.raw, p.QuantityValue.raw)
			}
		})
	}
}

func TestNormalizeRows(t *testing.T) {
	payloads := []rowPayload{
		{
			Material:      " Very Low Sulphur Fuel Oil (VLSFO) ",
			Location:      "Engine Room, Storage Tank",
			QuantityValue: quantity{raw: "2,7"},
			QuantityUnit:  "cbm",
			HazardFlags:   []string{"oil"},
			Page:          17,
		},
		{Material: "", SourceText: "header row"},
	}

	rows := normalizeRows(payloads)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after dropping empty material, got %d", len(rows))
	}

	row := rows[0]
	if row.Material != "Very Low Sulphur Fuel Oil (VLSFO)" {
		t.Errorf("material not trimmed: %q", row.Material)
	}
	if row.QuantityValue == nil || *row.QuantityValue != 2.7 {
		t.Errorf("expected quantity 2.7, got %v", row.QuantityValue)
	}
	if row.QuantityUnit != "m3" {
		t.Errorf("expected unit m3, got %q", row.QuantityUnit)
	}
}

func TestChunk(t *testing.T) {
	var pages []string
	for i := 1; i <= 4; i++ {
		pages = append(pages, pageMarker(i)+"\n"+strings.Repeat("x", 50))
	}
	fullText := strings.Join(pages, "\n\n")

	t.Run("splits on page boundaries", func(t *testing.T) {
		chunks := chunk(fullText, 130)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if !strings.HasPrefix(c, "--- PAGE ") {
				t.Errorf("chunk %d does not start on a page marker: %q", i, c[:20])
			}
		}
	})

	t.Run("single chunk when under limit", func(t *testing.T) {
		chunks := chunk(fullText, len(fullText)+10)
		if len(chunks) != 1 {
			t.Errorf("expected 1 chunk, got %d", len(chunks))
		}
	})

	t.Run("all pages survive chunking", func(t *testing.T) {
		chunks := chunk(fullText, 130)
		joined := strings.Join(chunks, "\n\n")
		for i := 1; i <= 4; i++ {
			if !strings.Contains(joined, pageMarker(i)) {
				t.Errorf("page %d marker lost", i)
			}
		}
	})
}
