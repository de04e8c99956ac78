package ewc

import (
	"errors"
	"testing"
)

func ptr(s string) *string { return &s }

func testCodes() []Code {
	return []Code{
		{Code: "130703", Chapter: 13, Subchapter: "07", Description: "other fuels (including mixtures)", Hazardous: true, EntryType: EntryAbsoluteHazardous},
		{Code: "130701", Chapter: 13, Subchapter: "07", Description: "fuel oil and diesel", Hazardous: true, EntryType: EntryAbsoluteHazardous, Priority: true},
		{Code: "080112", Chapter: 8, Subchapter: "01", Description: "waste paint and varnish", Hazardous: false, EntryType: EntryMirrorNonHazardous, MirrorCode: ptr("080111")},
		{Code: "080111", Chapter: 8, Subchapter: "01", Description: "waste paint and varnish containing organic solvents", Hazardous: true, EntryType: EntryMirrorHazardous, MirrorCode: ptr("080112")},
		{Code: "200301", Chapter: 20, Subchapter: "03", Description: "mixed municipal waste", Hazardous: false, EntryType: EntryAbsoluteNonHazardous},
	}
}

func TestParseEntryType(t *testing.T) {
	tests := []struct {
		input   string
		want    EntryType
		wantErr bool
	}{
		{"AH", EntryAbsoluteHazardous, false},
		{"AN", EntryAbsoluteNonHazardous, false},
		{"MH", EntryMirrorHazardous, false},
		{"MN", EntryMirrorNonHazardous, false},
		{"ah", "", true},
		{"hazardous", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEntryType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidEntryType) {
					t.Errorf("error = %v, want ErrInvalidEntryType", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEntryType error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseEntryType = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEntryTypeMirror(t *testing.T) {
	if !EntryMirrorHazardous.Mirror() || !EntryMirrorNonHazardous.Mirror() {
		t.Error("mirror entry types should report Mirror() = true")
	}
	if EntryAbsoluteHazardous.Mirror() || EntryAbsoluteNonHazardous.Mirror() {
		t.Error("absolute entry types should report Mirror() = false")
	}
}

func TestCatalogOrder(t *testing.T) {
	c := NewCatalog(testCodes())

	if c.Len() != 5 {
		t.Fatalf("Len = %d, want 5", c.Len())
	}

	codes := c.Codes()
	if codes[0].Code != "130701" {
		t.Errorf("first code = %s, want priority entry 130701", codes[0].Code)
	}
	for i := 1; i < len(codes)-1; i++ {
		if codes[i].Priority {
			continue
		}
		if codes[i+1].Code < codes[i].Code && !codes[i+1].Priority {
			t.Errorf("codes out of order: %s before %s", codes[i].Code, codes[i+1].Code)
		}
	}
}

func TestCatalogFind(t *testing.T) {
	c := NewCatalog(testCodes())

	entry, ok := c.Find("130701")
	if !ok {
		t.Fatal("Find(130701) not found")
	}
	if entry.Description != "fuel oil and diesel" {
		t.Errorf("Description = %q", entry.Description)
	}

	if _, ok := c.Find("999999"); ok {
		t.Error("Find(999999) should not resolve")
	}
}

func TestCatalogChapter(t *testing.T) {
	c := NewCatalog(testCodes())

	ch13 := c.Chapter(13)
	if len(ch13) != 2 {
		t.Fatalf("Chapter(13) = %d codes, want 2", len(ch13))
	}
	if ch13[0].Code != "130701" {
		t.Errorf("priority entry should lead chapter 13, got %s", ch13[0].Code)
	}

	if got := c.Chapter(99); got != nil {
		t.Errorf("Chapter(99) = %v, want nil", got)
	}

	both := c.Chapters(13, 8)
	if len(both) != 4 {
		t.Errorf("Chapters(13, 8) = %d codes, want 4", len(both))
	}
}

func TestCatalogMirror(t *testing.T) {
	c := NewCatalog(testCodes())

	mirror, ok := c.Mirror("080111")
	if !ok {
		t.Fatal("Mirror(080111) not found")
	}
	if mirror.Code != "080112" {
		t.Errorf("Mirror(080111) = %s, want 080112", mirror.Code)
	}

	mirror, ok = c.Mirror("080112")
	if !ok || mirror.Code != "080111" {
		t.Error("mirror resolution should work in both directions")
	}

	if _, ok := c.Mirror("130701"); ok {
		t.Error("absolute entry should have no mirror")
	}
	if _, ok := c.Mirror("999999"); ok {
		t.Error("unknown code should have no mirror")
	}
}
