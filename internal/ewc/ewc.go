// Package ewc implements the European Waste Catalogue code domain.
// It provides the read-only catalog of waste codes queried by the
// classification engine, including entry-type semantics and mirror-pair
// resolution under the List of Waste scheme.
package ewc

import (
	"encoding/json"
	"slices"
)

// EntryType categorizes how a code's hazard status is determined.
type EntryType string

// List of Waste entry types.
const (
	// EntryAbsoluteHazardous marks codes that are hazardous regardless of composition.
	EntryAbsoluteHazardous EntryType = "AH"
	// EntryAbsoluteNonHazardous marks codes that are never hazardous.
	EntryAbsoluteNonHazardous EntryType = "AN"
	// EntryMirrorHazardous marks the hazardous member of a mirror pair.
	EntryMirrorHazardous EntryType = "MH"
	// EntryMirrorNonHazardous marks the non-hazardous member of a mirror pair.
	EntryMirrorNonHazardous EntryType = "MN"
)

var entryTypes = []EntryType{
	EntryAbsoluteHazardous,
	EntryAbsoluteNonHazardous,
	EntryMirrorHazardous,
	EntryMirrorNonHazardous,
}

// EntryTypes returns the list of valid entry types.
func EntryTypes() []EntryType {
	return entryTypes
}

// ParseEntryType validates a string as a known entry type.
// Returns ErrInvalidEntryType if the value is not recognized.
func ParseEntryType(s string) (EntryType, error) {
	v := EntryType(s)
	if !slices.Contains(entryTypes, v) {
		return "", ErrInvalidEntryType
	}
	return v, nil
}

// UnmarshalJSON validates that the decoded string is a known entry type.
func (t *EntryType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseEntryType(raw)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Mirror reports whether the entry type is a member of a mirror pair.
func (t EntryType) Mirror() bool {
	return t == EntryMirrorHazardous || t == EntryMirrorNonHazardous
}

// Code represents one European Waste Catalogue entry.
// MirrorCode links the opposite member of a mirror pair and is nil for
// absolute entries.
type Code struct {
	Code        string    `json:"code"`
	Chapter     int       `json:"chapter"`
	Subchapter  string    `json:"subchapter"`
	Description string    `json:"description"`
	Hazardous   bool      `json:"hazardous"`
	EntryType   EntryType `json:"entry_type"`
	Priority    bool      `json:"priority"`
	MirrorCode  *string   `json:"mirror_code,omitempty"`
}
