// Package inventory defines the shared types for extracted hazardous-material
// inventories: the per-line Row, document metadata, and the assembled result
// that processing writes into a job record.
package inventory

// Row is one hazardous-material line item extracted from an IHM document.
// Extracted fields are immutable once produced by the extraction stage;
// EWCCode and EWCCandidates are assigned later by the classification engine.
type Row struct {
	Chapter      string `json:"chapter"`
	SectionTitle string `json:"section_title,omitempty"`

	Material      string   `json:"material"`
	ItemName      string   `json:"item_name,omitempty"`
	Location      string   `json:"location"`
	QuantityValue *float64 `json:"quantity_value,omitempty"`
	QuantityUnit  string   `json:"quantity_unit,omitempty"`
	HazardFlags   []string `json:"hazard_flags,omitempty"`
	Remarks       string   `json:"remarks,omitempty"`

	Page       int    `json:"page"`
	RowIndex   int    `json:"row_index"`
	SourceText string `json:"source_text,omitempty"`

	EWCCode       *string  `json:"ewc_code"`
	EWCCandidates []string `json:"ewc_candidates"`
}

// NeedsReview reports whether the row was left unclassified and therefore
// requires manual review.
func (r *Row) NeedsReview() bool {
	return r.EWCCode == nil
}

// DocumentMeta describes the source document an inventory was extracted from.
type DocumentMeta struct {
	Title      string `json:"title"`
	PagesTotal int    `json:"pages_total"`
}

// Inventory is the structured output of processing one IHM document.
type Inventory struct {
	DocumentMeta DocumentMeta `json:"document_meta"`
	Rows         []Row        `json:"rows"`
}

// TotalItems returns the number of extracted rows.
func (i *Inventory) TotalItems() int {
	return len(i.Rows)
}

// ReviewItems returns the number of rows left without a classification code.
func (i *Inventory) ReviewItems() int {
	n := 0
	for idx := range i.Rows {
		if i.Rows[idx].NeedsReview() {
			n++
		}
	}
	return n
}
