package workflow

import (
	"time"

	"github.com/cleanharbor/cleanharbor/internal/inventory"
)

// State bag keys shared between workflow nodes.
const (
	KeyInputRef  = "input_ref"
	KeyDocument  = "document"
	KeyInventory = "inventory"
	KeyResult    = "result"
)

// Summary aggregates row-level outcomes for the job result.
type Summary struct {
	TotalItems  int `json:"total_items"`
	ReviewItems int `json:"review_items"`
}

// Result is the terminal payload of a successful pipeline run. It is stored
// verbatim as the job's result document.
type Result struct {
	DocumentMeta inventory.DocumentMeta `json:"document_meta"`
	Rows         []inventory.Row        `json:"rows"`
	Summary      Summary                `json:"summary"`
	CompletedAt  time.Time              `json:"completed_at"`
}
