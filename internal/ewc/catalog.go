package ewc

import (
	"cmp"
	"slices"
)

// Catalog is an immutable in-memory snapshot of the code table, indexed for
// the lookups the classification engine performs per row. Codes are held in
// catalog order: priority entries first, then by code.
type Catalog struct {
	codes     []Code
	byCode    map[string]int
	byChapter map[int][]int
}

// NewCatalog builds a Catalog from a slice of codes.
func NewCatalog(codes []Code) *Catalog {
	sorted := slices.Clone(codes)
	slices.SortStableFunc(sorted, func(a, b Code) int {
		if a.Priority != b.Priority {
			if a.Priority {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Code, b.Code)
	})

	c := &Catalog{
		codes:     sorted,
		byCode:    make(map[string]int, len(sorted)),
		byChapter: make(map[int][]int),
	}

	for i, code := range sorted {
		c.byCode[code.Code] = i
		c.byChapter[code.Chapter] = append(c.byChapter[code.Chapter], i)
	}

	return c
}

// Len returns the number of codes in the catalog.
func (c *Catalog) Len() int {
	return len(c.codes)
}

// Codes returns all codes in catalog order.
func (c *Catalog) Codes() []Code {
	return c.codes
}

// Find returns the code entry for a 6-digit identifier.
func (c *Catalog) Find(code string) (*Code, bool) {
	i, ok := c.byCode[code]
	if !ok {
		return nil, false
	}
	return &c.codes[i], true
}

// Chapter returns all codes within a 2-digit chapter, in catalog order.
func (c *Catalog) Chapter(chapter int) []Code {
	indices := c.byChapter[chapter]
	if len(indices) == 0 {
		return nil
	}

	codes := make([]Code, len(indices))
	for i, idx := range indices {
		codes[i] = c.codes[idx]
	}
	return codes
}

// Chapters returns codes across multiple chapters, in catalog order.
func (c *Catalog) Chapters(chapters ...int) []Code {
	var codes []Code
	for _, ch := range chapters {
		codes = append(codes, c.Chapter(ch)...)
	}
	return codes
}

// Mirror resolves the opposite member of a mirror pair.
// Returns false for absolute entries or unlinked codes.
func (c *Catalog) Mirror(code string) (*Code, bool) {
	entry, ok := c.Find(code)
	if !ok || entry.MirrorCode == nil {
		return nil, false
	}
	return c.Find(*entry.MirrorCode)
}
