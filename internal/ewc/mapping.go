package ewc

import (
	"net/url"
	"strconv"

	"github.com/cleanharbor/cleanharbor/pkg/query"
	"github.com/cleanharbor/cleanharbor/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "ewc_codes", "e").
	Project("code", "Code").
	Project("chapter", "Chapter").
	Project("subchapter", "Subchapter").
	Project("description", "Description").
	Project("hazardous", "Hazardous").
	Project("entry_type", "EntryType").
	Project("priority", "Priority").
	Project("mirror_code", "MirrorCode")

var defaultSort = query.SortField{
	Field: "Code",
}

// catalogSort orders full-catalog reads priority-first, then by code,
// matching the precedence the classification prompt context expects.
var catalogSort = []query.SortField{
	{Field: "Priority", Descending: true},
	{Field: "Code"},
}

// Filters contains optional filtering criteria for catalog queries.
// Nil fields are ignored.
type Filters struct {
	Chapter   *int       `json:"chapter,omitempty"`
	EntryType *EntryType `json:"entry_type,omitempty"`
	Hazardous *bool      `json:"hazardous,omitempty"`
	Priority  *bool      `json:"priority,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("Chapter", f.Chapter)
	if f.EntryType != nil {
		b.WhereEquals("EntryType", string(*f.EntryType))
	}
	b.WhereEquals("Hazardous", f.Hazardous)
	b.WhereEquals("Priority", f.Priority)
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if ch := values.Get("chapter"); ch != "" {
		if v, err := strconv.Atoi(ch); err == nil {
			f.Chapter = &v
		}
	}

	if et := values.Get("entry_type"); et != "" {
		if v, err := ParseEntryType(et); err == nil {
			f.EntryType = &v
		}
	}

	if hz := values.Get("hazardous"); hz != "" {
		if v, err := strconv.ParseBool(hz); err == nil {
			f.Hazardous = &v
		}
	}

	if pr := values.Get("priority"); pr != "" {
		if v, err := strconv.ParseBool(pr); err == nil {
			f.Priority = &v
		}
	}

	return f
}

func scanCode(s repository.Scanner) (Code, error) {
	var c Code
	var entryType string

	err := s.Scan(
		&c.Code,
		&c.Chapter,
		&c.Subchapter,
		&c.Description,
		&c.Hazardous,
		&entryType,
		&c.Priority,
		&c.MirrorCode,
	)
	if err != nil {
		return c, err
	}

	c.EntryType = EntryType(entryType)
	return c, nil
}
