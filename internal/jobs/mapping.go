package jobs

import (
	"net/url"
	"strings"

	"github.com/cleanharbor/cleanharbor/pkg/query"
	"github.com/cleanharbor/cleanharbor/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "jobs", "j").
	Project("id", "ID").
	Project("status", "Status").
	Project("filename", "Filename").
	Project("model", "Model").
	Project("input_ref", "InputRef").
	Project("page_count", "PageCount").
	Project("result", "Result").
	Project("error", "Error").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "created_at",
	Descending: true,
}

// Filters contains optional filtering criteria for job queries.
// Nil fields are ignored. Status and Model use exact matching.
// Filename uses case-insensitive contains matching.
type Filters struct {
	Status   *Status `json:"status,omitempty"`
	Model    *string `json:"model,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("Model", f.Model).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		if status, err := ParseStatus(s); err == nil {
			f.Status = &status
		}
	}

	if m := values.Get("model"); m != "" {
		f.Model = &m
	}

	if n := values.Get("filename"); n != "" {
		f.Filename = &n
	}

	return f
}

// Match reports whether a job satisfies the filters, for the in-memory store.
func (f Filters) Match(j Job) bool {
	if f.Status != nil && j.Status != *f.Status {
		return false
	}
	if f.Model != nil && j.Model != *f.Model {
		return false
	}
	if f.Filename != nil && !containsFold(j.Filename, *f.Filename) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func scanJob(s repository.Scanner) (Job, error) {
	var (
		j      Job
		result []byte
	)

	err := s.Scan(
		&j.ID,
		&j.Status,
		&j.Filename,
		&j.Model,
		&j.InputRef,
		&j.PageCount,
		&result,
		&j.Error,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		return j, err
	}

	if len(result) > 0 {
		j.Result = result
	}

	return j, nil
}
