// Package classification implements the EWC classification engine.
// It resolves each extracted inventory row to a ranked candidate list and a
// single authoritative code under List of Waste precedence: chapter fallback,
// oracle similarity ranking, mirror-entry resolution, and priority tie-break.
// The procedure is deterministic given a catalog snapshot and the oracle's
// ranking output.
package classification

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/cleanharbor/cleanharbor/internal/ewc"
	"github.com/cleanharbor/cleanharbor/internal/inventory"
)

// Candidate is one scored catalog code considered for a row.
type Candidate struct {
	Code  string  `json:"code"`
	Score float64 `json:"score"`
}

// Decision is the outcome of classifying a single row. Code is nil when no
// candidate cleared the confidence threshold; Candidates is always populated
// for audit and, when Code is non-nil, Code equals Candidates[0].
type Decision struct {
	Code       *string  `json:"code"`
	Candidates []string `json:"candidates"`
}

// Engine applies the classification decision procedure over a fixed catalog
// snapshot. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog *ewc.Catalog
	oracle  Oracle
	cfg     Config
}

// NewEngine creates an Engine over a catalog snapshot with the given ranking
// oracle and tuning configuration.
func NewEngine(catalog *ewc.Catalog, oracle Oracle, cfg Config) *Engine {
	return &Engine{
		catalog: catalog,
		oracle:  oracle,
		cfg:     cfg,
	}
}

// Classify resolves one row to a Decision.
func (e *Engine) Classify(ctx context.Context, row inventory.Row) (Decision, error) {
	ranked, err := e.rank(ctx, row)
	if err != nil {
		return Decision{}, err
	}

	if len(ranked) == 0 {
		return Decision{Candidates: []string{}}, nil
	}

	ranked = e.resolveMirrors(row, ranked)
	e.order(ranked)

	if len(ranked) > e.cfg.PoolSize {
		ranked = ranked[:e.cfg.PoolSize]
	}

	codes := make([]string, len(ranked))
	for i, c := range ranked {
		codes[i] = c.Code
	}

	decision := Decision{Candidates: codes}
	if ranked[0].Score >= e.cfg.MinScore {
		decision.Code = &codes[0]
	}

	return decision, nil
}

// Apply classifies a row and writes the decision back onto it.
func (e *Engine) Apply(ctx context.Context, row *inventory.Row) error {
	decision, err := e.Classify(ctx, *row)
	if err != nil {
		return err
	}

	row.EWCCode = decision.Code
	row.EWCCandidates = decision.Candidates
	return nil
}

// rank walks the chapter precedence steps and returns the first non-empty
// validated ranking. Later steps are only consulted when earlier ones yield
// no candidates, so specific chapters always win over generic ones.
func (e *Engine) rank(ctx context.Context, row inventory.Row) ([]Candidate, error) {
	for _, chapters := range chapterSteps(row) {
		pool := e.catalog.Chapters(chapters...)
		if len(pool) == 0 {
			continue
		}

		ranked, err := e.oracle.Rank(ctx, row, pool)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRankFailed, err)
		}

		ranked = validate(ranked, pool)
		if len(ranked) > 0 {
			return ranked, nil
		}
	}

	return nil, nil
}

// validate drops candidates the oracle invented or pulled from outside the
// chapter pool, clamps scores to [0, 1], and deduplicates keeping the best
// score per code.
func validate(ranked []Candidate, pool []ewc.Code) []Candidate {
	valid := make(map[string]bool, len(pool))
	for _, c := range pool {
		valid[c.Code] = true
	}

	best := make(map[string]float64)
	var order []string

	for _, c := range ranked {
		if !valid[c.Code] {
			continue
		}

		score := min(max(c.Score, 0), 1)
		if prev, seen := best[c.Code]; !seen {
			best[c.Code] = score
			order = append(order, c.Code)
		} else if score > prev {
			best[c.Code] = score
		}
	}

	out := make([]Candidate, len(order))
	for i, code := range order {
		out[i] = Candidate{Code: code, Score: best[code]}
	}
	return out
}

// resolveMirrors collapses mirror pairs to a single member. The hazardous
// member (MH) is chosen when the row carries a recognized dangerous-substance
// indicator, otherwise the non-hazardous member (MN). Rows with no hazard
// flags default to MN.
func (e *Engine) resolveMirrors(row inventory.Row, ranked []Candidate) []Candidate {
	hazardous := HasDangerousSubstance(row.HazardFlags)

	best := make(map[string]float64)
	var order []string

	for _, c := range ranked {
		entry, ok := e.catalog.Find(c.Code)
		if !ok {
			continue
		}

		code := c.Code
		if entry.EntryType.Mirror() {
			if resolved := e.resolveMirror(entry, hazardous); resolved != "" {
				code = resolved
			}
		}

		if prev, seen := best[code]; !seen {
			best[code] = c.Score
			order = append(order, code)
		} else if c.Score > prev {
			best[code] = c.Score
		}
	}

	out := make([]Candidate, len(order))
	for i, code := range order {
		out[i] = Candidate{Code: code, Score: best[code]}
	}
	return out
}

func (e *Engine) resolveMirror(entry *ewc.Code, hazardous bool) string {
	want := ewc.EntryMirrorNonHazardous
	if hazardous {
		want = ewc.EntryMirrorHazardous
	}

	if entry.EntryType == want {
		return entry.Code
	}

	mirror, ok := e.catalog.Mirror(entry.Code)
	if !ok || mirror.EntryType != want {
		return entry.Code
	}
	return mirror.Code
}

// order sorts candidates by descending score. At equal score within the same
// chapter, priority entries rank strictly above non-priority entries; any
// remaining ties fall back to code order for determinism.
func (e *Engine) order(ranked []Candidate) {
	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		if a.Score != b.Score {
			return cmp.Compare(b.Score, a.Score)
		}

		ea, okA := e.catalog.Find(a.Code)
		eb, okB := e.catalog.Find(b.Code)
		if okA && okB && ea.Chapter == eb.Chapter && ea.Priority != eb.Priority {
			if ea.Priority {
				return -1
			}
			return 1
		}

		return cmp.Compare(a.Code, b.Code)
	})
}
