package classification

import (
	"context"
	"errors"
	"testing"

	"github.com/cleanharbor/cleanharbor/internal/ewc"
	"github.com/cleanharbor/cleanharbor/internal/inventory"
)

type fakeOracle struct {
	scores map[string]float64
	err    error
	calls  int
}

func (f *fakeOracle) Rank(_ context.Context, _ inventory.Row, pool []ewc.Code) ([]Candidate, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	var out []Candidate
	for _, code := range pool {
		if score, ok := f.scores[code.Code]; ok {
			out = append(out, Candidate{Code: code.Code, Score: score})
		}
	}
	return out, nil
}

func ptr(s string) *string { return &s }

func testCatalog() *ewc.Catalog {
	return ewc.NewCatalog([]ewc.Code{
		{Code: "130701", Chapter: 13, Description: "fuel oil and diesel", Hazardous: true, EntryType: ewc.EntryAbsoluteHazardous, Priority: true},
		{Code: "130703", Chapter: 13, Description: "other fuels (including mixtures)", Hazardous: true, EntryType: ewc.EntryAbsoluteHazardous},
		{Code: "130502", Chapter: 13, Description: "sludges from oil/water separators", Hazardous: true, EntryType: ewc.EntryAbsoluteHazardous},
		{Code: "080111", Chapter: 8, Description: "waste paint containing organic solvents", Hazardous: true, EntryType: ewc.EntryMirrorHazardous, MirrorCode: ptr("080112")},
		{Code: "080112", Chapter: 8, Description: "waste paint other than 080111", Hazardous: false, EntryType: ewc.EntryMirrorNonHazardous, MirrorCode: ptr("080111")},
		{Code: "160601", Chapter: 16, Description: "lead batteries", Hazardous: true, EntryType: ewc.EntryAbsoluteHazardous, Priority: true},
		{Code: "160214", Chapter: 16, Description: "discarded equipment", Hazardous: false, EntryType: ewc.EntryMirrorNonHazardous, MirrorCode: ptr("160213")},
		{Code: "160213", Chapter: 16, Description: "discarded equipment containing hazardous components", Hazardous: true, EntryType: ewc.EntryMirrorHazardous, MirrorCode: ptr("160214")},
	})
}

func testConfig() Config {
	return Config{PoolSize: 4, MinScore: 0.35}
}

func TestClassifyFuelOil(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{
		"130701": 0.92,
		"130703": 0.61,
		"130502": 0.40,
	}}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	row := inventory.Row{
		Material:      "Very Low Sulphur Fuel Oil (VLSFO)",
		Location:      "Engine Room, Storage Tank",
		QuantityValue: func() *float64 { v := 2.7; return &v }(),
		QuantityUnit:  "m3",
		HazardFlags:   []string{"oil"},
	}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decision.Code == nil {
		t.Fatal("expected a code to be assigned")
	}
	if *decision.Code != "130701" {
		t.Errorf("expected 130701, got %s", *decision.Code)
	}
	if decision.Candidates[0] != *decision.Code {
		t.Errorf("assigned code %s is not the first candidate %s", *decision.Code, decision.Candidates[0])
	}
	if len(decision.Candidates) < 2 {
		t.Errorf("expected at least one alternative candidate, got %v", decision.Candidates)
	}
}

func TestClassifyMirrorResolution(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		expected string
	}{
		{"solvent flag resolves hazardous member", []string{"solvent"}, "080111"},
		{"unrecognized flag resolves non-hazardous member", []string{"water-based"}, "080112"},
		{"empty flags default to non-hazardous member", nil, "080112"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			oracle := &fakeOracle{scores: map[string]float64{
				"080111": 0.85,
				"080112": 0.70,
			}}
			engine := NewEngine(testCatalog(), oracle, testConfig())

			row := inventory.Row{
				Material:    "Anti-fouling paint residue",
				HazardFlags: tc.flags,
			}

			decision, err := engine.Classify(context.Background(), row)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if decision.Code == nil {
				t.Fatal("expected a code to be assigned")
			}
			if *decision.Code != tc.expected {
				t.Errorf("expected %s, got %s", tc.expected, *decision.Code)
			}
			for _, c := range decision.Candidates[1:] {
				if c == *decision.Code {
					t.Errorf("mirror pair not collapsed: %v", decision.Candidates)
				}
			}
		})
	}
}

func TestClassifyPriorityTieBreak(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{
		"130703": 0.80,
		"130701": 0.80,
	}}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	row := inventory.Row{Material: "waste fuel mixture", HazardFlags: []string{"oil"}}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Code == nil || *decision.Code != "130701" {
		t.Errorf("expected priority entry 130701 to win the tie, got %v", decision.Code)
	}
}

func TestClassifyBelowThreshold(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{
		"130502": 0.20,
		"130703": 0.15,
	}}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	row := inventory.Row{Material: "residual oily mixture"}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Code != nil {
		t.Errorf("expected no code below threshold, got %s", *decision.Code)
	}
	if len(decision.Candidates) == 0 {
		t.Error("expected candidates retained for audit")
	}
}

func TestClassifyDropsInventedCodes(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{
		"130701": 0.90,
		"999999": 0.95,
	}}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	row := inventory.Row{Material: "fuel oil", HazardFlags: []string{"oil"}}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range decision.Candidates {
		if c == "999999" {
			t.Errorf("invented code survived validation: %v", decision.Candidates)
		}
	}
	if decision.Code == nil || *decision.Code != "130701" {
		t.Errorf("expected 130701, got %v", decision.Code)
	}
}

func TestClassifyPoolSizeCap(t *testing.T) {
	oracle := &fakeOracle{scores: map[string]float64{
		"130701": 0.9,
		"130703": 0.8,
		"130502": 0.7,
	}}
	engine := NewEngine(testCatalog(), oracle, Config{PoolSize: 2, MinScore: 0.35})

	row := inventory.Row{Material: "fuel oil sludge"}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decision.Candidates) != 2 {
		t.Errorf("expected candidates capped at 2, got %v", decision.Candidates)
	}
}

func TestClassifyOracleError(t *testing.T) {
	oracle := &fakeOracle{err: errors.New("provider unavailable")}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	_, err := engine.Classify(context.Background(), inventory.Row{Material: "fuel oil"})
	if !errors.Is(err, ErrRankFailed) {
		t.Errorf("expected ErrRankFailed, got %v", err)
	}
}

func TestClassifyChapterFallback(t *testing.T) {
	// No section or material keyword matches: the generic chapter 16 pool
	// should be consulted.
	oracle := &fakeOracle{scores: map[string]float64{
		"160601": 0.75,
	}}
	engine := NewEngine(testCatalog(), oracle, testConfig())

	row := inventory.Row{Material: "unidentified residue"}

	decision, err := engine.Classify(context.Background(), row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Code == nil || *decision.Code != "160601" {
		t.Errorf("expected generic-chapter code 160601, got %v", decision.Code)
	}
}

func TestHasDangerousSubstance(t *testing.T) {
	tests := []struct {
		name     string
		flags    []string
		expected bool
	}{
		{"empty flags", nil, false},
		{"recognized indicator", []string{"PCB"}, true},
		{"compound indicator", []string{"lead-battery"}, true},
		{"oily sludge", []string{"oily sludge"}, true},
		{"unrecognized flag", []string{"biodegradable"}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasDangerousSubstance(tc.flags); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

func TestChapterSteps(t *testing.T) {
	tests := []struct {
		name  string
		row   inventory.Row
		first []int
	}{
		{
			"engine room section maps to chapter 13",
			inventory.Row{SectionTitle: "Engine Room Machinery", Material: "hydraulic oil"},
			[]int{13},
		},
		{
			"battery material maps to chapter 16",
			inventory.Row{Material: "Lead-acid battery"},
			[]int{16},
		},
		{
			"no matches fall through to generic chapter",
			inventory.Row{Material: "unidentified residue"},
			[]int{16},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			steps := chapterSteps(tc.row)
			if len(steps) == 0 {
				t.Fatal("expected at least one step")
			}
			got := steps[0]
			if len(got) != len(tc.first) {
				t.Fatalf("expected first step %v, got %v", tc.first, got)
			}
			for i := range got {
				if got[i] != tc.first[i] {
					t.Fatalf("expected first step %v, got %v", tc.first, got)
				}
			}
		})
	}
}
