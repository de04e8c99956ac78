package classification

import (
	"strings"

	"github.com/cleanharbor/cleanharbor/internal/inventory"
)

// dangerousSubstances are the hazard-flag indicators that resolve a mirror
// pair to its hazardous member. Matching is case-insensitive substring, so
// "lead-battery" matches "lead" and "oily sludge" matches both "oil" and
// "sludge".
var dangerousSubstances = []string{
	"oil",
	"sludge",
	"fuel",
	"diesel",
	"asbestos",
	"pcb",
	"pfos",
	"lead",
	"mercury",
	"cadmium",
	"chromium",
	"hfc",
	"cfc",
	"halon",
	"radioactive",
	"solvent",
	"acid",
	"alkali",
	"paint",
	"tbt",
	"organotin",
}

// HasDangerousSubstance reports whether any hazard flag carries a recognized
// dangerous-substance indicator. Rows without flags are treated as clean.
func HasDangerousSubstance(flags []string) bool {
	for _, flag := range flags {
		f := strings.ToLower(flag)
		for _, substance := range dangerousSubstances {
			if strings.Contains(f, substance) {
				return true
			}
		}
	}
	return false
}

// sectionChapters maps declared activity or section context onto List of
// Waste chapters. Section titles come from the inventory document itself
// (IHM Part I/II/III headings), so matching is keyword-based.
var sectionChapters = []struct {
	keywords []string
	chapters []int
}{
	{[]string{"paint", "coating"}, []int{8}},
	{[]string{"machinery", "engine", "fuel", "lubricat", "hydraulic"}, []int{13}},
	{[]string{"solvent", "refrigerant", "gas"}, []int{14}},
	{[]string{"packag", "store"}, []int{15}},
	{[]string{"batter", "electric", "electronic", "equipment"}, []int{16}},
	{[]string{"structure", "hull", "insulation", "demolition"}, []int{17}},
	{[]string{"operational", "garbage", "domestic"}, []int{20}},
}

// materialChapters maps process-specific material keywords onto chapters.
// Consulted after section context, before the generic fallback.
var materialChapters = []struct {
	keywords []string
	chapters []int
}{
	{[]string{"oil", "sludge", "fuel", "diesel", "bilge", "lubricant", "grease", "hydraulic"}, []int{13}},
	{[]string{"solvent", "refrigerant", "freon", "r-", "hfc", "cfc", "foam"}, []int{14}},
	{[]string{"rag", "absorbent", "filter", "packaging", "drum", "container"}, []int{15}},
	{[]string{"batter", "accumulator", "electronic", "circuit", "mercury", "switch", "lamp", "tube", "chemical"}, []int{16}},
	{[]string{"asbestos", "insulation", "cable", "concrete", "steel", "glass", "panel", "tile"}, []int{17}},
	{[]string{"paint", "varnish", "coating", "anti-fouling", "antifouling", "primer"}, []int{8}},
}

// chapterSteps returns the chapter precedence sequence for a row, most
// specific first. The engine consults each step in order and stops at the
// first one whose chapters yield ranked candidates.
func chapterSteps(row inventory.Row) [][]int {
	var steps [][]int

	context := strings.ToLower(row.SectionTitle + " " + row.Chapter)
	if chapters := match(context, sectionChapters); len(chapters) > 0 {
		steps = append(steps, chapters)
	}

	material := strings.ToLower(row.Material + " " + row.ItemName)
	if chapters := match(material, materialChapters); len(chapters) > 0 {
		steps = append(steps, chapters)
	}

	// Wastes not otherwise specified in the list.
	steps = append(steps, []int{16})

	// Last resort by material kind: oily residues or discarded packaging.
	if strings.Contains(material, "oil") || strings.Contains(material, "sludge") {
		steps = append(steps, []int{13})
	} else {
		steps = append(steps, []int{15})
	}

	return steps
}

func match(text string, tables []struct {
	keywords []string
	chapters []int
}) []int {
	var chapters []int
	seen := make(map[int]bool)

	for _, entry := range tables {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				for _, ch := range entry.chapters {
					if !seen[ch] {
						seen[ch] = true
						chapters = append(chapters, ch)
					}
				}
				break
			}
		}
	}

	return chapters
}
