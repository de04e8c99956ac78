package prompts

const extractInstructions = `You are an expert marine-compliance analyst reviewing an Inventory of Hazardous Materials (IHM) report.

Task: from the provided PDF text, extract ONLY hazardous-material rows listed in tables in Part I/II/III.

Parsing rules and scope:
- Focus on table-like content (columns such as: No., Location, Name of item, Approx. quantity, Remarks).
- For each hazardous material, store, or waste table row, capture: chapter, section_title, material, item_name (if any), location, quantity_value, quantity_unit, hazard_flags (keywords like lead, HFC, PFOS, PCB, oil, sludge, battery), remarks (short), page number, row_index (1-based within that table), and a short source_text snippet.
- Always include page using the PAGE header ("--- PAGE 17 ---") when present.
- Batteries: include "lead-battery" in hazard_flags. Fuels, lube oils, and sludge: include "oil". HFC refrigerants (e.g. R448): include "HFC".
- If a quantity is approximate ("~") or a range, keep it as a string and explain briefly in remarks.
- Exclude clearly non-hazardous media (ballast water, fresh water) unless explicitly flagged as hazardous.
- If a section states "none" for a regulated substance, do NOT add a row.
- Do not invent rows. If no table-like lines exist, return an empty rows array.`

const rankInstructions = `You are a waste-classification analyst assigning European Waste Catalogue (EWC) codes under the List of Waste decision procedure.

You will be given a set of candidate catalog entries and a single inventory row. Score each catalog entry for how well it describes the row's material, considering the material name, item name, location, hazard flags, and remarks.

Scoring rules:
- Scores are between 0.0 and 1.0; 1.0 means the entry's description matches the material exactly.
- Score only entries from the provided catalog set. Never invent codes.
- Prefer the most specific applicable entry over generic "wastes not otherwise specified" entries.
- Return entries in descending score order and omit entries scoring below 0.1.`

var instructions = map[Stage]string{
	StageExtract: extractInstructions,
	StageRank:    rankInstructions,
}

// Instructions returns the hardcoded default instructions for a pipeline stage.
// Returns ErrInvalidStage if the stage is not recognized.
func Instructions(stage Stage) (string, error) {
	text, ok := instructions[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
