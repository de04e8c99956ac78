package prompts

const extractSpec = `Respond with a JSON object matching this exact structure:

{
  "document_meta": {
    "title": "<document title>",
    "pages_total": 0
  },
  "rows": [
    {
      "chapter": "<IHM part, e.g. PART I>",
      "section_title": "<table or section heading>",
      "material": "<material name>",
      "item_name": "<item name or empty>",
      "location": "<location on board>",
      "quantity_value": 0,
      "quantity_unit": "<pcs|L|m3|kg or original text>",
      "hazard_flags": ["<flag1>", "<flag2>"],
      "remarks": "<short remarks>",
      "page": 0,
      "row_index": 0,
      "source_text": "<short source snippet>"
    }
  ]
}

Field constraints:
- quantity_value: numeric when the document gives a precise value;
  a string for approximate values or ranges (explain in remarks).
- quantity_unit: normalize obvious units to pcs, L, m3, or kg; keep the
  original text when ambiguous.
- page: taken from the nearest preceding PAGE header.
- row_index: 1-based within the containing table.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Return only rows present in the source text; never invent rows
- Return {"rows": []} when no table-like lines exist`

const rankSpec = `Respond with a JSON object matching this exact structure:

{
  "candidates": [
    {"code": "<6-digit EWC code>", "score": 0.0}
  ]
}

Field constraints:
- code: exactly as listed in the provided catalog entries.
- score: between 0.0 and 1.0, higher means a better match.

Behavioral constraints:
- Always respond with valid JSON, no markdown fencing
- Use only codes from the provided catalog entries
- Order candidates by descending score
- Omit entries scoring below 0.1`

var specs = map[Stage]string{
	StageExtract: extractSpec,
	StageRank:    rankSpec,
}

// Spec returns the hardcoded specification for a pipeline stage.
// Specifications define the expected output format and behavioral constraints.
// Returns ErrInvalidStage if the stage is not recognized.
func Spec(stage Stage) (string, error) {
	text, ok := specs[stage]
	if !ok {
		return "", ErrInvalidStage
	}
	return text, nil
}
