package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cleanharbor/cleanharbor/internal/inventory"
	"github.com/cleanharbor/cleanharbor/pkg/formatting"
)

// maxChunkChars bounds a single model call's document text. Documents whose
// full text exceeds the model context fall back to per-chunk calls merged
// into one row set.
const maxChunkChars = 12000

// InstructionSource supplies the extraction instructions placed ahead of the
// document text, letting callers compose prompt overrides without this
// package depending on the prompt store.
type InstructionSource func(ctx context.Context) (string, error)

// quantity accepts the number-or-string quantity_value the model returns.
// Approximate values and ranges arrive as strings and are resolved during
// normalization.
type quantity struct {
	number *float64
	raw    string
}

func (q *quantity) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		q.number = &n
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		q.raw = s
		return nil
	}

	// Tolerate null and malformed values; the row keeps no quantity.
	return nil
}

type rowPayload struct {
	Chapter       string   `json:"chapter"`
	SectionTitle  string   `json:"section_title"`
	Material      string   `json:"material"`
	ItemName      string   `json:"item_name"`
	Location      string   `json:"location"`
	QuantityValue quantity `json:"quantity_value"`
	QuantityUnit  string   `json:"quantity_unit"`
	HazardFlags   []string `json:"hazard_flags"`
	Remarks       string   `json:"remarks"`
	Page          int      `json:"page"`
	RowIndex      int      `json:"row_index"`
	SourceText    string   `json:"source_text"`
}

type extractResponse struct {
	DocumentMeta struct {
		Title      string `json:"title"`
		PagesTotal int    `json:"pages_total"`
	} `json:"document_meta"`
	Rows []rowPayload `json:"rows"`
}

// Collaborator performs model-backed row extraction over recovered PDF text.
type Collaborator struct {
	agent        gaconfig.AgentConfig
	instructions InstructionSource
	logger       *slog.Logger
}

// New creates an extraction Collaborator backed by a chat agent.
func New(cfg gaconfig.AgentConfig, instructions InstructionSource, logger *slog.Logger) *Collaborator {
	return &Collaborator{
		agent:        cfg,
		instructions: instructions,
		logger:       logger.With("system", "extraction"),
	}
}

// Extract recovers the document text and returns the normalized inventory.
// A single model call over the full text is attempted first; on failure the
// text is split on page boundaries and the per-chunk results are merged.
func (c *Collaborator) Extract(ctx context.Context, data []byte) (*inventory.Inventory, error) {
	fullText, pagesTotal, err := FullText(data)
	if err != nil {
		return nil, err
	}

	instructions, err := c.instructions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: compose instructions: %w", ErrExtractFailed, err)
	}

	rows, err := c.call(ctx, instructions, "FULL PDF TEXT", fullText)
	if err != nil {
		c.logger.WarnContext(
			ctx, "single-call extraction failed, falling back to chunked",
			"error", err,
			"chars", len(fullText),
		)

		rows, err = c.callChunked(ctx, instructions, fullText)
		if err != nil {
			return nil, err
		}
	}

	inv := &inventory.Inventory{
		DocumentMeta: inventory.DocumentMeta{
			Title:      "Inventory of Hazardous Materials (IHM)",
			PagesTotal: pagesTotal,
		},
		Rows: normalizeRows(rows),
	}

	c.logger.InfoContext(
		ctx, "extraction complete",
		"pages", pagesTotal,
		"rows", len(inv.Rows),
	)

	return inv, nil
}

func (c *Collaborator) call(ctx context.Context, instructions, label, text string) ([]rowPayload, error) {
	a, err := agent.New(&c.agent)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrExtractFailed, err)
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n")
	b.WriteString(label)
	b.WriteString(":\n")
	b.WriteString(text)

	resp, err := a.Chat(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("%w: chat call: %w", ErrExtractFailed, err)
	}

	parsed, err := formatting.Parse[extractResponse](resp.Text())
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %w", ErrExtractFailed, err)
	}

	return parsed.Rows, nil
}

func (c *Collaborator) callChunked(ctx context.Context, instructions, fullText string) ([]rowPayload, error) {
	chunks := chunk(fullText, maxChunkChars)

	var rows []rowPayload
	for i, text := range chunks {
		c.logger.DebugContext(
			ctx, "processing chunk",
			"chunk", i+1,
			"total", len(chunks),
		)

		part, err := c.call(ctx, instructions, "PDF TEXT CHUNK", text)
		if err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
		rows = append(rows, part...)
	}

	return rows, nil
}

func normalizeRows(payloads []rowPayload) []inventory.Row {
	rows := make([]inventory.Row, 0, len(payloads))

	for _, p := range payloads {
		row := inventory.Row{
			Chapter:      strings.TrimSpace(p.Chapter),
			SectionTitle: strings.TrimSpace(p.SectionTitle),
			Material:     strings.TrimSpace(p.Material),
			ItemName:     strings.TrimSpace(p.ItemName),
			Location:     strings.TrimSpace(p.Location),
			QuantityUnit: NormalizeUnit(p.QuantityUnit),
			HazardFlags:  p.HazardFlags,
			Remarks:      strings.TrimSpace(p.Remarks),
			Page:         p.Page,
			RowIndex:     p.RowIndex,
			SourceText:   strings.TrimSpace(p.SourceText),
		}

		switch {
		case p.QuantityValue.number != nil:
			row.QuantityValue = p.QuantityValue.number
		case p.QuantityValue.raw != "":
			if v, ok := ParseQuantity(p.QuantityValue.raw); ok {
				row.QuantityValue = &v
			}
		}

		if row.Material == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows
}
