// Package extraction implements the IHM extraction collaborator: PDF text
// recovery with page markers, a chat-model call returning structured table
// rows, and deterministic normalization of quantities and units.
package extraction

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// pageMarker labels each page in the recovered text so the model can report
// row provenance.
func pageMarker(page int) string {
	return fmt.Sprintf("--- PAGE %d ---", page)
}

// FullText recovers the whole document text with a marker ahead of each
// page. Pages whose text cannot be decoded are included with their marker
// and empty content so page numbering stays aligned with the source.
func FullText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	total := reader.NumPage()
	var b strings.Builder

	for i := 1; i <= total; i++ {
		if i > 1 {
			b.WriteString("\n\n")
		}
		b.WriteString(pageMarker(i))
		b.WriteString("\n")

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(strings.TrimSpace(text))
	}

	return b.String(), total, nil
}

// chunk splits marked page text into blocks of at most maxChars, always
// breaking on page boundaries so every block starts with a page marker.
func chunk(fullText string, maxChars int) []string {
	pages := strings.Split(fullText, "\n\n--- PAGE ")
	for i := 1; i < len(pages); i++ {
		pages[i] = "--- PAGE " + pages[i]
	}

	var chunks []string
	var cur strings.Builder

	for _, page := range pages {
		if strings.TrimSpace(page) == "" {
			continue
		}

		if cur.Len() > 0 && cur.Len()+len(page)+2 > maxChars {
			chunks = append(chunks, cur.String())
			cur.Reset()
		}

		if cur.Len() > 0 {
			cur.WriteString("\n\n")
		}
		cur.WriteString(page)
	}

	if cur.Len() > 0 {
		chunks = append(chunks, cur.String())
	}

	return chunks
}
