package normalize

import (
	"strings"

	"stt-normalization-service/internal/models"
)

// wordSeparator is the single joining rule shared by paragraph text
// assembly and entity range generation. The two MUST agree, or the
// offsets desync from the rendered text and downstream highlighting
// points at the wrong characters.
const wordSeparator = " "

// joinWords assembles paragraph text: word texts joined by a single
// space, in order.
func joinWords(words []models.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.Text
	}
	return strings.Join(parts, wordSeparator)
}

// entityRanges computes per-word byte offsets within the text produced
// by joinWords over the same word list: word 0 starts at offset 0, and
// each subsequent word starts one separator past the end of the
// previous range.
func entityRanges(words []models.Word) []models.EntityRange {
	ranges := make([]models.EntityRange, 0, len(words))
	offset := 0
	for i, w := range words {
		if i > 0 {
			offset += len(wordSeparator)
		}
		ranges = append(ranges, models.EntityRange{
			Offset:    offset,
			Length:    len(w.Text),
			WordIndex: i,
		})
		offset += len(w.Text)
	}
	return ranges
}
