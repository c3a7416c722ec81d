package normalize

import (
	"fmt"

	"stt-normalization-service/internal/models"
)

// buildBlocks assembles the ordered ContentBlock array from the
// paragraph list. Paragraphs with zero words are skipped; upstream
// construction should never produce one, but a zero-word block would
// have no start time and no ranges, so the guard stays.
//
// Unlabeled paragraphs get the "TBC {index}" fallback label, indexed by
// output block position.
func buildBlocks(paragraphs []paragraph) []models.ContentBlock {
	blocks := make([]models.ContentBlock, 0, len(paragraphs))
	for _, p := range paragraphs {
		if len(p.words) == 0 {
			continue
		}
		label := p.speakerID
		if label == "" {
			label = fmt.Sprintf("%s %d", placeholderSpeaker, len(blocks))
		}
		blocks = append(blocks, models.ContentBlock{
			Kind:         models.BlockKindParagraph,
			Text:         joinWords(p.words),
			SpeakerLabel: label,
			Start:        p.words[0].Start,
			Words:        append([]models.Word(nil), p.words...),
			EntityRanges: entityRanges(p.words),
		})
	}
	return blocks
}
