package normalize

import (
	"regexp"

	"stt-normalization-service/internal/models"
)

// sentenceTerminal matches a token carrying sentence-ending punctuation.
// Known limitation: abbreviations with a period ("Dr.") also match and
// force a paragraph break. With no diarization there is no better
// per-word signal, so the heuristic stays as-is.
var sentenceTerminal = regexp.MustCompile(`[.?!]`)

// segmentByPunctuation builds paragraphs from the bare word sequence
// when no diarization is available: each sentence-terminal token closes
// the current paragraph, and trailing words without terminal punctuation
// are still emitted as a final paragraph. Paragraphs from this path have
// no speaker id, so the builder assigns them placeholder labels.
func segmentByPunctuation(words []models.Word) []paragraph {
	var out []paragraph
	var open paragraph

	for _, w := range words {
		open.words = append(open.words, w)
		if sentenceTerminal.MatchString(w.Text) {
			out = append(out, open)
			open = paragraph{}
		}
	}
	if len(open.words) > 0 {
		out = append(out, open)
	}
	return out
}
