package normalize

import "stt-normalization-service/internal/models"

// alignedUtterance pairs one diarization utterance with the words that
// temporally overlap it.
type alignedUtterance struct {
	utterance models.Utterance
	words     []models.Word
}

// align maps utterances onto the word sequence by temporal overlap,
// in chronological utterance order. The overlap test is deliberately
// open (word.Start < utt.End && word.End > utt.Start) rather than
// containment: vendor utterance boundaries are routinely offset from
// true word boundaries by fractions of a second, and containment would
// silently drop valid words at the edges.
//
// A word overlapping two utterances (malformed diarization) is matched
// to both; no tie-break rule is applied. A word overlapping none falls
// in a diarization gap and is dropped; the returned count makes that
// loss observable.
func align(words []models.Word, utterances []models.Utterance) ([]alignedUtterance, int) {
	groups := make([]alignedUtterance, 0, len(utterances))
	matched := make([]bool, len(words))

	for _, u := range utterances {
		g := alignedUtterance{utterance: u}
		for i, w := range words {
			if w.Start < u.End && w.End > u.Start {
				g.words = append(g.words, w)
				matched[i] = true
			}
		}
		groups = append(groups, g)
	}

	dropped := 0
	for _, m := range matched {
		if !m {
			dropped++
		}
	}
	return groups, dropped
}
