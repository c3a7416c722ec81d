package normalize

import (
	"fmt"

	"stt-normalization-service/internal/models"
)

// placeholderSpeaker stands in for a missing speaker id during run
// comparison, so consecutive unlabeled utterances still coalesce into
// one paragraph.
const placeholderSpeaker = "TBC"

// paragraph is the mutable intermediate between utterance alignment and
// content block construction. Its text is always recomputed from words,
// never stored.
type paragraph struct {
	speakerID string
	words     []models.Word
}

// coalescerState is the state of the paragraph coalescer.
type coalescerState int

const (
	// stateNoParagraph - no paragraph is open.
	stateNoParagraph coalescerState = iota
	// stateOpenParagraph - a paragraph is accumulating words for one speaker.
	stateOpenParagraph
)

// String returns the string representation of the state.
func (s coalescerState) String() string {
	switch s {
	case stateNoParagraph:
		return "NO_PARAGRAPH"
	case stateOpenParagraph:
		return "OPEN_PARAGRAPH"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", s)
	}
}

// coalesce merges consecutive same-speaker utterances into paragraphs.
//
// State transitions over the utterance sequence:
//
//	NO_PARAGRAPH ──(utterance with words)──→ OPEN_PARAGRAPH
//	OPEN_PARAGRAPH ──(same speaker)──→ OPEN_PARAGRAPH (append words)
//	OPEN_PARAGRAPH ──(speaker change)──→ flush, reopen for new speaker
//	exhaustion ──→ flush open paragraph, NO_PARAGRAPH
//
// The output is one paragraph per maximal run of consecutive utterances
// sharing a speaker, not one paragraph per utterance; a speaker's
// continuous speech must not fragment into many tiny paragraphs.
func coalesce(groups []alignedUtterance) []paragraph {
	var out []paragraph
	var open paragraph
	state := stateNoParagraph

	for _, g := range groups {
		if len(g.words) == 0 {
			continue
		}
		if state == stateOpenParagraph && sameSpeaker(open.speakerID, g.utterance.SpeakerID) {
			open.words = append(open.words, g.words...)
			continue
		}
		if state == stateOpenParagraph {
			out = append(out, open)
		}
		open = paragraph{
			speakerID: g.utterance.SpeakerID,
			words:     append([]models.Word(nil), g.words...),
		}
		state = stateOpenParagraph
	}

	if state == stateOpenParagraph {
		out = append(out, open)
	}
	return out
}

// sameSpeaker compares speaker ids, treating missing ids as the shared
// placeholder so unlabeled runs coalesce.
func sameSpeaker(a, b string) bool {
	if a == "" {
		a = placeholderSpeaker
	}
	if b == "" {
		b = placeholderSpeaker
	}
	return a == b
}
