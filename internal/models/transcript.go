// Package models defines the data structures for normalized transcripts.
package models

// Word is a single timed token as normalized by a provider adapter.
// Text includes whatever trailing punctuation the adapter chose to keep.
// Times are in seconds; Start <= End.
type Word struct {
	Text       string  `json:"text"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Utterance is one diarization segment: a speaker plus a time range.
// SpeakerID is empty when the vendor did not label the speaker.
// Times are in seconds; Start < End.
type Utterance struct {
	SpeakerID string  `json:"speakerId,omitempty"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// EntityRange identifies the span one word occupies within a block's
// text. Offset and Length are byte offsets into the UTF-8 text, and
// WordIndex points into the owning block's Words slice. The invariant
// text[Offset:Offset+Length] == Words[WordIndex].Text must hold.
type EntityRange struct {
	Offset    int `json:"offset"`
	Length    int `json:"length"`
	WordIndex int `json:"wordIndex"`
}

// BlockKindParagraph is the only content block kind currently emitted.
const BlockKindParagraph = "paragraph"

// ContentBlock is the canonical output unit: one paragraph of speech
// with timing, speaker metadata, and character-addressable word spans.
// Blocks are immutable once built; the caller owns them exclusively.
type ContentBlock struct {
	Kind         string        `json:"kind"`
	Text         string        `json:"text"`
	SpeakerLabel string        `json:"speakerLabel"`
	Start        float64       `json:"start"`
	Words        []Word        `json:"words"`
	EntityRanges []EntityRange `json:"entityRanges"`
}

// WordCount returns the total number of words across blocks.
func WordCount(blocks []ContentBlock) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Words)
	}
	return n
}

// DocumentNormalized is the event published after a successful
// normalization pass.
type DocumentNormalized struct {
	EventType  string         `json:"eventType"`
	DocumentID string         `json:"documentId"`
	Provider   string         `json:"provider"`
	Timestamp  int64          `json:"timestamp"`
	BlockCount int            `json:"blockCount"`
	WordCount  int            `json:"wordCount"`
	Blocks     []ContentBlock `json:"blocks"`
}

// Reasons carried by a TranscriptEmpty notice.
const (
	NoticeReasonNoWords         = "no_words"
	NoticeReasonAllWordsDropped = "all_words_dropped"
)

// TranscriptEmpty is the non-fatal notice published when normalization
// produced no blocks: either the payload contained no words, or every
// word fell in a diarization gap. Reason says which; WordsDropped
// carries the gap count for the latter. Empty input must not abort a
// caller's batch run.
type TranscriptEmpty struct {
	EventType    string `json:"eventType"`
	DocumentID   string `json:"documentId"`
	Provider     string `json:"provider"`
	Timestamp    int64  `json:"timestamp"`
	Reason       string `json:"reason"`
	WordsDropped int    `json:"wordsDropped,omitempty"`
}

// Event type constants for the document topics.
const (
	EventDocumentNormalized = "transcript.document.normalized"
	EventTranscriptEmpty    = "transcript.empty"
)
