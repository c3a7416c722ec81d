// Package schema validates event envelopes before they are published.
package schema

import (
	"errors"
	"fmt"

	"stt-normalization-service/internal/models"
)

// ErrUnknownEventType is returned for events the validator has no rules for.
var ErrUnknownEventType = errors.New("unknown event type")

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// Validate checks the envelope fields of an outgoing event. A failing
// event indicates a wiring bug in the service, not bad vendor input.
func (v *Validator) Validate(event any) error {
	switch ev := event.(type) {
	case models.DocumentNormalized:
		if ev.EventType != models.EventDocumentNormalized {
			return fmt.Errorf("document event has type %q, want %q", ev.EventType, models.EventDocumentNormalized)
		}
		if ev.DocumentID == "" {
			return errors.New("document event missing documentId")
		}
		if ev.Provider == "" {
			return errors.New("document event missing provider")
		}
		if ev.Timestamp <= 0 {
			return errors.New("document event missing timestamp")
		}
		if ev.BlockCount != len(ev.Blocks) {
			return fmt.Errorf("document event blockCount %d does not match %d blocks", ev.BlockCount, len(ev.Blocks))
		}
		return nil
	case models.TranscriptEmpty:
		if ev.EventType != models.EventTranscriptEmpty {
			return fmt.Errorf("notice event has type %q, want %q", ev.EventType, models.EventTranscriptEmpty)
		}
		if ev.DocumentID == "" {
			return errors.New("notice event missing documentId")
		}
		if ev.Provider == "" {
			return errors.New("notice event missing provider")
		}
		if ev.Timestamp <= 0 {
			return errors.New("notice event missing timestamp")
		}
		if ev.Reason == "" {
			return errors.New("notice event missing reason")
		}
		if ev.Reason == models.NoticeReasonAllWordsDropped && ev.WordsDropped <= 0 {
			return errors.New("all-words-dropped notice missing dropped count")
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEventType, event)
	}
}
