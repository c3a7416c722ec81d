// Package mock provides a mock STT adapter for testing without vendor
// payloads. It returns a canned two-speaker transcript regardless of
// input, which exercises the full alignment and coalescing path.
package mock

import (
	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/stt"
)

// ProviderName is the registry key for this adapter.
const ProviderName = "mock"

// Adapter implements stt.Adapter with a fixed diarized transcript.
type Adapter struct{}

// New creates a new mock adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return ProviderName }

// Parse ignores the payload and returns the canned transcript: two
// consecutive utterances from Speaker 0 (which must coalesce into one
// paragraph) followed by one from Speaker 1.
func (a *Adapter) Parse(raw []byte) (stt.Result, error) {
	words := []models.Word{
		{Text: "I", Start: 0.0, End: 0.2, Confidence: 0.98},
		{Text: "want", Start: 0.2, End: 0.5, Confidence: 0.97},
		{Text: "to", Start: 0.5, End: 0.7, Confidence: 0.99},
		{Text: "cancel", Start: 0.7, End: 1.2, Confidence: 0.95},
		{Text: "my", Start: 1.2, End: 1.4, Confidence: 0.98},
		{Text: "subscription.", Start: 1.4, End: 2.1, Confidence: 0.94},
		{Text: "It's", Start: 2.4, End: 2.7, Confidence: 0.92},
		{Text: "too", Start: 2.7, End: 2.9, Confidence: 0.96},
		{Text: "expensive.", Start: 2.9, End: 3.6, Confidence: 0.93},
		{Text: "I", Start: 4.0, End: 4.1, Confidence: 0.97},
		{Text: "can", Start: 4.1, End: 4.3, Confidence: 0.98},
		{Text: "help", Start: 4.3, End: 4.6, Confidence: 0.97},
		{Text: "with", Start: 4.6, End: 4.8, Confidence: 0.99},
		{Text: "that.", Start: 4.8, End: 5.2, Confidence: 0.96},
	}
	utterances := []models.Utterance{
		{SpeakerID: "Speaker 0", Start: 0.0, End: 2.2},
		{SpeakerID: "Speaker 0", Start: 2.3, End: 3.7},
		{SpeakerID: "Speaker 1", Start: 3.9, End: 5.3},
	}
	return stt.Result{Words: words, Utterances: utterances}, nil
}
