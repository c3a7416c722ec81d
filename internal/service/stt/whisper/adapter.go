// Package whisper parses OpenAI Whisper verbose_json transcriptions.
package whisper

import (
	"encoding/json"
	"fmt"
	"strings"

	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/stt"
)

// ProviderName is the registry key for this adapter.
const ProviderName = "whisper"

// Adapter implements stt.Adapter for OpenAI verbose_json output with
// word-level timestamps. Whisper carries no diarization, so the result
// never has utterances and its documents always take the engine's
// punctuation-segmentation path.
type Adapter struct{}

// New creates a new Whisper adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return ProviderName }

type payload struct {
	Text  string        `json:"text"`
	Words []payloadWord `json:"words"`
}

type payloadWord struct {
	Word  string   `json:"word"`
	Start *float64 `json:"start"`
	End   *float64 `json:"end"`
}

// Parse translates a verbose_json transcription into normalized words.
// Times are already in seconds. Whisper pads word tokens with leading
// whitespace; that padding is trimmed so entity offsets stay exact.
func (a *Adapter) Parse(raw []byte) (stt.Result, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return stt.Result{}, fmt.Errorf("whisper: decode payload: %w", err)
	}

	words := make([]models.Word, 0, len(p.Words))
	for i, pw := range p.Words {
		if pw.Start == nil || pw.End == nil {
			return stt.Result{}, &stt.MalformedWordError{
				Provider: ProviderName, Index: i, Reason: "missing start/end time",
			}
		}
		words = append(words, models.Word{
			Text:  strings.TrimSpace(pw.Word),
			Start: *pw.Start,
			End:   *pw.End,
		})
	}
	if err := stt.ValidateWords(ProviderName, words); err != nil {
		return stt.Result{}, err
	}

	return stt.Result{Words: words}, nil
}
