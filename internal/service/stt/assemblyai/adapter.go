// Package assemblyai parses AssemblyAI transcript objects.
package assemblyai

import (
	"encoding/json"
	"fmt"

	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/stt"
)

// ProviderName is the registry key for this adapter.
const ProviderName = "assemblyai"

// Adapter implements stt.Adapter for the AssemblyAI /v2/transcript
// response shape. AssemblyAI reports times in milliseconds and labels
// speakers with letters ("A", "B", ...); both are normalized here so
// nothing vendor-specific leaks past the adapter boundary.
type Adapter struct{}

// New creates a new AssemblyAI adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return ProviderName }

type payload struct {
	Text       string             `json:"text"`
	Words      []payloadWord      `json:"words"`
	Utterances []payloadUtterance `json:"utterances"`
}

type payloadWord struct {
	Text       string   `json:"text"`
	Start      *float64 `json:"start"`
	End        *float64 `json:"end"`
	Confidence float64  `json:"confidence"`
}

type payloadUtterance struct {
	Speaker string   `json:"speaker"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
}

// Parse translates an AssemblyAI transcript into normalized words and
// utterances, converting millisecond times to seconds.
func (a *Adapter) Parse(raw []byte) (stt.Result, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return stt.Result{}, fmt.Errorf("assemblyai: decode payload: %w", err)
	}

	words := make([]models.Word, 0, len(p.Words))
	for i, pw := range p.Words {
		if pw.Start == nil || pw.End == nil {
			return stt.Result{}, &stt.MalformedWordError{
				Provider: ProviderName, Index: i, Reason: "missing start/end time",
			}
		}
		words = append(words, models.Word{
			Text:       pw.Text,
			Start:      *pw.Start / 1000,
			End:        *pw.End / 1000,
			Confidence: pw.Confidence,
		})
	}
	if err := stt.ValidateWords(ProviderName, words); err != nil {
		return stt.Result{}, err
	}

	var utterances []models.Utterance
	for _, pu := range p.Utterances {
		if pu.Start == nil || pu.End == nil || *pu.Start >= *pu.End {
			continue
		}
		speaker := ""
		if pu.Speaker != "" {
			speaker = "Speaker " + pu.Speaker
		}
		utterances = append(utterances, models.Utterance{
			SpeakerID: speaker,
			Start:     *pu.Start / 1000,
			End:       *pu.End / 1000,
		})
	}

	return stt.Result{Words: words, Utterances: utterances}, nil
}
