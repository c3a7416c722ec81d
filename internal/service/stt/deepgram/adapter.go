// Package deepgram parses Deepgram pre-recorded transcription responses.
package deepgram

import (
	"encoding/json"
	"fmt"
	"strconv"

	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/stt"
)

// ProviderName is the registry key for this adapter.
const ProviderName = "deepgram"

// Adapter implements stt.Adapter for the Deepgram /v1/listen response
// shape: results.channels[].alternatives[].words plus the optional
// top-level results.utterances list. Times are already in seconds.
type Adapter struct{}

// New creates a new Deepgram adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the provider identifier.
func (a *Adapter) Name() string { return ProviderName }

type payload struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string        `json:"transcript"`
				Words      []payloadWord `json:"words"`
			} `json:"alternatives"`
		} `json:"channels"`
		Utterances []payloadUtterance `json:"utterances"`
	} `json:"results"`
}

// Timing fields are pointers so a missing field is distinguishable from
// a genuine 0.0 and can be rejected instead of coerced.
type payloadWord struct {
	Word           string   `json:"word"`
	PunctuatedWord string   `json:"punctuated_word"`
	Start          *float64 `json:"start"`
	End            *float64 `json:"end"`
	Confidence     float64  `json:"confidence"`
}

type payloadUtterance struct {
	Speaker *int     `json:"speaker"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
}

// Parse translates a Deepgram response into normalized words and
// utterances. The first alternative of the first channel is used, which
// matches how the response is consumed everywhere else.
func (a *Adapter) Parse(raw []byte) (stt.Result, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return stt.Result{}, fmt.Errorf("deepgram: decode payload: %w", err)
	}

	if len(p.Results.Channels) == 0 || len(p.Results.Channels[0].Alternatives) == 0 {
		return stt.Result{}, nil
	}
	alt := p.Results.Channels[0].Alternatives[0]

	words := make([]models.Word, 0, len(alt.Words))
	for i, pw := range alt.Words {
		if pw.Start == nil || pw.End == nil {
			return stt.Result{}, &stt.MalformedWordError{
				Provider: ProviderName, Index: i, Reason: "missing start/end time",
			}
		}
		text := pw.PunctuatedWord
		if text == "" {
			text = pw.Word
		}
		words = append(words, models.Word{
			Text:       text,
			Start:      *pw.Start,
			End:        *pw.End,
			Confidence: pw.Confidence,
		})
	}
	if err := stt.ValidateWords(ProviderName, words); err != nil {
		return stt.Result{}, err
	}

	var utterances []models.Utterance
	for _, pu := range p.Results.Utterances {
		// Utterances without timing cannot align any words; skip them.
		if pu.Start == nil || pu.End == nil || *pu.Start >= *pu.End {
			continue
		}
		speaker := ""
		if pu.Speaker != nil {
			speaker = "Speaker " + strconv.Itoa(*pu.Speaker)
		}
		utterances = append(utterances, models.Utterance{
			SpeakerID: speaker,
			Start:     *pu.Start,
			End:       *pu.End,
		})
	}

	return stt.Result{Words: words, Utterances: utterances}, nil
}
