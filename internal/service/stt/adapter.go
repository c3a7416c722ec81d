// Package stt defines the contract for Speech-to-Text provider adapters.
//
// An adapter translates one vendor's transcription payload into the
// normalized {words, utterances} pair consumed by the normalization
// engine. Adapters are pure parsers: no network, no filesystem, no
// retries. Time units are normalized to seconds before a Result leaves
// the adapter boundary.
package stt

import "stt-normalization-service/internal/models"

// Result is the normalized output of one adapter parse.
// Utterances is empty when the vendor provided no diarization; the
// engine then falls back to punctuation segmentation.
type Result struct {
	Words      []models.Word
	Utterances []models.Utterance
}

// Adapter defines the interface for STT provider payload parsers
// (Deepgram, AssemblyAI, Whisper, Google, etc.).
type Adapter interface {
	// Name returns the provider identifier used for registry lookup.
	Name() string

	// Parse translates the raw vendor payload into a normalized Result.
	// A payload with zero words is not an error: it returns an empty
	// Result so the caller can treat it as an empty transcript. Tokens
	// missing valid numeric timing fail the whole parse with a
	// *MalformedWordError.
	Parse(raw []byte) (Result, error)
}
