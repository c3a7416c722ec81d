// Package normalize converts heterogeneous STT provider payloads into
// the canonical content block document model.
//
// One Normalize call is a single synchronous, CPU-bound, side-effect-free
// transform: the engine owns its intermediate structures for the
// duration of the call, shares nothing across calls, and takes no locks,
// so independent documents may be normalized concurrently from any
// number of goroutines.
package normalize

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/observability/metrics"
	"stt-normalization-service/internal/service/stt"
)

// Outcome labels for normalization metrics.
const (
	outcomeNormalized      = "normalized"
	outcomeEmpty           = "empty"
	outcomeMalformed       = "malformed"
	outcomeUnknownProvider = "unknown_provider"
)

// Engine runs the normalization pipeline:
//
//	raw payload → adapter → {words, utterances} → aligner →
//	coalescer (or punctuation segmenter) → entity ranges → blocks
type Engine struct {
	registry *stt.Registry
	log      zerolog.Logger
	metrics  *metrics.Metrics
}

// New creates an Engine over the given adapter registry. The logger is
// injected so the core stays free of process-global logging state.
func New(registry *stt.Registry, log zerolog.Logger) *Engine {
	return &Engine{
		registry: registry,
		log:      log,
		metrics:  metrics.DefaultMetrics,
	}
}

// Document is the result of one normalization pass: the canonical block
// array plus source word accounting, so callers can tell an empty
// payload apart from a document whose words all fell in diarization
// gaps.
type Document struct {
	Blocks       []models.ContentBlock
	SourceWords  int
	DroppedWords int
}

// Normalize converts one raw vendor payload into the ordered ContentBlock
// array, the canonical output of the whole engine.
//
// An empty transcript is not an error: it logs a warning and returns a
// Document with an empty block list. A malformed word fails the whole
// document; partial documents are never returned.
func (e *Engine) Normalize(provider string, raw []byte) (Document, error) {
	start := time.Now()

	adapter, err := e.registry.Lookup(provider)
	if err != nil {
		e.metrics.RecordNormalization(provider, outcomeUnknownProvider, 0, 0, 0, time.Since(start).Seconds())
		return Document{}, err
	}

	result, err := adapter.Parse(raw)
	if err != nil {
		e.log.Error().
			Err(err).
			Str("provider", provider).
			Msg("payload rejected")
		e.metrics.RecordNormalization(provider, outcomeMalformed, 0, 0, 0, time.Since(start).Seconds())
		return Document{}, fmt.Errorf("normalize %s payload: %w", provider, err)
	}

	if len(result.Words) == 0 {
		e.log.Warn().
			Str("provider", provider).
			Msg("empty transcript")
		e.metrics.RecordNormalization(provider, outcomeEmpty, 0, 0, 0, time.Since(start).Seconds())
		return Document{Blocks: []models.ContentBlock{}}, nil
	}

	var paragraphs []paragraph
	dropped := 0
	if len(result.Utterances) > 0 {
		var groups []alignedUtterance
		groups, dropped = align(result.Words, result.Utterances)
		paragraphs = coalesce(groups)
		if dropped > 0 {
			e.log.Warn().
				Str("provider", provider).
				Int("droppedWords", dropped).
				Msg("words fell in diarization gaps")
		}
	} else {
		paragraphs = segmentByPunctuation(result.Words)
	}

	blocks := buildBlocks(paragraphs)

	e.metrics.RecordNormalization(provider, outcomeNormalized,
		len(result.Words), dropped, len(blocks), time.Since(start).Seconds())
	e.log.Debug().
		Str("provider", provider).
		Int("words", len(result.Words)).
		Int("utterances", len(result.Utterances)).
		Int("blocks", len(blocks)).
		Msg("document normalized")

	return Document{
		Blocks:       blocks,
		SourceWords:  len(result.Words),
		DroppedWords: dropped,
	}, nil
}
