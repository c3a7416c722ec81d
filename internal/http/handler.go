// Package http provides the service's JSON API over chi.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stt-normalization-service/internal/events"
	"stt-normalization-service/internal/export"
	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/schema"
	"stt-normalization-service/internal/service/normalize"
	"stt-normalization-service/internal/service/stt"
)

// DefaultMaxPayloadBytes caps the raw vendor payload accepted per
// request. Vendor responses for hour-long audio stay well under this.
const DefaultMaxPayloadBytes = 32 << 20 // 32MB

// Handler coordinates the normalization engine, the event publisher,
// and the envelope validator for one HTTP request.
type Handler struct {
	engine          *normalize.Engine
	registry        *stt.Registry
	publisher       *events.Publisher
	validator       *schema.Validator
	maxPayloadBytes int64
	log             zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	engine *normalize.Engine,
	registry *stt.Registry,
	publisher *events.Publisher,
	maxPayloadBytes int64,
	log zerolog.Logger,
) *Handler {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &Handler{
		engine:          engine,
		registry:        registry,
		publisher:       publisher,
		validator:       schema.New(),
		maxPayloadBytes: maxPayloadBytes,
		log:             log,
	}
}

// normalizeResponse is the API representation of one normalized document.
type normalizeResponse struct {
	DocumentID string                `json:"documentId"`
	Provider   string                `json:"provider"`
	BlockCount int                   `json:"blockCount"`
	WordCount  int                   `json:"wordCount"`
	Blocks     []models.ContentBlock `json:"blocks"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Normalize handles POST /v1/normalize/{provider}: the request body is
// the raw vendor payload, the response the canonical block array. The
// optional format query parameter (json, markdown, html) selects the
// response rendering; markdown and html go through the exporters.
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	format := r.URL.Query().Get("format")
	switch format {
	case "", "json", "markdown", "html":
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported format %q", format))
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPayloadBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	doc, err := h.engine.Normalize(provider, raw)
	if err != nil {
		var malformed *stt.MalformedWordError
		switch {
		case errors.Is(err, stt.ErrUnknownProvider):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.As(err, &malformed):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	resp := normalizeResponse{
		DocumentID: uuid.NewString(),
		Provider:   provider,
		BlockCount: len(doc.Blocks),
		WordCount:  models.WordCount(doc.Blocks),
		Blocks:     doc.Blocks,
	}

	h.fanOut(r, resp, doc)

	switch format {
	case "markdown":
		writeText(w, "text/markdown; charset=utf-8", export.RenderMarkdown(exportMeta(provider), doc.Blocks))
	case "html":
		writeText(w, "text/html; charset=utf-8", export.RenderHTML(exportMeta(provider), doc.Blocks))
	default:
		writeJSON(w, http.StatusOK, resp)
	}
}

// Providers handles GET /v1/providers.
func (h *Handler) Providers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"providers": h.registry.Providers(),
	})
}

// fanOut publishes the document (or the no-blocks notice) to Kafka.
// Publish failures are logged, not surfaced: the HTTP response body is
// the canonical handoff and must not depend on broker health.
func (h *Handler) fanOut(r *http.Request, resp normalizeResponse, doc normalize.Document) {
	now := time.Now().UnixMilli()

	if resp.BlockCount == 0 {
		// No blocks has two distinct causes: an empty payload, or every
		// word falling in a diarization gap. The notice says which.
		reason := models.NoticeReasonNoWords
		if doc.SourceWords > 0 {
			reason = models.NoticeReasonAllWordsDropped
		}
		notice := models.TranscriptEmpty{
			EventType:    models.EventTranscriptEmpty,
			DocumentID:   resp.DocumentID,
			Provider:     resp.Provider,
			Timestamp:    now,
			Reason:       reason,
			WordsDropped: doc.DroppedWords,
		}
		if err := h.validator.Validate(notice); err != nil {
			h.log.Error().Err(err).Str("documentId", resp.DocumentID).Msg("notice event failed validation")
			return
		}
		if err := h.publisher.PublishNotice(r.Context(), resp.DocumentID, notice); err != nil {
			h.log.Error().Err(err).Str("documentId", resp.DocumentID).Msg("notice publish failed")
		}
		return
	}

	event := models.DocumentNormalized{
		EventType:  models.EventDocumentNormalized,
		DocumentID: resp.DocumentID,
		Provider:   resp.Provider,
		Timestamp:  now,
		BlockCount: resp.BlockCount,
		WordCount:  resp.WordCount,
		Blocks:     resp.Blocks,
	}
	if err := h.validator.Validate(event); err != nil {
		h.log.Error().Err(err).Str("documentId", resp.DocumentID).Msg("document event failed validation")
		return
	}
	if err := h.publisher.PublishDocument(r.Context(), resp.DocumentID, event); err != nil {
		h.log.Error().Err(err).Str("documentId", resp.DocumentID).Msg("document publish failed")
	}
}

func exportMeta(provider string) export.Metadata {
	return export.Metadata{
		Provider:  provider,
		Generated: time.Now().UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
