package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"stt-normalization-service/internal/events"
	"stt-normalization-service/internal/models"
	"stt-normalization-service/internal/service/normalize"
	"stt-normalization-service/internal/service/stt"
	"stt-normalization-service/internal/service/stt/deepgram"
	"stt-normalization-service/internal/service/stt/mock"
)

func newTestRouter(t *testing.T, maxPayloadBytes int64) http.Handler {
	t.Helper()
	registry := stt.NewRegistry()
	registry.Register(mock.New())
	registry.Register(deepgram.New())

	engine := normalize.New(registry, zerolog.Nop())
	publisher := events.New(nil)
	handler := NewHandler(engine, registry, publisher, maxPayloadBytes, zerolog.Nop())
	return NewRouter(handler)
}

func TestNormalize_OK(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/mock", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp normalizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DocumentID == "" {
		t.Error("expected a document id")
	}
	if resp.Provider != "mock" {
		t.Errorf("expected provider 'mock', got %q", resp.Provider)
	}
	// Mock transcript: two Speaker 0 utterances coalesce, then Speaker 1.
	if resp.BlockCount != 2 || len(resp.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got blockCount=%d len=%d", resp.BlockCount, len(resp.Blocks))
	}
	if resp.WordCount != 14 {
		t.Errorf("expected 14 words, got %d", resp.WordCount)
	}
	if resp.Blocks[0].SpeakerLabel != "Speaker 0" || resp.Blocks[1].SpeakerLabel != "Speaker 1" {
		t.Errorf("unexpected speaker labels: %q, %q", resp.Blocks[0].SpeakerLabel, resp.Blocks[1].SpeakerLabel)
	}
	for _, b := range resp.Blocks {
		if b.Kind != models.BlockKindParagraph {
			t.Errorf("unexpected block kind %q", b.Kind)
		}
	}
}

func TestNormalize_UnknownProvider(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/nope", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestNormalize_MalformedPayload(t *testing.T) {
	router := newTestRouter(t, 0)

	payload := `{
	  "results": {
	    "channels": [{
	      "alternatives": [{
	        "words": [{"word": "broken", "start": 1.0}]
	      }]
	    }]
	  }
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/deepgram", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("expected an error message")
	}
}

func TestNormalize_InvalidJSON(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/deepgram", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestNormalize_EmptyTranscript(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/deepgram", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty transcript, got %d", rec.Code)
	}

	var resp normalizeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BlockCount != 0 {
		t.Errorf("expected 0 blocks, got %d", resp.BlockCount)
	}
	if resp.Blocks == nil {
		t.Error("expected an empty block array, not null")
	}
}

func TestNormalize_MarkdownFormat(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/mock?format=markdown", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("expected markdown content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "# Transcript") {
		t.Error("expected transcript header")
	}
	if !strings.Contains(body, "- Provider: `mock`") {
		t.Error("expected provider metadata line")
	}
	if !strings.Contains(body, "**Speaker 0**") || !strings.Contains(body, "**Speaker 1**") {
		t.Errorf("expected speaker paragraphs, got:\n%s", body)
	}
}

func TestNormalize_HTMLFormat(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/mock?format=html", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("expected html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `<article class="transcript">`) {
		t.Error("expected transcript article")
	}
	if !strings.Contains(body, `<span data-start=`) {
		t.Error("expected timed word spans")
	}
	if strings.Count(body, "<section") != 2 {
		t.Errorf("expected 2 sections, got %d", strings.Count(body, "<section"))
	}
}

func TestNormalize_UnsupportedFormat(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/mock?format=xml", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unsupported format, got %d", rec.Code)
	}
}

func TestNormalize_PayloadTooLarge(t *testing.T) {
	router := newTestRouter(t, 16)

	req := httptest.NewRequest(http.MethodPost, "/v1/normalize/mock", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestProviders(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/v1/providers", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string][]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	got := resp["providers"]
	want := []string{"deepgram", "mock"}
	if len(got) != len(want) {
		t.Fatalf("providers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("providers[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, 0)

	for _, path := range []string{"/v1/liveness", "/v1/readiness"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
