package deepgram

import (
	"errors"
	"testing"

	"stt-normalization-service/internal/service/stt"
)

const samplePayload = `{
  "results": {
    "channels": [{
      "alternatives": [{
        "transcript": "hello there how are you",
        "words": [
          {"word": "hello", "punctuated_word": "Hello", "start": 0.0, "end": 0.4, "confidence": 0.98},
          {"word": "there", "punctuated_word": "there.", "start": 0.4, "end": 0.8, "confidence": 0.97},
          {"word": "how", "punctuated_word": "How", "start": 1.2, "end": 1.4, "confidence": 0.99},
          {"word": "are", "start": 1.4, "end": 1.6, "confidence": 0.95},
          {"word": "you", "punctuated_word": "you?", "start": 1.6, "end": 1.9, "confidence": 0.96}
        ]
      }]
    }],
    "utterances": [
      {"speaker": 0, "start": 0.0, "end": 0.9},
      {"speaker": 1, "start": 1.1, "end": 2.0}
    ]
  }
}`

func TestParse_WordsAndUtterances(t *testing.T) {
	result, err := New().Parse([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Words) != 5 {
		t.Fatalf("expected 5 words, got %d", len(result.Words))
	}
	if result.Words[0].Text != "Hello" {
		t.Errorf("expected punctuated word 'Hello', got %q", result.Words[0].Text)
	}
	// Fallback to bare word when punctuated_word is missing
	if result.Words[3].Text != "are" {
		t.Errorf("expected bare word 'are', got %q", result.Words[3].Text)
	}
	if result.Words[1].Start != 0.4 || result.Words[1].End != 0.8 {
		t.Errorf("unexpected timing: %v-%v", result.Words[1].Start, result.Words[1].End)
	}
	if result.Words[0].Confidence != 0.98 {
		t.Errorf("expected confidence 0.98, got %v", result.Words[0].Confidence)
	}

	if len(result.Utterances) != 2 {
		t.Fatalf("expected 2 utterances, got %d", len(result.Utterances))
	}
	if result.Utterances[0].SpeakerID != "Speaker 0" {
		t.Errorf("expected 'Speaker 0', got %q", result.Utterances[0].SpeakerID)
	}
	if result.Utterances[1].Start != 1.1 || result.Utterances[1].End != 2.0 {
		t.Errorf("unexpected utterance timing: %v-%v", result.Utterances[1].Start, result.Utterances[1].End)
	}
}

func TestParse_MissingWordTiming(t *testing.T) {
	payload := `{
	  "results": {
	    "channels": [{
	      "alternatives": [{
	        "words": [
	          {"word": "ok", "start": 0.0, "end": 0.3},
	          {"word": "broken", "start": 0.3}
	        ]
	      }]
	    }]
	  }
	}`

	_, err := New().Parse([]byte(payload))

	var malformed *stt.MalformedWordError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedWordError, got %v", err)
	}
	if malformed.Index != 1 {
		t.Errorf("expected index 1, got %d", malformed.Index)
	}
	if malformed.Provider != ProviderName {
		t.Errorf("expected provider %q, got %q", ProviderName, malformed.Provider)
	}
}

func TestParse_EmptyPayloadShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"no channels", `{"results": {"channels": []}}`},
		{"no alternatives", `{"results": {"channels": [{"alternatives": []}]}}`},
		{"no words", `{"results": {"channels": [{"alternatives": [{"transcript": "", "words": []}]}]}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := New().Parse([]byte(tt.payload))
			if err != nil {
				t.Fatalf("empty shapes must not error, got %v", err)
			}
			if len(result.Words) != 0 {
				t.Errorf("expected 0 words, got %d", len(result.Words))
			}
		})
	}
}

func TestParse_UnlabeledAndUntimedUtterances(t *testing.T) {
	payload := `{
	  "results": {
	    "channels": [{
	      "alternatives": [{
	        "words": [{"word": "hi", "start": 0.0, "end": 0.3}]
	      }]
	    }],
	    "utterances": [
	      {"start": 0.0, "end": 0.5},
	      {"speaker": 2, "start": 1.0}
	    ]
	  }
	}`

	result, err := New().Parse([]byte(payload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Utterances) != 1 {
		t.Fatalf("expected untimed utterance to be skipped, got %d", len(result.Utterances))
	}
	if result.Utterances[0].SpeakerID != "" {
		t.Errorf("expected unlabeled speaker, got %q", result.Utterances[0].SpeakerID)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := New().Parse([]byte("{not json")); err == nil {
		t.Error("expected decode error")
	}
}
