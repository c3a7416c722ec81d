package events

import (
	"context"
	"testing"

	"stt-normalization-service/internal/models"
)

func TestNew_NilConfig(t *testing.T) {
	p := New(nil)
	if p == nil {
		t.Fatal("expected publisher, got nil")
	}
	if p.enabled {
		t.Error("nil config must produce a disabled publisher")
	}
}

func TestNew_DisabledConfig(t *testing.T) {
	p := New(&Config{
		Enabled:        false,
		TopicDocuments: "transcript.documents",
		TopicNotices:   "transcript.notices",
		Principal:      "stt-normalization-service",
	})
	if p.enabled {
		t.Error("expected disabled publisher")
	}
	if p.writerDocuments != nil || p.writerNotices != nil {
		t.Error("disabled publisher must not create writers")
	}
	if p.topicDocuments != "transcript.documents" {
		t.Errorf("unexpected documents topic: %q", p.topicDocuments)
	}
}

func TestNew_EnabledWithoutBrokers(t *testing.T) {
	p := New(&Config{
		Enabled:        true,
		TopicDocuments: "transcript.documents",
		TopicNotices:   "transcript.notices",
	})
	if p.enabled {
		t.Error("no brokers must force log-only mode")
	}
}

func TestPublish_DisabledIsLogOnly(t *testing.T) {
	p := New(&Config{
		Enabled:        false,
		TopicDocuments: "transcript.documents",
		TopicNotices:   "transcript.notices",
	})

	doc := models.DocumentNormalized{
		EventType:  models.EventDocumentNormalized,
		DocumentID: "doc-1",
		Provider:   "mock",
		Timestamp:  1700000000000,
	}
	if err := p.PublishDocument(context.Background(), doc.DocumentID, doc); err != nil {
		t.Errorf("disabled publish must succeed, got %v", err)
	}

	notice := models.TranscriptEmpty{
		EventType:  models.EventTranscriptEmpty,
		DocumentID: "doc-2",
		Provider:   "mock",
		Timestamp:  1700000000000,
		Reason:     models.NoticeReasonNoWords,
	}
	if err := p.PublishNotice(context.Background(), notice.DocumentID, notice); err != nil {
		t.Errorf("disabled notice publish must succeed, got %v", err)
	}
}

func TestPublish_MarshalError(t *testing.T) {
	p := New(nil)

	// Channels cannot be marshaled to JSON.
	if err := p.PublishDocument(context.Background(), "key", make(chan int)); err == nil {
		t.Error("expected marshal error")
	}
}

func TestClose_DisabledPublisher(t *testing.T) {
	p := New(nil)
	if err := p.Close(); err != nil {
		t.Errorf("closing a disabled publisher must succeed, got %v", err)
	}
}
