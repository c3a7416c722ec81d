// Package events provides Kafka fan-out of normalized documents.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"stt-normalization-service/internal/observability/metrics"
)

// Publisher publishes normalization events to separate Kafka topics:
// full normalized documents on one, empty-transcript notices on the
// other. When Kafka is disabled it degrades to log-only mode so the
// service stays usable without a broker.
type Publisher struct {
	writerDocuments *kafka.Writer
	writerNotices   *kafka.Writer
	principal       string
	topicDocuments  string
	topicNotices    string
	enabled         bool
	metrics         *metrics.Metrics
}

// Config holds Kafka publisher configuration.
type Config struct {
	Brokers        []string
	TopicDocuments string
	TopicNotices   string
	Principal      string
	Enabled        bool
}

// New creates a new Kafka event publisher.
func New(cfg *Config) *Publisher {
	m := metrics.DefaultMetrics

	// Handle nil config case
	if cfg == nil {
		log.Info().Msg("Kafka disabled (nil config), using log-only mode")
		return &Publisher{
			enabled: false,
			metrics: m,
		}
	}

	if !cfg.Enabled || len(cfg.Brokers) == 0 {
		log.Info().Msg("Kafka disabled, using log-only mode")
		return &Publisher{
			principal:      cfg.Principal,
			topicDocuments: cfg.TopicDocuments,
			topicNotices:   cfg.TopicNotices,
			enabled:        false,
			metrics:        m,
		}
	}

	// Custom dialer with longer timeouts for DNS resolution in Kubernetes
	dialer := &kafka.Dialer{
		Timeout:   10 * time.Second,
		DualStack: true,
	}

	transport := &kafka.Transport{
		Dial: dialer.DialFunc,
	}

	writerDocuments := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicDocuments,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	writerNotices := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.TopicNotices,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		Transport:    transport,
	}

	log.Info().
		Strs("brokers", cfg.Brokers).
		Str("topicDocuments", cfg.TopicDocuments).
		Str("topicNotices", cfg.TopicNotices).
		Str("principal", cfg.Principal).
		Msg("Kafka publisher initialized")

	return &Publisher{
		writerDocuments: writerDocuments,
		writerNotices:   writerNotices,
		principal:       cfg.Principal,
		topicDocuments:  cfg.TopicDocuments,
		topicNotices:    cfg.TopicNotices,
		enabled:         true,
		metrics:         m,
	}
}

// PublishDocument publishes a normalized document event.
func (p *Publisher) PublishDocument(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerDocuments, p.topicDocuments, "document", key, event)
}

// PublishNotice publishes a non-fatal notice (e.g. empty transcript).
func (p *Publisher) PublishNotice(ctx context.Context, key string, event any) error {
	return p.publish(ctx, p.writerNotices, p.topicNotices, "notice", key, event)
}

// publish is the internal method that writes to a specific Kafka writer.
func (p *Publisher) publish(ctx context.Context, writer *kafka.Writer, topic, eventType, key string, event any) error {
	start := time.Now()

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to marshal event")
		return err
	}

	log.Debug().
		Str("principal", p.principal).
		Str("topic", topic).
		Str("key", key).
		Int("payloadBytes", len(payload)).
		Msg("Publishing event")

	// If Kafka is disabled, just log
	if !p.enabled || writer == nil {
		p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "eventType", Value: []byte(eventType)},
			{Key: "principal", Value: []byte(p.principal)},
		},
	}

	if err := writer.WriteMessages(ctx, msg); err != nil {
		log.Error().
			Err(err).
			Str("topic", topic).
			Str("key", key).
			Msg("Failed to write to Kafka")
		p.metrics.RecordKafkaPublish(topic, eventType, err, time.Since(start).Seconds())
		return err
	}

	p.metrics.RecordKafkaPublish(topic, eventType, nil, time.Since(start).Seconds())
	return nil
}

// Close closes both Kafka writers.
func (p *Publisher) Close() error {
	var err error
	if p.writerDocuments != nil {
		if e := p.writerDocuments.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing documents writer")
			err = e
		}
	}
	if p.writerNotices != nil {
		if e := p.writerNotices.Close(); e != nil {
			log.Error().Err(e).Msg("Error closing notices writer")
			err = e
		}
	}
	return err
}
