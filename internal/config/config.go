// Package config loads service configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Logging LoggingConfig `yaml:"logging"`
	Limits  LimitsConfig  `yaml:"limits"`
}

type ServiceConfig struct {
	Principal   string `yaml:"principal"`
	HTTPPort    string `yaml:"http_port"`
	MetricsAddr string `yaml:"metrics_addr"`
}

type KafkaConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Brokers        []string `yaml:"brokers"`
	TopicDocuments string   `yaml:"topic_documents"`
	TopicNotices   string   `yaml:"topic_notices"`
	Principal      string   `yaml:"principal"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type LimitsConfig struct {
	MaxPayloadBytes int64 `yaml:"max_payload_bytes"`
}

// Load builds the configuration: defaults, then the YAML file named by
// CONFIG_FILE (if set), then environment variable overrides.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.Kafka.Principal == "" {
		cfg.Kafka.Principal = cfg.Service.Principal
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Principal:   "svc-stt-normalization",
			HTTPPort:    "8080",
			MetricsAddr: ":9090",
		},
		Kafka: KafkaConfig{
			Enabled:        false,
			TopicDocuments: "transcript.documents",
			TopicNotices:   "transcript.notices",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Limits: LimitsConfig{
			MaxPayloadBytes: 32 << 20,
		},
	}
}

func applyEnv(cfg *Config) {
	cfg.Service.Principal = envOrDefault("SERVICE_PRINCIPAL", cfg.Service.Principal)
	cfg.Service.HTTPPort = envOrDefault("HTTP_PORT", cfg.Service.HTTPPort)
	cfg.Service.MetricsAddr = envOrDefault("METRICS_ADDR", cfg.Service.MetricsAddr)

	cfg.Kafka.Enabled = envOrDefaultBool("KAFKA_ENABLED", cfg.Kafka.Enabled)
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitAndTrim(v)
	}
	cfg.Kafka.TopicDocuments = envOrDefault("KAFKA_TOPIC_DOCUMENTS", cfg.Kafka.TopicDocuments)
	cfg.Kafka.TopicNotices = envOrDefault("KAFKA_TOPIC_NOTICES", cfg.Kafka.TopicNotices)
	cfg.Kafka.Principal = envOrDefault("KAFKA_PRINCIPAL", cfg.Kafka.Principal)

	cfg.Logging.Level = envOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = envOrDefault("LOG_FORMAT", cfg.Logging.Format)

	cfg.Limits.MaxPayloadBytes = envOrDefaultInt64("MAX_PAYLOAD_BYTES", cfg.Limits.MaxPayloadBytes)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
