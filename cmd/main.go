package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stt-normalization-service/internal/config"
	"stt-normalization-service/internal/events"
	apihttp "stt-normalization-service/internal/http"
	"stt-normalization-service/internal/observability"
	"stt-normalization-service/internal/observability/logging"
	"stt-normalization-service/internal/service/normalize"
	"stt-normalization-service/internal/service/stt"
	"stt-normalization-service/internal/service/stt/assemblyai"
	"stt-normalization-service/internal/service/stt/deepgram"
	"stt-normalization-service/internal/service/stt/google"
	"stt-normalization-service/internal/service/stt/mock"
	"stt-normalization-service/internal/service/stt/whisper"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Init(logging.DefaultConfig())
		logger := logging.Logger()
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		TimeFormat: time.RFC3339,
	})
	log := logging.WithComponent("main")

	registry := stt.NewRegistry()
	registry.Register(deepgram.New())
	registry.Register(assemblyai.New())
	registry.Register(whisper.New())
	registry.Register(google.New())
	registry.Register(mock.New())

	engine := normalize.New(registry, logging.WithComponent("normalize"))

	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicDocuments: cfg.Kafka.TopicDocuments,
		TopicNotices:   cfg.Kafka.TopicNotices,
		Principal:      cfg.Kafka.Principal,
	})
	defer publisher.Close()

	obs := observability.NewServer(cfg.Service.MetricsAddr)
	obs.Start()

	handler := apihttp.NewHandler(engine, registry, publisher,
		cfg.Limits.MaxPayloadBytes, logging.WithComponent("api"))

	server := &http.Server{
		Addr:         ":" + cfg.Service.HTTPPort,
		Handler:      apihttp.NewRouter(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Service.HTTPPort).
			Strs("providers", registry.Providers()).
			Msg("STT normalization service started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := obs.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("observability shutdown failed")
	}
}
