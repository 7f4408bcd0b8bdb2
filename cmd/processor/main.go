package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/newsmesh/cognition/internal/config"
	"github.com/newsmesh/cognition/internal/core"
	"github.com/newsmesh/cognition/internal/feed"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
	"github.com/newsmesh/cognition/internal/lookup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logging.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	llmClient, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}

	pipeline := core.NewPipeline(
		llmClient,
		lookup.NewRegistryClient(cfg.Lookup.RegistryBaseURL, cfg.Lookup.RegistryAPIKey),
		lookup.NewKnowledgeClient(cfg.Lookup.KnowledgeBaseURL),
		core.Options{
			ModelID:               cfg.LLM.Model,
			EntityThreshold:       cfg.Pipeline.EntityThreshold,
			RelationshipThreshold: cfg.Pipeline.RelationshipThreshold,
			LookupDelay:           time.Duration(cfg.Pipeline.LookupDelayMillis) * time.Millisecond,
		},
	)

	consumer := feed.NewConsumer(cfg.Kafka)
	defer consumer.Close()
	producer := feed.NewProducer(cfg.Kafka)
	defer producer.Close()

	runner := feed.NewRunner(consumer, producer, pipeline)
	if err := runner.Run(ctx); err != nil {
		log.Fatalf("Feed runner stopped: %v", err)
	}
}
