package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/newsmesh/cognition/internal/config"
	"github.com/newsmesh/cognition/internal/core"
	"github.com/newsmesh/cognition/internal/llm"
	"github.com/newsmesh/cognition/internal/logging"
	"github.com/newsmesh/cognition/internal/lookup"
	"github.com/newsmesh/cognition/internal/server"
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

	llmClient, err := llm.NewClient(context.Background(), cfg.LLM)
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

	srv := server.NewServer(pipeline)
	r := srv.SetupRouter()

	log.Printf("Starting server on %s", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		log.Fatal(err)
	}
}
