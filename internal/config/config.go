package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type KafkaConfig struct {
	Brokers         []string `toml:"brokers"`
	RawTopic        string   `toml:"raw_topic"`
	StructuredTopic string   `toml:"structured_topic"`
	DeadLetterTopic string   `toml:"dead_letter_topic"`
	GroupID         string   `toml:"group_id"`
}

type LookupConfig struct {
	RegistryBaseURL  string `toml:"registry_base_url"`
	RegistryAPIKey   string `toml:"registry_api_key"`
	KnowledgeBaseURL string `toml:"knowledge_base_url"`
}

type PipelineConfig struct {
	// Confidence thresholds applied after extraction; callers of the stage
	// APIs may override per invocation.
	EntityThreshold       float64 `toml:"entity_threshold"`
	RelationshipThreshold float64 `toml:"relationship_threshold"`
	// Fixed delay between uncached validation lookups, in milliseconds.
	LookupDelayMillis int `toml:"lookup_delay_millis"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type Config struct {
	LLM      LLMConfig      `toml:"llm"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Lookup   LookupConfig   `toml:"lookup"`
	Pipeline PipelineConfig `toml:"pipeline"`
	Server   ServerConfig   `toml:"server"`
	LogLevel string         `toml:"log_level"`
}

// Default returns the configuration used when a key is absent from the file.
func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4-turbo-preview",
		},
		Kafka: KafkaConfig{
			Brokers:         []string{"localhost:9092"},
			RawTopic:        "raw-news",
			StructuredTopic: "structured-graph-event",
			DeadLetterTopic: "cognitive-dead-letter",
			GroupID:         "cognitive-processor-group",
		},
		Lookup: LookupConfig{
			RegistryBaseURL:  "https://api.crunchbase.com/api/v4",
			KnowledgeBaseURL: "https://www.wikidata.org/w/api.php",
		},
		Pipeline: PipelineConfig{
			EntityThreshold:       0.7,
			RelationshipThreshold: 0.7,
			LookupDelayMillis:     100,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		LogLevel: "info",
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets deployment environments override file values without
// editing the config. Only secrets and endpoints are exposed this way.
func (c *Config) applyEnv() {
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("REGISTRY_API_KEY"); v != "" {
		c.Lookup.RegistryAPIKey = v
	}
	if v := os.Getenv("LOOKUP_DELAY_MILLIS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.Pipeline.LookupDelayMillis = ms
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}
