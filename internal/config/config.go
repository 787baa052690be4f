// Package config loads the settings shared by the gateway, the agent driver
// and the seeder from a .env file, config.yaml and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

// Supported LLM providers. ProviderNone disables the chat endpoint.
const (
	ProviderNone   = ""
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Supported catalog drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	LLM      LLMConfig     `yaml:"llm"`
	Redis    RedisConfig   `yaml:"redis"`
	Catalog  CatalogConfig `yaml:"catalog"`
	Agent    AgentConfig   `yaml:"agent"`
	LogLevel string        `yaml:"log_level"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LLMConfig struct {
	Provider    string   `yaml:"provider"`
	Model       string   `yaml:"model"`
	Temperature *float32 `yaml:"temperature"`
	MaxTokens   int      `yaml:"max_tokens"`
	// BaseURL overrides the OpenAI endpoint for compatible servers.
	BaseURL string `yaml:"base_url"`

	// Secrets only come from the environment.
	OpenAIAPIKey string `yaml:"-"`
	GeminiAPIKey string `yaml:"-"`
}

type RedisConfig struct {
	// Addr is host:port. Empty disables caching.
	Addr string        `yaml:"addr"`
	TTL  time.Duration `yaml:"ttl"`
}

type CatalogConfig struct {
	Driver string `yaml:"driver"`
	// Path is the SQLite database file.
	Path string `yaml:"path"`
	// File optionally replaces the built-in seed products for the memory driver.
	File string `yaml:"file"`
}

type AgentConfig struct {
	MaxToolCalls int      `yaml:"max_tool_calls"`
	Prompts      []string `yaml:"prompts"`
}

// DefaultPrompts are run by cmd/agent when none are configured.
var DefaultPrompts = []string{
	"Give me a pricing analysis of our Exotic tier.",
	"What would 50 kilograms of Blue Dream cost with the bulk discount?",
	"Convert 2.5 pounds to grams and tell me how many eighths that makes.",
	"Generate a menu of everything we carry, sorted by THCa.",
	"Give me an inventory summary.",
	"Forecast sales for the next 30 days assuming 10% growth.",
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", ShutdownTimeout: 10 * time.Second},
		Redis:    RedisConfig{TTL: 24 * time.Hour},
		Catalog:  CatalogConfig{Driver: DriverMemory, Path: "inventory.db"},
		Agent:    AgentConfig{MaxToolCalls: 5},
		LogLevel: logging.LevelInfo,
	}
}

// Load reads .env (skipped when GIN_MODE=release), then the YAML file at path
// if it exists, then environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.LLM.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	c.LLM.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	overrides := map[string]*string{
		"LLM_PROVIDER":    &c.LLM.Provider,
		"LLM_MODEL":       &c.LLM.Model,
		"OPENAI_BASE_URL": &c.LLM.BaseURL,
		"REDIS_ADDR":      &c.Redis.Addr,
		"PORT":            &c.Server.Port,
		"LOG_LEVEL":       &c.LogLevel,
		"CATALOG_DRIVER":  &c.Catalog.Driver,
		"CATALOG_PATH":    &c.Catalog.Path,
	}
	for env, field := range overrides {
		if v := os.Getenv(env); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("AGENT_MAX_TOOL_CALLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENT_MAX_TOOL_CALLS must be an integer: %w", err)
		}
		c.Agent.MaxToolCalls = n
	}
	return nil
}

// fillDefaults picks a provider from the available keys and a model for it.
func (c *Config) fillDefaults() {
	if c.LLM.Provider == ProviderNone {
		switch {
		case c.LLM.OpenAIAPIKey != "":
			c.LLM.Provider = ProviderOpenAI
		case c.LLM.GeminiAPIKey != "":
			c.LLM.Provider = ProviderGemini
		}
	}
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = "gpt-4o-mini"
		case ProviderGemini:
			c.LLM.Model = "gemini-1.5-flash"
		}
	}
	if len(c.Agent.Prompts) == 0 {
		c.Agent.Prompts = append([]string(nil), DefaultPrompts...)
	}
}

// Validate rejects settings the binaries cannot run with.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderNone:
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("llm provider openai needs OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("llm provider gemini needs GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLM.Provider)
	}

	switch c.Catalog.Driver {
	case DriverMemory:
	case DriverSQLite:
		if c.Catalog.Path == "" {
			return errors.New("catalog driver sqlite needs a path")
		}
	default:
		return fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Agent.MaxToolCalls < 1 {
		return fmt.Errorf("agent max_tool_calls must be at least 1, got %d", c.Agent.MaxToolCalls)
	}
	if c.Server.Port == "" {
		return errors.New("server port cannot be empty")
	}
	return nil
}
