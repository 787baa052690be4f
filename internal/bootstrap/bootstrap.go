// Package bootstrap builds the services the binaries share from a loaded
// configuration: the catalog store, the LLM client and the agent.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dileep-u-k/inventory-agent/internal/agent"
	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/config"
	"github.com/dileep-u-k/inventory-agent/internal/llm"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

// Store is a catalog store that may hold resources.
type Store interface {
	catalog.Store
	Close() error
}

type memoryStore struct{ *catalog.MemoryStore }

func (memoryStore) Close() error { return nil }

// OpenStore opens the configured catalog. The memory driver loads the YAML
// catalog file when one is set and the seed products otherwise.
func OpenStore(cfg config.CatalogConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		s, err := catalog.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog database: %w", err)
		}
		return s, nil
	case config.DriverMemory:
		products := catalog.SeedProducts()
		if cfg.File != "" {
			loaded, err := catalog.LoadFile(cfg.File)
			if err != nil {
				return nil, err
			}
			products = loaded
		}
		s, err := catalog.NewMemoryStore(products)
		if err != nil {
			return nil, err
		}
		return memoryStore{s}, nil
	}
	return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
}

// NewLLMClient creates the client for the configured provider. It returns a
// nil client when no provider is configured.
func NewLLMClient(ctx context.Context, cfg config.LLMConfig) (llm.LLMClient, error) {
	switch cfg.Provider {
	case config.ProviderNone:
		return nil, nil
	case config.ProviderOpenAI:
		var opts []llm.OpenAIOption
		if cfg.BaseURL != "" {
			opts = append(opts, llm.WithOpenAIBaseURL(cfg.BaseURL))
		}
		client, err := llm.NewOpenAIClient(cfg.OpenAIAPIKey, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGemini:
		client, err := llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}

// NewAgent wires the inventory tools over store into an agent driving client.
func NewAgent(client llm.LLMClient, store catalog.Store, cfg *config.Config, logger logging.Logger) *agent.Agent {
	manager := tools.NewInventoryToolManager(store)
	logger.Infof("tool manager initialized with %d tools", manager.ToolCount())
	return agent.New(client, manager,
		agent.WithModel(cfg.LLM.Model),
		agent.WithMaxToolCalls(cfg.Agent.MaxToolCalls),
		agent.WithTemperature(cfg.LLM.Temperature),
		agent.WithMaxTokens(cfg.LLM.MaxTokens),
		agent.WithLogger(logger),
	)
}
