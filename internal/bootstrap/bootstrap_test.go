package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/config"
	"github.com/dileep-u-k/inventory-agent/internal/llm"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
)

func TestOpenStoreMemorySeed(t *testing.T) {
	s, err := OpenStore(config.CatalogConfig{Driver: config.DriverMemory})
	require.NoError(t, err)
	defer s.Close()

	products, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, len(catalog.SeedProducts()))
}

func TestOpenStoreMemoryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - name: Test Kush
    strain: indica
    tier: Mids
    weight_lbs: 10
    price_per_lb: 900
    thca: 20
    weekly_sales_lbs: 2
`), 0o600))

	s, err := OpenStore(config.CatalogConfig{Driver: config.DriverMemory, File: path})
	require.NoError(t, err)
	p, err := s.Get(context.Background(), "test kush")
	require.NoError(t, err)
	assert.Equal(t, catalog.TierMids, p.Tier)
}

func TestOpenStoreSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inv.db")
	s, err := OpenStore(config.CatalogConfig{Driver: config.DriverSQLite, Path: path})
	require.NoError(t, err)
	defer s.Close()

	products, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, err := OpenStore(config.CatalogConfig{Driver: "csv"})
	assert.Error(t, err)
}

func TestNewLLMClient(t *testing.T) {
	ctx := context.Background()

	c, err := NewLLMClient(ctx, config.LLMConfig{})
	require.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewLLMClient(ctx, config.LLMConfig{Provider: config.ProviderOpenAI, OpenAIAPIKey: "sk", BaseURL: "http://localhost:1"})
	require.NoError(t, err)
	assert.IsType(t, &llm.OpenAIClient{}, c)

	_, err = NewLLMClient(ctx, config.LLMConfig{Provider: config.ProviderOpenAI})
	assert.Error(t, err)

	_, err = NewLLMClient(ctx, config.LLMConfig{Provider: "mistral"})
	assert.Error(t, err)
}

func TestNewAgent(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Model = "gpt-4o-mini"
	a := NewAgent(nil, catalog.NewSeedStore(), cfg, logging.Nop())
	assert.Equal(t, "gpt-4o-mini", a.Model())
}
