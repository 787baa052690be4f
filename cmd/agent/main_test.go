package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/inventory-agent/internal/agent"
	"github.com/dileep-u-k/inventory-agent/internal/catalog"
	"github.com/dileep-u-k/inventory-agent/internal/config"
	"github.com/dileep-u-k/inventory-agent/internal/llm"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

// echoClient answers with the last user message, after one tool round when
// tools are offered.
type echoClient struct {
	err error
}

func (c echoClient) Generate(_ context.Context, msgs []llm.Message, _ *llm.GenerationConfig, defs []tools.Tool) (*llm.GenerationResult, error) {
	if c.err != nil {
		return nil, c.err
	}
	last := msgs[len(msgs)-1]
	if len(defs) > 0 && last.Role == llm.RoleUser {
		return &llm.GenerationResult{ToolCalls: []*tools.ToolCall{{
			ID:       "call_1",
			Type:     tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{Name: "get_inventory_summary", Arguments: "{}"},
		}}}, nil
	}
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == llm.RoleUser {
			return &llm.GenerationResult{Content: "answer to: " + msgs[i].Content}, nil
		}
	}
	return &llm.GenerationResult{}, nil
}

func newDriverAgent(client llm.LLMClient) *agent.Agent {
	store := catalog.NewSeedStore()
	return agent.New(client, tools.NewInventoryToolManager(store))
}

func TestRunPrompts(t *testing.T) {
	var out bytes.Buffer
	err := runPrompts(context.Background(), newDriverAgent(echoClient{}),
		[]string{"Give me an inventory summary.", "hello"}, &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "=== 1. Give me an inventory summary.\nanswer to: Give me an inventory summary.")
	assert.Contains(t, text, "(tools: [get_inventory_summary]")
	assert.Contains(t, text, "=== 2. hello\nanswer to: hello")
}

func TestRunPromptsStopsOnError(t *testing.T) {
	var out bytes.Buffer
	err := runPrompts(context.Background(), newDriverAgent(echoClient{err: errors.New("quota exceeded")}),
		config.DefaultPrompts, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt 1")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Empty(t, out.String())
}

func TestRunRequiresProvider(t *testing.T) {
	cfg := config.Default()
	err := run(context.Background(), cfg, "", logging.Nop(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "no LLM provider")
}
