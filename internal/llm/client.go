// Package llm contains the model-facing side of the agent: the client
// interface, message types, provider clients and the intent analyzer.
package llm

import (
	"context"

	"github.com/dileep-u-k/inventory-agent/internal/api"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// ToolCallID and Name identify the call a RoleTool message answers.
	ToolCallID string            `json:"tool_call_id,omitempty"`
	Name       string            `json:"name,omitempty"`
	ToolCalls  []*tools.ToolCall `json:"tool_calls,omitempty"`
}

// GenerationConfig controls a single generation.
type GenerationConfig struct {
	// Model is the provider's model ID, e.g. "gpt-4o" or "gemini-1.5-flash".
	Model string
	// Temperature is a pointer so 0.0 can be told apart from unset.
	Temperature *float32
	MaxTokens   int
	TopP        *float32
}

// GenerationResult holds the complete output of a model call.
type GenerationResult struct {
	Content string
	// ToolCalls is non-empty when the model wants tools run before it answers.
	ToolCalls []*tools.ToolCall
	Usage     api.Usage
}

// LLMClient is implemented by every model provider.
type LLMClient interface {
	// Generate sends the conversation and the tools the model may call and
	// blocks until the model replies.
	Generate(
		ctx context.Context,
		messages []Message,
		config *GenerationConfig,
		availableTools []tools.Tool,
	) (*GenerationResult, error)
}
