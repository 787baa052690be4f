// Package api holds the JSON shapes of the gateway's HTTP surface and the
// usage accounting shared with the LLM clients.
package api

import "github.com/dileep-u-k/inventory-agent/internal/pricing"

// Usage counts tokens for one or more model calls.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens" msgpack:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens" msgpack:"completion_tokens"`
	TotalTokens      int `json:"total_tokens" msgpack:"total_tokens"`
}

// Add accumulates other into u.
func (u *Usage) Add(other Usage) {
	u.PromptTokens += other.PromptTokens
	u.CompletionTokens += other.CompletionTokens
	u.TotalTokens += other.TotalTokens
}

// Message is one prior turn of a conversation sent by a client.
type Message struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatRequest asks the agent a question.
type ChatRequest struct {
	Prompt  string    `json:"prompt" binding:"required"`
	History []Message `json:"history" binding:"omitempty,dive"`
}

// ChatResponse is the agent's answer.
type ChatResponse struct {
	RequestID   string   `json:"request_id" msgpack:"request_id"`
	Content     string   `json:"content" msgpack:"content"`
	ModelUsed   string   `json:"model_used" msgpack:"model_used"`
	Usage       Usage    `json:"usage" msgpack:"usage"`
	ToolsCalled []string `json:"tool_calls,omitempty" msgpack:"tool_calls"`
	LatencyMS   int64    `json:"latency_ms" msgpack:"-"`
	CacheStatus string   `json:"cache_status" msgpack:"-"`
}

// ConvertRequest converts quantity between units.
type ConvertRequest struct {
	Quantity *float64 `json:"quantity" binding:"required,gte=0,lte=1000000000000"`
	FromUnit string   `json:"from_unit" binding:"required"`
	ToUnit   string   `json:"to_unit" binding:"required"`
}

// DecomposeRequest breaks grams into retail sub-units.
type DecomposeRequest struct {
	Grams *float64 `json:"grams" binding:"required,gte=0,lte=1000000000000"`
}

// QuoteRequest prices a bulk order.
type QuoteRequest struct {
	BasePrice float64 `json:"base_price" binding:"required,gt=0"`
	Quantity  float64 `json:"quantity" binding:"required,gt=0,lte=1000000000000"`
	Unit      string  `json:"unit" binding:"required"`
}

// QuoteResponse is a bulk quote plus whether it came from the cache.
type QuoteResponse struct {
	pricing.Quote
	CacheStatus string `json:"cache_status"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
