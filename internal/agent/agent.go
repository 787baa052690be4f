// Package agent runs a conversation against an LLM with the inventory tools
// attached, executing tool calls until the model produces an answer.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dileep-u-k/inventory-agent/internal/api"
	"github.com/dileep-u-k/inventory-agent/internal/llm"
	"github.com/dileep-u-k/inventory-agent/internal/logging"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

// DefaultMaxToolCalls bounds the number of model rounds in one Run.
const DefaultMaxToolCalls = 5

// DefaultSystemPrompt frames the model as the inventory assistant.
const DefaultSystemPrompt = `You are an inventory and pricing assistant for a wholesale cannabis distributor.
Answer questions about products, tiers, prices, unit conversions, menus and sales forecasts.
Always use the provided tools for numbers; never compute prices or conversions yourself.
Prices are in USD. Weights in the catalog are in pounds.
If a tool returns an error, explain it to the user in plain words.`

// ErrToolLimitExceeded is returned when the model keeps asking for tools
// after the configured number of rounds.
var ErrToolLimitExceeded = errors.New("exceeded maximum number of tool calls")

// Response is the outcome of one Run.
type Response struct {
	RequestID   string
	Content     string
	Model       string
	Intent      string
	Usage       api.Usage
	ToolsCalled []string
}

// Agent drives an LLMClient with a ToolManager. It is safe for concurrent use.
type Agent struct {
	client       llm.LLMClient
	tools        *tools.ToolManager
	intents      *llm.IntentAnalyzer
	logger       logging.Logger
	model        string
	systemPrompt string
	maxToolCalls int
	temperature  *float32
	maxTokens    int
}

// Option configures an Agent.
type Option func(*Agent)

// WithModel sets the model ID sent with every request.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

// WithMaxToolCalls sets the round limit. Values below 1 are ignored.
func WithMaxToolCalls(n int) Option {
	return func(a *Agent) {
		if n >= 1 {
			a.maxToolCalls = n
		}
	}
}

// WithSystemPrompt replaces DefaultSystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) { a.systemPrompt = prompt }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger logging.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t *float32) Option {
	return func(a *Agent) { a.temperature = t }
}

// WithMaxTokens caps the length of each model reply.
func WithMaxTokens(n int) Option {
	return func(a *Agent) { a.maxTokens = n }
}

// New creates an agent.
func New(client llm.LLMClient, manager *tools.ToolManager, opts ...Option) *Agent {
	a := &Agent{
		client:       client,
		tools:        manager,
		logger:       logging.Nop(),
		systemPrompt: DefaultSystemPrompt,
		maxToolCalls: DefaultMaxToolCalls,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logging.Nop()
	}
	a.intents = llm.NewIntentAnalyzer(a.logger)
	return a
}

// Model returns the configured model ID.
func (a *Agent) Model() string { return a.model }

// Run answers prompt in the context of history. Tool definitions are offered
// only when the prompt is about the inventory.
func (a *Agent) Run(ctx context.Context, prompt string, history []llm.Message) (Response, error) {
	resp := Response{
		RequestID: uuid.NewString(),
		Model:     a.model,
		Intent:    a.intents.AnalyzeIntent(prompt),
	}
	a.logger.Infof("[%s] new request, intent %s", resp.RequestID, resp.Intent)

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: a.systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: prompt})

	var definitions []tools.Tool
	if llm.NeedsTools(resp.Intent) {
		definitions = a.tools.GetDefinitions()
	}

	config := &llm.GenerationConfig{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	}

	for i := 0; i < a.maxToolCalls; i++ {
		result, err := a.client.Generate(ctx, messages, config, definitions)
		if err != nil {
			return Response{}, fmt.Errorf("LLM generation failed during tool loop: %w", err)
		}
		resp.Usage.Add(result.Usage)

		if len(result.ToolCalls) == 0 {
			a.logger.Debugf("[%s] final answer after %d round(s)", resp.RequestID, i+1)
			resp.Content = result.Content
			return resp, nil
		}

		messages = append(messages, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})
		for _, call := range result.ToolCalls {
			messages = append(messages, a.executeTool(ctx, resp.RequestID, call))
			resp.ToolsCalled = append(resp.ToolsCalled, call.Function.Name)
		}
	}
	return Response{}, fmt.Errorf("%w (%d)", ErrToolLimitExceeded, a.maxToolCalls)
}

// executeTool runs one call. Failures go back to the model as the tool result
// so it can recover or explain them.
func (a *Agent) executeTool(ctx context.Context, requestID string, call *tools.ToolCall) llm.Message {
	a.logger.Infof("[%s] executing tool %s (ID: %s) with args: %s",
		requestID, call.Function.Name, call.ID, call.Function.Arguments)

	result, err := a.tools.Execute(ctx, call.Function.Name, call.Function.Arguments)
	if err != nil {
		a.logger.Warnf("[%s] tool %s failed: %v", requestID, call.Function.Name, err)
		result = fmt.Sprintf("Error executing tool %s: %v", call.Function.Name, err)
	}
	return llm.Message{
		Role:       llm.RoleTool,
		ToolCallID: call.ID,
		Name:       call.Function.Name,
		Content:    result,
	}
}

// HistoryFromAPI converts client-supplied turns into model messages.
func HistoryFromAPI(history []api.Message) []llm.Message {
	out := make([]llm.Message, len(history))
	for i, msg := range history {
		out[i] = llm.Message{Role: llm.Role(msg.Role), Content: msg.Content}
	}
	return out
}
