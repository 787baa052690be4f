package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dileep-u-k/inventory-agent/internal/api"
	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Tools       []tools.Tool    `json:"tools,omitempty"`
	ToolChoice  string          `json:"tool_choice,omitempty"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature *float32        `json:"temperature,omitempty"`
	TopP        *float32        `json:"top_p,omitempty"`
}

type openAIMessage struct {
	Role       string           `json:"role"`
	Content    string           `json:"content"`
	Name       string           `json:"name,omitempty"`
	ToolCalls  []tools.ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string           `json:"tool_call_id,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
	Usage api.Usage `json:"usage"`
}

// OpenAIClient talks to the OpenAI chat completions API, or any server that
// speaks the same protocol.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	retryDelay time.Duration
	httpClient *http.Client
}

var _ LLMClient = (*OpenAIClient)(nil)

// OpenAIOption customizes an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL points the client at a compatible endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(c *OpenAIClient) { c.baseURL = url }
}

// WithOpenAIHTTPClient replaces the default HTTP client.
func WithOpenAIHTTPClient(hc *http.Client) OpenAIOption {
	return func(c *OpenAIClient) { c.httpClient = hc }
}

// WithOpenAIRetryDelay sets the first backoff delay; it doubles per retry.
func WithOpenAIRetryDelay(d time.Duration) OpenAIOption {
	return func(c *OpenAIClient) { c.retryDelay = d }
}

// NewOpenAIClient creates a client. The model is chosen per request through
// GenerationConfig.
func NewOpenAIClient(apiKey string, opts ...OpenAIOption) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key cannot be empty")
	}
	c := &OpenAIClient{
		apiKey:     apiKey,
		baseURL:    defaultOpenAIBaseURL,
		retryDelay: initialRetryDelay,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Generate performs a blocking chat completion.
func (c *OpenAIClient) Generate(
	ctx context.Context,
	messages []Message,
	config *GenerationConfig,
	availableTools []tools.Tool,
) (*GenerationResult, error) {
	payload, err := c.buildRequestPayload(messages, config, availableTools)
	if err != nil {
		return nil, fmt.Errorf("failed to build openai request payload: %w", err)
	}
	respBody, err := c.doRequest(ctx, payload)
	if err != nil {
		return nil, err
	}
	return parseOpenAIResponse(respBody)
}

func (c *OpenAIClient) buildRequestPayload(messages []Message, config *GenerationConfig, availableTools []tools.Tool) ([]byte, error) {
	if config == nil || config.Model == "" {
		return nil, errors.New("a model must be set in the generation config")
	}
	req := openAIRequest{
		Model:       config.Model,
		Messages:    toOpenAIMessages(messages),
		Tools:       availableTools,
		Temperature: config.Temperature,
		TopP:        config.TopP,
	}
	if config.MaxTokens > 0 {
		req.MaxTokens = config.MaxTokens
	}
	if len(availableTools) > 0 {
		req.ToolChoice = "auto"
	}
	return json.Marshal(req)
}

// doRequest retries transport errors and 5xx responses with exponential
// backoff. 4xx responses are returned immediately.
func (c *OpenAIClient) doRequest(ctx context.Context, payload []byte) ([]byte, error) {
	var lastErr error
	delay := c.retryDelay

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("failed to create http request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("request failed (attempt %d/%d): %w", i+1, maxRetries, err)
			continue
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("failed to read response body: %w", readErr)
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return body, nil
		}

		lastErr = fmt.Errorf("openai API error (attempt %d/%d): status %d, body: %s", i+1, maxRetries, resp.StatusCode, string(body))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func toOpenAIMessages(messages []Message) []openAIMessage {
	out := make([]openAIMessage, 0, len(messages))
	for _, msg := range messages {
		m := openAIMessage{Role: string(msg.Role), Content: msg.Content}
		switch msg.Role {
		case RoleTool:
			m.ToolCallID = msg.ToolCallID
			m.Name = msg.Name
		case RoleAssistant:
			for _, tc := range msg.ToolCalls {
				m.ToolCalls = append(m.ToolCalls, *tc)
			}
		}
		out = append(out, m)
	}
	return out
}

func parseOpenAIResponse(body []byte) (*GenerationResult, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal openai response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices returned from OpenAI")
	}

	choice := resp.Choices[0]
	result := &GenerationResult{
		Content: choice.Message.Content,
		Usage:   resp.Usage,
	}
	for _, tc := range choice.Message.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, &tools.ToolCall{
			ID:   tc.ID,
			Type: tools.ToolTypeFunction,
			Function: tools.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return result, nil
}
