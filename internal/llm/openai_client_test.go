package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

const toolCallResponse = `{
  "choices": [{"message": {"role": "assistant", "content": "", "tool_calls": [
    {"id": "call_1", "type": "function", "function": {"name": "convert_units", "arguments": "{\"quantity\":1,\"from_unit\":\"pound\",\"to_unit\":\"gram\"}"}}
  ]}}],
  "usage": {"prompt_tokens": 40, "completion_tokens": 12, "total_tokens": 52}
}`

func newTestOpenAIClient(t *testing.T, url string) *OpenAIClient {
	t.Helper()
	c, err := NewOpenAIClient("test-key", WithOpenAIBaseURL(url), WithOpenAIRetryDelay(time.Millisecond))
	require.NoError(t, err)
	return c
}

func TestNewOpenAIClientRequiresKey(t *testing.T) {
	_, err := NewOpenAIClient("")
	assert.Error(t, err)
}

func TestOpenAIGenerateParsesToolCalls(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(toolCallResponse))
	}))
	defer srv.Close()

	c := newTestOpenAIClient(t, srv.URL)
	defs := []tools.Tool{tools.NewFunctionTool("convert_units", "convert", tools.JSONSchema{Type: "object"})}
	res, err := c.Generate(context.Background(),
		[]Message{{Role: RoleSystem, Content: "sys"}, {Role: RoleUser, Content: "1 lb in grams?"}},
		&GenerationConfig{Model: "gpt-4o-mini"}, defs)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, "auto", got.ToolChoice)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)

	require.Len(t, res.ToolCalls, 1)
	assert.Equal(t, "call_1", res.ToolCalls[0].ID)
	assert.Equal(t, "convert_units", res.ToolCalls[0].Function.Name)
	assert.Equal(t, 52, res.Usage.TotalTokens)
}

func TestOpenAISendsToolResults(t *testing.T) {
	var got openAIRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"453.59 grams"}}]}`))
	}))
	defer srv.Close()

	call := &tools.ToolCall{ID: "call_1", Type: tools.ToolTypeFunction, Function: tools.ToolCallFunction{Name: "convert_units", Arguments: "{}"}}
	msgs := []Message{
		{Role: RoleUser, Content: "1 lb in grams?"},
		{Role: RoleAssistant, ToolCalls: []*tools.ToolCall{call}},
		{Role: RoleTool, ToolCallID: "call_1", Name: "convert_units", Content: `{"result":453.59}`},
	}
	res, err := newTestOpenAIClient(t, srv.URL).Generate(context.Background(), msgs, &GenerationConfig{Model: "m"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "453.59 grams", res.Content)
	assert.Empty(t, res.ToolCalls)

	require.Len(t, got.Messages, 3)
	assert.Len(t, got.Messages[1].ToolCalls, 1)
	assert.Equal(t, "call_1", got.Messages[2].ToolCallID)
	assert.Equal(t, "convert_units", got.Messages[2].Name)
	assert.Empty(t, got.ToolChoice)
}

func TestOpenAIRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer srv.Close()

	res, err := newTestOpenAIClient(t, srv.URL).Generate(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "m"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Content)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestOpenAIDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAIClient(t, srv.URL).Generate(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "m"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestOpenAIRequiresModel(t *testing.T) {
	c := newTestOpenAIClient(t, "http://127.0.0.1:0")
	_, err := c.Generate(context.Background(), []Message{{Role: RoleUser, Content: "hi"}}, nil, nil)
	assert.Error(t, err)
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAIClient(t, srv.URL).Generate(context.Background(),
		[]Message{{Role: RoleUser, Content: "hi"}}, &GenerationConfig{Model: "m"}, nil)
	assert.ErrorContains(t, err, "no choices")
}
