package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/dileep-u-k/inventory-agent/internal/tools"
)

const defaultGeminiMaxTokens = 4096

// GeminiClient is the client for Google's Gemini models.
type GeminiClient struct {
	client *genai.Client
}

var _ LLMClient = (*GeminiClient)(nil)

// NewGeminiClient creates a client. The model is chosen per request through
// GenerationConfig.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Generate performs a blocking request to the Gemini API.
func (c *GeminiClient) Generate(
	ctx context.Context,
	messages []Message,
	config *GenerationConfig,
	availableTools []tools.Tool,
) (*GenerationResult, error) {
	if config == nil || config.Model == "" {
		return nil, errors.New("a model must be set in the generation config")
	}
	system, contents, err := toGeminiContents(messages)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, errors.New("no messages to send to Gemini")
	}

	// A fresh model handle per call keeps concurrent requests from sharing settings.
	model := c.client.GenerativeModel(config.Model)
	configureModel(model, config, availableTools)
	model.SystemInstruction = system

	chat := model.StartChat()
	last := contents[len(contents)-1]
	chat.History = contents[:len(contents)-1]

	resp, err := chat.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(ctx, model, resp)
}

func configureModel(model *genai.GenerativeModel, config *GenerationConfig, availableTools []tools.Tool) {
	if config.Temperature != nil {
		model.SetTemperature(*config.Temperature)
	}
	if config.TopP != nil {
		model.SetTopP(*config.TopP)
	}
	if config.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(config.MaxTokens))
	} else {
		model.SetMaxOutputTokens(defaultGeminiMaxTokens)
	}
	if len(availableTools) > 0 {
		model.Tools = toGeminiTools(availableTools)
	}
}

func toGeminiTools(toolsToConvert []tools.Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(toolsToConvert))
	for _, t := range toolsToConvert {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        t.Function.Name,
			Description: t.Function.Description,
			Parameters:  convertSchema(t.Function.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func convertSchema(s tools.JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
		Enum:        s.Enum,
	}
	switch s.Type {
	case "object":
		out.Type = genai.TypeObject
	case "string":
		out.Type = genai.TypeString
	case "number":
		out.Type = genai.TypeNumber
	case "integer":
		out.Type = genai.TypeInteger
	case "boolean":
		out.Type = genai.TypeBoolean
	}
	if s.Properties != nil {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			out.Properties[k] = convertSchema(*v)
		}
	}
	return out
}

// toGeminiContents splits out the system instruction and converts the rest of
// the conversation. Consecutive tool results are merged into one turn, which is
// how Gemini expects parallel function responses.
func toGeminiContents(messages []Message) (*genai.Content, []*genai.Content, error) {
	var system *genai.Content
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			system = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
		case RoleAssistant:
			c := &genai.Content{Role: "model"}
			if msg.Content != "" {
				c.Parts = append(c.Parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				args := map[string]any{}
				if tc.Function.Arguments != "" {
					if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
						return nil, nil, fmt.Errorf("tool call %q has invalid arguments: %w", tc.Function.Name, err)
					}
				}
				c.Parts = append(c.Parts, genai.FunctionCall{Name: tc.Function.Name, Args: args})
			}
			contents = append(contents, c)
		case RoleTool:
			part := genai.FunctionResponse{
				Name:     msg.Name,
				Response: map[string]any{"result": msg.Content},
			}
			if n := len(contents); n > 0 && isFunctionResponseTurn(contents[n-1]) {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
				continue
			}
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}
	return system, contents, nil
}

func isFunctionResponseTurn(c *genai.Content) bool {
	if c.Role != "user" || len(c.Parts) == 0 {
		return false
	}
	_, ok := c.Parts[0].(genai.FunctionResponse)
	return ok
}

func parseGeminiResponse(ctx context.Context, model *genai.GenerativeModel, resp *genai.GenerateContentResponse) (*GenerationResult, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("no content returned from Gemini")
	}

	var content strings.Builder
	var toolCalls []*tools.ToolCall
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			content.WriteString(string(v))
		case genai.FunctionCall:
			args, err := json.Marshal(v.Args)
			if err != nil {
				return nil, fmt.Errorf("could not marshal gemini tool call args: %w", err)
			}
			toolCalls = append(toolCalls, &tools.ToolCall{
				ID:   "call_" + uuid.NewString(),
				Type: tools.ToolTypeFunction,
				Function: tools.ToolCallFunction{
					Name:      v.Name,
					Arguments: string(args),
				},
			})
		}
	}

	result := &GenerationResult{
		Content:   strings.TrimSpace(content.String()),
		ToolCalls: toolCalls,
	}
	if resp.UsageMetadata != nil {
		result.Usage.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		result.Usage.CompletionTokens = int(resp.UsageMetadata.CandidatesTokenCount)
		result.Usage.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
	}

	// Some responses omit completion tokens; count them when that happens.
	// A failed count leaves the reported usage as is.
	if result.Usage.CompletionTokens == 0 && result.Content != "" {
		if counted, err := model.CountTokens(ctx, genai.Text(result.Content)); err == nil {
			result.Usage.CompletionTokens = int(counted.TotalTokens)
			result.Usage.TotalTokens = result.Usage.PromptTokens + result.Usage.CompletionTokens
		}
	}
	return result, nil
}
