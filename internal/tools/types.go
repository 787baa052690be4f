// Package tools defines the function-calling surface the inventory agent
// exposes to a model: provider-agnostic tool schemas, the executor contract,
// a registry and the inventory tools themselves.
package tools

// ToolTypeFunction is the standard type for function-based tools.
const ToolTypeFunction = "function"

// Tool is what gets sent to the model so it knows a tool exists.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function is the name, description and JSON Schema parameters of a tool.
type Function struct {
	Name string `json:"name"`
	// Description is what the model reads to decide when to call the tool.
	Description string     `json:"description"`
	Parameters  JSONSchema `json:"parameters"`
}

// JSONSchema is the subset of JSON Schema used to describe tool parameters.
type JSONSchema struct {
	// Type is "object" for the top-level parameters node.
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Properties  map[string]*JSONSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
}

// ToolCall is a request from the model to run a tool.
type ToolCall struct {
	// ID matches the tool result back to the request in the next turn.
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ToolCallFunction `json:"function"`
}

// ToolCallFunction holds the name and raw JSON arguments of a call.
type ToolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// NewFunctionTool builds a Tool of type "function".
func NewFunctionTool(name, description string, parameters JSONSchema) Tool {
	return Tool{
		Type: ToolTypeFunction,
		Function: Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}

// emptyParameters is the schema of a tool that takes no arguments.
func emptyParameters() JSONSchema {
	return JSONSchema{Type: "object", Properties: map[string]*JSONSchema{}}
}
