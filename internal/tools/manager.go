package tools

import (
	"context"
	"fmt"
	"sort"
)

// ToolManager holds a registry of all available tools.
type ToolManager struct {
	tools map[string]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]ToolExecutor),
	}
}

// Register adds a tool, replacing any tool with the same name.
func (tm *ToolManager) Register(tool ToolExecutor) {
	name := tool.Definition().Function.Name
	tm.tools[name] = tool
}

// Names returns the registered tool names in sorted order.
func (tm *ToolManager) Names() []string {
	names := make([]string, 0, len(tm.tools))
	for name := range tm.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetDefinitions returns every tool definition, sorted by name so the
// prompt sent to the model is stable between calls.
func (tm *ToolManager) GetDefinitions() []Tool {
	names := tm.Names()
	defs := make([]Tool, 0, len(names))
	for _, name := range names {
		defs = append(defs, tm.tools[name].Definition())
	}
	return defs
}

// Execute runs a tool by name with the given arguments.
func (tm *ToolManager) Execute(ctx context.Context, name, arguments string) (string, error) {
	tool, ok := tm.tools[name]
	if !ok {
		return "", fmt.Errorf("tool '%s' not found", name)
	}
	return tool.Execute(ctx, arguments)
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
