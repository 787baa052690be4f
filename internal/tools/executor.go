package tools

import "context"

// ToolExecutor is implemented by every tool the agent can call.
type ToolExecutor interface {
	// Definition returns the schema offered to the model.
	Definition() Tool

	// Execute runs the tool with the JSON arguments chosen by the model and
	// returns the text handed back to it. Problems the model can fix (a bad
	// unit, a negative quantity) come back as an "Error: ..." result with a
	// nil error; a non-nil error means the call itself could not be handled.
	Execute(ctx context.Context, arguments string) (string, error)
}
