package logging

import "context"

type contextKey string

const (
	commandKey contextKey = "command"
	taskIDKey  contextKey = "task_id"
)

// WithCommand adds the running CLI command name to the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithTaskID adds a task ID to the context.
func WithTaskID(ctx context.Context, taskID string) context.Context {
	return context.WithValue(ctx, taskIDKey, taskID)
}

// GetCommand retrieves the command name from the context.
// Returns empty string if not present.
func GetCommand(ctx context.Context) string {
	if name, ok := ctx.Value(commandKey).(string); ok {
		return name
	}
	return ""
}

// GetTaskID retrieves the task ID from the context.
// Returns empty string if not present.
func GetTaskID(ctx context.Context) string {
	if id, ok := ctx.Value(taskIDKey).(string); ok {
		return id
	}
	return ""
}
