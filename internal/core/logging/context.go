package logging

import "context"

type contextKey string

const (
	rowIDKey     contextKey = "row_id"
	operationKey contextKey = "op"
)

// WithRowID adds a row identifier to the context.
func WithRowID(ctx context.Context, rowID string) context.Context {
	return context.WithValue(ctx, rowIDKey, rowID)
}

// WithOperation adds a remote operation name (create, update, delete,
// fetch) to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetRowID retrieves the row identifier from the context.
// Returns empty string if not present.
func GetRowID(ctx context.Context) string {
	if id, ok := ctx.Value(rowIDKey).(string); ok {
		return id
	}
	return ""
}

// GetOperation retrieves the operation name from the context.
// Returns empty string if not present.
func GetOperation(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}
