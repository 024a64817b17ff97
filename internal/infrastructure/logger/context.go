package logger

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey struct{}

func ContextWithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return L()
	}
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return L()
}

// WithOperation tags every log line under ctx with the command being run
// and a short id, so lines of one check-all pass can be grouped.
func WithOperation(ctx context.Context, operation string) context.Context {
	logger := FromContext(ctx).With(
		"operation", operation,
		"op_id", shortID(),
	)
	return ContextWithLogger(ctx, logger)
}

func WithDomain(ctx context.Context, domain string) context.Context {
	return ContextWithLogger(ctx, FromContext(ctx).With("domain", domain))
}

func shortID() string {
	return uuid.NewString()[:8]
}
