package log

import "context"

type contextKey struct{}

// WithLogger returns a copy of ctx carrying logger. The Telegram transport
// uses it to hand each message's chat and user fields to the handler.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or fallback when ctx
// carries none.
func FromContext(ctx context.Context, fallback *Logger) *Logger {
	if logger, ok := ctx.Value(contextKey{}).(*Logger); ok && logger != nil {
		return logger
	}
	return fallback
}
