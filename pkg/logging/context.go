package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger stores logger in ctx. A nil logger stores the default one.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
			return logger
		}
	}
	return Default()
}

// Ctx is short for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithRunID tags ctx and its logger with the id of one synchronization run.
func WithRunID(ctx context.Context, runID string) context.Context {
	return WithField(context.WithValue(ctx, runIDKey, runID), "run_id", runID)
}

// RunID returns the run id set by WithRunID.
func RunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)
	return id
}

// WithBrand scopes the context logger to one brand.
func WithBrand(ctx context.Context, brand string) context.Context {
	return WithField(ctx, "brand", brand)
}

// WithProduct scopes the context logger to one source product.
func WithProduct(ctx context.Context, productID string) context.Context {
	return WithField(ctx, "product_id", productID)
}

// WithOperation scopes the context logger to one operation.
func WithOperation(ctx context.Context, operation string) context.Context {
	return WithField(ctx, "operation", operation)
}

// WithField adds one field to the context logger.
func WithField(ctx context.Context, key string, value any) context.Context {
	return WithFields(ctx, map[string]any{key: value})
}

// WithFields adds fields to the context logger.
func WithFields(ctx context.Context, fields map[string]any) context.Context {
	lc := FromContext(ctx).With()
	for key, value := range fields {
		switch v := value.(type) {
		case string:
			lc = lc.Str(key, v)
		case int:
			lc = lc.Int(key, v)
		case int64:
			lc = lc.Int64(key, v)
		case bool:
			lc = lc.Bool(key, v)
		case error:
			lc = lc.AnErr(key, v)
		default:
			lc = lc.Interface(key, v)
		}
	}
	logger := lc.Logger()
	return WithLogger(ctx, &logger)
}
