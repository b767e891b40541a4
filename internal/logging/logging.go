// Package logging wraps a *zap.Logger with a Span helper mirroring the
// defer-done shape of gopls's own internal/event.Start, which is
// unexported outside golang.org/x/tools and so unusable from this
// module. Grounded on rlch-scaf/lsp's Server, whose *zap.Logger logs
// structured fields at every handler entry.
package logging

import (
	"context"

	"go.uber.org/zap"
)

type loggerKey struct{}

// WithLogger attaches logger to ctx, retrievable with FromContext.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger attached to ctx, or zap.NewNop() if
// none was attached — callers never need a nil check.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// Span starts a named span around a unit of work, logging its entry and
// (via the returned func) its completion, mirroring event.Start/Done's
// shape:
//
//	ctx, done := logging.Span(ctx, "rename", zap.String("uri", string(uri)))
//	defer done()
func Span(ctx context.Context, name string, fields ...zap.Field) (context.Context, func()) {
	logger := FromContext(ctx).With(zap.String("span", name)).With(fields...)
	logger.Debug("start")
	ctx = WithLogger(ctx, logger)
	return ctx, func() { logger.Debug("done") }
}

// Skip logs a recoverable, skipped failure (spec §7's "recoverable,
// logged, skipped" kinds): a per-file snapshot load, editsToRename call,
// or symbol-provider lookup that failed without aborting the overall
// rename.
func Skip(ctx context.Context, reason string, fields ...zap.Field) {
	FromContext(ctx).Warn("skipped: "+reason, fields...)
}
