// Package ctxlogger lets request-scoped attributes travel through a
// context.Context and get attached to every slog record emitted with it.
package ctxlogger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// ContextHandler wraps a slog.Handler and adds the attributes carried by
// the record's context.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(ctxKey{}).([]slog.Attr); ok {
		for _, attr := range attrs {
			r.AddAttrs(attr)
		}
	}

	return h.Handler.Handle(ctx, r)
}

// AppendCtx returns a context carrying attr in addition to any attributes
// already present on parent.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if attrs, ok := parent.Value(ctxKey{}).([]slog.Attr); ok {
		merged := make([]slog.Attr, len(attrs), len(attrs)+1)
		copy(merged, attrs)
		return context.WithValue(parent, ctxKey{}, append(merged, attr))
	}

	return context.WithValue(parent, ctxKey{}, []slog.Attr{attr})
}
