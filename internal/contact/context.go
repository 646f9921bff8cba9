package contact

import (
	"context"
	"log/slog"

	"github.com/packwoodplates/site/pkg/logger"
)

type clientRequestIDKey struct{}

// WithClientRequestID returns ctx carrying the browser-supplied correlation id.
func WithClientRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, clientRequestIDKey{}, id)
}

// ClientRequestID returns the browser-supplied correlation id, if any.
func ClientRequestID(ctx context.Context) string {
	v, _ := ctx.Value(clientRequestIDKey{}).(string)
	return v
}

// ClientRequestIDExtractor adds "client_request_id" to log records.
func ClientRequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := ClientRequestID(ctx); v != "" {
			return slog.String("client_request_id", v), true
		}
		return slog.Attr{}, false
	}
}
