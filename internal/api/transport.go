package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aaravmahajanofficial/storefront-client/internal/metrics"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type logContextKey string

const loggerKey = logContextKey("logger")

const RequestIDHeader = "X-Request-ID"

// NewTransport chains tracing, metrics and request logging around base.
func NewTransport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}

	return otelhttp.NewTransport(
		metrics.RoundTripper(&loggingTransport{next: base}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + metrics.PathPattern(r.URL.Path)
		}),
	)
}

type loggingTransport struct {
	next http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {

	start := time.Now()

	// Correlation ID
	correlationID := req.Header.Get(RequestIDHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, correlationID)
	}

	requestLogger := LoggerFromContext(req.Context()).With(
		slog.String("correlation_id", correlationID),
		slog.String("http_method", req.Method),
		slog.String("http_path", req.URL.Path),
	)

	requestLogger.Debug("Outgoing request")

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		requestLogger.Warn("Request failed", slog.String("error", err.Error()), slog.Duration("duration", time.Since(start)))
		return nil, err
	}

	requestLogger.Debug("Request completed", slog.Int("http_status", resp.StatusCode), slog.Duration("duration", time.Since(start)))

	return resp, nil
}

// WithLogger attaches a logger that request logs and services will use.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
