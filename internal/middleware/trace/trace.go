// Package trace assigns every request an ID and logs its outcome.
package trace

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	applog "budgetview/internal/log"
)

// ContextKey is the type used for trace context keys.
type ContextKey string

// RequestIDKey carries the request ID through the request context.
const RequestIDKey ContextKey = "request_id"

// Metrics tracks coarse request counters.
type Metrics struct {
	TotalRequests       int64
	AverageResponseTime int64 // microseconds
}

// Middleware tags requests with an ID, logs them, and records metrics.
type Middleware struct {
	extractIP func(*http.Request) string

	mu      sync.Mutex
	metrics Metrics
}

// NewMiddleware creates a trace middleware. extractIP may be nil when the
// client address is not of interest.
func NewMiddleware(extractIP func(*http.Request) string) *Middleware {
	return &Middleware{extractIP: extractIP}
}

// Middleware wraps next with request tracing.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		r = r.WithContext(ctx)

		clientIP := ""
		if m.extractIP != nil {
			clientIP = m.extractIP(r)
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		m.record(duration)

		slog.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldClientIP, clientIP,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rec.status,
			applog.FieldDuration, duration.Milliseconds(),
		)
	})
}

// Snapshot returns the current metric values.
func (m *Middleware) Snapshot() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.metrics
}

func (m *Middleware) record(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Running average; precise enough for a health overview.
	m.metrics.TotalRequests++
	m.metrics.AverageResponseTime += (d.Microseconds() - m.metrics.AverageResponseTime) / m.metrics.TotalRequests
}

// RequestID returns the request ID from ctx, or "" when tracing is absent.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDKey).(string); ok {
		return id
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
