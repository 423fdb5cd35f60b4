package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type for values stashed in a request context.
type ContextKey string

const (
	// UserIDContextKey holds the authenticated user's ID, set by the
	// authentication middleware.
	UserIDContextKey ContextKey = "userID"

	// TraceIDKey holds the request trace ID, set by the trace middleware.
	TraceIDKey ContextKey = "traceID"
)

// SetTraceID stamps the context with a fresh trace ID so log lines and
// error responses for the same request can be correlated.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, newTraceID(rand.Reader))
}

// GetTraceID retrieves the trace ID from the context, or an empty string
// when the request never passed through the trace middleware.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// newTraceID draws a random trace ID from the given entropy source and
// renders it as a 32-character hex string. When the source fails it falls
// back to a clock-derived ID, which is weaker but keeps concurrent
// requests distinguishable in the logs.
func newTraceID(entropy io.Reader) string {
	id, err := uuid.NewRandomFromReader(entropy)
	if err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "time-based generation")
		return fallbackTraceID(time.Now())
	}
	return hex.EncodeToString(id[:])
}

// fallbackTraceID derives a trace ID from the clock. Two calls within the
// same nanosecond collide, but the fallback only runs when the system
// random source is broken, and a repeated ID merely muddies correlation.
func fallbackTraceID(now time.Time) string {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(now.Nanosecond()))
	binary.BigEndian.PutUint32(b[12:], uint32(now.Unix()))
	return hex.EncodeToString(b[:])
}
