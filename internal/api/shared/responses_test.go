package shared

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureLogs swaps the default logger for one writing into the returned
// builder, at DEBUG so every level is visible, and restores it afterward.
func captureLogs(t *testing.T) *strings.Builder {
	t.Helper()

	var buf strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	t.Cleanup(func() { slog.SetDefault(old) })
	return &buf
}

func tracedRequest(traceID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if traceID != "" {
		req = req.WithContext(context.WithValue(req.Context(), TraceIDKey, traceID))
	}
	return req
}

func TestRespondWithJSON(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, tracedRequest(""), http.StatusOK, map[string]interface{}{
		"cards_reviewed": 7,
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(7), body["cards_reviewed"])
}

func TestRespondWithJSONNilBody(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithJSON(w, tracedRequest(""), http.StatusOK, nil)

	assert.Equal(t, "null\n", w.Body.String())
}

// circular cannot be JSON encoded; the encoder detects the cycle.
type circular struct {
	Self *circular
}

func TestRespondWithJSONEncodeFailure(t *testing.T) {
	logs := captureLogs(t)

	data := &circular{}
	data.Self = data

	w := httptest.NewRecorder()
	RespondWithJSON(w, tracedRequest(""), http.StatusOK, data)

	// The status is already out the door; only the log shows the failure.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "failed to encode JSON response")
}

func TestRespondWithError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, tracedRequest("trace-abc"), http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request", resp.Error)
	assert.Equal(t, "trace-abc", resp.TraceID)
}

func TestRespondWithErrorWithoutTraceID(t *testing.T) {
	w := httptest.NewRecorder()
	RespondWithError(w, tracedRequest(""), http.StatusUnauthorized, "Unauthorized")

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Unauthorized", resp.Error)
	assert.Empty(t, resp.TraceID)

	// omitempty keeps the field out of the wire format entirely.
	assert.NotContains(t, w.Body.String(), "trace_id")
}

func TestRespondWithErrorAndLog(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		message   string
		elevate   bool
		wantLevel string
	}{
		{
			name:      "server errors log at ERROR",
			status:    http.StatusInternalServerError,
			message:   "Internal server error",
			wantLevel: "ERROR",
		},
		{
			name:      "client errors default to DEBUG",
			status:    http.StatusBadRequest,
			message:   "Bad request",
			wantLevel: "DEBUG",
		},
		{
			name:      "elevated client errors log at WARN",
			status:    http.StatusBadRequest,
			message:   "Bad request (elevated)",
			elevate:   true,
			wantLevel: "WARN",
		},
		{
			name:      "rate limiting always logs at WARN",
			status:    http.StatusTooManyRequests,
			message:   "Too many requests",
			wantLevel: "WARN",
		},
		{
			name:      "non-error statuses log at DEBUG",
			status:    http.StatusMovedPermanently,
			message:   "Moved permanently",
			wantLevel: "DEBUG",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			logs := captureLogs(t)
			w := httptest.NewRecorder()
			req := tracedRequest("trace-abc")
			cause := errors.New("underlying cause")

			var opts []ResponseOption
			if tc.elevate {
				opts = append(opts, WithElevatedLogLevel())
			}
			RespondWithErrorAndLog(w, req, tc.status, tc.message, cause, opts...)

			assert.Equal(t, tc.status, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.message, resp.Error)
			assert.Equal(t, "trace-abc", resp.TraceID)

			// The cause is logged with its level and type, never echoed
			// to the client.
			logged := logs.String()
			assert.Contains(t, logged, "level="+tc.wantLevel)
			assert.Contains(t, logged, tc.message)
			assert.Contains(t, logged, "trace_id=trace-abc")
			assert.Contains(t, logged, "error_type=")
			assert.NotContains(t, w.Body.String(), "underlying cause")
		})
	}
}

func TestRespondWithErrorAndLogNilError(t *testing.T) {
	logs := captureLogs(t)
	w := httptest.NewRecorder()

	RespondWithErrorAndLog(w, tracedRequest("trace-abc"), http.StatusNotFound, "Not found", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, logs.String(), "error_type=", "nil errors should not add error fields")
}

func TestErrorLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, errorLogLevel(http.StatusBadGateway, responseOptions{}))
	assert.Equal(t, slog.LevelWarn, errorLogLevel(http.StatusTooManyRequests, responseOptions{}))
	assert.Equal(t, slog.LevelDebug, errorLogLevel(http.StatusNotFound, responseOptions{}))
	assert.Equal(t,
		slog.LevelWarn,
		errorLogLevel(http.StatusUnauthorized, responseOptions{elevateLogLevel: true}))

	// Elevation never touches non-4xx statuses.
	assert.Equal(t,
		slog.LevelDebug,
		errorLogLevel(http.StatusMovedPermanently, responseOptions{elevateLogLevel: true}))
	assert.Equal(t,
		slog.LevelError,
		errorLogLevel(http.StatusInternalServerError, responseOptions{elevateLogLevel: true}))
}

func TestWithElevatedLogLevel(t *testing.T) {
	var opts responseOptions
	WithElevatedLogLevel()(&opts)
	assert.True(t, opts.elevateLogLevel)
}
