package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/event-calendar-api/internal/api/shared"
	"github.com/phrazzld/event-calendar-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrace(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	var seenTraceID string
	handler := Trace(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		logger.FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("generates a trace id", func(t *testing.T) {
		buf.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tasks", nil))

		require.Len(t, seenTraceID, 32)
		assert.Equal(t, seenTraceID, w.Header().Get(TraceHeader))
		assert.Equal(t, http.StatusTeapot, w.Code)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		for _, line := range lines {
			assert.Contains(t, line, `"trace_id":"`+seenTraceID+`"`)
		}
		assert.Contains(t, lines[2], `"status":418`)
	})

	t.Run("reuses the client trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(TraceHeader, "client-trace")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "client-trace", seenTraceID)
		assert.Equal(t, "client-trace", w.Header().Get(TraceHeader))
	})

	t.Run("ignores an oversized client trace id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
		req.Header.Set(TraceHeader, strings.Repeat("x", 100))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Len(t, seenTraceID, 32)
	})
}
