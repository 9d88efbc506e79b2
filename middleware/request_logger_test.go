package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel zapcore.Level
	}{
		{"success", http.StatusOK, zapcore.InfoLevel},
		{"client error", http.StatusForbidden, zapcore.WarnLevel},
		{"server error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			handler := chimw.RequestID(RequestLogger(zap.New(core))(
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					_, _ = w.Write([]byte("ok"))
				})))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/roles", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, 1, logs.Len())
			entry := logs.All()[0]
			assert.Equal(t, tt.wantLevel, entry.Level)

			fields := entry.ContextMap()
			assert.Equal(t, "/api/v1/roles", fields["path"])
			assert.EqualValues(t, tt.status, fields["status"])
			assert.EqualValues(t, 2, fields["bytes"])
			assert.NotEmpty(t, fields["request_id"])
		})
	}
}

func TestRequestLogger_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := RequestLogger(zap.New(core))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, 1, logs.Len())
	assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
	_, hasID := logs.All()[0].ContextMap()["request_id"]
	assert.False(t, hasID)
}
