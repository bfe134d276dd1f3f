package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func TestRecovery(t *testing.T) {
	log, logs := observed()
	h := Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"Internal Server Error"}`, rec.Body.String())
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestWithErrorHandler_LogLevels(t *testing.T) {
	tests := []struct {
		name  string
		code  int
		level zapcore.Level
		logs  int
	}{
		{name: "ok", code: http.StatusOK, logs: 0},
		{name: "not found", code: http.StatusNotFound, level: zapcore.WarnLevel, logs: 1},
		{name: "internal", code: http.StatusInternalServerError, level: zapcore.ErrorLevel, logs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := observed()
			h := WithErrorHandler(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				WriteDetail(w, tt.code, "detail")
			}))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

			assert.Equal(t, tt.code, rec.Code)
			require.Equal(t, tt.logs, logs.Len())
			if tt.logs > 0 {
				assert.Equal(t, tt.level, logs.All()[0].Level)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given", seen)
	assert.Equal(t, "given", rec.Header().Get(RequestIDHeader))
}
