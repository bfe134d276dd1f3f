package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
)

// WriteJSON пишет v как JSON-ответ с кодом code.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	response, err := json.Marshal(v)
	if err != nil {
		code = http.StatusInternalServerError
		response = []byte(`{"detail":"Internal Server Error"}`)
	}
	WriteRawJSON(w, code, response)
}

func WriteRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// WriteDetail пишет ошибку в формате шлюза: {"detail": "..."}.
func WriteDetail(w http.ResponseWriter, code int, detail string) {
	WriteJSON(w, code, map[string]string{"detail": detail})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type ErrorHandler struct {
	handler http.Handler
	log     logger.Logger
}

// WithErrorHandler логирует каждый ответ с ошибкой: 4xx на уровне warn, 5xx на уровне error.
func WithErrorHandler(log logger.Logger) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return &ErrorHandler{handler: h, log: log}
	}
}

func (eh *ErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	eh.handler.ServeHTTP(rec, r)

	if rec.status < http.StatusBadRequest {
		return
	}
	fields := []logger.Field{
		logger.StringField("method", r.Method),
		logger.StringField("path", r.URL.Path),
		logger.IntField("status", rec.status),
		logger.StringField("request_id", w.Header().Get(RequestIDHeader)),
	}
	if rec.status >= http.StatusInternalServerError {
		eh.log.Error("request processing failed", fields...)
		return
	}
	eh.log.Warn("request rejected", fields...)
}
