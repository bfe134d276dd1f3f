package handler

import (
	"io"
	"net/http"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/core/middleware"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/gorilla/mux"
)

const maxBodySize = 1 << 20

type GatewayHandler struct {
	dispatcher *Dispatcher
	log        logger.Logger
}

func NewGatewayHandler(dispatcher *Dispatcher, log logger.Logger) *GatewayHandler {
	return &GatewayHandler{dispatcher: dispatcher, log: log}
}

// RegisterRoutes регистрирует все точки каталога. Порядок каталога важен:
// конкретные пути идут раньше параметризованных.
func (h *GatewayHandler) RegisterRoutes(router *mux.Router) {
	for _, ep := range schema.Endpoints() {
		router.HandleFunc(ep.Path, h.serve(ep)).Methods(ep.Method)
	}
}

func (h *GatewayHandler) serve(ep schema.Endpoint) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := h.payload(w, r, ep)
		if err != nil {
			h.log.Warn("Failed to read request",
				logger.StringField("endpoint", ep.Name),
				logger.ErrorField("error", err))
			middleware.WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"detail": []schema.ErrorDetail{{Loc: []any{"body"}, Msg: err.Error(), Type: "json_invalid"}},
			})
			return
		}

		body, err := h.dispatcher.Dispatch(r.Context(), ep, payload, schema.CamelCase)
		if err != nil {
			code, errBody := ErrorResponse(err)
			middleware.WriteRawJSON(w, code, errBody)
			return
		}
		middleware.WriteRawJSON(w, http.StatusOK, body)
	}
}

// payload собирает тело, параметры строки запроса и параметр пути в один JSON-объект.
func (h *GatewayHandler) payload(w http.ResponseWriter, r *http.Request, ep schema.Endpoint) ([]byte, error) {
	var body []byte
	if r.Body != nil {
		defer r.Body.Close()
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
		if err != nil {
			return nil, err
		}
		body = data
	}

	fields := make(map[string]string)
	for k := range r.URL.Query() {
		fields[k] = r.URL.Query().Get(k)
	}
	if ep.Param != "" {
		fields[schema.Aliases.Camel(ep.Param)] = mux.Vars(r)[ep.Param]
	}
	return schema.MergeFields(body, fields)
}
