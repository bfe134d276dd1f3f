package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Nzyazin/gatewayclient/internal/core/usecase"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
)

var ErrUnknownEndpoint = errors.New("unknown endpoint")

// ErrorResponse переводит ошибку в HTTP-статус и тело ответа шлюза.
// Ошибки схемы дают 422 со списком полей, неизвестные сущности — 404.
func ErrorResponse(err error) (int, []byte) {
	var verr *schema.SchemaValidationError
	if errors.As(err, &verr) {
		details := make([]schema.ErrorDetail, 0, len(verr.Issues))
		for _, issue := range verr.Issues {
			loc := []any{"body"}
			if issue.Field != "" {
				for _, part := range strings.Split(issue.Field, ".") {
					loc = append(loc, part)
				}
			}
			details = append(details, schema.ErrorDetail{Loc: loc, Msg: issue.Reason, Type: "value_error"})
		}
		return marshalDetail(http.StatusUnprocessableEntity, details)
	}

	for _, notFound := range []error{
		usecase.ErrUserNotFound,
		usecase.ErrAccountNotFound,
		usecase.ErrCardNotFound,
		usecase.ErrOperationNotFound,
	} {
		if errors.Is(err, notFound) {
			return marshalDetail(http.StatusNotFound, capitalize(notFound.Error()))
		}
	}

	switch {
	case errors.Is(err, usecase.ErrCardNotOnAccount), errors.Is(err, usecase.ErrAccountNotOwned),
		errors.Is(err, usecase.ErrInvalidAmount):
		return marshalDetail(http.StatusBadRequest, capitalize(err.Error()))
	case errors.Is(err, ErrUnknownEndpoint):
		return marshalDetail(http.StatusNotImplemented, "Not Implemented")
	default:
		return marshalDetail(http.StatusInternalServerError, "Internal Server Error")
	}
}

func marshalDetail(code int, detail any) (int, []byte) {
	body, err := json.Marshal(map[string]any{"detail": detail})
	if err != nil {
		return http.StatusInternalServerError, []byte(`{"detail":"Internal Server Error"}`)
	}
	return code, body
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
