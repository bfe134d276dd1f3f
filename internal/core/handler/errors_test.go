package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/Nzyazin/gatewayclient/internal/core/usecase"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/stretchr/testify/assert"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "user not found",
			err:      fmt.Errorf("get user: %w", usecase.ErrUserNotFound),
			wantCode: http.StatusNotFound,
			wantBody: `{"detail":"User not found"}`,
		},
		{
			name:     "operation not found",
			err:      usecase.ErrOperationNotFound,
			wantCode: http.StatusNotFound,
			wantBody: `{"detail":"Operation not found"}`,
		},
		{
			name:     "card on another account",
			err:      usecase.ErrCardNotOnAccount,
			wantCode: http.StatusBadRequest,
			wantBody: `{"detail":"Card does not belong to account"}`,
		},
		{
			name: "schema validation",
			err: &schema.SchemaValidationError{Schema: "CreateUserRequest", Issues: []schema.FieldIssue{
				{Field: "user.email", Reason: "invalid email format"},
			}},
			wantCode: http.StatusUnprocessableEntity,
			wantBody: `{"detail":[{"loc":["body","user","email"],"msg":"invalid email format","type":"value_error"}]}`,
		},
		{
			name:     "unknown endpoint",
			err:      fmt.Errorf("%w: Foo", ErrUnknownEndpoint),
			wantCode: http.StatusNotImplemented,
			wantBody: `{"detail":"Not Implemented"}`,
		},
		{
			name:     "unexpected",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantBody: `{"detail":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := ErrorResponse(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.JSONEq(t, tt.wantBody, string(body))
		})
	}
}
