package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrRemoteRejection  = errors.New("remote service rejected request")
)

// FieldIssue описывает одно некорректное поле: путь в wire-именах,
// ожидаемый тип и полученное значение.
type FieldIssue struct {
	Field    string
	Expected string
	Received string
	Reason   string
}

func (i FieldIssue) String() string {
	field := i.Field
	if field == "" {
		field = "<root>"
	}
	return fmt.Sprintf("%s: %s (expected %s, got %s)", field, i.Reason, i.Expected, i.Received)
}

// SchemaValidationError возвращается, когда запрос или ответ не соответствует схеме.
type SchemaValidationError struct {
	Schema string
	Issues []FieldIssue
}

func (e *SchemaValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return fmt.Sprintf("%s: %d invalid field(s) in %s: %s",
		ErrSchemaValidation, len(e.Issues), e.Schema, strings.Join(parts, "; "))
}

func (e *SchemaValidationError) Is(target error) bool {
	return target == ErrSchemaValidation
}

// Fields возвращает пути всех некорректных полей в порядке обнаружения.
func (e *SchemaValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

// ErrorDetail — элемент списка ошибок валидации, который шлюз кладёт в detail.
type ErrorDetail struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

// ErrorResponse — тело ответа шлюза с ошибкой. detail бывает строкой или списком ErrorDetail.
type ErrorResponse struct {
	Detail  json.RawMessage `json:"detail,omitempty"`
	Message string          `json:"message,omitempty"`
}

// RemoteRejectionError — корректно оформленный отказ удалённого сервиса (не-2xx ответ).
type RemoteRejectionError struct {
	StatusCode int
	Detail     string
	Details    []ErrorDetail
	Body       []byte
}

func (e *RemoteRejectionError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRemoteRejection, e.StatusCode, detail)
}

func (e *RemoteRejectionError) Is(target error) bool {
	return target == ErrRemoteRejection
}

func (e *RemoteRejectionError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NewRemoteRejectionError разбирает тело ответа с ошибкой. Тело произвольного
// вида сохраняется как есть и попадает в Detail текстом.
func NewRemoteRejectionError(statusCode int, body []byte) *RemoteRejectionError {
	rejection := &RemoteRejectionError{StatusCode: statusCode, Body: body}

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		rejection.Detail = strings.TrimSpace(string(body))
		return rejection
	}

	if detail := bytes.TrimSpace(resp.Detail); len(detail) > 0 {
		var text string
		if err := json.Unmarshal(detail, &text); err == nil {
			rejection.Detail = text
		} else if err := json.Unmarshal(detail, &rejection.Details); err == nil {
			msgs := make([]string, 0, len(rejection.Details))
			for _, d := range rejection.Details {
				msgs = append(msgs, fmt.Sprintf("%s: %s", joinLoc(d.Loc), d.Msg))
			}
			rejection.Detail = strings.Join(msgs, "; ")
		} else {
			rejection.Detail = string(detail)
		}
	}
	if rejection.Detail == "" {
		rejection.Detail = resp.Message
	}

	return rejection
}

func joinLoc(loc []any) string {
	parts := make([]string, 0, len(loc))
	for _, p := range loc {
		parts = append(parts, fmt.Sprint(p))
	}
	return strings.Join(parts, ".")
}
