package server_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := server.NewServer(logger.NewNop(), "http://localhost:8003")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return ts
}

func doRequest(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestCreateUser_Success(t *testing.T) {
	ts := setupServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/api/v1/users",
		`{"email":"a@b.com","lastName":"Doe","firstName":"Jane","middleName":"Q","phoneNumber":"+1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

	var out struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.NotEmpty(t, out.User["id"])
	assert.Equal(t, "Doe", out.User["lastName"])
}

func TestCreateUser_ValidationError(t *testing.T) {
	ts := setupServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/api/v1/users", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var errBody struct {
		Detail []struct {
			Loc  []any  `json:"loc"`
			Msg  string `json:"msg"`
			Type string `json:"type"`
		} `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(body, &errBody))
	require.Len(t, errBody.Detail, 4)
	assert.Equal(t, []any{"body", "lastName"}, errBody.Detail[0].Loc)
	assert.Equal(t, "field required", errBody.Detail[0].Msg)
}

func TestInvalidJSON(t *testing.T) {
	ts := setupServer(t)

	resp, body := doRequest(t, http.MethodPost, ts.URL+"/api/v1/users", `{"email":`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(body), "json_invalid")
}

func TestGetUser_NotFound(t *testing.T) {
	ts := setupServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/api/v1/users/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"User not found"}`, string(body))
}

func TestRequestID_Echoed(t *testing.T) {
	ts := setupServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/accounts?userId=unknown", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-42")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-Id"))
}

func TestSummaryRoute_NotShadowedByOperationID(t *testing.T) {
	ts := setupServer(t)

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/api/v1/operations/operations-summary?accountId=missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"detail":"Account not found"}`, string(body))
}

func TestMetrics(t *testing.T) {
	ts := setupServer(t)

	doRequest(t, http.MethodGet, ts.URL+"/api/v1/users/unknown", "")

	resp, body := doRequest(t, http.MethodGet, ts.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "http_request_duration_seconds")
}
