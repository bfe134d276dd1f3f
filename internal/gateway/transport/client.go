package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

const RequestIDHeader = "X-Request-Id"

type Config struct {
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
}

// Request — вызов точки каталога. Param подставляется в путь, Query уходит
// в строку запроса, Body — уже сериализованное тело.
type Request struct {
	Endpoint schema.Endpoint
	Param    string
	Query    url.Values
	Body     []byte
}

// RawResponse — ответ шлюза без разбора. Не-2xx статус не считается ошибкой транспорта.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Option func(*Client)

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = NewMetrics(reg)
	}
}

// Client — HTTP-адаптер шлюза. Владеет собственным пулом соединений,
// безопасен для одновременного использования.
type Client struct {
	baseURL    string
	headers    http.Header
	timeout    time.Duration
	transport  *http.Transport
	httpClient *http.Client
	metrics    *Metrics
	log        logger.Logger
}

func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: expected http(s)://host", cfg.BaseURL)
	}

	headers := make(http.Header, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	c := &Client{
		baseURL:    base.String(),
		headers:    headers,
		timeout:    cfg.Timeout,
		transport:  tr,
		httpClient: &http.Client{Transport: tr},
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = NewMetrics(nil)
	}

	return c, nil
}

func (c *Client) Post(ctx context.Context, path string, body []byte) (*RawResponse, error) {
	return c.send(ctx, path, http.MethodPost, path, nil, body)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values) (*RawResponse, error) {
	return c.send(ctx, path, http.MethodGet, path, query, nil)
}

// Do выполняет один запрос к точке каталога.
func (c *Client) Do(ctx context.Context, req Request) (*RawResponse, error) {
	return c.send(ctx, req.Endpoint.Name, req.Endpoint.Method, req.Endpoint.PathFor(req.Param), req.Query, req.Body)
}

// Close закрывает простаивающие соединения пула.
func (c *Client) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

func (c *Client) send(ctx context.Context, endpoint, method, path string, query url.Values, body []byte) (*RawResponse, error) {
	rawURL := c.baseURL + path
	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, rawURL, err)
	}

	for k, vals := range c.headers {
		httpReq.Header[k] = append([]string(nil), vals...)
	}
	requestID := uuid.NewString()
	httpReq.Header.Set(RequestIDHeader, requestID)
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("gateway request",
		logger.StringField("endpoint", endpoint),
		logger.StringField("method", method),
		logger.StringField("url", rawURL),
		logger.StringField("request_id", requestID),
	)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.Observe(endpoint, method, 0, time.Since(start))
		return nil, c.fail(method, rawURL, requestID, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		c.metrics.Observe(endpoint, method, 0, elapsed)
		return nil, c.fail(method, rawURL, requestID, err)
	}
	c.metrics.Observe(endpoint, method, resp.StatusCode, elapsed)

	c.log.Debug("gateway response",
		logger.StringField("endpoint", endpoint),
		logger.IntField("status", resp.StatusCode),
		logger.DurationField("elapsed", elapsed),
		logger.StringField("request_id", requestID),
	)

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) fail(method, rawURL, requestID string, err error) error {
	terr := &TransportError{
		Method:  method,
		URL:     rawURL,
		Timeout: isTimeout(err),
		Err:     err,
	}
	c.log.Warn("gateway request failed",
		logger.StringField("method", method),
		logger.StringField("url", rawURL),
		logger.StringField("request_id", requestID),
		logger.ErrorField("error", err),
	)
	return terr
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
