package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const method = "GRPC"

type Config struct {
	Addr      string
	Timeout   time.Duration
	AuthToken string
}

type Option func(*options)

type options struct {
	dialOpts   []grpc.DialOption
	registerer prometheus.Registerer
}

// WithDialOptions добавляет параметры соединения, например собственный dialer в тестах.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(o *options) {
		o.dialOpts = append(o.dialOpts, opts...)
	}
}

func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// Client — RPC-адаптер шлюза. Соединение устанавливается лениво при первом вызове.
type Client struct {
	addr    string
	token   string
	timeout time.Duration
	conn    *grpc.ClientConn
	metrics *transport.Metrics
	log     logger.Logger
}

func NewClient(cfg Config, log logger.Logger, opts ...Option) (*Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("rpc address is empty")
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{})),
	}, o.dialOpts...)

	conn, err := grpc.NewClient(cfg.Addr, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("create rpc client for %s: %w", cfg.Addr, err)
	}

	return &Client{
		addr:    cfg.Addr,
		token:   cfg.AuthToken,
		timeout: cfg.Timeout,
		conn:    conn,
		metrics: transport.NewMetrics(o.registerer),
		log:     log,
	}, nil
}

// Do выполняет точку каталога: параметр пути и поля строки запроса
// становятся полями сообщения.
func (c *Client) Do(ctx context.Context, req transport.Request) (*transport.RawResponse, error) {
	fields := make(map[string]string, len(req.Query)+1)
	for k := range req.Query {
		fields[k] = req.Query.Get(k)
	}
	if req.Endpoint.Param != "" {
		fields[req.Endpoint.Param] = req.Param
	}

	body := req.Body
	if len(fields) > 0 {
		merged, err := schema.MergeFields(body, fields)
		if err != nil {
			return nil, fmt.Errorf("build %s message: %w", req.Endpoint.Name, err)
		}
		body = merged
	}
	return c.invoke(ctx, req.Endpoint.Name, req.Endpoint.FullMethod(), body)
}

// Invoke отправляет сериализованное сообщение в метод fullMethod.
func (c *Client) Invoke(ctx context.Context, fullMethod string, body []byte) (*transport.RawResponse, error) {
	return c.invoke(ctx, fullMethod, fullMethod, body)
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) invoke(ctx context.Context, endpoint, fullMethod string, body []byte) (*transport.RawResponse, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	requestID := uuid.NewString()
	md := metadata.Pairs("x-request-id", requestID)
	if c.token != "" {
		md.Set("authorization", "Bearer "+c.token)
	}
	ctx = metadata.NewOutgoingContext(ctx, md)

	c.log.Debug("gateway rpc call",
		logger.StringField("endpoint", endpoint),
		logger.StringField("method", fullMethod),
		logger.StringField("request_id", requestID),
	)

	var header metadata.MD
	out := &Frame{}
	start := time.Now()
	err := c.conn.Invoke(ctx, fullMethod, &Frame{Data: body}, out, grpc.Header(&header))
	elapsed := time.Since(start)

	if err != nil {
		st := status.Convert(err)
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
			c.metrics.Observe(endpoint, method, 0, elapsed)
			c.log.Warn("gateway rpc call failed",
				logger.StringField("method", fullMethod),
				logger.StringField("request_id", requestID),
				logger.ErrorField("error", err),
			)
			return nil, &transport.TransportError{
				Method:  method,
				URL:     c.addr + fullMethod,
				Timeout: st.Code() == codes.DeadlineExceeded,
				Err:     err,
			}
		}

		code := HTTPStatus(st.Code())
		c.metrics.Observe(endpoint, method, code, elapsed)
		return &transport.RawResponse{StatusCode: code, Header: httpHeader(header), Body: errorBody(st.Message())}, nil
	}

	c.metrics.Observe(endpoint, method, http.StatusOK, elapsed)
	return &transport.RawResponse{StatusCode: http.StatusOK, Header: httpHeader(header), Body: out.Data}, nil
}

// errorBody возвращает тело ошибки в виде HTTP-шлюза. Сервер может положить
// в сообщение статуса готовый JSON-объект ошибки, тогда он передаётся как есть.
func errorBody(message string) []byte {
	if len(message) > 0 && message[0] == '{' && json.Valid([]byte(message)) {
		return []byte(message)
	}
	body, _ := json.Marshal(map[string]string{"detail": message})
	return body
}

func httpHeader(md metadata.MD) http.Header {
	h := make(http.Header, len(md))
	for k, vals := range md {
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	return h
}
