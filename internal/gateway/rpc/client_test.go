package rpc_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/rpc"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type call struct {
	method string
	auth   string
	body   map[string]any
}

type handlerFunc func(method string, body []byte) ([]byte, error)

func startServer(t *testing.T, h handlerFunc) (*bufconn.Listener, chan call) {
	t.Helper()
	calls := make(chan call, 8)
	lis := bufconn.Listen(1 << 20)

	srv := grpc.NewServer(
		grpc.ForceServerCodec(rpc.Codec{}),
		grpc.UnknownServiceHandler(func(_ any, stream grpc.ServerStream) error {
			method, _ := grpc.MethodFromServerStream(stream)
			in := &rpc.Frame{}
			if err := stream.RecvMsg(in); err != nil {
				return err
			}

			c := call{method: method}
			if md, ok := metadata.FromIncomingContext(stream.Context()); ok && len(md.Get("authorization")) > 0 {
				c.auth = md.Get("authorization")[0]
			}
			_ = json.Unmarshal(in.Data, &c.body)
			calls <- c

			out, err := h(method, in.Data)
			if err != nil {
				return err
			}
			return stream.SendMsg(&rpc.Frame{Data: out})
		}),
	)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)
	return lis, calls
}

func newClient(t *testing.T, lis *bufconn.Listener, cfg rpc.Config) *rpc.Client {
	t.Helper()
	cfg.Addr = "passthrough:///bufnet"
	c, err := rpc.NewClient(cfg, logger.NewNop(), rpc.WithDialOptions(
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestClient_DoMergesFields(t *testing.T) {
	lis, calls := startServer(t, func(string, []byte) ([]byte, error) {
		return []byte(`{"receipt": {"url": "http://localhost/r", "document": "x"}}`), nil
	})
	c := newClient(t, lis, rpc.Config{Timeout: time.Second, AuthToken: "secret"})

	resp, err := c.Do(context.Background(), transport.Request{Endpoint: schema.GetOperationReceipt, Param: "op-1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"receipt": {"url": "http://localhost/r", "document": "x"}}`, string(resp.Body))

	got := <-calls
	assert.Equal(t, "/contracts.services.gateway.operations.OperationsGatewayService/GetOperationReceipt", got.method)
	assert.Equal(t, "Bearer secret", got.auth)
	assert.Equal(t, map[string]any{"operation_id": "op-1"}, got.body)
}

func TestClient_DoQueryAndBody(t *testing.T) {
	lis, calls := startServer(t, func(string, []byte) ([]byte, error) { return []byte(`{}`), nil })
	c := newClient(t, lis, rpc.Config{})

	_, err := c.Do(context.Background(), transport.Request{
		Endpoint: schema.GetOperations,
		Query:    map[string][]string{"account_id": {"acc-1"}},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"account_id": "acc-1"}, (<-calls).body)

	_, err = c.Do(context.Background(), transport.Request{
		Endpoint: schema.CreateUser,
		Body:     []byte(`{"email": "a@b.ru"}`),
	})
	require.NoError(t, err)
	got := <-calls
	assert.Equal(t, map[string]any{"email": "a@b.ru"}, got.body)
	assert.Empty(t, got.auth)
}

func TestClient_StatusBecomesRawResponse(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "not found",
			err:    status.Error(codes.NotFound, "Operation not found"),
			status: http.StatusNotFound,
			body:   `{"detail": "Operation not found"}`,
		},
		{
			name:   "json detail",
			err:    status.Error(codes.InvalidArgument, `{"detail": [{"loc": ["amount"], "msg": "bad", "type": "value_error"}]}`),
			status: http.StatusUnprocessableEntity,
			body:   `{"detail": [{"loc": ["amount"], "msg": "bad", "type": "value_error"}]}`,
		},
		{
			name:   "internal",
			err:    status.Error(codes.Internal, "boom"),
			status: http.StatusInternalServerError,
			body:   `{"detail": "boom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lis, _ := startServer(t, func(string, []byte) ([]byte, error) { return nil, tt.err })
			c := newClient(t, lis, rpc.Config{})

			resp, err := c.Invoke(context.Background(), schema.GetOperation.FullMethod(), []byte(`{"operation_id": "x"}`))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, string(resp.Body))
		})
	}
}

func TestClient_DeadlineIsTransportError(t *testing.T) {
	lis, _ := startServer(t, func(string, []byte) ([]byte, error) {
		time.Sleep(500 * time.Millisecond)
		return []byte(`{}`), nil
	})
	c := newClient(t, lis, rpc.Config{Timeout: 50 * time.Millisecond})

	_, err := c.Do(context.Background(), transport.Request{Endpoint: schema.GetAccounts})
	require.Error(t, err)
	assert.True(t, errors.Is(err, transport.ErrTransport))

	var terr *transport.TransportError
	require.True(t, errors.As(err, &terr))
	assert.True(t, terr.Timeout)
	assert.Equal(t, codes.DeadlineExceeded, status.Code(terr.Err))
}

func TestClient_UnavailableIsTransportError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c, err := rpc.NewClient(rpc.Config{Addr: "passthrough:///" + addr, Timeout: time.Second}, logger.NewNop())
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Do(context.Background(), transport.Request{Endpoint: schema.GetAccounts})
	require.Error(t, err)

	var terr *transport.TransportError
	require.True(t, errors.As(err, &terr))
	assert.False(t, terr.Timeout)
	assert.Equal(t, codes.Unavailable, status.Code(terr.Err))
}

func TestNewClient_EmptyAddr(t *testing.T) {
	_, err := rpc.NewClient(rpc.Config{}, logger.NewNop())
	assert.Error(t, err)
}

func TestStatusMapping(t *testing.T) {
	for _, code := range []codes.Code{codes.NotFound, codes.InvalidArgument, codes.Unauthenticated, codes.Internal} {
		assert.Equal(t, code, rpc.Code(rpc.HTTPStatus(code)), code.String())
	}
	assert.Equal(t, http.StatusInternalServerError, rpc.HTTPStatus(codes.Unknown))
	assert.Equal(t, codes.Internal, rpc.Code(http.StatusTeapot))
}

func TestClient_ConcurrentUse(t *testing.T) {
	lis, calls := startServer(t, func(_ string, body []byte) ([]byte, error) { return body, nil })
	go func() {
		for range calls {
		}
	}()
	c := newClient(t, lis, rpc.Config{Timeout: 5 * time.Second})

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("op-%d", i)
			resp, err := c.Do(context.Background(), transport.Request{Endpoint: schema.GetOperation, Param: id})
			if err != nil {
				errs <- err
				return
			}
			var got map[string]string
			if err := json.Unmarshal(resp.Body, &got); err != nil || got["operation_id"] != id {
				errs <- fmt.Errorf("call %d: got %s", i, resp.Body)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
