package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/handler"
	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	middlWre "github.com/Nzyazin/gatewayclient/internal/core/middleware"
	"github.com/Nzyazin/gatewayclient/internal/core/repository/memory"
	"github.com/Nzyazin/gatewayclient/internal/core/usecase"
	"github.com/gorilla/mux"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slok/go-http-metrics/metrics/prometheus"
	"github.com/slok/go-http-metrics/middleware"
	"github.com/slok/go-http-metrics/middleware/std"
	"google.golang.org/grpc"
)

// Server — шлюз-заглушка: одно хранилище в памяти, HTTP- и RPC-интерфейс поверх него.
type Server struct {
	router     *mux.Router
	log        logger.Logger
	httpServer *http.Server
	rpcServer  *grpc.Server
	dispatcher *handler.Dispatcher
	registry   *promclient.Registry
}

// NewServer собирает заглушку. documentURL — адрес, от которого строятся
// ссылки на документы, обычно публичный адрес HTTP-интерфейса.
func NewServer(log logger.Logger, documentURL string) *Server {
	repo := memory.NewMemoryGatewayRepo(log)
	gatewayUsecase := usecase.NewGatewayUsecase(repo, log, documentURL)
	dispatcher := handler.NewDispatcher(gatewayUsecase, log)

	server := &Server{
		log:        log,
		router:     mux.NewRouter(),
		dispatcher: dispatcher,
		registry:   promclient.NewRegistry(),
	}

	server.router.Use(middlWre.RequestID, loggingMiddleware(server.log))

	mw := middleware.New(middleware.Config{
		Recorder: prometheus.NewRecorder(prometheus.Config{Registry: server.registry}),
	})

	server.router.Use(func(next http.Handler) http.Handler {
		return std.Handler("", mw, next)
	})

	server.RegisterRoutes(handler.NewGatewayHandler(dispatcher, log))
	server.rpcServer = newRPCServer(dispatcher, log)

	return server
}

func (s *Server) RegisterRoutes(gatewayHandler *handler.GatewayHandler) {
	s.router.Use(
		middlWre.WithErrorHandler(s.log),
		middlWre.Recovery(s.log),
	)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	gatewayHandler.RegisterRoutes(s.router)
}

// Handler возвращает HTTP-интерфейс, например для httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadTimeout:       9 * time.Second,
		WriteTimeout:      12 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 60 * time.Second,
	}

	s.httpServer = srv

	return srv.ListenAndServe()
}

// ServeRPC обслуживает RPC-интерфейс на lis до вызова Shutdown.
func (s *Server) ServeRPC(lis net.Listener) error {
	return s.rpcServer.Serve(lis)
}

func (s *Server) RunRPC(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen rpc %s: %w", addr, err)
	}
	return s.ServeRPC(lis)
}

func (s *Server) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	var shutdownErr error

	go func() {
		if s.httpServer != nil {
			err := s.httpServer.Shutdown(ctx)
			if err != nil {
				s.log.Error("failed to shutdown HTTP server", logger.ErrorField("error", err))
				shutdownErr = fmt.Errorf("HTTP server shutdown error: %w", err)
			}
		}

		s.rpcServer.GracefulStop()

		close(done)
	}()

	select {
	case <-done:
		return shutdownErr
	case <-ctx.Done():
		s.rpcServer.Stop()
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// IsClosed сообщает, что ошибка Run/ServeRPC означает штатную остановку.
func IsClosed(err error) bool {
	return err == nil || errors.Is(err, http.ErrServerClosed) || errors.Is(err, grpc.ErrServerStopped)
}

func loggingMiddleware(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info("HTTP request",
				logger.StringField("method", r.Method),
				logger.StringField("path", r.URL.Path),
				logger.StringField("remote_addr", r.RemoteAddr),
				logger.StringField("user_agent", r.UserAgent()),
				logger.StringField("request_id", middlWre.RequestIDFromContext(r.Context())),
			)
			next.ServeHTTP(w, r)
		})
	}
}
