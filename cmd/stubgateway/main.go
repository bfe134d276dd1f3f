package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/server"
	"github.com/Nzyazin/gatewayclient/pkg/config"
)

func main() {
	cfg, err := config.LoadStubConfig(".")
	if err != nil {
		log, cleanup := logger.NewLogger("info")
		log.Error("Failed to load config", logger.ErrorField("error", err))
		cleanup()
		os.Exit(1)
	}

	log, cleanup := logger.NewLogger(cfg.LogLevel)
	defer cleanup()

	srv := server.NewServer(log, publicURL(cfg.HTTPAddr))

	go func() {
		log.Info("Starting HTTP server", logger.StringField("addr", cfg.HTTPAddr))
		if err := srv.Run(cfg.HTTPAddr); !server.IsClosed(err) {
			log.Error("HTTP server failed", logger.ErrorField("error", err))
		}
	}()

	go func() {
		log.Info("Starting RPC server", logger.StringField("addr", cfg.GRPCAddr))
		if err := srv.RunRPC(cfg.GRPCAddr); !server.IsClosed(err) {
			log.Error("RPC server failed", logger.ErrorField("error", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", logger.ErrorField("error", err))
	}

	log.Info("Server exited properly")
}

// publicURL строит адрес для ссылок на документы из адреса, который слушает сервер.
func publicURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://localhost"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
