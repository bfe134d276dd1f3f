package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config.env"

// GatewayConfig — параметры подключения клиентов к шлюзу.
type GatewayConfig struct {
	HTTPBaseURL string        `mapstructure:"GATEWAY_HTTP_BASE_URL"`
	GRPCAddr    string        `mapstructure:"GATEWAY_GRPC_ADDR"`
	Timeout     time.Duration `mapstructure:"GATEWAY_TIMEOUT"`
	AuthToken   string        `mapstructure:"GATEWAY_AUTH_TOKEN"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`
}

// StubConfig — адреса, которые слушает локальный шлюз-заглушка.
type StubConfig struct {
	HTTPAddr string `mapstructure:"STUB_HTTP_ADDR"`
	GRPCAddr string `mapstructure:"STUB_GRPC_ADDR"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"GATEWAY_HTTP_BASE_URL": "http://localhost:8003",
	"GATEWAY_GRPC_ADDR":     "localhost:9003",
	"GATEWAY_TIMEOUT":       "100s",
	"GATEWAY_AUTH_TOKEN":    "",
	"LOG_LEVEL":             "info",
	"STUB_HTTP_ADDR":        ":8003",
	"STUB_GRPC_ADDR":        ":9003",
}

// LoadGatewayConfig читает dir/config.env (если он есть) и переменные окружения.
// Окружение важнее файла, файл важнее значений по умолчанию.
func LoadGatewayConfig(dir string) (*GatewayConfig, error) {
	v, err := load(dir)
	if err != nil {
		return nil, err
	}

	var cfg GatewayConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode gateway config: %w", err)
	}

	base, err := url.Parse(cfg.HTTPBaseURL)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid GATEWAY_HTTP_BASE_URL %q", cfg.HTTPBaseURL)
	}
	if cfg.GRPCAddr == "" {
		return nil, errors.New("GATEWAY_GRPC_ADDR is empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT %s: must be positive", cfg.Timeout)
	}

	return &cfg, nil
}

func LoadStubConfig(dir string) (*StubConfig, error) {
	v, err := load(dir)
	if err != nil {
		return nil, err
	}

	var cfg StubConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode stub config: %w", err)
	}
	if cfg.HTTPAddr == "" || cfg.GRPCAddr == "" {
		return nil, errors.New("STUB_HTTP_ADDR and STUB_GRPC_ADDR must be set")
	}

	return &cfg, nil
}

func load(dir string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	path := filepath.Join(dir, envFile)
	fileValues, err := godotenv.Read(path)
	switch {
	case err == nil:
		for key, value := range fileValues {
			v.SetDefault(key, value)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	v.AutomaticEnv()
	return v, nil
}
