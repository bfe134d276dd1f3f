package gateway

import (
	"fmt"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/rpc"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
	"github.com/Nzyazin/gatewayclient/pkg/config"
)

// Factory собирает клиенты ресурсов вокруг одного адаптера. Каждая фабрика
// владеет своим адаптером, разные фабрики соединений не разделяют.
type Factory struct {
	conn       Conn
	users      *UsersClient
	accounts   *AccountsClient
	cards      *CardsClient
	operations *OperationsClient
	documents  *DocumentsClient
}

// NewFactory оборачивает готовое соединение. casing задаёт имена полей на проводе.
func NewFactory(conn Conn, casing schema.Casing, log logger.Logger) *Factory {
	b := base{conn: conn, casing: casing, log: log}
	return &Factory{
		conn:       conn,
		users:      &UsersClient{base: b},
		accounts:   &AccountsClient{base: b},
		cards:      &CardsClient{base: b},
		operations: &OperationsClient{base: b},
		documents:  &DocumentsClient{base: b},
	}
}

// NewHTTPFactory создаёт HTTP-адаптер. Сеть при этом не используется.
func NewHTTPFactory(cfg config.GatewayConfig, log logger.Logger, opts ...transport.Option) (*Factory, error) {
	headers := map[string]string{}
	if cfg.AuthToken != "" {
		headers["Authorization"] = "Bearer " + cfg.AuthToken
	}

	conn, err := transport.NewClient(transport.Config{
		BaseURL: cfg.HTTPBaseURL,
		Timeout: cfg.Timeout,
		Headers: headers,
	}, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("create http gateway client: %w", err)
	}
	return NewFactory(conn, schema.CamelCase, log), nil
}

// NewRPCFactory создаёт RPC-адаптер. Соединение открывается при первом вызове.
func NewRPCFactory(cfg config.GatewayConfig, log logger.Logger, opts ...rpc.Option) (*Factory, error) {
	conn, err := rpc.NewClient(rpc.Config{
		Addr:      cfg.GRPCAddr,
		Timeout:   cfg.Timeout,
		AuthToken: cfg.AuthToken,
	}, log, opts...)
	if err != nil {
		return nil, fmt.Errorf("create rpc gateway client: %w", err)
	}
	return NewFactory(conn, schema.SnakeCase, log), nil
}

func (f *Factory) Users() *UsersClient {
	return f.users
}

func (f *Factory) Accounts() *AccountsClient {
	return f.accounts
}

func (f *Factory) Cards() *CardsClient {
	return f.cards
}

func (f *Factory) Operations() *OperationsClient {
	return f.operations
}

func (f *Factory) Documents() *DocumentsClient {
	return f.documents
}

// Close освобождает адаптер. После Close клиенты фабрики использовать нельзя.
func (f *Factory) Close() error {
	return f.conn.Close()
}
