// Package gateway содержит типизированные клиенты шлюза: пользователи, счета,
// карты, операции и документы. Каждый клиент имеет «сырые» методы (один на точку
// каталога, возвращают неразобранный ответ) и типизированные методы, которые
// собирают запрос, вызывают сырой метод и разбирают ответ в доменный объект.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
)

// Conn — транспорт, через который клиенты ходят в шлюз. Реализуется
// HTTP-адаптером (transport.Client) и RPC-адаптером (rpc.Client).
type Conn interface {
	Do(ctx context.Context, req transport.Request) (*transport.RawResponse, error)
	Close() error
}

// base — общая часть всех клиентов ресурсов.
type base struct {
	conn   Conn
	casing schema.Casing
	log    logger.Logger
}

func (b base) post(ctx context.Context, ep schema.Endpoint, req any) (*transport.RawResponse, error) {
	body, err := schema.Encode(req, b.casing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.Name, err)
	}
	return b.do(ctx, transport.Request{Endpoint: ep, Body: body})
}

func (b base) query(ctx context.Context, ep schema.Endpoint, query any) (*transport.RawResponse, error) {
	q, err := schema.EncodeQuery(query, b.casing)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ep.Name, err)
	}
	return b.do(ctx, transport.Request{Endpoint: ep, Query: q})
}

// param вызывает точку с идентификатором в пути. req проверяется до отправки,
// чтобы пустой идентификатор не превратился в другой маршрут.
func (b base) param(ctx context.Context, ep schema.Endpoint, req any, id string) (*transport.RawResponse, error) {
	if err := schema.Validate(req); err != nil {
		return nil, fmt.Errorf("%s: %w", ep.Name, err)
	}
	return b.do(ctx, transport.Request{Endpoint: ep, Param: id})
}

func (b base) do(ctx context.Context, req transport.Request) (*transport.RawResponse, error) {
	resp, err := b.conn.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", req.Endpoint.Name, err)
	}
	return resp, nil
}

// decode разбирает ответ сырого метода в dst. Ошибка сырого метода
// возвращается без изменений.
func (b base) decode(ep schema.Endpoint, resp *transport.RawResponse, err error, dst any) error {
	if err != nil {
		return err
	}

	if err := schema.DecodeResponse(resp.StatusCode, resp.Body, b.casing, dst); err != nil {
		var rejection *schema.RemoteRejectionError
		if errors.As(err, &rejection) {
			b.log.Info("gateway rejected request",
				logger.StringField("endpoint", ep.Name),
				logger.IntField("status", rejection.StatusCode),
				logger.StringField("detail", rejection.Detail),
			)
		} else {
			b.log.Warn("gateway response does not match schema",
				logger.StringField("endpoint", ep.Name),
				logger.ErrorField("error", err),
			)
		}
		return fmt.Errorf("%s: %w", ep.Name, err)
	}
	return nil
}
