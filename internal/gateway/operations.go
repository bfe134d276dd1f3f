package gateway

import (
	"context"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
	"github.com/shopspring/decimal"
)

// Значения по умолчанию для операций, если вызывающий их не указал.
var (
	DefaultAmount = decimal.RequireFromString("100.00")
	DefaultStatus = models.OperationStatusCompleted
)

const DefaultCategory = "taxi"

type operationParams struct {
	amount   decimal.Decimal
	status   models.OperationStatus
	category string
}

type OperationOption func(*operationParams)

func WithAmount(amount decimal.Decimal) OperationOption {
	return func(p *operationParams) {
		p.amount = amount
	}
}

func WithStatus(status models.OperationStatus) OperationOption {
	return func(p *operationParams) {
		p.status = status
	}
}

// WithCategory действует только на покупки.
func WithCategory(category string) OperationOption {
	return func(p *operationParams) {
		p.category = category
	}
}

func newOperationParams(opts []OperationOption) operationParams {
	p := operationParams{
		amount:   DefaultAmount,
		status:   DefaultStatus,
		category: DefaultCategory,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func (p operationParams) request(cardID, accountID string) schema.MakeOperationRequest {
	return schema.MakeOperationRequest{
		Status:    p.status,
		Amount:    p.amount,
		CardID:    cardID,
		AccountID: accountID,
	}
}

type OperationsClient struct {
	base
}

func (c *OperationsClient) GetOperationsAPI(ctx context.Context, query schema.GetOperationsQuery) (*transport.RawResponse, error) {
	return c.query(ctx, schema.GetOperations, query)
}

func (c *OperationsClient) GetOperationsSummaryAPI(ctx context.Context, query schema.GetOperationsSummaryQuery) (*transport.RawResponse, error) {
	return c.query(ctx, schema.GetOperationsSummary, query)
}

func (c *OperationsClient) GetOperationAPI(ctx context.Context, req schema.GetOperationRequest) (*transport.RawResponse, error) {
	return c.param(ctx, schema.GetOperation, req, req.OperationID)
}

func (c *OperationsClient) GetOperationReceiptAPI(ctx context.Context, req schema.GetOperationReceiptRequest) (*transport.RawResponse, error) {
	return c.param(ctx, schema.GetOperationReceipt, req, req.OperationID)
}

func (c *OperationsClient) MakeFeeOperationAPI(ctx context.Context, req schema.MakeFeeOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeFeeOperation, req)
}

func (c *OperationsClient) MakeTopUpOperationAPI(ctx context.Context, req schema.MakeTopUpOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeTopUpOperation, req)
}

func (c *OperationsClient) MakeCashbackOperationAPI(ctx context.Context, req schema.MakeCashbackOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeCashbackOperation, req)
}

func (c *OperationsClient) MakeTransferOperationAPI(ctx context.Context, req schema.MakeTransferOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeTransferOperation, req)
}

func (c *OperationsClient) MakePurchaseOperationAPI(ctx context.Context, req schema.MakePurchaseOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakePurchaseOperation, req)
}

func (c *OperationsClient) MakeBillPaymentOperationAPI(ctx context.Context, req schema.MakeBillPaymentOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeBillPaymentOperation, req)
}

func (c *OperationsClient) MakeCashWithdrawalOperationAPI(ctx context.Context, req schema.MakeCashWithdrawalOperationRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.MakeCashWithdrawalOperation, req)
}

// GetOperations возвращает операции счёта. Пустой результат — пустой срез, не nil.
func (c *OperationsClient) GetOperations(ctx context.Context, accountID string) ([]models.Operation, error) {
	resp, err := c.GetOperationsAPI(ctx, schema.GetOperationsQuery{AccountID: accountID})

	var out schema.GetOperationsResponse
	if err := c.decode(schema.GetOperations, resp, err, &out); err != nil {
		return nil, err
	}
	return out.Operations, nil
}

func (c *OperationsClient) GetOperationsSummary(ctx context.Context, accountID string) (*models.OperationsSummary, error) {
	resp, err := c.GetOperationsSummaryAPI(ctx, schema.GetOperationsSummaryQuery{AccountID: accountID})

	var out schema.GetOperationsSummaryResponse
	if err := c.decode(schema.GetOperationsSummary, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Summary, nil
}

func (c *OperationsClient) GetOperation(ctx context.Context, operationID string) (*models.Operation, error) {
	resp, err := c.GetOperationAPI(ctx, schema.GetOperationRequest{OperationID: operationID})

	var out schema.GetOperationResponse
	if err := c.decode(schema.GetOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

func (c *OperationsClient) GetOperationReceipt(ctx context.Context, operationID string) (*models.Document, error) {
	resp, err := c.GetOperationReceiptAPI(ctx, schema.GetOperationReceiptRequest{OperationID: operationID})

	var out schema.GetOperationReceiptResponse
	if err := c.decode(schema.GetOperationReceipt, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Receipt, nil
}

// MakeFeeOperation списывает комиссию. Без опций сумма DefaultAmount, статус DefaultStatus.
func (c *OperationsClient) MakeFeeOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeFeeOperationAPI(ctx, schema.MakeFeeOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeFeeOperationResponse
	if err := c.decode(schema.MakeFeeOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

// MakeTopUpOperation пополняет счёт. Без опций сумма DefaultAmount, статус DefaultStatus.
func (c *OperationsClient) MakeTopUpOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeTopUpOperationAPI(ctx, schema.MakeTopUpOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeTopUpOperationResponse
	if err := c.decode(schema.MakeTopUpOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

func (c *OperationsClient) MakeCashbackOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeCashbackOperationAPI(ctx, schema.MakeCashbackOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeCashbackOperationResponse
	if err := c.decode(schema.MakeCashbackOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

func (c *OperationsClient) MakeTransferOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeTransferOperationAPI(ctx, schema.MakeTransferOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeTransferOperationResponse
	if err := c.decode(schema.MakeTransferOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

// MakePurchaseOperation проводит покупку. Категория по умолчанию DefaultCategory.
func (c *OperationsClient) MakePurchaseOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakePurchaseOperationAPI(ctx, schema.MakePurchaseOperationRequest{
		MakeOperationRequest: p.request(cardID, accountID),
		Category:             p.category,
	})

	var out schema.MakePurchaseOperationResponse
	if err := c.decode(schema.MakePurchaseOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

func (c *OperationsClient) MakeBillPaymentOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeBillPaymentOperationAPI(ctx, schema.MakeBillPaymentOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeBillPaymentOperationResponse
	if err := c.decode(schema.MakeBillPaymentOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}

func (c *OperationsClient) MakeCashWithdrawalOperation(ctx context.Context, cardID, accountID string, opts ...OperationOption) (*models.Operation, error) {
	p := newOperationParams(opts)
	resp, err := c.MakeCashWithdrawalOperationAPI(ctx, schema.MakeCashWithdrawalOperationRequest{MakeOperationRequest: p.request(cardID, accountID)})

	var out schema.MakeCashWithdrawalOperationResponse
	if err := c.decode(schema.MakeCashWithdrawalOperation, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Operation, nil
}
