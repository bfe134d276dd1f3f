package gateway

import (
	"context"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
)

type DocumentsClient struct {
	base
}

func (c *DocumentsClient) GetTariffDocumentAPI(ctx context.Context, req schema.GetTariffDocumentRequest) (*transport.RawResponse, error) {
	return c.param(ctx, schema.GetTariffDocument, req, req.AccountID)
}

func (c *DocumentsClient) GetContractDocumentAPI(ctx context.Context, req schema.GetContractDocumentRequest) (*transport.RawResponse, error) {
	return c.param(ctx, schema.GetContractDocument, req, req.AccountID)
}

func (c *DocumentsClient) GetTariffDocument(ctx context.Context, accountID string) (*models.Document, error) {
	resp, err := c.GetTariffDocumentAPI(ctx, schema.GetTariffDocumentRequest{AccountID: accountID})

	var out schema.GetTariffDocumentResponse
	if err := c.decode(schema.GetTariffDocument, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Tariff, nil
}

func (c *DocumentsClient) GetContractDocument(ctx context.Context, accountID string) (*models.Document, error) {
	resp, err := c.GetContractDocumentAPI(ctx, schema.GetContractDocumentRequest{AccountID: accountID})

	var out schema.GetContractDocumentResponse
	if err := c.decode(schema.GetContractDocument, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Contract, nil
}
