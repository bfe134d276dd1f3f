package gateway

import (
	"context"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
)

type CardsClient struct {
	base
}

func (c *CardsClient) IssueVirtualCardAPI(ctx context.Context, req schema.IssueVirtualCardRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.IssueVirtualCard, req)
}

func (c *CardsClient) IssuePhysicalCardAPI(ctx context.Context, req schema.IssuePhysicalCardRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.IssuePhysicalCard, req)
}

func (c *CardsClient) IssueVirtualCard(ctx context.Context, userID, accountID string) (*models.Card, error) {
	resp, err := c.IssueVirtualCardAPI(ctx, schema.IssueVirtualCardRequest{UserID: userID, AccountID: accountID})

	var out schema.IssueVirtualCardResponse
	if err := c.decode(schema.IssueVirtualCard, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Card, nil
}

func (c *CardsClient) IssuePhysicalCard(ctx context.Context, userID, accountID string) (*models.Card, error) {
	resp, err := c.IssuePhysicalCardAPI(ctx, schema.IssuePhysicalCardRequest{UserID: userID, AccountID: accountID})

	var out schema.IssuePhysicalCardResponse
	if err := c.decode(schema.IssuePhysicalCard, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Card, nil
}
