package gateway

import (
	"context"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
)

type AccountsClient struct {
	base
}

func (c *AccountsClient) GetAccountsAPI(ctx context.Context, query schema.GetAccountsQuery) (*transport.RawResponse, error) {
	return c.query(ctx, schema.GetAccounts, query)
}

func (c *AccountsClient) OpenDepositAccountAPI(ctx context.Context, req schema.OpenDepositAccountRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.OpenDepositAccount, req)
}

func (c *AccountsClient) OpenDebitCardAccountAPI(ctx context.Context, req schema.OpenDebitCardAccountRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.OpenDebitCardAccount, req)
}

func (c *AccountsClient) OpenCreditCardAccountAPI(ctx context.Context, req schema.OpenCreditCardAccountRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.OpenCreditCardAccount, req)
}

// GetAccounts возвращает счета пользователя. Пустой результат — пустой срез, не nil.
func (c *AccountsClient) GetAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	resp, err := c.GetAccountsAPI(ctx, schema.GetAccountsQuery{UserID: userID})

	var out schema.GetAccountsResponse
	if err := c.decode(schema.GetAccounts, resp, err, &out); err != nil {
		return nil, err
	}
	return out.Accounts, nil
}

// OpenDepositAccount открывает депозитный счёт. Карты к нему не выпускаются.
func (c *AccountsClient) OpenDepositAccount(ctx context.Context, userID string) (*models.Account, error) {
	resp, err := c.OpenDepositAccountAPI(ctx, schema.OpenDepositAccountRequest{UserID: userID})

	var out schema.OpenDepositAccountResponse
	if err := c.decode(schema.OpenDepositAccount, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *AccountsClient) OpenDebitCardAccount(ctx context.Context, userID string) (*models.Account, error) {
	resp, err := c.OpenDebitCardAccountAPI(ctx, schema.OpenDebitCardAccountRequest{UserID: userID})

	var out schema.OpenDebitCardAccountResponse
	if err := c.decode(schema.OpenDebitCardAccount, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}

func (c *AccountsClient) OpenCreditCardAccount(ctx context.Context, userID string) (*models.Account, error) {
	resp, err := c.OpenCreditCardAccountAPI(ctx, schema.OpenCreditCardAccountRequest{UserID: userID})

	var out schema.OpenCreditCardAccountResponse
	if err := c.decode(schema.OpenCreditCardAccount, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.Account, nil
}
