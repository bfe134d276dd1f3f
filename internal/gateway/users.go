package gateway

import (
	"context"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
)

type UsersClient struct {
	base
}

func (c *UsersClient) CreateUserAPI(ctx context.Context, req schema.CreateUserRequest) (*transport.RawResponse, error) {
	return c.post(ctx, schema.CreateUser, req)
}

func (c *UsersClient) GetUserAPI(ctx context.Context, req schema.GetUserRequest) (*transport.RawResponse, error) {
	return c.param(ctx, schema.GetUser, req, req.UserID)
}

// CreateUser регистрирует пользователя с переданным профилем.
func (c *UsersClient) CreateUser(ctx context.Context, req schema.CreateUserRequest) (*models.User, error) {
	resp, err := c.CreateUserAPI(ctx, req)

	var out schema.CreateUserResponse
	if err := c.decode(schema.CreateUser, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

func (c *UsersClient) GetUser(ctx context.Context, userID string) (*models.User, error) {
	resp, err := c.GetUserAPI(ctx, schema.GetUserRequest{UserID: userID})

	var out schema.GetUserResponse
	if err := c.decode(schema.GetUser, resp, err, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
