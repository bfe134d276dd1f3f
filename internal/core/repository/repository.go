package repository

import (
	"context"
	"errors"

	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("record not found")

// GatewayRepository хранит состояние шлюза-заглушки. Все методы возвращают копии:
// изменение результата не меняет хранилище.
type GatewayRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)

	CreateAccount(ctx context.Context, userID string, account models.Account) error
	GetAccount(ctx context.Context, id string) (*models.Account, error)
	AccountOwner(ctx context.Context, accountID string) (string, error)
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)

	AddCard(ctx context.Context, card models.Card) error
	GetCard(ctx context.Context, id string) (*models.Card, error)

	// ExecuteOperation сохраняет операцию и одновременно меняет баланс счёта на delta.
	ExecuteOperation(ctx context.Context, op models.Operation, delta decimal.Decimal) error
	GetOperation(ctx context.Context, id string) (*models.Operation, error)
	ListOperations(ctx context.Context, accountID string) ([]models.Operation, error)
}
