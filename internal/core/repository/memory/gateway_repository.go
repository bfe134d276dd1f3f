package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/core/repository"
	"github.com/shopspring/decimal"
)

type accountRecord struct {
	userID  string
	account models.Account
}

type memoryGatewayRepo struct {
	mu         sync.RWMutex
	users      map[string]models.User
	accounts   map[string]*accountRecord
	userOrder  map[string][]string
	cards      map[string]string
	operations map[string]models.Operation
	opOrder    map[string][]string
	log        logger.Logger
}

func NewMemoryGatewayRepo(log logger.Logger) repository.GatewayRepository {
	return &memoryGatewayRepo{
		users:      make(map[string]models.User),
		accounts:   make(map[string]*accountRecord),
		userOrder:  make(map[string][]string),
		cards:      make(map[string]string),
		operations: make(map[string]models.Operation),
		opOrder:    make(map[string][]string),
		log:        log,
	}
}

func (r *memoryGatewayRepo) CreateUser(ctx context.Context, user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; ok {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryGatewayRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user with id %s", repository.ErrNotFound, id)
	}
	return &user, nil
}

func (r *memoryGatewayRepo) CreateAccount(ctx context.Context, userID string, account models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return fmt.Errorf("%w: user with id %s", repository.ErrNotFound, userID)
	}
	if _, ok := r.accounts[account.ID]; ok {
		return fmt.Errorf("account %s already exists", account.ID)
	}

	account.Cards = copyCards(account.Cards)
	for _, card := range account.Cards {
		r.cards[card.ID] = account.ID
	}
	r.accounts[account.ID] = &accountRecord{userID: userID, account: account}
	r.userOrder[userID] = append(r.userOrder[userID], account.ID)

	r.log.Debug("account stored",
		logger.StringField("account_id", account.ID),
		logger.StringField("user_id", userID),
		logger.IntField("cards", len(account.Cards)),
	)
	return nil
}

func (r *memoryGatewayRepo) GetAccount(ctx context.Context, id string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: account with id %s", repository.ErrNotFound, id)
	}
	account := rec.account
	account.Cards = copyCards(account.Cards)
	return &account, nil
}

func (r *memoryGatewayRepo) AccountOwner(ctx context.Context, accountID string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.accounts[accountID]
	if !ok {
		return "", fmt.Errorf("%w: account with id %s", repository.ErrNotFound, accountID)
	}
	return rec.userID, nil
}

func (r *memoryGatewayRepo) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, fmt.Errorf("%w: user with id %s", repository.ErrNotFound, userID)
	}

	ids := r.userOrder[userID]
	accounts := make([]models.Account, 0, len(ids))
	for _, id := range ids {
		account := r.accounts[id].account
		account.Cards = copyCards(account.Cards)
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *memoryGatewayRepo) AddCard(ctx context.Context, card models.Card) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.accounts[card.AccountID]
	if !ok {
		return fmt.Errorf("%w: account with id %s", repository.ErrNotFound, card.AccountID)
	}
	if _, ok := r.cards[card.ID]; ok {
		return fmt.Errorf("card %s already exists", card.ID)
	}

	rec.account.Cards = append(rec.account.Cards, card)
	r.cards[card.ID] = card.AccountID
	return nil
}

func (r *memoryGatewayRepo) GetCard(ctx context.Context, id string) (*models.Card, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accountID, ok := r.cards[id]
	if !ok {
		return nil, fmt.Errorf("%w: card with id %s", repository.ErrNotFound, id)
	}
	for _, card := range r.accounts[accountID].account.Cards {
		if card.ID == id {
			return &card, nil
		}
	}
	return nil, fmt.Errorf("%w: card with id %s", repository.ErrNotFound, id)
}

func (r *memoryGatewayRepo) ExecuteOperation(ctx context.Context, op models.Operation, delta decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.accounts[op.AccountID]
	if !ok {
		return fmt.Errorf("%w: account with id %s", repository.ErrNotFound, op.AccountID)
	}
	if accountID, ok := r.cards[op.CardID]; !ok || accountID != op.AccountID {
		return fmt.Errorf("%w: card with id %s on account %s", repository.ErrNotFound, op.CardID, op.AccountID)
	}

	rec.account.Balance = rec.account.Balance.Add(delta)
	r.operations[op.ID] = op
	r.opOrder[op.AccountID] = append(r.opOrder[op.AccountID], op.ID)

	r.log.Debug("operation stored",
		logger.StringField("operation_id", op.ID),
		logger.StringField("type", string(op.Type)),
		logger.StringField("new_balance", rec.account.Balance.String()),
	)
	return nil
}

func (r *memoryGatewayRepo) GetOperation(ctx context.Context, id string) (*models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.operations[id]
	if !ok {
		return nil, fmt.Errorf("%w: operation with id %s", repository.ErrNotFound, id)
	}
	return &op, nil
}

func (r *memoryGatewayRepo) ListOperations(ctx context.Context, accountID string) ([]models.Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.accounts[accountID]; !ok {
		return nil, fmt.Errorf("%w: account with id %s", repository.ErrNotFound, accountID)
	}

	ids := r.opOrder[accountID]
	ops := make([]models.Operation, 0, len(ids))
	for _, id := range ids {
		ops = append(ops, r.operations[id])
	}
	return ops, nil
}

func copyCards(cards []models.Card) []models.Card {
	out := make([]models.Card, len(cards))
	copy(out, cards)
	return out
}
