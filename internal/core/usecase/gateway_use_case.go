package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/core/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DocumentKind string

const (
	DocumentTariff   DocumentKind = "tariff"
	DocumentContract DocumentKind = "contract"
)

// OperationInput — то, что вызывающий задаёт при проведении операции.
type OperationInput struct {
	Type      models.OperationType
	Status    models.OperationStatus
	Amount    decimal.Decimal
	CardID    string
	AccountID string
	Category  string
}

type GatewayUsecase interface {
	CreateUser(ctx context.Context, user models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)

	OpenAccount(ctx context.Context, userID string, accountType models.AccountType) (*models.Account, error)
	GetAccounts(ctx context.Context, userID string) ([]models.Account, error)

	IssueCard(ctx context.Context, userID, accountID string, cardType models.CardType) (*models.Card, error)

	MakeOperation(ctx context.Context, in OperationInput) (*models.Operation, error)
	GetOperation(ctx context.Context, id string) (*models.Operation, error)
	GetOperations(ctx context.Context, accountID string) ([]models.Operation, error)
	GetOperationsSummary(ctx context.Context, accountID string) (*models.OperationsSummary, error)
	GetOperationReceipt(ctx context.Context, operationID string) (*models.Document, error)

	GetDocument(ctx context.Context, accountID string, kind DocumentKind) (*models.Document, error)
}

type gatewayUsecase struct {
	repo        repository.GatewayRepository
	log         logger.Logger
	documentURL string
	now         func() time.Time
}

// NewGatewayUsecase создаёт бизнес-логику заглушки. documentURL — адрес,
// от которого строятся ссылки на документы.
func NewGatewayUsecase(repo repository.GatewayRepository, log logger.Logger, documentURL string) GatewayUsecase {
	return &gatewayUsecase{
		repo:        repo,
		log:         log,
		documentURL: strings.TrimRight(documentURL, "/"),
		now:         time.Now,
	}
}

func (uc *gatewayUsecase) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	user.ID = uuid.NewString()
	if err := uc.repo.CreateUser(ctx, user); err != nil {
		uc.log.Error("User creation failed", logger.ErrorField("error", err))
		return nil, fmt.Errorf("create user: %w", err)
	}

	uc.log.Info("User created", logger.StringField("user_id", user.ID))
	return &user, nil
}

func (uc *gatewayUsecase) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, uc.notFound(err, ErrUserNotFound, "get user")
	}
	return user, nil
}

// OpenAccount открывает счёт. Карточные счета сразу получают физическую
// и виртуальную карты, депозит открывается без карт.
func (uc *gatewayUsecase) OpenAccount(ctx context.Context, userID string, accountType models.AccountType) (*models.Account, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, uc.notFound(err, ErrUserNotFound, "open account")
	}

	account := models.Account{
		ID:      uuid.NewString(),
		Type:    accountType,
		Status:  models.AccountStatusActive,
		Balance: decimal.Zero,
		Cards:   []models.Card{},
	}
	if accountType != models.AccountTypeDeposit {
		account.Cards = append(account.Cards,
			uc.newCard(user, account.ID, models.CardTypePhysical),
			uc.newCard(user, account.ID, models.CardTypeVirtual),
		)
	}

	if err := uc.repo.CreateAccount(ctx, userID, account); err != nil {
		uc.log.Error("Account creation failed",
			logger.StringField("user_id", userID),
			logger.ErrorField("error", err))
		return nil, fmt.Errorf("open account: %w", err)
	}

	uc.log.Info("Account opened",
		logger.StringField("account_id", account.ID),
		logger.StringField("type", string(accountType)),
		logger.IntField("cards", len(account.Cards)))
	return &account, nil
}

func (uc *gatewayUsecase) GetAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	accounts, err := uc.repo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, uc.notFound(err, ErrUserNotFound, "get accounts")
	}
	return accounts, nil
}

func (uc *gatewayUsecase) IssueCard(ctx context.Context, userID, accountID string, cardType models.CardType) (*models.Card, error) {
	user, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, uc.notFound(err, ErrUserNotFound, "issue card")
	}

	owner, err := uc.repo.AccountOwner(ctx, accountID)
	if err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "issue card")
	}
	if owner != userID {
		uc.log.Warn("Card requested for foreign account",
			logger.StringField("user_id", userID),
			logger.StringField("account_id", accountID))
		return nil, ErrAccountNotOwned
	}

	card := uc.newCard(user, accountID, cardType)
	if err := uc.repo.AddCard(ctx, card); err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "issue card")
	}

	uc.log.Info("Card issued",
		logger.StringField("card_id", card.ID),
		logger.StringField("account_id", accountID),
		logger.StringField("type", string(cardType)))
	return &card, nil
}

func (uc *gatewayUsecase) MakeOperation(ctx context.Context, in OperationInput) (*models.Operation, error) {
	uc.logStart(in)

	if !in.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := uc.repo.GetAccount(ctx, in.AccountID); err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "make operation")
	}
	card, err := uc.repo.GetCard(ctx, in.CardID)
	if err != nil {
		return nil, uc.notFound(err, ErrCardNotFound, "make operation")
	}
	if card.AccountID != in.AccountID {
		return nil, ErrCardNotOnAccount
	}

	op := models.Operation{
		ID:        uuid.NewString(),
		Type:      in.Type,
		Status:    in.Status,
		Amount:    in.Amount,
		CardID:    in.CardID,
		Category:  in.Category,
		CreatedAt: models.NewTimestamp(uc.now()),
		AccountID: in.AccountID,
	}

	if err := uc.repo.ExecuteOperation(ctx, op, balanceDelta(op)); err != nil {
		uc.log.Error("Operation failed",
			logger.StringField("account_id", in.AccountID),
			logger.ErrorField("error", err))
		return nil, uc.notFound(err, ErrAccountNotFound, "make operation")
	}
	return &op, nil
}

func (uc *gatewayUsecase) GetOperation(ctx context.Context, id string) (*models.Operation, error) {
	op, err := uc.repo.GetOperation(ctx, id)
	if err != nil {
		return nil, uc.notFound(err, ErrOperationNotFound, "get operation")
	}
	return op, nil
}

func (uc *gatewayUsecase) GetOperations(ctx context.Context, accountID string) ([]models.Operation, error) {
	ops, err := uc.repo.ListOperations(ctx, accountID)
	if err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "get operations")
	}
	return ops, nil
}

// GetOperationsSummary складывает суммы проведённых операций счёта.
func (uc *gatewayUsecase) GetOperationsSummary(ctx context.Context, accountID string) (*models.OperationsSummary, error) {
	ops, err := uc.repo.ListOperations(ctx, accountID)
	if err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "get operations summary")
	}

	summary := models.OperationsSummary{
		SpentAmount:    decimal.Zero,
		ReceivedAmount: decimal.Zero,
		CashbackAmount: decimal.Zero,
	}
	for _, op := range ops {
		if op.Status != models.OperationStatusCompleted {
			continue
		}
		switch op.Type {
		case models.OperationTypeTopUp:
			summary.ReceivedAmount = summary.ReceivedAmount.Add(op.Amount)
		case models.OperationTypeCashback:
			summary.CashbackAmount = summary.CashbackAmount.Add(op.Amount)
		default:
			summary.SpentAmount = summary.SpentAmount.Add(op.Amount)
		}
	}
	return &summary, nil
}

func (uc *gatewayUsecase) GetOperationReceipt(ctx context.Context, operationID string) (*models.Document, error) {
	op, err := uc.repo.GetOperation(ctx, operationID)
	if err != nil {
		return nil, uc.notFound(err, ErrOperationNotFound, "get operation receipt")
	}

	text := fmt.Sprintf("Receipt %s\n%s %s %s\n%s",
		op.ID, op.Type, op.Amount.StringFixed(2), op.Status, op.CreatedAt.Format(time.RFC3339))
	return uc.document("receipts", op.ID, text), nil
}

func (uc *gatewayUsecase) GetDocument(ctx context.Context, accountID string, kind DocumentKind) (*models.Document, error) {
	account, err := uc.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, uc.notFound(err, ErrAccountNotFound, "get "+string(kind)+" document")
	}

	text := fmt.Sprintf("%s document for %s account %s", kind, account.Type, account.ID)
	return uc.document(string(kind), account.ID, text), nil
}

func (uc *gatewayUsecase) document(section, id, text string) *models.Document {
	return &models.Document{
		URL:      fmt.Sprintf("%s/documents/%s/%s.pdf", uc.documentURL, section, id),
		Document: base64.StdEncoding.EncodeToString([]byte(text)),
	}
}

func (uc *gatewayUsecase) newCard(user *models.User, accountID string, cardType models.CardType) models.Card {
	paymentSystem := "MASTERCARD"
	if cardType == models.CardTypePhysical {
		paymentSystem = "VISA"
	}
	expiry := uc.now().UTC().AddDate(5, 0, 0)

	return models.Card{
		ID:            uuid.NewString(),
		PIN:           digits(4),
		CVV:           digits(3),
		Type:          cardType,
		Status:        models.CardStatusActive,
		AccountID:     accountID,
		CardNumber:    digits(16),
		CardHolder:    strings.ToUpper(strings.TrimSpace(user.FirstName + " " + user.LastName)),
		ExpiryDate:    models.NewDate(expiry.Year(), expiry.Month(), expiry.Day()),
		PaymentSystem: paymentSystem,
	}
}

func (uc *gatewayUsecase) notFound(err, target error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		uc.log.Warn("Lookup failed",
			logger.StringField("op", op),
			logger.ErrorField("error", err))
		return fmt.Errorf("%s: %w", op, target)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (uc *gatewayUsecase) logStart(in OperationInput) {
	uc.log.Info("Starting operation",
		logger.StringField("account_id", in.AccountID),
		logger.StringField("card_id", in.CardID),
		logger.StringField("type", string(in.Type)),
		logger.StringField("status", string(in.Status)),
		logger.StringField("amount", in.Amount.String()))
}

// balanceDelta — изменение баланса от операции. Незавершённые операции баланс не меняют.
func balanceDelta(op models.Operation) decimal.Decimal {
	if op.Status != models.OperationStatusCompleted {
		return decimal.Zero
	}
	switch op.Type {
	case models.OperationTypeTopUp, models.OperationTypeCashback:
		return op.Amount
	default:
		return op.Amount.Neg()
	}
}

// digits возвращает n случайных цифр, взятых из байтов UUID v4.
func digits(n int) string {
	var b strings.Builder
	for b.Len() < n {
		for _, x := range uuid.New() {
			if b.Len() == n {
				break
			}
			b.WriteByte('0' + x%10)
		}
	}
	return b.String()
}
