package handler

import (
	"context"
	"fmt"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/core/usecase"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
)

type action func(ctx context.Context, payload []byte, casing schema.Casing) (any, error)

// Dispatcher исполняет точки каталога поверх usecase. HTTP- и RPC-сервер
// отличаются только тем, как собирают payload и в какой нотации.
type Dispatcher struct {
	usecase  usecase.GatewayUsecase
	log      logger.Logger
	actions  map[string]action
	byMethod map[string]schema.Endpoint
}

func NewDispatcher(uc usecase.GatewayUsecase, log logger.Logger) *Dispatcher {
	d := &Dispatcher{
		usecase:  uc,
		log:      log,
		byMethod: make(map[string]schema.Endpoint),
	}
	d.actions = map[string]action{
		schema.CreateUser.Name: handle(d.createUser),
		schema.GetUser.Name:    handle(d.getUser),

		schema.GetAccounts.Name:           handle(d.getAccounts),
		schema.OpenDepositAccount.Name:    handle(d.openAccount(models.AccountTypeDeposit)),
		schema.OpenDebitCardAccount.Name:  handle(d.openAccount(models.AccountTypeDebitCard)),
		schema.OpenCreditCardAccount.Name: handle(d.openAccount(models.AccountTypeCreditCard)),

		schema.IssueVirtualCard.Name:  handle(d.issueCard(models.CardTypeVirtual)),
		schema.IssuePhysicalCard.Name: handle(d.issueCard(models.CardTypePhysical)),

		schema.GetOperations.Name:        handle(d.getOperations),
		schema.GetOperationsSummary.Name: handle(d.getOperationsSummary),
		schema.GetOperation.Name:         handle(d.getOperation),
		schema.GetOperationReceipt.Name:  handle(d.getOperationReceipt),

		schema.MakeFeeOperation.Name:            handle(d.makeOperation(models.OperationTypeFee)),
		schema.MakeTopUpOperation.Name:          handle(d.makeOperation(models.OperationTypeTopUp)),
		schema.MakeCashbackOperation.Name:       handle(d.makeOperation(models.OperationTypeCashback)),
		schema.MakeTransferOperation.Name:       handle(d.makeOperation(models.OperationTypeTransfer)),
		schema.MakeBillPaymentOperation.Name:    handle(d.makeOperation(models.OperationTypeBillPayment)),
		schema.MakeCashWithdrawalOperation.Name: handle(d.makeOperation(models.OperationTypeCashWithdrawal)),
		schema.MakePurchaseOperation.Name:       handle(d.makePurchaseOperation),

		schema.GetTariffDocument.Name:   handle(d.getDocument(usecase.DocumentTariff)),
		schema.GetContractDocument.Name: handle(d.getDocument(usecase.DocumentContract)),
	}
	for _, ep := range schema.Endpoints() {
		d.byMethod[ep.FullMethod()] = ep
	}
	return d
}

// Lookup ищет точку каталога по полному имени RPC-метода.
func (d *Dispatcher) Lookup(fullMethod string) (schema.Endpoint, bool) {
	ep, ok := d.byMethod[fullMethod]
	return ep, ok
}

// Dispatch разбирает payload, выполняет действие и сериализует ответ в той же нотации.
func (d *Dispatcher) Dispatch(ctx context.Context, ep schema.Endpoint, payload []byte, casing schema.Casing) ([]byte, error) {
	act, ok := d.actions[ep.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEndpoint, ep.Name)
	}

	resp, err := act(ctx, payload, casing)
	if err != nil {
		return nil, err
	}
	body, err := schema.Encode(resp, casing)
	if err != nil {
		d.log.Error("Response encoding failed",
			logger.StringField("endpoint", ep.Name),
			logger.ErrorField("error", err))
		return nil, fmt.Errorf("encode %s response: %w", ep.Name, err)
	}
	return body, nil
}

func handle[Req any, Resp any](fn func(context.Context, Req) (Resp, error)) action {
	return func(ctx context.Context, payload []byte, casing schema.Casing) (any, error) {
		var req Req
		if err := schema.Decode(payload, casing, &req); err != nil {
			return nil, err
		}
		return fn(ctx, req)
	}
}

func (d *Dispatcher) createUser(ctx context.Context, req schema.CreateUserRequest) (schema.CreateUserResponse, error) {
	user, err := d.usecase.CreateUser(ctx, models.User{
		Email:       req.Email,
		LastName:    req.LastName,
		FirstName:   req.FirstName,
		MiddleName:  req.MiddleName,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		return schema.CreateUserResponse{}, err
	}
	return schema.CreateUserResponse{User: *user}, nil
}

func (d *Dispatcher) getUser(ctx context.Context, req schema.GetUserRequest) (schema.GetUserResponse, error) {
	user, err := d.usecase.GetUser(ctx, req.UserID)
	if err != nil {
		return schema.GetUserResponse{}, err
	}
	return schema.GetUserResponse{User: *user}, nil
}

func (d *Dispatcher) getAccounts(ctx context.Context, req schema.GetAccountsQuery) (schema.GetAccountsResponse, error) {
	accounts, err := d.usecase.GetAccounts(ctx, req.UserID)
	if err != nil {
		return schema.GetAccountsResponse{}, err
	}
	return schema.GetAccountsResponse{Accounts: accounts}, nil
}

func (d *Dispatcher) openAccount(accountType models.AccountType) func(context.Context, schema.OpenAccountRequest) (schema.AccountResponse, error) {
	return func(ctx context.Context, req schema.OpenAccountRequest) (schema.AccountResponse, error) {
		account, err := d.usecase.OpenAccount(ctx, req.UserID, accountType)
		if err != nil {
			return schema.AccountResponse{}, err
		}
		return schema.AccountResponse{Account: *account}, nil
	}
}

func (d *Dispatcher) issueCard(cardType models.CardType) func(context.Context, schema.IssueCardRequest) (schema.CardResponse, error) {
	return func(ctx context.Context, req schema.IssueCardRequest) (schema.CardResponse, error) {
		card, err := d.usecase.IssueCard(ctx, req.UserID, req.AccountID, cardType)
		if err != nil {
			return schema.CardResponse{}, err
		}
		return schema.CardResponse{Card: *card}, nil
	}
}

func (d *Dispatcher) getOperations(ctx context.Context, req schema.GetOperationsQuery) (schema.GetOperationsResponse, error) {
	ops, err := d.usecase.GetOperations(ctx, req.AccountID)
	if err != nil {
		return schema.GetOperationsResponse{}, err
	}
	return schema.GetOperationsResponse{Operations: ops}, nil
}

func (d *Dispatcher) getOperationsSummary(ctx context.Context, req schema.GetOperationsSummaryQuery) (schema.GetOperationsSummaryResponse, error) {
	summary, err := d.usecase.GetOperationsSummary(ctx, req.AccountID)
	if err != nil {
		return schema.GetOperationsSummaryResponse{}, err
	}
	return schema.GetOperationsSummaryResponse{Summary: *summary}, nil
}

func (d *Dispatcher) getOperation(ctx context.Context, req schema.GetOperationRequest) (schema.GetOperationResponse, error) {
	op, err := d.usecase.GetOperation(ctx, req.OperationID)
	if err != nil {
		return schema.GetOperationResponse{}, err
	}
	return schema.GetOperationResponse{Operation: *op}, nil
}

func (d *Dispatcher) getOperationReceipt(ctx context.Context, req schema.GetOperationReceiptRequest) (schema.GetOperationReceiptResponse, error) {
	receipt, err := d.usecase.GetOperationReceipt(ctx, req.OperationID)
	if err != nil {
		return schema.GetOperationReceiptResponse{}, err
	}
	return schema.GetOperationReceiptResponse{Receipt: *receipt}, nil
}

func (d *Dispatcher) makeOperation(opType models.OperationType) func(context.Context, schema.MakeOperationRequest) (schema.OperationResponse, error) {
	return func(ctx context.Context, req schema.MakeOperationRequest) (schema.OperationResponse, error) {
		return d.execute(ctx, usecase.OperationInput{
			Type:      opType,
			Status:    req.Status,
			Amount:    req.Amount,
			CardID:    req.CardID,
			AccountID: req.AccountID,
		})
	}
}

func (d *Dispatcher) makePurchaseOperation(ctx context.Context, req schema.MakePurchaseOperationRequest) (schema.OperationResponse, error) {
	return d.execute(ctx, usecase.OperationInput{
		Type:      models.OperationTypePurchase,
		Status:    req.Status,
		Amount:    req.Amount,
		CardID:    req.CardID,
		AccountID: req.AccountID,
		Category:  req.Category,
	})
}

func (d *Dispatcher) execute(ctx context.Context, in usecase.OperationInput) (schema.OperationResponse, error) {
	op, err := d.usecase.MakeOperation(ctx, in)
	if err != nil {
		return schema.OperationResponse{}, err
	}
	return schema.OperationResponse{Operation: *op}, nil
}

func (d *Dispatcher) getDocument(kind usecase.DocumentKind) func(context.Context, schema.GetDocumentRequest) (any, error) {
	return func(ctx context.Context, req schema.GetDocumentRequest) (any, error) {
		doc, err := d.usecase.GetDocument(ctx, req.AccountID, kind)
		if err != nil {
			return nil, err
		}
		if kind == usecase.DocumentTariff {
			return schema.GetTariffDocumentResponse{Tariff: *doc}, nil
		}
		return schema.GetContractDocumentResponse{Contract: *doc}, nil
	}
}
