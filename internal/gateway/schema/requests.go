package schema

import (
	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/shopspring/decimal"
)

// Пользователи

type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	LastName    string `json:"lastName" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	MiddleName  string `json:"middleName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"required"`
}

type GetUserRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// Счета

type OpenAccountRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type (
	OpenDepositAccountRequest    OpenAccountRequest
	OpenDebitCardAccountRequest  OpenAccountRequest
	OpenCreditCardAccountRequest OpenAccountRequest
)

type GetAccountsQuery struct {
	UserID string `json:"userId" validate:"required"`
}

// Карты

type IssueCardRequest struct {
	UserID    string `json:"userId" validate:"required"`
	AccountID string `json:"accountId" validate:"required"`
}

type (
	IssueVirtualCardRequest  IssueCardRequest
	IssuePhysicalCardRequest IssueCardRequest
)

// Операции

type GetOperationsQuery struct {
	AccountID string `json:"accountId" validate:"required"`
}

type GetOperationsSummaryQuery struct {
	AccountID string `json:"accountId" validate:"required"`
}

type GetOperationRequest struct {
	OperationID string `json:"operationId" validate:"required"`
}

type GetOperationReceiptRequest struct {
	OperationID string `json:"operationId" validate:"required"`
}

// MakeOperationRequest — общий набор полей всех операций, встраивается в каждый запрос.
type MakeOperationRequest struct {
	Status    models.OperationStatus `json:"status" validate:"required,enum"`
	Amount    decimal.Decimal        `json:"amount" validate:"positive"`
	CardID    string                 `json:"cardId" validate:"required"`
	AccountID string                 `json:"accountId" validate:"required"`
}

type MakeFeeOperationRequest struct {
	MakeOperationRequest
}

type MakeTopUpOperationRequest struct {
	MakeOperationRequest
}

type MakeCashbackOperationRequest struct {
	MakeOperationRequest
}

type MakeTransferOperationRequest struct {
	MakeOperationRequest
}

type MakeBillPaymentOperationRequest struct {
	MakeOperationRequest
}

type MakeCashWithdrawalOperationRequest struct {
	MakeOperationRequest
}

type MakePurchaseOperationRequest struct {
	MakeOperationRequest
	Category string `json:"category" validate:"required"`
}

// Документы

type GetDocumentRequest struct {
	AccountID string `json:"accountId" validate:"required"`
}

type (
	GetTariffDocumentRequest   GetDocumentRequest
	GetContractDocumentRequest GetDocumentRequest
)
