package schema

import "github.com/Nzyazin/gatewayclient/internal/core/models"

type UserResponse struct {
	User models.User `json:"user"`
}

type (
	CreateUserResponse UserResponse
	GetUserResponse    UserResponse
)

type AccountResponse struct {
	Account models.Account `json:"account"`
}

type (
	OpenDepositAccountResponse    AccountResponse
	OpenDebitCardAccountResponse  AccountResponse
	OpenCreditCardAccountResponse AccountResponse
)

type GetAccountsResponse struct {
	Accounts []models.Account `json:"accounts" validate:"dive"`
}

type CardResponse struct {
	Card models.Card `json:"card"`
}

type (
	IssueVirtualCardResponse  CardResponse
	IssuePhysicalCardResponse CardResponse
)

type GetOperationsResponse struct {
	Operations []models.Operation `json:"operations" validate:"dive"`
}

type GetOperationsSummaryResponse struct {
	Summary models.OperationsSummary `json:"summary"`
}

type OperationResponse struct {
	Operation models.Operation `json:"operation"`
}

type (
	GetOperationResponse                OperationResponse
	MakeFeeOperationResponse            OperationResponse
	MakeTopUpOperationResponse          OperationResponse
	MakeCashbackOperationResponse       OperationResponse
	MakeTransferOperationResponse       OperationResponse
	MakePurchaseOperationResponse       OperationResponse
	MakeBillPaymentOperationResponse    OperationResponse
	MakeCashWithdrawalOperationResponse OperationResponse
)

type GetOperationReceiptResponse struct {
	Receipt models.Document `json:"receipt"`
}

type GetTariffDocumentResponse struct {
	Tariff models.Document `json:"tariff"`
}

type GetContractDocumentResponse struct {
	Contract models.Document `json:"contract"`
}
