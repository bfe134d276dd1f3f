package schema

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	usersService      = "contracts.services.gateway.users.UsersGatewayService"
	accountsService   = "contracts.services.gateway.accounts.AccountsGatewayService"
	cardsService      = "contracts.services.gateway.cards.CardsGatewayService"
	operationsService = "contracts.services.gateway.operations.OperationsGatewayService"
	documentsService  = "contracts.services.gateway.documents.DocumentsGatewayService"
)

// Endpoint описывает одну точку шлюза сразу для HTTP и для RPC.
// Path может содержать один параметр вида {Param}; Param задаётся в snake_case.
type Endpoint struct {
	Service string
	Name    string
	Method  string
	Path    string
	Param   string
}

// FullMethod — полное имя RPC-метода.
func (e Endpoint) FullMethod() string {
	return "/" + e.Service + "/" + e.Name
}

func (e Endpoint) PathFor(param string) string {
	if e.Param == "" {
		return e.Path
	}
	return strings.Replace(e.Path, "{"+e.Param+"}", url.PathEscape(param), 1)
}

var (
	CreateUser = Endpoint{Service: usersService, Name: "CreateUser", Method: http.MethodPost, Path: "/api/v1/users"}
	GetUser    = Endpoint{Service: usersService, Name: "GetUser", Method: http.MethodGet, Path: "/api/v1/users/{user_id}", Param: "user_id"}

	GetAccounts           = Endpoint{Service: accountsService, Name: "GetAccounts", Method: http.MethodGet, Path: "/api/v1/accounts"}
	OpenDepositAccount    = Endpoint{Service: accountsService, Name: "OpenDepositAccount", Method: http.MethodPost, Path: "/api/v1/accounts/open-deposit-account"}
	OpenDebitCardAccount  = Endpoint{Service: accountsService, Name: "OpenDebitCardAccount", Method: http.MethodPost, Path: "/api/v1/accounts/open-debit-card-account"}
	OpenCreditCardAccount = Endpoint{Service: accountsService, Name: "OpenCreditCardAccount", Method: http.MethodPost, Path: "/api/v1/accounts/open-credit-card-account"}

	IssueVirtualCard  = Endpoint{Service: cardsService, Name: "IssueVirtualCard", Method: http.MethodPost, Path: "/api/v1/cards/issue-virtual-card"}
	IssuePhysicalCard = Endpoint{Service: cardsService, Name: "IssuePhysicalCard", Method: http.MethodPost, Path: "/api/v1/cards/issue-physical-card"}

	GetOperations               = Endpoint{Service: operationsService, Name: "GetOperations", Method: http.MethodGet, Path: "/api/v1/operations"}
	GetOperationsSummary        = Endpoint{Service: operationsService, Name: "GetOperationsSummary", Method: http.MethodGet, Path: "/api/v1/operations/operations-summary"}
	GetOperationReceipt         = Endpoint{Service: operationsService, Name: "GetOperationReceipt", Method: http.MethodGet, Path: "/api/v1/operations/operation-receipt/{operation_id}", Param: "operation_id"}
	GetOperation                = Endpoint{Service: operationsService, Name: "GetOperation", Method: http.MethodGet, Path: "/api/v1/operations/{operation_id}", Param: "operation_id"}
	MakeFeeOperation            = Endpoint{Service: operationsService, Name: "MakeFeeOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-fee-operation"}
	MakeTopUpOperation          = Endpoint{Service: operationsService, Name: "MakeTopUpOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-top-up-operation"}
	MakeCashbackOperation       = Endpoint{Service: operationsService, Name: "MakeCashbackOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-cashback-operation"}
	MakeTransferOperation       = Endpoint{Service: operationsService, Name: "MakeTransferOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-transfer-operation"}
	MakePurchaseOperation       = Endpoint{Service: operationsService, Name: "MakePurchaseOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-purchase-operation"}
	MakeBillPaymentOperation    = Endpoint{Service: operationsService, Name: "MakeBillPaymentOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-bill-payment-operation"}
	MakeCashWithdrawalOperation = Endpoint{Service: operationsService, Name: "MakeCashWithdrawalOperation", Method: http.MethodPost, Path: "/api/v1/operations/make-cash-withdrawal-operation"}

	GetTariffDocument   = Endpoint{Service: documentsService, Name: "GetTariffDocument", Method: http.MethodGet, Path: "/api/v1/documents/tariff-document/{account_id}", Param: "account_id"}
	GetContractDocument = Endpoint{Service: documentsService, Name: "GetContractDocument", Method: http.MethodGet, Path: "/api/v1/documents/contract-document/{account_id}", Param: "account_id"}
)

// Endpoints возвращает весь каталог. Более специфичные пути идут раньше
// параметризованных, чтобы маршрутизатор сопоставлял их первыми.
func Endpoints() []Endpoint {
	return []Endpoint{
		CreateUser, GetUser,
		GetAccounts, OpenDepositAccount, OpenDebitCardAccount, OpenCreditCardAccount,
		IssueVirtualCard, IssuePhysicalCard,
		GetOperations, GetOperationsSummary, GetOperationReceipt,
		MakeFeeOperation, MakeTopUpOperation, MakeCashbackOperation, MakeTransferOperation,
		MakePurchaseOperation, MakeBillPaymentOperation, MakeCashWithdrawalOperation,
		GetOperation,
		GetTariffDocument, GetContractDocument,
	}
}
