package models

import "github.com/shopspring/decimal"

// Operation ссылается на счёт и карту только по идентификаторам.
type Operation struct {
	ID        string          `json:"id"`
	Type      OperationType   `json:"type"`
	Status    OperationStatus `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	CardID    string          `json:"cardId"`
	Category  string          `json:"category"`
	CreatedAt Timestamp       `json:"createdAt"`
	AccountID string          `json:"accountId"`
}

// OperationsSummary — агрегат по операциям счёта, вычисляется шлюзом.
type OperationsSummary struct {
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	ReceivedAmount decimal.Decimal `json:"receivedAmount"`
	CashbackAmount decimal.Decimal `json:"cashbackAmount"`
}
