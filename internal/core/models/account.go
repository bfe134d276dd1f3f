package models

import "github.com/shopspring/decimal"

func init() {
	// Шлюз принимает и отдаёт суммы JSON-числами, а не строками.
	// Настройка глобальная: действует на всех пользователей decimal в процессе.
	decimal.MarshalJSONWithoutQuotes = true
}

// Account владеет своими картами: карты не переживают счёт.
type Account struct {
	ID      string          `json:"id"`
	Type    AccountType     `json:"type"`
	Status  AccountStatus   `json:"status"`
	Balance decimal.Decimal `json:"balance"`
	Cards   []Card          `json:"cards" validate:"dive"`
}

func (a Account) HasCards() bool {
	return len(a.Cards) > 0
}
