package models

type Card struct {
	ID            string     `json:"id"`
	PIN           string     `json:"pin"`
	CVV           string     `json:"cvv"`
	Type          CardType   `json:"type"`
	Status        CardStatus `json:"status"`
	AccountID     string     `json:"accountId"`
	CardNumber    string     `json:"cardNumber"`
	CardHolder    string     `json:"cardHolder"`
	ExpiryDate    Date       `json:"expiryDate"`
	PaymentSystem string     `json:"paymentSystem"`
}
