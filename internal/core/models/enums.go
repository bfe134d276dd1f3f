package models

import "fmt"

// Закрытые наборы строковых тегов. Перечисления с UNSPECIFIED при декодировании
// превращают неизвестное значение в UNSPECIFIED, остальные возвращают ошибку.

type AccountType string

const (
	AccountTypeCreditCard  AccountType = "CREDIT_CARD"
	AccountTypeDebitCard   AccountType = "DEBIT_CARD"
	AccountTypeDeposit     AccountType = "DEPOSIT"
	AccountTypeUnspecified AccountType = "UNSPECIFIED"
)

func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCreditCard, AccountTypeDebitCard, AccountTypeDeposit, AccountTypeUnspecified:
		return true
	}
	return false
}

func (t *AccountType) UnmarshalText(b []byte) error {
	*t = AccountType(b)
	if !t.Valid() {
		*t = AccountTypeUnspecified
	}
	return nil
}

func (AccountType) SchemaType() string {
	return "enum(CREDIT_CARD|DEBIT_CARD|DEPOSIT|UNSPECIFIED)"
}

type AccountStatus string

const (
	AccountStatusActive      AccountStatus = "ACTIVE"
	AccountStatusBlocked     AccountStatus = "BLOCKED"
	AccountStatusUnspecified AccountStatus = "UNSPECIFIED"
)

func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusBlocked, AccountStatusUnspecified:
		return true
	}
	return false
}

func (s *AccountStatus) UnmarshalText(b []byte) error {
	*s = AccountStatus(b)
	if !s.Valid() {
		*s = AccountStatusUnspecified
	}
	return nil
}

func (AccountStatus) SchemaType() string {
	return "enum(ACTIVE|BLOCKED|UNSPECIFIED)"
}

type CardType string

const (
	CardTypePhysical    CardType = "PHYSICAL"
	CardTypeVirtual     CardType = "VIRTUAL"
	CardTypeUnspecified CardType = "UNSPECIFIED"
)

func (t CardType) Valid() bool {
	switch t {
	case CardTypePhysical, CardTypeVirtual, CardTypeUnspecified:
		return true
	}
	return false
}

func (t *CardType) UnmarshalText(b []byte) error {
	*t = CardType(b)
	if !t.Valid() {
		*t = CardTypeUnspecified
	}
	return nil
}

func (CardType) SchemaType() string {
	return "enum(PHYSICAL|VIRTUAL|UNSPECIFIED)"
}

type CardStatus string

const (
	CardStatusActive      CardStatus = "ACTIVE"
	CardStatusBlocked     CardStatus = "BLOCKED"
	CardStatusUnspecified CardStatus = "UNSPECIFIED"
)

func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusActive, CardStatusBlocked, CardStatusUnspecified:
		return true
	}
	return false
}

func (s *CardStatus) UnmarshalText(b []byte) error {
	*s = CardStatus(b)
	if !s.Valid() {
		*s = CardStatusUnspecified
	}
	return nil
}

func (CardStatus) SchemaType() string {
	return "enum(ACTIVE|BLOCKED|UNSPECIFIED)"
}

// OperationType не имеет запасного тега: неизвестный тип операции является ошибкой.
type OperationType string

const (
	OperationTypeFee            OperationType = "FEE"
	OperationTypeTopUp          OperationType = "TOP_UP"
	OperationTypePurchase       OperationType = "PURCHASE"
	OperationTypeCashback       OperationType = "CASHBACK"
	OperationTypeTransfer       OperationType = "TRANSFER"
	OperationTypeBillPayment    OperationType = "BILL_PAYMENT"
	OperationTypeCashWithdrawal OperationType = "CASH_WITHDRAWAL"
)

func (t OperationType) Valid() bool {
	switch t {
	case OperationTypeFee, OperationTypeTopUp, OperationTypePurchase, OperationTypeCashback,
		OperationTypeTransfer, OperationTypeBillPayment, OperationTypeCashWithdrawal:
		return true
	}
	return false
}

func (t *OperationType) UnmarshalText(b []byte) error {
	v := OperationType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown operation type %q", string(b))
	}
	*t = v
	return nil
}

func (OperationType) SchemaType() string {
	return "enum(FEE|TOP_UP|PURCHASE|CASHBACK|TRANSFER|BILL_PAYMENT|CASH_WITHDRAWAL)"
}

type OperationStatus string

const (
	OperationStatusFailed      OperationStatus = "FAILED"
	OperationStatusCompleted   OperationStatus = "COMPLETED"
	OperationStatusInProgress  OperationStatus = "IN_PROGRESS"
	OperationStatusUnspecified OperationStatus = "UNSPECIFIED"
)

func (s OperationStatus) Valid() bool {
	switch s {
	case OperationStatusFailed, OperationStatusCompleted, OperationStatusInProgress, OperationStatusUnspecified:
		return true
	}
	return false
}

func (s *OperationStatus) UnmarshalText(b []byte) error {
	*s = OperationStatus(b)
	if !s.Valid() {
		*s = OperationStatusUnspecified
	}
	return nil
}

func (OperationStatus) SchemaType() string {
	return "enum(FAILED|COMPLETED|IN_PROGRESS|UNSPECIFIED)"
}
