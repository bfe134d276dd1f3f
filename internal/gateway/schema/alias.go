package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AliasMap переводит имена полей между доменным snake_case и lowerCamelCase,
// которым пользуется HTTP-шлюз. Имена без записи в таблице совпадают в обеих формах.
type AliasMap struct {
	toCamel map[string]string
	toSnake map[string]string
}

func NewAliasMap(snakeToCamel map[string]string) *AliasMap {
	m := &AliasMap{
		toCamel: make(map[string]string, len(snakeToCamel)),
		toSnake: make(map[string]string, len(snakeToCamel)),
	}
	for snake, camel := range snakeToCamel {
		m.toCamel[snake] = camel
		m.toSnake[camel] = snake
	}
	return m
}

func (m *AliasMap) Camel(snake string) string {
	if camel, ok := m.toCamel[snake]; ok {
		return camel
	}
	return snake
}

func (m *AliasMap) Snake(camel string) string {
	if snake, ok := m.toSnake[camel]; ok {
		return snake
	}
	return camel
}

// Aliases — единая таблица имён для всех схем шлюза.
var Aliases = NewAliasMap(map[string]string{
	"user_id":         "userId",
	"account_id":      "accountId",
	"card_id":         "cardId",
	"operation_id":    "operationId",
	"last_name":       "lastName",
	"first_name":      "firstName",
	"middle_name":     "middleName",
	"phone_number":    "phoneNumber",
	"card_number":     "cardNumber",
	"card_holder":     "cardHolder",
	"expiry_date":     "expiryDate",
	"payment_system":  "paymentSystem",
	"created_at":      "createdAt",
	"spent_amount":    "spentAmount",
	"received_amount": "receivedAmount",
	"cashback_amount": "cashbackAmount",
})

// Casing — соглашение об именах полей на проводе.
type Casing int

const (
	// CamelCase используется в JSON-телах HTTP-шлюза; теги структур уже в этой форме.
	CamelCase Casing = iota
	// SnakeCase используется в сообщениях RPC-шлюза.
	SnakeCase
)

func (c Casing) String() string {
	switch c {
	case CamelCase:
		return "camelCase"
	case SnakeCase:
		return "snake_case"
	default:
		return fmt.Sprintf("Casing(%d)", int(c))
	}
}

// Key переводит camelCase-имя поля в соглашение c.
func (c Casing) Key(camel string) string {
	if c == SnakeCase {
		return Aliases.Snake(camel)
	}
	return camel
}

func (c Casing) fromCamel(data []byte) ([]byte, error) {
	if c != SnakeCase {
		return data, nil
	}
	return renameKeys(data, Aliases.Snake)
}

func (c Casing) toCamel(data []byte) ([]byte, error) {
	if c != SnakeCase {
		return data, nil
	}
	return renameKeys(data, Aliases.Camel)
}

// renameKeys переименовывает ключи всех объектов документа. Числа сохраняют
// исходную запись, поэтому суммы не проходят через float64.
func renameKeys(data []byte, rename func(string) string) ([]byte, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return data, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return json.Marshal(renameValue(v, rename))
}

func renameValue(v any, rename func(string) string) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[rename(k)] = renameValue(val, rename)
		}
		return out
	case []any:
		for i := range t {
			t[i] = renameValue(t[i], rename)
		}
		return t
	default:
		return v
	}
}
