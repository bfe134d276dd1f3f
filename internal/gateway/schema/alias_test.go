package schema_test

import (
	"reflect"
	"strings"
	"testing"
	"unicode"

	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/stretchr/testify/assert"
)

func TestAliasMap(t *testing.T) {
	m := schema.NewAliasMap(map[string]string{"card_id": "cardId"})

	assert.Equal(t, "cardId", m.Camel("card_id"))
	assert.Equal(t, "card_id", m.Snake("cardId"))
	assert.Equal(t, "status", m.Camel("status"))
	assert.Equal(t, "status", m.Snake("status"))
}

func TestCasing_Key(t *testing.T) {
	assert.Equal(t, "expiryDate", schema.CamelCase.Key("expiryDate"))
	assert.Equal(t, "expiry_date", schema.SnakeCase.Key("expiryDate"))
	assert.Equal(t, "id", schema.SnakeCase.Key("id"))
}

// Каждое многословное имя поля любой схемы должно иметь запись в таблице.
func TestAliases_CoverAllSchemas(t *testing.T) {
	schemas := []any{
		schema.CreateUserRequest{}, schema.GetUserRequest{}, schema.CreateUserResponse{},
		schema.OpenAccountRequest{}, schema.GetAccountsQuery{}, schema.GetAccountsResponse{},
		schema.IssueCardRequest{}, schema.CardResponse{},
		schema.GetOperationsQuery{}, schema.GetOperationsSummaryQuery{}, schema.GetOperationRequest{},
		schema.GetOperationReceiptRequest{}, schema.MakePurchaseOperationRequest{},
		schema.GetOperationsResponse{}, schema.GetOperationsSummaryResponse{},
		schema.GetDocumentRequest{}, schema.GetTariffDocumentResponse{},
	}

	seen := map[reflect.Type]bool{}
	var walk func(reflect.Type)
	walk = func(rt reflect.Type) {
		for rt.Kind() == reflect.Slice || rt.Kind() == reflect.Pointer {
			rt = rt.Elem()
		}
		if rt.Kind() != reflect.Struct || seen[rt] || rt.PkgPath() == "time" {
			return
		}
		seen[rt] = true
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if !f.IsExported() {
				continue
			}
			name := strings.Split(f.Tag.Get("json"), ",")[0]
			if name != "" && strings.IndexFunc(name, unicode.IsUpper) >= 0 {
				snake := schema.Aliases.Snake(name)
				assert.NotEqual(t, name, snake, "%s.%s has no alias", rt.Name(), f.Name)
				assert.Equal(t, name, schema.Aliases.Camel(snake))
			}
			if f.Type.PkgPath() != "github.com/shopspring/decimal" {
				walk(f.Type)
			}
		}
	}
	for _, s := range schemas {
		walk(reflect.TypeOf(s))
	}
}
