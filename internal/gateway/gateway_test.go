package gateway_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nzyazin/gatewayclient/internal/core/logger"
	"github.com/Nzyazin/gatewayclient/internal/core/models"
	"github.com/Nzyazin/gatewayclient/internal/gateway"
	"github.com/Nzyazin/gatewayclient/internal/gateway/rpc"
	"github.com/Nzyazin/gatewayclient/internal/gateway/schema"
	"github.com/Nzyazin/gatewayclient/internal/gateway/transport"
	"github.com/Nzyazin/gatewayclient/internal/server"
	"github.com/Nzyazin/gatewayclient/pkg/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

const stubURL = "http://localhost:8003"

var backends = map[string]func(t *testing.T) *gateway.Factory{
	"http": newHTTPFactory,
	"rpc":  newRPCFactory,
}

func newStub(t *testing.T) *server.Server {
	t.Helper()
	srv := server.NewServer(logger.NewNop(), stubURL)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })
	return srv
}

func newHTTPFactory(t *testing.T) *gateway.Factory {
	t.Helper()
	ts := httptest.NewServer(newStub(t).Handler())
	t.Cleanup(ts.Close)

	f, err := gateway.NewHTTPFactory(config.GatewayConfig{
		HTTPBaseURL: ts.URL,
		Timeout:     5 * time.Second,
		AuthToken:   "test-token",
	}, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func newRPCFactory(t *testing.T) *gateway.Factory {
	t.Helper()
	srv := newStub(t)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = srv.ServeRPC(lis) }()

	f, err := gateway.NewRPCFactory(config.GatewayConfig{
		GRPCAddr:  "passthrough:///bufnet",
		Timeout:   5 * time.Second,
		AuthToken: "test-token",
	}, logger.NewNop(), rpc.WithDialOptions(grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	})))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func createUser(t *testing.T, f *gateway.Factory) *models.User {
	t.Helper()
	user, err := f.Users().CreateUser(context.Background(), schema.CreateUserRequest{
		Email:       "a@b.com",
		LastName:    "Doe",
		FirstName:   "Jane",
		MiddleName:  "Q",
		PhoneNumber: "+10000000000",
	})
	require.NoError(t, err)
	return user
}

func forEachBackend(t *testing.T, fn func(t *testing.T, f *gateway.Factory)) {
	for name, build := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, build(t))
		})
	}
}

func TestCreateUser(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		user := createUser(t, f)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "Doe", user.LastName)
		assert.Equal(t, "Jane", user.FirstName)
		assert.Equal(t, "Q", user.MiddleName)
		assert.Equal(t, "+10000000000", user.PhoneNumber)

		got, err := f.Users().GetUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})
}

func TestOpenAccounts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()
		user := createUser(t, f)
		accounts := f.Accounts()

		credit, err := accounts.OpenCreditCardAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AccountTypeCreditCard, credit.Type)
		assert.GreaterOrEqual(t, len(credit.Cards), 1)

		debit, err := accounts.OpenDebitCardAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AccountTypeDebitCard, debit.Type)
		assert.Len(t, debit.Cards, 2)

		deposit, err := accounts.OpenDepositAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AccountTypeDeposit, deposit.Type)
		assert.NotNil(t, deposit.Cards)
		assert.Empty(t, deposit.Cards)

		list, err := accounts.GetAccounts(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, credit.ID, list[0].ID)
		assert.Equal(t, len(credit.Cards), len(list[0].Cards))
	})
}

func TestIssueCards(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()
		user := createUser(t, f)

		account, err := f.Accounts().OpenDepositAccount(ctx, user.ID)
		require.NoError(t, err)

		virtual, err := f.Cards().IssueVirtualCard(ctx, user.ID, account.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CardTypeVirtual, virtual.Type)
		assert.Equal(t, account.ID, virtual.AccountID)
		assert.False(t, virtual.ExpiryDate.IsZero())

		physical, err := f.Cards().IssuePhysicalCard(ctx, user.ID, account.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CardTypePhysical, physical.Type)
	})
}

func TestOperations(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()
		user := createUser(t, f)
		ops := f.Operations()

		account, err := f.Accounts().OpenDebitCardAccount(ctx, user.ID)
		require.NoError(t, err)
		cardID := account.Cards[0].ID

		empty, err := ops.GetOperations(ctx, account.ID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		topUp, err := ops.MakeTopUpOperation(ctx, cardID, account.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, topUp.ID)
		assert.Equal(t, models.OperationTypeTopUp, topUp.Type)
		assert.Equal(t, models.OperationStatusCompleted, topUp.Status)
		assert.Equal(t, cardID, topUp.CardID)
		assert.Equal(t, account.ID, topUp.AccountID)
		assert.True(t, gateway.DefaultAmount.Equal(topUp.Amount))

		purchase, err := ops.MakePurchaseOperation(ctx, cardID, account.ID,
			gateway.WithAmount(decimal.RequireFromString("12.34")),
			gateway.WithCategory("food"),
		)
		require.NoError(t, err)
		assert.Equal(t, models.OperationTypePurchase, purchase.Type)
		assert.Equal(t, "food", purchase.Category)
		assert.Equal(t, "12.34", purchase.Amount.String())

		made := []func(context.Context, string, string, ...gateway.OperationOption) (*models.Operation, error){
			ops.MakeFeeOperation, ops.MakeCashbackOperation, ops.MakeTransferOperation,
			ops.MakeBillPaymentOperation, ops.MakeCashWithdrawalOperation,
		}
		for _, op := range made {
			_, err := op(ctx, cardID, account.ID, gateway.WithStatus(models.OperationStatusInProgress))
			require.NoError(t, err)
		}

		list, err := ops.GetOperations(ctx, account.ID)
		require.NoError(t, err)
		assert.Len(t, list, 7)

		summary, err := ops.GetOperationsSummary(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "100", summary.ReceivedAmount.String())
		assert.Equal(t, "12.34", summary.SpentAmount.String())
		assert.True(t, summary.CashbackAmount.IsZero())

		first, err := ops.GetOperation(ctx, topUp.ID)
		require.NoError(t, err)
		second, err := ops.GetOperation(ctx, topUp.ID)
		require.NoError(t, err)
		assert.Equal(t, first, second)
		assert.Equal(t, topUp.ID, first.ID)
		assert.True(t, topUp.CreatedAt.Equal(first.CreatedAt.Time))

		receipt, err := ops.GetOperationReceipt(ctx, topUp.ID)
		require.NoError(t, err)
		assert.Contains(t, receipt.URL, topUp.ID)
		assert.NotEmpty(t, receipt.Document)
	})
}

func TestDocuments(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()
		user := createUser(t, f)

		account, err := f.Accounts().OpenCreditCardAccount(ctx, user.ID)
		require.NoError(t, err)

		tariff, err := f.Documents().GetTariffDocument(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, stubURL+"/documents/tariff/"+account.ID+".pdf", tariff.URL)

		contract, err := f.Documents().GetContractDocument(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, stubURL+"/documents/contract/"+account.ID+".pdf", contract.URL)
	})
}

func TestRemoteRejection(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()

		_, err := f.Operations().GetOperationReceipt(ctx, "00000000-0000-0000-0000-000000000000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, schema.ErrRemoteRejection))
		assert.False(t, errors.Is(err, schema.ErrSchemaValidation))

		var rejection *schema.RemoteRejectionError
		require.True(t, errors.As(err, &rejection))
		assert.Equal(t, http.StatusNotFound, rejection.StatusCode)
		assert.Equal(t, "Operation not found", rejection.Detail)

		_, err = f.Accounts().OpenDepositAccount(ctx, "unknown-user")
		require.True(t, errors.As(err, &rejection))
		assert.True(t, rejection.NotFound())
	})
}

func TestRawMethods(t *testing.T) {
	forEachBackend(t, func(t *testing.T, f *gateway.Factory) {
		ctx := context.Background()
		user := createUser(t, f)

		resp, err := f.Accounts().OpenDepositAccountAPI(ctx, schema.OpenDepositAccountRequest{UserID: user.ID})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(resp.Body), `"DEPOSIT"`)

		resp, err = f.Operations().GetOperationAPI(ctx, schema.GetOperationRequest{OperationID: "missing"})
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestTransportFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	f, err := gateway.NewHTTPFactory(config.GatewayConfig{HTTPBaseURL: "http://" + addr, Timeout: time.Second}, logger.NewNop())
	require.NoError(t, err)
	defer f.Close()

	_, err = f.Users().GetUser(context.Background(), "u-1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, transport.ErrTransport))
	assert.False(t, errors.Is(err, schema.ErrRemoteRejection))
}

func TestFactories_AreIndependent(t *testing.T) {
	cfg := config.GatewayConfig{HTTPBaseURL: stubURL, GRPCAddr: "localhost:9003", Timeout: time.Second}

	a, err := gateway.NewHTTPFactory(cfg, logger.NewNop())
	require.NoError(t, err)
	b, err := gateway.NewHTTPFactory(cfg, logger.NewNop())
	require.NoError(t, err)
	r, err := gateway.NewRPCFactory(cfg, logger.NewNop())
	require.NoError(t, err)

	assert.Same(t, a.Users(), a.Users())
	assert.NotSame(t, a.Users(), b.Users())

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
	require.NoError(t, r.Close())

	_, err = gateway.NewHTTPFactory(config.GatewayConfig{HTTPBaseURL: "not a url"}, logger.NewNop())
	assert.Error(t, err)
}
