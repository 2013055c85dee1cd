package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/botpanel/botpanel/internal/activity"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPaymentService(t *testing.T) (PaymentService, *MockActivityLogger, *MockNotifier) {
	t.Helper()
	logger := &MockActivityLogger{}
	mailer := &MockNotifier{}
	return PaymentService{
		DB: newSeededDB(t),
		Payments: models.PaymentsConfiguration{
			Balance:       "$47,832.50",
			Pending:       "$3,245.00",
			MonthlyVolume: "$124,560",
		},
		ActivityLogger: logger,
		Notifier:       mailer,
		OperatorEmail:  "ops@example.com",
		Now:            func() time.Time { return time.UnixMilli(1767225600123) },
	}, logger, mailer
}

func TestPaymentBalance(t *testing.T) {
	service, _, _ := newPaymentService(t)

	balance, err := service.GetBalance(zap.NewNop(), uuid.UUIDs{})
	require.NoError(t, err)
	assert.Equal(t, models.BalanceResponse{
		Balance:       "$47,832.50",
		Pending:       "$3,245.00",
		MonthlyVolume: "$124,560",
	}, balance)
}

func TestPaymentWithdraw(t *testing.T) {
	t.Run("records a debit and notifies the operator", func(t *testing.T) {
		service, logger, mailer := newPaymentService(t)

		resp, err := service.Withdraw(zap.NewNop(), uuid.UUIDs{}, models.WithdrawBody{Amount: "250.5"})
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, "Withdrawal initiated successfully", resp.Message)
		assert.Equal(t, "250.50", resp.Amount)
		assert.Regexp(t, `^WD-1767225600123-[0-9a-f]{8}$`, resp.TransactionID)

		transactions, err := service.ListTransactions(zap.NewNop(), uuid.UUIDs{})
		require.NoError(t, err)
		require.Len(t, transactions, 3)

		var debit *models.Transaction
		for i := range transactions {
			if transactions[i].TransactionID == resp.TransactionID {
				debit = &transactions[i]
			}
		}
		require.NotNil(t, debit)
		assert.Equal(t, models.TransactionTypeDebit, debit.Type)
		assert.Equal(t, "250.50", debit.Amount.StringFixed(2))

		assert.Equal(t, []string{activity.WithdrawalInitiated}, logger.actions())
		require.Eventually(t, func() bool { return len(mailer.notifications()) == 1 }, time.Second, 10*time.Millisecond)
		sent := mailer.notifications()[0]
		assert.Equal(t, "ops@example.com", sent.To)
		assert.Equal(t, notifier.TemplateWithdrawalInitiated, sent.Template)
	})

	t.Run("non positive amount", func(t *testing.T) {
		service, logger, _ := newPaymentService(t)

		_, err := service.Withdraw(zap.NewNop(), uuid.UUIDs{}, models.WithdrawBody{Amount: "-3"})

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 400, apiErr.Code)
		assert.Equal(t, apierrors.ErrInvalidWithdrawal, apiErr.Message)
		assert.Empty(t, logger.actions())
	})

	t.Run("same millisecond withdrawals get distinct ids", func(t *testing.T) {
		service, _, _ := newPaymentService(t)
		service.Notifier = nil

		first, err := service.Withdraw(zap.NewNop(), uuid.UUIDs{}, models.WithdrawBody{Amount: "10"})
		require.NoError(t, err)
		second, err := service.Withdraw(zap.NewNop(), uuid.UUIDs{}, models.WithdrawBody{Amount: "20"})
		require.NoError(t, err)

		assert.NotEqual(t, first.TransactionID, second.TransactionID)
		transactions, err := service.ListTransactions(zap.NewNop(), uuid.UUIDs{})
		require.NoError(t, err)
		assert.Len(t, transactions, 4)
	})

	t.Run("works without a notifier", func(t *testing.T) {
		service, _, _ := newPaymentService(t)
		service.Notifier = nil

		_, err := service.Withdraw(zap.NewNop(), uuid.UUIDs{}, models.WithdrawBody{Amount: "10"})
		assert.NoError(t, err)
	})
}

func TestPaymentRoutes(t *testing.T) {
	service, _, _ := newPaymentService(t)
	router := chi.NewRouter()
	router.Mount("/api/xendit", service.Routes())
	router.Mount("/api/transactions", service.TransactionRoutes())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/xendit/withdraw", strings.NewReader(`{"amount":"abc"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apierrors.ErrInvalidWithdrawal)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transactions", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "TXN-12345")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/xendit/balance", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"monthlyVolume":"$124,560"`)
}
