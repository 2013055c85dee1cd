package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/botpanel/botpanel/internal/activity"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/handlers"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"
	"github.com/botpanel/botpanel/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const withdrawalDescription = "Withdrawal to bank account"

// PaymentService simulates the Xendit account of the shop.
type PaymentService struct {
	DB             *gorm.DB
	Payments       models.PaymentsConfiguration
	ActivityLogger activity.IActivityLogger
	Notifier       notifier.INotifier
	OperatorEmail  string
	Now            func() time.Time
}

func (s PaymentService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/balance", handlers.GetOneHandler(s.GetBalance))

	r.With(m.Validate[models.WithdrawBody]).
		Post("/withdraw", handlers.BodyHandler(s.Withdraw))

	return r
}

func (s PaymentService) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", handlers.GetListHandler(s.ListTransactions))
	return r
}

func (s PaymentService) GetBalance(_ *zap.Logger, _ uuid.UUIDs) (models.BalanceResponse, error) {
	return models.BalanceResponse{
		Balance:       s.Payments.Balance,
		Pending:       s.Payments.Pending,
		MonthlyVolume: s.Payments.MonthlyVolume,
	}, nil
}

func (s PaymentService) ListTransactions(_ *zap.Logger, _ uuid.UUIDs) ([]models.Transaction, error) {
	return sql.ListTransactions(s.DB)
}

// withdrawalID keeps the millisecond prefix and adds a random suffix so
// withdrawals in the same millisecond stay unique.
func withdrawalID(at time.Time) string {
	return fmt.Sprintf("WD-%d-%s", at.UnixMilli(), uuid.NewString()[:8])
}

// Withdraw records the debit and reports it to the operator. No money actually moves.
func (s PaymentService) Withdraw(logger *zap.Logger, _ uuid.UUIDs, body models.WithdrawBody) (models.WithdrawResponse, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(body.Amount))
	if err != nil || !amount.IsPositive() {
		return models.WithdrawResponse{}, apierrors.NewAPIError(400, apierrors.ErrInvalidWithdrawal)
	}

	requestedAt := now(s.Now)
	transaction := models.Transaction{
		TransactionID: withdrawalID(requestedAt),
		Description:   withdrawalDescription,
		Amount:        amount,
		Type:          models.TransactionTypeDebit,
		Time:          "Just now",
	}

	if err = sql.CreateTransaction(s.DB, &transaction); err != nil {
		logger.Error("Failed to record withdrawal", zap.Error(err))
		return models.WithdrawResponse{}, apierrors.NewAPIError(500, apierrors.ErrCreateFailed)
	}

	action := models.Activity{
		Message: activity.WithdrawalInitiated,
		Object:  transaction.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.WithdrawalInitiated,
			"object_type": activity.ObjectTransaction,
			"object_id":   transaction.ID.String(),
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log withdrawal activity", zap.Error(logErr))
	}

	if s.Notifier != nil {
		go func() {
			err := s.Notifier.NotifyFromTemplate(
				s.OperatorEmail,
				"Withdrawal initiated",
				notifier.TemplateWithdrawalInitiated,
				struct {
					Amount        string
					TransactionID string
					RequestedAt   string
				}{
					Amount:        amount.StringFixed(2),
					TransactionID: transaction.TransactionID,
					RequestedAt:   requestedAt.Format(time.RFC1123),
				},
			)
			if err != nil {
				zap.L().Error("Failed to notify withdrawal", zap.String("transaction_id", transaction.TransactionID), zap.Error(err))
			}
		}()
	}

	logger.Info("Withdrawal initiated",
		zap.String("transaction_id", transaction.TransactionID),
		zap.String("amount", amount.StringFixed(2)))

	return models.WithdrawResponse{
		Success:       true,
		Message:       "Withdrawal initiated successfully",
		Amount:        amount.StringFixed(2),
		TransactionID: transaction.TransactionID,
	}, nil
}
