package activity

import (
	"strconv"
	"time"

	"github.com/botpanel/botpanel/internal/models"
)

const (
	OrderStatusUpdated  = "ORDER_STATUS_UPDATED"
	MessageSent         = "MESSAGE_SENT"
	BotRestarted        = "BOT_RESTARTED"
	BotStopped          = "BOT_STOPPED"
	WebhookUpdated      = "WEBHOOK_UPDATED"
	DiagnosticRun       = "DIAGNOSTIC_RUN"
	WithdrawalInitiated = "WITHDRAWAL_INITIATED"
)

const (
	ObjectOrder        = "order"
	ObjectMessage      = "message"
	ObjectSystemStatus = "system_status"
	ObjectTransaction  = "transaction"
)

// NewLogFilter stamps the filter fields with the current time.
func NewLogFilter(fields map[string]string) models.LogFilter {
	return models.LogFilter{
		Fields:    fields,
		Timestamp: strconv.FormatInt(time.Now().UnixNano(), 10),
	}
}
