package services

import (
	"context"
	"time"

	"github.com/botpanel/botpanel/internal/activity"
	"github.com/botpanel/botpanel/internal/handlers"
	"github.com/botpanel/botpanel/internal/lifecycle"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/notifier"
	"github.com/botpanel/botpanel/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SystemService struct {
	DB             *gorm.DB
	Lifecycle      *lifecycle.Controller
	ActivityLogger activity.IActivityLogger
	Notifier       notifier.INotifier
	OperatorEmail  string
	StartedAt      time.Time
}

func (s SystemService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/status", handlers.GetOneHandler(s.GetStatus))

	r.With(m.Validate[models.DiagnosticsBody]).
		Post("/diagnostics", handlers.BodyHandler(s.RunDiagnostics))

	return r
}

func (s SystemService) BotRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/restart", handlers.ActionHandler(s.RestartBot))
	r.Post("/stop", handlers.ActionHandler(s.StopBot))
	return r
}

func (s SystemService) WebhookRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/update", handlers.ActionHandler(s.UpdateWebhook))
	return r
}

func (s SystemService) GetStatus(_ *zap.Logger, _ uuid.UUIDs) (models.SystemStatusResponse, error) {
	status, err := sql.GetSystemStatus(s.DB)
	if err != nil {
		return models.SystemStatusResponse{}, err
	}

	return models.SystemStatusResponse{
		SystemStatus: status,
		Indicators:   lifecycle.Indicators(status),
	}, nil
}

func (s SystemService) RestartBot(logger *zap.Logger, _ uuid.UUIDs) (models.ActionResponse, error) {
	status, err := s.Lifecycle.Restart()
	if err != nil {
		return models.ActionResponse{}, err
	}

	s.logTransition(logger, activity.BotRestarted, status)
	logger.Info("Bot restart initiated", zap.Int64("revision", status.Revision))

	return models.ActionResponse{Success: true, Message: "Bot restart initiated"}, nil
}

func (s SystemService) StopBot(logger *zap.Logger, _ uuid.UUIDs) (models.ActionResponse, error) {
	status, err := s.Lifecycle.Stop()
	if err != nil {
		return models.ActionResponse{}, err
	}

	s.logTransition(logger, activity.BotStopped, status)

	if s.Notifier != nil {
		go func() {
			err := s.Notifier.NotifyFromTemplate(
				s.OperatorEmail,
				"Bot stopped",
				notifier.TemplateBotStopped,
				struct {
					StoppedAt     string
					BotStatus     string
					WebhookStatus string
				}{
					StoppedAt:     status.UpdatedAt.Format(time.RFC1123),
					BotStatus:     status.BotStatus,
					WebhookStatus: status.WebhookStatus,
				},
			)
			if err != nil {
				zap.L().Error("Failed to notify bot stop", zap.Error(err))
			}
		}()
	}

	logger.Info("Bot stopped", zap.Int64("revision", status.Revision))

	return models.ActionResponse{Success: true, Message: "Bot stopped successfully"}, nil
}

func (s SystemService) UpdateWebhook(logger *zap.Logger, _ uuid.UUIDs) (models.ActionResponse, error) {
	status, err := s.Lifecycle.UpdateWebhook()
	if err != nil {
		return models.ActionResponse{}, err
	}

	s.logTransition(logger, activity.WebhookUpdated, status)

	return models.ActionResponse{Success: true, Message: "Webhook updated successfully"}, nil
}

func (s SystemService) RunDiagnostics(
	logger *zap.Logger,
	_ uuid.UUIDs,
	body models.DiagnosticsBody,
) (models.DiagnosticsResponse, error) {
	output, err := lifecycle.RunDiagnostic(context.Background(), s.DB, body.Command, s.StartedAt)
	if err != nil {
		logger.Error("Diagnostic failed", zap.String("command", body.Command), zap.Error(err))
		return models.DiagnosticsResponse{}, err
	}

	action := models.Activity{
		Message: activity.DiagnosticRun,
		Object:  body,
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.DiagnosticRun,
			"object_type": activity.ObjectSystemStatus,
			"object_id":   body.Command,
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log diagnostic activity", zap.Error(logErr))
	}

	return models.DiagnosticsResponse{Success: true, Output: output}, nil
}

func (s SystemService) logTransition(logger *zap.Logger, action string, status models.SystemStatus) {
	err := s.ActivityLogger.Send(models.Activity{
		Message: action,
		Object:  status.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      action,
			"object_type": activity.ObjectSystemStatus,
			"object_id":   status.ID.String(),
		}),
	})
	if err != nil {
		logger.Error("Failed to log lifecycle activity", zap.String("action", action), zap.Error(err))
	}
}
