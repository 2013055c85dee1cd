package services

import (
	"time"

	"github.com/botpanel/botpanel/internal/activity"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/handlers"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	messageTimestampLayout = "3:04 PM"
	conversationJustNow    = "now"
)

var replyTemplates = []models.ReplyTemplate{
	{
		Key:     "order_status",
		Title:   "Order status",
		Content: "Thanks for reaching out! Your order is being prepared and we will let you know as soon as it ships.",
	},
	{
		Key:     "delivery_eta",
		Title:   "Delivery time",
		Content: "Your order is on its way and should arrive within 1 to 2 business days.",
	},
	{
		Key:     "payment_received",
		Title:   "Payment received",
		Content: "We have received your payment. Thank you for your purchase!",
	},
	{
		Key:     "thanks",
		Title:   "Thank you",
		Content: "Thank you for shopping with us! Let us know if there is anything else we can help with.",
	},
}

func replyTemplate(key string) (models.ReplyTemplate, bool) {
	for _, tpl := range replyTemplates {
		if tpl.Key == key {
			return tpl, true
		}
	}
	return models.ReplyTemplate{}, false
}

type ConversationService struct {
	DB             *gorm.DB
	ActivityLogger activity.IActivityLogger
	Now            func() time.Time
}

func (s ConversationService) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(m.ValidateQuery[models.ConversationQueryParams]).
		Get("/", handlers.GetListWithQueryHandler(s.ListConversations))

	r.Route("/{id0}/messages", func(r chi.Router) {
		r.Get("/", handlers.GetListHandler(s.ListMessages))

		r.With(m.Validate[models.MessageCreateBody]).
			Post("/", handlers.CreateHandler(s.CreateMessage))
	})

	return r
}

func (s ConversationService) ReplyRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", handlers.GetListHandler(s.ListReplyTemplates))
	return r
}

func (s ConversationService) ListConversations(
	_ *zap.Logger,
	_ uuid.UUIDs,
	params models.ConversationQueryParams,
) ([]models.Conversation, error) {
	return sql.ListConversations(s.DB, params)
}

func (s ConversationService) ListMessages(_ *zap.Logger, ids uuid.UUIDs) ([]models.Message, error) {
	return sql.ListMessages(s.DB, ids[0])
}

func (s ConversationService) ListReplyTemplates(_ *zap.Logger, _ uuid.UUIDs) ([]models.ReplyTemplate, error) {
	return replyTemplates, nil
}

// CreateMessage stores a reply. Messages are sent by the bot unless told otherwise.
func (s ConversationService) CreateMessage(
	logger *zap.Logger,
	ids uuid.UUIDs,
	body models.MessageCreateBody,
) (models.Message, error) {
	content := body.Content
	if body.TemplateKey != "" {
		tpl, ok := replyTemplate(body.TemplateKey)
		if !ok {
			return models.Message{}, apierrors.NewAPIError(400, apierrors.ErrUnknownReplyTemplate)
		}
		content = tpl.Content
	}

	isFromBot := true
	if body.IsFromBot != nil {
		isFromBot = *body.IsFromBot
	}

	message := models.Message{
		ConversationID: ids[0],
		Content:        content,
		IsFromBot:      isFromBot,
		Timestamp:      now(s.Now).Format(messageTimestampLayout),
	}

	if err := sql.CreateMessage(s.DB, &message, conversationJustNow); err != nil {
		return models.Message{}, err
	}

	action := models.Activity{
		Message: activity.MessageSent,
		Object:  message.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.MessageSent,
			"object_type": activity.ObjectMessage,
			"object_id":   message.ID.String(),
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log message activity", zap.Error(logErr))
	}

	return message, nil
}
