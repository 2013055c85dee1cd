package services

import (
	"github.com/botpanel/botpanel/internal/activity"
	"github.com/botpanel/botpanel/internal/handlers"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderService struct {
	DB             *gorm.DB
	ActivityLogger activity.IActivityLogger
}

func (s OrderService) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(m.ValidateQuery[models.OrderQueryParams]).
		Get("/", handlers.GetListWithQueryHandler(s.ListOrders))

	r.Route("/{id0}", func(r chi.Router) {
		r.Get("/", handlers.GetOneHandler(s.GetOrder))

		r.With(m.Validate[models.OrderStatusBody]).
			Patch("/status", handlers.BodyHandler(s.UpdateStatus))
	})

	return r
}

func (s OrderService) ListOrders(_ *zap.Logger, _ uuid.UUIDs, params models.OrderQueryParams) ([]models.Order, error) {
	return sql.ListOrders(s.DB, params)
}

func (s OrderService) GetOrder(_ *zap.Logger, ids uuid.UUIDs) (models.Order, error) {
	return sql.GetOrderByID(s.DB, ids[0])
}

func (s OrderService) UpdateStatus(logger *zap.Logger, ids uuid.UUIDs, body models.OrderStatusBody) (models.Order, error) {
	order, err := sql.UpdateOrderStatus(s.DB, ids[0], body)
	if err != nil {
		return models.Order{}, err
	}

	action := models.Activity{
		Message: activity.OrderStatusUpdated,
		Object:  order.ToActivity(),
		Filter: activity.NewLogFilter(map[string]string{
			"action":      activity.OrderStatusUpdated,
			"object_type": activity.ObjectOrder,
			"object_id":   order.ID.String(),
		}),
	}
	if logErr := s.ActivityLogger.Send(action); logErr != nil {
		logger.Error("Failed to log order status activity", zap.Error(logErr))
	}

	logger.Info("Order status updated",
		zap.String("order_no", order.OrderNo),
		zap.String("status", body.Status))

	return order, nil
}
