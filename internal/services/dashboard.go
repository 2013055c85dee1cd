package services

import (
	"time"

	"github.com/botpanel/botpanel/internal/dashboard"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/handlers"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/sql"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s DashboardService) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/stats", handlers.GetOneHandler(s.GetStats))
	return r
}

// GetStats aggregates a fresh snapshot of every order. No partial statistics are returned.
func (s DashboardService) GetStats(logger *zap.Logger, _ uuid.UUIDs) (models.DashboardStats, error) {
	orders, err := sql.ListAllOrders(s.DB)
	if err != nil {
		logger.Error("Failed to read orders", zap.Error(err))
		return models.DashboardStats{}, apierrors.NewAPIError(500, apierrors.ErrDashboardStats)
	}

	pendingUsers, pendingOrders, err := sql.CountPendingApprovals(s.DB)
	if err != nil {
		logger.Error("Failed to count pending approvals", zap.Error(err))
		return models.DashboardStats{}, apierrors.NewAPIError(500, apierrors.ErrDashboardStats)
	}

	return dashboard.ComputeStats(orders, pendingUsers, pendingOrders, now(s.Now)), nil
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}
