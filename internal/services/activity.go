package services

import (
	"github.com/botpanel/botpanel/internal/activity"
	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/handlers"
	m "github.com/botpanel/botpanel/internal/middlewares"
	"github.com/botpanel/botpanel/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ActivityService struct {
	ActivityLogger activity.IActivityLogger
}

func (s ActivityService) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(m.ValidateQuery[models.ActivityQueryParams]).
		Get("/", handlers.GetListWithQueryHandler(s.ListActivity))

	return r
}

func (s ActivityService) ListActivity(
	logger *zap.Logger,
	_ uuid.UUIDs,
	params models.ActivityQueryParams,
) ([]models.ActivityRecord, error) {
	criteria := map[string][]string{}
	if params.Action != "" {
		criteria["action"] = []string{params.Action}
	}
	if params.ObjectType != "" {
		criteria["object_type"] = []string{params.ObjectType}
	}

	records, err := s.ActivityLogger.Search(criteria)
	if err != nil {
		logger.Error("Failed to search activity", zap.Error(err))
		return nil, apierrors.NewAPIError(500, apierrors.ErrActivityUnavailable)
	}
	return records, nil
}
