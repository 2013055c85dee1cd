package lifecycle

import (
	"context"
	"time"

	apierrors "github.com/botpanel/botpanel/internal/errors"
	"github.com/botpanel/botpanel/internal/events"
	"github.com/botpanel/botpanel/internal/messaging"
	"github.com/botpanel/botpanel/internal/models"
	"github.com/botpanel/botpanel/internal/sql"

	"gorm.io/gorm"
)

// casAttempts bounds how often an operator transition re-reads the record after losing a race.
const casAttempts = 2

var (
	restartingProfile = map[string]any{
		"bot_status":   "restarting",
		"last_deploy":  "just now",
		"cpu_usage":    15,
		"memory_usage": 45,
	}
	runningProfile = map[string]any{
		"bot_status":     "online",
		"webhook_status": "active",
		"db_status":      "connected",
		"api_status":     "monitoring",
		"last_deploy":    "just now",
	}
	stoppedProfile = map[string]any{
		"bot_status":     "offline",
		"webhook_status": "inactive",
		"last_deploy":    "2 hours ago",
		"cpu_usage":      5,
		"memory_usage":   20,
	}
	webhookProfile = map[string]any{
		"webhook_status": "active",
	}
)

// Controller owns every lifecycle transition of the status record.
// Each transition is a compare-and-swap on the record revision.
type Controller struct {
	DB           *gorm.DB
	Publisher    messaging.IPublisher
	RestartDelay time.Duration
}

func (c *Controller) transition(fields map[string]any) (models.SystemStatus, error) {
	for range casAttempts {
		status, err := sql.GetSystemStatus(c.DB)
		if err != nil {
			return models.SystemStatus{}, err
		}

		written, swapped, err := sql.SwapSystemStatus(c.DB, status, fields)
		if err != nil {
			return models.SystemStatus{}, apierrors.NewAPIError(500, apierrors.ErrUpdateFailed)
		}
		if swapped {
			return written, nil
		}
	}

	return models.SystemStatus{}, apierrors.NewAPIError(409, apierrors.ErrStatusConflict)
}

// Restart marks the bot as restarting and schedules the completion on the lifecycle topic.
// The event carries the revision this restart wrote, never one read back afterwards.
func (c *Controller) Restart() (models.SystemStatus, error) {
	status, err := c.transition(restartingProfile)
	if err != nil {
		return models.SystemStatus{}, err
	}

	event := events.NewBotRestart(c.Publisher, status.Revision, c.RestartDelay)
	if err = event.Trigger(); err != nil {
		return models.SystemStatus{}, apierrors.NewAPIError(500, apierrors.ErrInternal)
	}

	return status, nil
}

// Stop writes the stopped profile. The revision bump discards any restart still in flight.
func (c *Controller) Stop() (models.SystemStatus, error) {
	return c.transition(stoppedProfile)
}

func (c *Controller) UpdateWebhook() (models.SystemStatus, error) {
	return c.transition(webhookProfile)
}

// CompleteRestart writes the running profile if nothing changed since the restart at revision.
func (c *Controller) CompleteRestart(_ context.Context, revision int64) (bool, error) {
	status, err := sql.GetSystemStatus(c.DB)
	if err != nil {
		return false, err
	}
	if status.Revision != revision {
		return false, nil
	}

	_, swapped, err := sql.SwapSystemStatus(c.DB, status, runningProfile)
	return swapped, err
}
