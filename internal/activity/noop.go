package activity

import "github.com/botpanel/botpanel/internal/models"

// NoopClient is used when the activity log is disabled.
type NoopClient struct{}

func (NoopClient) Send(_ models.Activity) error { return nil }

func (NoopClient) Search(_ map[string][]string) ([]models.ActivityRecord, error) {
	return []models.ActivityRecord{}, nil
}

func (NoopClient) Close() error { return nil }
