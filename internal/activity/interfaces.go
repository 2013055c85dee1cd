package activity

import "github.com/botpanel/botpanel/internal/models"

// IActivityLogger records operator actions and searches the recent ones.
type IActivityLogger interface {
	Send(activity models.Activity) error
	Search(criteria map[string][]string) ([]models.ActivityRecord, error)
	Close() error
}
