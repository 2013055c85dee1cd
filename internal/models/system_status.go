package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemStatus is the singleton record describing the bot deployment.
// Revision increases on every lifecycle transition and guards writes against stale updates.
type SystemStatus struct {
	ID            uuid.UUID `gorm:"type:uuid;primarykey"    json:"id"`
	BotStatus     string    `gorm:"not null"                json:"botStatus"`
	WebhookStatus string    `gorm:"not null"                json:"webhookStatus"`
	DBStatus      string    `gorm:"column:db_status;not null" json:"dbStatus"`
	APIStatus     string    `gorm:"column:api_status;not null" json:"apiStatus"`
	Uptime        string    `                               json:"uptime"`
	Version       string    `                               json:"version"`
	Build         string    `                               json:"build"`
	Environment   string    `                               json:"environment"`
	Server        string    `                               json:"server"`
	Region        string    `                               json:"region"`
	LastDeploy    string    `                               json:"lastDeploy"`
	CPUUsage      int       `gorm:"column:cpu_usage"        json:"cpuUsage"`
	MemoryUsage   int       `                               json:"memoryUsage"`
	DiskUsage     int       `                               json:"diskUsage"`
	Revision      int64     `gorm:"not null;default:0"      json:"revision"`
	UpdatedAt     time.Time `                               json:"updatedAt"`
}

func (s *SystemStatus) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type StatusColor struct {
	TextClass string `json:"textClass"`
	DotClass  string `json:"dotClass"`
}

type StatusIndicators struct {
	Bot      StatusColor `json:"bot"`
	Webhook  StatusColor `json:"webhook"`
	Database StatusColor `json:"database"`
	API      StatusColor `json:"api"`
}

type SystemStatusResponse struct {
	SystemStatus
	Indicators StatusIndicators `json:"indicators"`
}

type SystemStatusActivity struct {
	BotStatus     string `json:"bot_status"`
	WebhookStatus string `json:"webhook_status"`
	Revision      int64  `json:"revision"`
}

func (s *SystemStatus) ToActivity() SystemStatusActivity {
	return SystemStatusActivity{
		BotStatus:     s.BotStatus,
		WebhookStatus: s.WebhookStatus,
		Revision:      s.Revision,
	}
}

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type DiagnosticsBody struct {
	Command string `json:"command" validate:"required,max=64"`
}

type DiagnosticsResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
}
