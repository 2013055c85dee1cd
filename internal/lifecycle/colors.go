package lifecycle

import (
	"strings"

	"github.com/botpanel/botpanel/internal/models"
)

var (
	green  = models.StatusColor{TextClass: "text-green-400", DotClass: "bg-green-500"}
	yellow = models.StatusColor{TextClass: "text-yellow-400", DotClass: "bg-yellow-500"}
	red    = models.StatusColor{TextClass: "text-red-400", DotClass: "bg-red-500"}
	gray   = models.StatusColor{TextClass: "text-gray-400", DotClass: "bg-gray-500"}
)

// ColorFor maps a status label to its display classes. Matching ignores case.
func ColorFor(status string) models.StatusColor {
	switch strings.ToLower(status) {
	case "online", "active", "connected":
		return green
	case "monitoring":
		return yellow
	case "offline", "inactive":
		return red
	default:
		return gray
	}
}

func Indicators(status models.SystemStatus) models.StatusIndicators {
	return models.StatusIndicators{
		Bot:      ColorFor(status.BotStatus),
		Webhook:  ColorFor(status.WebhookStatus),
		Database: ColorFor(status.DBStatus),
		API:      ColorFor(status.APIStatus),
	}
}
