package events

import (
	"encoding/json"
	"time"

	"github.com/botpanel/botpanel/internal/messaging"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// BotRestartPayload identifies the restart by the status revision it produced.
type BotRestartPayload struct {
	Type        string        `json:"type"`
	Revision    int64         `json:"revision"`
	RequestedAt time.Time     `json:"requested_at"`
	Delay       time.Duration `json:"delay"`
}

type BotRestart struct {
	Publisher messaging.IPublisher
	Payload   BotRestartPayload
}

func NewBotRestart(publisher messaging.IPublisher, revision int64, delay time.Duration) BotRestart {
	return BotRestart{
		Publisher: publisher,
		Payload: BotRestartPayload{
			Type:        BotRestartName,
			Revision:    revision,
			RequestedAt: time.Now(),
			Delay:       delay,
		},
	}
}

func (e *BotRestart) Trigger() error {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		zap.L().Error("Error marshalling event payload", zap.Error(err))
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", e.Payload.Type)

	if err = e.Publisher.Publish(msg); err != nil {
		zap.L().Error("Failed to publish event", zap.String("event_type", e.Payload.Type), zap.Error(err))
		return err
	}
	return nil
}
