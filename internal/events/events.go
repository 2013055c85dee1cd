package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

const BotRestartName = "BotRestart"

// RestartCompleter applies the running profile once a restart delay elapsed.
type RestartCompleter interface {
	CompleteRestart(ctx context.Context, revision int64) (bool, error)
}

type EventParams struct {
	Lifecycle RestartCompleter
}

// HandleEvents consumes lifecycle messages until the channel closes or ctx is cancelled.
// Every message is acked: a failed completion is superseded by the next transition anyway.
func HandleEvents(ctx context.Context, params *EventParams, messages <-chan *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			handleMessage(ctx, params, msg)
			msg.Ack()
		}
	}
}

func handleMessage(ctx context.Context, params *EventParams, msg *message.Message) {
	eventType := msg.Metadata.Get("type")
	logger := zap.L().With(zap.String("event_type", eventType), zap.String("message_id", msg.UUID))

	switch eventType {
	case BotRestartName:
		var payload BotRestartPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.Error("Failed to decode event payload", zap.Error(err))
			return
		}
		handleBotRestart(ctx, logger, params, payload)
	default:
		logger.Warn("Unsupported event type")
	}
}

func handleBotRestart(ctx context.Context, logger *zap.Logger, params *EventParams, payload BotRestartPayload) {
	wait := time.Until(payload.RequestedAt.Add(payload.Delay))
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}

	completed, err := params.Lifecycle.CompleteRestart(ctx, payload.Revision)
	if err != nil {
		logger.Error("Failed to complete bot restart", zap.Int64("revision", payload.Revision), zap.Error(err))
		return
	}
	if !completed {
		logger.Info("Discarded stale bot restart", zap.Int64("revision", payload.Revision))
		return
	}
	logger.Info("Bot restart completed", zap.Int64("revision", payload.Revision))
}
