package core

import (
	"github.com/botpanel/botpanel/internal/configuration"
	"github.com/botpanel/botpanel/internal/messaging"
	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
)

// EventsManager owns one publisher and one subscriber per configured queue.
type EventsManager struct {
	publishers  map[string]messaging.IPublisher
	subscribers map[string]messaging.ISubscriber
	config      models.EventsConfiguration
}

func NewEventsManager(config models.EventsConfiguration) *EventsManager {
	manager := &EventsManager{
		publishers:  make(map[string]messaging.IPublisher),
		subscribers: make(map[string]messaging.ISubscriber),
		config:      config,
	}

	for topicKey, topicConfig := range config.Queues {
		manager.initializeTopic(topicKey, topicConfig.Name)
	}

	return manager
}

func (em *EventsManager) initializeTopic(topicKey string, topicName string) {
	switch em.config.Type {
	case configuration.ProviderMemory:
		// Publisher and subscriber must share the same GoChannel.
		topic := messaging.NewMemoryTopic(topicName)
		em.publishers[topicKey] = topic
		em.subscribers[topicKey] = topic
	case configuration.ProviderJetstream:
		publisher, err := messaging.NewJetStreamPublisher(em.config.Jetstream, topicName)
		if err != nil {
			zap.L().Fatal("Failed to create publisher", zap.String("topic_name", topicName), zap.Error(err))
		}
		subscriber, err := messaging.NewJetStreamSubscriber(em.config.Jetstream, topicName)
		if err != nil {
			zap.L().Fatal("Failed to create subscriber", zap.String("topic_name", topicName), zap.Error(err))
		}
		em.publishers[topicKey] = publisher
		em.subscribers[topicKey] = subscriber
	default:
		zap.L().Fatal("Unsupported events provider", zap.String("provider", em.config.Type))
	}

	zap.L().Info("Initialized topic",
		zap.String("topic_key", topicKey),
		zap.String("topic_name", topicName),
		zap.String("provider", em.config.Type))
}

func (em *EventsManager) GetPublisher(topicKey string) messaging.IPublisher {
	publisher, exists := em.publishers[topicKey]
	if !exists {
		zap.L().Fatal("Publisher not found", zap.String("topic_key", topicKey))
	}
	return publisher
}

func (em *EventsManager) GetSubscriber(topicKey string) messaging.ISubscriber {
	subscriber, exists := em.subscribers[topicKey]
	if !exists {
		zap.L().Fatal("Subscriber not found", zap.String("topic_key", topicKey))
	}
	return subscriber
}

func (em *EventsManager) Close() {
	for topicKey, publisher := range em.publishers {
		if err := publisher.Close(); err != nil {
			zap.L().Error("Failed to close publisher", zap.String("topic_key", topicKey), zap.Error(err))
		}
	}

	for topicKey, subscriber := range em.subscribers {
		if _, shared := em.publishers[topicKey].(*messaging.MemoryTopic); shared {
			continue
		}
		if err := subscriber.Close(); err != nil {
			zap.L().Error("Failed to close subscriber", zap.String("topic_key", topicKey), zap.Error(err))
		}
	}
}
