package messaging

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/botpanel/botpanel/internal/models"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/jetstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats.go"
	natsJs "github.com/nats-io/nats.go/jetstream"
)

// The lifecycle worker may hold a message for the whole restart delay before acking it.
const jetStreamAckWait = 30 * time.Second

func connectNATS(config *models.JetStreamEventsConfig) (*nats.Conn, error) {
	nc, err := nats.Connect(
		net.JoinHostPort(config.Host, config.Port),
		nats.Name("botpanel"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}

type JetStreamPublisher struct {
	subject   string
	publisher *jetstream.Publisher
}

func NewJetStreamPublisher(config *models.JetStreamEventsConfig, subject string) (*JetStreamPublisher, error) {
	nc, err := connectNATS(config)
	if err != nil {
		return nil, err
	}

	publisher, err := jetstream.NewPublisher(jetstream.PublisherConfig{Conn: nc})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream publisher: %w", err)
	}

	return &JetStreamPublisher{subject: subject, publisher: publisher}, nil
}

func (p *JetStreamPublisher) Publish(messages ...*message.Message) error {
	return p.publisher.Publish(p.subject, messages...)
}

func (p *JetStreamPublisher) Close() error {
	return p.publisher.Close()
}

type JetStreamSubscriber struct {
	subject    string
	subscriber *jetstream.Subscriber
}

// NewJetStreamSubscriber declares a work-queue stream for the subject and a durable
// explicit-ack consumer, so that only one instance handles each message.
func NewJetStreamSubscriber(config *models.JetStreamEventsConfig, subject string) (*JetStreamSubscriber, error) {
	ctx := context.Background()

	nc, err := connectNATS(config)
	if err != nil {
		return nil, err
	}

	js, err := natsJs.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream, err := js.CreateOrUpdateStream(ctx, natsJs.StreamConfig{
		Name:      subject,
		Subjects:  []string{subject},
		Retention: natsJs.WorkQueuePolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create stream %s: %w", subject, err)
	}

	// Name follows the watermill default so that ExistingConsumer finds it.
	consumerName := fmt.Sprintf("watermill__%s", subject)
	_, err = stream.CreateOrUpdateConsumer(ctx, natsJs.ConsumerConfig{
		Name:      consumerName,
		AckPolicy: natsJs.AckExplicitPolicy,
		AckWait:   jetStreamAckWait,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create consumer %s: %w", consumerName, err)
	}

	var namer jetstream.ConsumerConfigurator
	subscriber, err := jetstream.NewSubscriber(jetstream.SubscriberConfig{
		Conn:                nc,
		AckWaitTimeout:      jetStreamAckWait,
		ResourceInitializer: jetstream.ExistingConsumer(namer, ""),
		Logger:              watermill.NopLogger{},
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream subscriber: %w", err)
	}

	return &JetStreamSubscriber{subject: subject, subscriber: subscriber}, nil
}

func (s *JetStreamSubscriber) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return s.subscriber.Subscribe(ctx, s.subject)
}

func (s *JetStreamSubscriber) Close() error {
	return s.subscriber.Close()
}
