package messaging

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// MemoryTopic is an in-process topic. Publisher and subscriber share one GoChannel.
type MemoryTopic struct {
	name    string
	channel *gochannel.GoChannel
}

func NewMemoryTopic(name string) *MemoryTopic {
	return &MemoryTopic{
		name: name,
		channel: gochannel.NewGoChannel(gochannel.Config{
			Persistent: true,
		}, watermill.NopLogger{}),
	}
}

func (t *MemoryTopic) Publish(messages ...*message.Message) error {
	return t.channel.Publish(t.name, messages...)
}

func (t *MemoryTopic) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return t.channel.Subscribe(ctx, t.name)
}

func (t *MemoryTopic) Close() error {
	return t.channel.Close()
}
