package messaging

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTimeout = 2 * time.Second

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestMemoryTopicDelivers(t *testing.T) {
	topic := NewMemoryTopic("bot-lifecycle")
	defer topic.Close()

	messages, err := topic.Subscribe(context.Background())
	require.NoError(t, err)

	sent := message.NewMessage(watermill.NewUUID(), []byte(`{"revision":3}`))
	sent.Metadata.Set("type", "BotRestart")
	require.NoError(t, topic.Publish(sent))

	got := receive(t, messages)
	assert.Equal(t, sent.UUID, got.UUID)
	assert.Equal(t, "BotRestart", got.Metadata.Get("type"))
	assert.JSONEq(t, `{"revision":3}`, string(got.Payload))
	got.Ack()
}

func TestMemoryTopicPersistsForLateSubscribers(t *testing.T) {
	topic := NewMemoryTopic("bot-lifecycle")
	defer topic.Close()

	sent := message.NewMessage(watermill.NewUUID(), []byte("early"))
	require.NoError(t, topic.Publish(sent))

	messages, err := topic.Subscribe(context.Background())
	require.NoError(t, err)

	got := receive(t, messages)
	assert.Equal(t, sent.UUID, got.UUID)
	got.Ack()
}

func TestMemoryTopicWaitsForAck(t *testing.T) {
	topic := NewMemoryTopic("bot-lifecycle")
	defer topic.Close()

	messages, err := topic.Subscribe(context.Background())
	require.NoError(t, err)

	first := message.NewMessage(watermill.NewUUID(), []byte("first"))
	require.NoError(t, topic.Publish(first))

	got := receive(t, messages)
	assert.Equal(t, first.UUID, got.UUID)

	second := message.NewMessage(watermill.NewUUID(), []byte("second"))
	require.NoError(t, topic.Publish(second))

	select {
	case msg := <-messages:
		t.Fatalf("received %s before the first message was acked", msg.UUID)
	case <-time.After(100 * time.Millisecond):
	}

	got.Ack()
	assert.Equal(t, second.UUID, receive(t, messages).UUID)
}

func TestMemoryTopicClose(t *testing.T) {
	topic := NewMemoryTopic("bot-lifecycle")
	require.NoError(t, topic.Close())

	err := topic.Publish(message.NewMessage(watermill.NewUUID(), []byte("after-close")))
	assert.Error(t, err)
}
