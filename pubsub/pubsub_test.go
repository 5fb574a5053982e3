package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := broker.Subscribe(ctx)
	broker.Publish(InfoEvent, "hello")

	select {
	case ev := <-events:
		assert.Equal(t, InfoEvent, ev.Type)
		assert.Equal(t, "hello", ev.Payload)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestContextCancelUnsubscribes(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events := broker.Subscribe(ctx)
	require.Equal(t, 1, broker.SubscriberCount())

	cancel()

	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should close on context cancel")
	case <-time.After(time.Second):
		t.Fatal("channel did not close")
	}
	assert.Eventually(t, func() bool {
		return broker.SubscriberCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestPublishNeverBlocksOnSlowSubscriber(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	// Never drained; its buffer fills and further events are dropped.
	_ = broker.Subscribe(context.Background())

	done := make(chan struct{})
	go func() {
		for i := 0; i < bufferSize*4; i++ {
			broker.Publish(InfoEvent, i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}
}

func TestCloseClosesSubscribers(t *testing.T) {
	broker := NewBroker[string]()
	events := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close() // idempotent

	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscriber channel not closed on broker close")
	}

	// Subscribing after close yields a closed channel.
	late := broker.Subscribe(context.Background())
	_, ok := <-late
	assert.False(t, ok)
}
