// Package pubsub provides a small in-memory broker used to deliver
// background notices (backend reachability, telemetry acknowledgements)
// into the UI event loop without coupling the producers to it.
package pubsub

import (
	"context"
	"sync"
)

// Event types published over a Broker.
const (
	// InfoEvent carries an informational notice.
	InfoEvent EventType = "info"
	// RecoveredEvent signals a resource became available again.
	RecoveredEvent EventType = "recovered"
	// DegradedEvent signals a resource became unavailable.
	DegradedEvent EventType = "degraded"
)

type (
	// EventType classifies an Event.
	EventType string

	// Event pairs a type with its payload.
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Subscriber hands out event channels that close with their context.
	Subscriber[T any] interface {
		Subscribe(context.Context) <-chan Event[T]
	}

	// Publisher fans events out to every subscriber.
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)

// subscriber channel buffer; a full subscriber drops events rather than
// blocking the publisher.
const bufferSize = 16

// Broker is an in-memory fan-out publisher. The zero value is not usable;
// construct with NewBroker.
type Broker[T any] struct {
	mu   sync.RWMutex
	subs map[chan Event[T]]struct{}
	done chan struct{}
}

// NewBroker creates an open Broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]struct{}),
		done: make(chan struct{}),
	}
}

// Subscribe registers a subscriber and returns its receive channel. The
// channel closes when ctx is done or the broker shuts down. Subscribing to
// a closed broker yields an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case <-b.done:
		ch := make(chan Event[T])
		close(ch)
		return ch
	default:
	}

	sub := make(chan Event[T], bufferSize)
	b.subs[sub] = struct{}{}

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		defer b.mu.Unlock()

		select {
		case <-b.done:
			return
		default:
		}
		if _, ok := b.subs[sub]; ok {
			delete(b.subs, sub)
			close(sub)
		}
	}()

	return sub
}

// Publish fans an event out to all current subscribers. It never blocks:
// a subscriber whose buffer is full misses the event.
func (b *Broker[T]) Publish(t EventType, payload T) {
	b.mu.RLock()
	select {
	case <-b.done:
		b.mu.RUnlock()
		return
	default:
	}
	targets := make([]chan Event[T], 0, len(b.subs))
	for sub := range b.subs {
		targets = append(targets, sub)
	}
	b.mu.RUnlock()

	ev := Event[T]{Type: t, Payload: payload}
	for _, sub := range targets {
		select {
		case sub <- ev:
		default:
		}
	}
}

// Close shuts the broker down and closes every subscriber channel. It is
// safe to call more than once.
func (b *Broker[T]) Close() {
	select {
	case <-b.done:
		return
	default:
		close(b.done)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		delete(b.subs, sub)
		close(sub)
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
