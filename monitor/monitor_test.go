package monitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinassist/client"
	"clinassist/pubsub"
)

func TestMonitorPublishesTransitions(t *testing.T) {
	var healthy atomic.Bool
	healthy.Store(true)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{
			"status": "healthy",
			"indexes": {"covid": {"loaded": true, "num_vectors": 10}},
			"total_domains": 4
		}`))
	}))
	defer srv.Close()

	mon := New(client.New(srv.URL, time.Second, nil), 20*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := mon.Broker().Subscribe(ctx)
	go mon.Run(ctx)

	// First observation is always published.
	ev := waitEvent(t, events)
	assert.Equal(t, pubsub.RecoveredEvent, ev.Type)
	assert.True(t, ev.Payload.Reachable)
	assert.Contains(t, ev.Payload.Detail, "1/4 indexes loaded")

	// A transition to unreachable is published once.
	healthy.Store(false)
	ev = waitEvent(t, events)
	assert.Equal(t, pubsub.DegradedEvent, ev.Type)
	assert.False(t, ev.Payload.Reachable)

	// And recovery comes through again.
	healthy.Store(true)
	ev = waitEvent(t, events)
	assert.Equal(t, pubsub.RecoveredEvent, ev.Type)
}

func waitEvent(t *testing.T, events <-chan pubsub.Event[Notice]) pubsub.Event[Notice] {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "event stream closed early")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for monitor event")
		return pubsub.Event[Notice]{}
	}
}
