package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyTargetUser(t *testing.T) {
	hub := NewHub()

	alice, cancelAlice := hub.Subscribe(1)
	defer cancelAlice()
	bob, cancelBob := hub.Subscribe(2)
	defer cancelBob()

	hub.Publish(Event{UserID: 1, Event: "notification", Data: "hello"})

	select {
	case ev := <-alice:
		assert.Equal(t, "hello", ev.Data)
	default:
		t.Fatal("expected event for user 1")
	}

	select {
	case <-bob:
		t.Fatal("user 2 must not receive user 1's event")
	default:
	}
}

func TestHub_CleanupClosesChannel(t *testing.T) {
	hub := NewHub()

	ch, cancel := hub.Subscribe(5)
	require.Equal(t, 1, hub.SubscriberCount(5))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount(5))
}

func TestHub_FullBufferDropsEvents(t *testing.T) {
	hub := NewHub()
	ch, cancel := hub.Subscribe(3)
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish(Event{UserID: 3, Event: "notification", Data: i})
	}
	assert.Len(t, ch, subscriberBuffer)
}
