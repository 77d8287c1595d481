package cartevents_test

import (
	"testing"

	"github.com/pingscomm/shop-backend/internal/lib/cartevents"
	"github.com/stretchr/testify/assert"
)

func TestBus_PublishSubscribe(t *testing.T) {
	bus := cartevents.NewBus()

	ch, cancel := bus.Subscribe()
	defer cancel()

	bus.Publish(cartevents.Event{SessionID: "session-1", Op: cartevents.OpAdd})

	event := <-ch
	assert.Equal(t, "session-1", event.SessionID)
	assert.Equal(t, cartevents.OpAdd, event.Op)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := cartevents.NewBus()

	ch, cancel := bus.Subscribe()
	cancel()

	// канал закрыт, публикация после отписки не паникует
	bus.Publish(cartevents.Event{SessionID: "session-1", Op: cartevents.OpClear})

	_, ok := <-ch
	assert.False(t, ok, "channel should be closed after unsubscribe")
}

func TestBus_SlowSubscriberDoesNotBlock(t *testing.T) {
	bus := cartevents.NewBus()

	// подписчик с заполненным буфером: события должны отбрасываться,
	// а не блокировать публикацию
	_, cancel := bus.Subscribe()
	defer cancel()

	for i := 0; i < 100; i++ {
		bus.Publish(cartevents.Event{SessionID: "session-1", Op: cartevents.OpUpdate})
	}
}
