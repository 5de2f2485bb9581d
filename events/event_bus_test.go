package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pakbaz/todolist/models"
)

// stubPubSub hands every published message straight to the subscriber
// channels, exposing delivery/unsubscribe interleavings the buffered
// gochannel transport hides.
type stubPubSub struct {
	mu    sync.Mutex
	chans []chan *models.Message
}

func (s *stubPubSub) Subscribe(ctx context.Context, topic string) (<-chan *models.Message, error) {
	ch := make(chan *models.Message, 1)
	s.mu.Lock()
	s.chans = append(s.chans, ch)
	s.mu.Unlock()
	return ch, nil
}

func (s *stubPubSub) Publish(ctx context.Context, topic string, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.chans {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (s *stubPubSub) Close() error { return nil }

func newTestBus(t *testing.T, prefix string) models.EventBus {
	t.Helper()

	config := &models.Config{
		EventBus: models.EventBusConfig{
			Provider: ProviderGoChannel.String(),
			Prefix:   prefix,
		},
	}

	bus := NewEventBus(config, nil)
	t.Cleanup(func() { bus.Close() })

	return bus
}

func TestEventBus_PublishAndSubscribe(t *testing.T) {
	bus := newTestBus(t, "")

	received := make(chan models.Event, 1)
	_, err := bus.Subscribe(TodoCreated, func(ctx context.Context, event models.Event) error {
		received <- event
		return nil
	})
	require.NoError(t, err)

	payload, _ := json.Marshal(map[string]string{"title": "Buy milk"})
	err = bus.Publish(context.Background(), models.Event{
		Type:    TodoCreated,
		Payload: payload,
	})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, TodoCreated, event.Type)
		assert.NotEmpty(t, event.ID)
		assert.False(t, event.Timestamp.IsZero())
		assert.JSONEq(t, string(payload), string(event.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestEventBus_PrefixedTopics(t *testing.T) {
	bus := newTestBus(t, "todolist")

	received := make(chan models.Event, 1)
	_, err := bus.Subscribe(TodoRemoved, func(ctx context.Context, event models.Event) error {
		received <- event
		return nil
	})
	require.NoError(t, err)

	err = bus.Publish(context.Background(), models.Event{Type: TodoRemoved})
	require.NoError(t, err)

	select {
	case event := <-received:
		assert.Equal(t, TodoRemoved, event.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestEventBus_Unsubscribe(t *testing.T) {
	bus := newTestBus(t, "")

	received := make(chan models.Event, 1)
	id, err := bus.Subscribe(TodoUpdated, func(ctx context.Context, event models.Event) error {
		received <- event
		return nil
	})
	require.NoError(t, err)

	bus.Unsubscribe(TodoUpdated, id)

	err = bus.Publish(context.Background(), models.Event{Type: TodoUpdated})
	require.NoError(t, err)

	select {
	case <-received:
		t.Fatal("received event after unsubscribe")
	case <-time.After(200 * time.Millisecond):
	}
}

// A message can be in flight between the channel receive and the handler
// lookup when Unsubscribe removes the topic; the consumer must tolerate the
// missing topic state instead of panicking.
func TestEventBus_UnsubscribeDuringDelivery(t *testing.T) {
	stub := &stubPubSub{}
	config := &models.Config{
		EventBus: models.EventBusConfig{Provider: ProviderGoChannel.String()},
	}
	bus := NewEventBus(config, stub)
	defer bus.Close()

	payload, err := json.Marshal(models.Event{ID: "evt", Type: TodoCreated, Timestamp: time.Now()})
	require.NoError(t, err)

	for range 500 {
		id, err := bus.Subscribe(TodoCreated, func(ctx context.Context, event models.Event) error {
			return nil
		})
		require.NoError(t, err)

		err = stub.Publish(context.Background(), TodoCreated, &models.Message{UUID: "evt", Payload: payload})
		require.NoError(t, err)

		bus.Unsubscribe(TodoCreated, id)
	}

	// Let in-flight deliveries drain; a racing consumer would crash the test here.
	time.Sleep(100 * time.Millisecond)
}

func TestPubSubWithCleanup_Close(t *testing.T) {
	cleaned := false
	ps := &pubSubWithCleanup{
		PubSub:  &stubPubSub{},
		cleanup: func() error { cleaned = true; return nil },
	}
	require.NoError(t, ps.Close())
	assert.True(t, cleaned)

	ps = &pubSubWithCleanup{
		PubSub:  &stubPubSub{},
		cleanup: func() error { return errors.New("pool close failed") },
	}
	assert.Error(t, ps.Close())
}

func TestEventBus_RejectsEmptyType(t *testing.T) {
	bus := newTestBus(t, "")

	err := bus.Publish(context.Background(), models.Event{})
	assert.Error(t, err)
}
