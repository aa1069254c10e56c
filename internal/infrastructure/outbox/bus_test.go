package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domoutbox "gomart/internal/domain/outbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type testEvent struct{ name string }

func (e testEvent) EventName() string { return e.name }

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(nil)
	ctx := context.Background()

	var mu sync.Mutex
	got := make([]string, 0, 2)
	done := make(chan struct{}, 2)

	handler := func(ctx context.Context, e domoutbox.Event) error {
		mu.Lock()
		got = append(got, e.EventName())
		mu.Unlock()
		done <- struct{}{}
		return nil
	}
	bus.Subscribe("order.created", handler)
	bus.Subscribe("order.created", handler)

	bus.Start(ctx)
	require.NoError(t, bus.Publish(ctx, testEvent{name: "order.created"}))

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("handler not invoked")
		}
	}
	bus.Stop(ctx)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"order.created", "order.created"}, got)
}

func TestBus_EventWithoutSubscriberIsDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(nil)
	ctx := context.Background()

	bus.Start(ctx)
	require.NoError(t, bus.Publish(ctx, testEvent{name: "nobody.listens"}))
	bus.Stop(ctx)
}

func TestBus_HandlerPanicDoesNotKillDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(nil)
	ctx := context.Background()

	delivered := make(chan struct{}, 1)
	bus.Subscribe("boom", func(ctx context.Context, e domoutbox.Event) error {
		panic("handler blew up")
	})
	bus.Subscribe("fine", func(ctx context.Context, e domoutbox.Event) error {
		delivered <- struct{}{}
		return nil
	})

	bus.Start(ctx)
	require.NoError(t, bus.Publish(ctx, testEvent{name: "boom"}))
	require.NoError(t, bus.Publish(ctx, testEvent{name: "fine"}))

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch stopped after panic")
	}
	bus.Stop(ctx)
}

func TestBus_StopDrainsQueue(t *testing.T) {
	defer goleak.VerifyNone(t)

	bus := NewBus(nil)
	ctx := context.Background()

	var mu sync.Mutex
	count := 0
	bus.Subscribe("tick", func(ctx context.Context, e domoutbox.Event) error {
		mu.Lock()
		count++
		mu.Unlock()
		return nil
	})

	bus.Start(ctx)
	for i := 0; i < 10; i++ {
		require.NoError(t, bus.Publish(ctx, testEvent{name: "tick"}))
	}
	bus.Stop(ctx)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, count)
}

func TestFanout_JoinsErrors(t *testing.T) {
	errBroker := errors.New("broker down")
	failing := publisherFunc(func(ctx context.Context, e domoutbox.Event) error { return errBroker })

	var delivered bool
	ok := publisherFunc(func(ctx context.Context, e domoutbox.Event) error {
		delivered = true
		return nil
	})

	f := NewFanout(failing, nil, ok)
	err := f.Publish(context.Background(), testEvent{name: "order.created"})

	assert.ErrorIs(t, err, errBroker)
	assert.True(t, delivered, "remaining publishers should still receive the event")
}

type publisherFunc func(ctx context.Context, e domoutbox.Event) error

func (f publisherFunc) Publish(ctx context.Context, e domoutbox.Event) error { return f(ctx, e) }
