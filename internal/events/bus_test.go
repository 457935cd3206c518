package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
		return Event{}
	}
}

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus(8, nil)
	defer bus.Shutdown()

	got := make(chan Event, 1)
	bus.Subscribe(FileOpened, HandlerFunc(func(e Event) { got <- e }))

	bus.Publish(Event{Type: FileOpened, Data: map[string]interface{}{"name": "a.txt"}})

	e := waitFor(t, got)
	assert.Equal(t, "a.txt", e.Data["name"])
	assert.False(t, e.Timestamp.IsZero())
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	bus := NewBus(8, nil)

	var mu sync.Mutex
	var seen []string
	bus.Subscribe(UnsupportedFileType, HandlerFunc(func(e Event) {
		mu.Lock()
		seen = append(seen, e.Type)
		mu.Unlock()
	}))

	bus.Publish(Event{Type: FileOpened})
	bus.Publish(Event{Type: UnsupportedFileType})
	bus.Shutdown()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{UnsupportedFileType}, seen)
}

func TestUnsubscribe(t *testing.T) {
	bus := NewBus(8, nil)

	calls := 0
	var mu sync.Mutex
	h := HandlerFunc(func(Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})
	bus.Subscribe(FileOpened, h)
	bus.Unsubscribe(FileOpened, h)

	bus.Publish(Event{Type: FileOpened})
	bus.Shutdown()

	assert.Zero(t, calls)
}

func TestPanickingHandlerIsReported(t *testing.T) {
	reported := make(chan string, 1)
	bus := NewBus(8, func(id string, _ interface{}) { reported <- id })
	defer bus.Shutdown()

	h := HandlerFunc(func(Event) { panic("boom") })
	bus.Subscribe(FileOpened, h)
	bus.Publish(Event{Type: FileOpened})

	select {
	case id := <-reported:
		assert.Equal(t, h.GetID(), id)
	case <-time.After(time.Second):
		t.Fatal("panic not reported")
	}
}

func TestPublishAfterShutdownIsDropped(t *testing.T) {
	bus := NewBus(1, nil)
	bus.Shutdown()
	bus.Shutdown()

	require.NotPanics(t, func() { bus.Publish(Event{Type: FileOpened}) })
}
