package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types published by the file-open workflow
const (
	FileOpened          = "file_opened"
	FileReloaded        = "file_reloaded"
	UnsupportedFileType = "unsupported_file_type"
	ContentReadFailed   = "content_read_failed"
	RecentFilesLoaded   = "recent_files_loaded"
	RecentFilesSaved    = "recent_files_saved"
	PersistenceFailed   = "persistence_failed"
)

// AllTypes lists every event type above
var AllTypes = []string{
	FileOpened, FileReloaded, UnsupportedFileType, ContentReadFailed,
	RecentFilesLoaded, RecentFilesSaved, PersistenceFailed,
}

type Event struct {
	Type      string
	Timestamp time.Time
	Data      map[string]interface{}
}

type EventHandler interface {
	Handle(event Event)
	GetID() string
}

// Publisher is the side of the bus the workflow depends on
type Publisher interface {
	Publish(event Event)
}

type handlerFunc struct {
	id string
	fn func(Event)
}

func (h *handlerFunc) Handle(event Event) { h.fn(event) }
func (h *handlerFunc) GetID() string      { return h.id }

// HandlerFunc wraps fn in an EventHandler with a random ID
func HandlerFunc(fn func(Event)) EventHandler {
	return &handlerFunc{id: uuid.NewString(), fn: fn}
}

// PanicReporter is told about handlers that panicked
type PanicReporter func(handlerID string, recovered interface{})

type Bus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
	buffer      chan Event
	worker      sync.WaitGroup
	handlers    sync.WaitGroup
	onPanic     PanicReporter

	closeMu sync.RWMutex
	closed  bool
}

func NewBus(bufferSize int, onPanic PanicReporter) *Bus {
	bus := &Bus{
		subscribers: make(map[string][]EventHandler),
		buffer:      make(chan Event, bufferSize),
		onPanic:     onPanic,
	}

	bus.startWorker()
	return bus
}

// Publish never blocks; events are dropped when the buffer is full or the
// bus is shut down.
func (b *Bus) Publish(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	b.closeMu.RLock()
	defer b.closeMu.RUnlock()
	if b.closed {
		return
	}

	select {
	case b.buffer <- event:
	default:
	}
}

func (b *Bus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

func (b *Bus) Unsubscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	handlers := b.subscribers[eventType]
	for i, h := range handlers {
		if h.GetID() == handler.GetID() {
			b.subscribers[eventType] = append(handlers[:i:i], handlers[i+1:]...)
			break
		}
	}
}

// Shutdown delivers the events already buffered, waits for their handlers
// and stops the worker.
func (b *Bus) Shutdown() {
	b.closeMu.Lock()
	if b.closed {
		b.closeMu.Unlock()
		return
	}
	b.closed = true
	close(b.buffer)
	b.closeMu.Unlock()

	b.worker.Wait()
	b.handlers.Wait()
}

func (b *Bus) startWorker() {
	b.worker.Add(1)
	go func() {
		defer b.worker.Done()

		for event := range b.buffer {
			b.dispatchEvent(event)
		}
	}()
}

func (b *Bus) dispatchEvent(event Event) {
	b.mu.RLock()
	handlers := make([]EventHandler, len(b.subscribers[event.Type]))
	copy(handlers, b.subscribers[event.Type])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.handlers.Add(1)
		go func(h EventHandler) {
			defer b.handlers.Done()
			defer func() {
				if r := recover(); r != nil && b.onPanic != nil {
					b.onPanic(h.GetID(), r)
				}
			}()
			h.Handle(event)
		}(handler)
	}
}
