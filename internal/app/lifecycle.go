package app

import (
	"context"
	"path/filepath"

	"fyne.io/fyne/v2"

	"text-viewer/internal/config"
	"text-viewer/internal/events"
	"text-viewer/internal/logger"
	"text-viewer/internal/shutdown"
	"text-viewer/internal/storage"
)

// Lifecycle owns the shutdown order of the application's components
type Lifecycle struct {
	manager *shutdown.Manager
	logger  logger.Logger
}

// NewLifecycle registers components so that the watcher stops first, then
// the controller, the event bus and the store. The timing summary is logged
// last.
func NewLifecycle(a *Application) *Lifecycle {
	m := shutdown.NewManager(a.logger, shutdown.DefaultTimeout)

	m.Register("timings", a.timings)
	m.Register("store", shutdown.Closer("store", a.logger, a.store.Close))
	m.Register("bus", a.bus)
	m.Register("controller", a.controller)
	if a.watcher != nil {
		m.Register("watcher", a.watcher)
	}

	return &Lifecycle{manager: m, logger: a.logger}
}

// Listen blocks until a shutdown signal, a completed shutdown or ctx is done
func (l *Lifecycle) Listen(ctx context.Context) {
	l.manager.Listen(ctx)
}

func (l *Lifecycle) Shutdown() {
	l.manager.Shutdown()
}

// Stopped reports whether Shutdown has run
func (l *Lifecycle) Stopped() bool {
	select {
	case <-l.manager.Done():
		return true
	default:
		return false
	}
}

// subscribeAudit logs every published event at debug level
func subscribeAudit(bus *events.Bus, log logger.Logger) {
	audit := events.HandlerFunc(func(event events.Event) {
		fields := map[string]interface{}{"event": event.Type}
		for k, v := range event.Data {
			fields[k] = v
		}
		log.Debug("Audit", "event published", fields)
	})
	for _, eventType := range events.AllTypes {
		bus.Subscribe(eventType, audit)
	}
}

// storagePath returns the configured path, or a file under the app's
// private storage root for backends that need one.
func storagePath(cfg config.StorageConfig, fyneApp fyne.App) string {
	if cfg.Path != "" {
		return cfg.Path
	}

	var name string
	switch cfg.Backend {
	case storage.BackendFile:
		name = "recent_files.yaml"
	case storage.BackendSQLite:
		name = "recent_files.db"
	default:
		return ""
	}

	root := fyneApp.Storage().RootURI()
	if root == nil {
		return name
	}
	return filepath.Join(root.Path(), name)
}
