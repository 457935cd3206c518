package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"golang.org/x/sync/errgroup"

	"text-viewer/internal/config"
	"text-viewer/internal/controllers"
	"text-viewer/internal/events"
	"text-viewer/internal/host"
	"text-viewer/internal/logger"
	"text-viewer/internal/models"
	"text-viewer/internal/services"
	"text-viewer/internal/storage"
	"text-viewer/internal/timing"
	"text-viewer/internal/views"
	"text-viewer/internal/watcher"
)

const (
	AppVersion      = "1.0.0"
	eventBufferSize = 64
)

// Options overrides parts of the environment, mainly for tests
type Options struct {
	// FyneApp defaults to app.NewWithID(cfg.App.ID)
	FyneApp fyne.App
	// LogWriter defaults to stderr
	LogWriter io.Writer
}

type Application struct {
	cfg        *config.Config
	fyneApp    fyne.App
	window     fyne.Window
	logger     logger.Logger
	store      storage.StringSetStore
	repo       *models.RecentFilesRepository
	recent     *services.RecentFilesService
	bus        *events.Bus
	timings    *timing.Tracker
	watcher    *watcher.FileWatcher
	controller *controllers.MainController
	view       *views.MainView
	lifecycle  *Lifecycle
}

// NewApplication wires every component. It must be called on the main
// goroutine before Run.
func NewApplication(cfg *config.Config, opts Options) (*Application, error) {
	fyneApp := opts.FyneApp
	if fyneApp == nil {
		fyneApp = fyneapp.NewWithID(cfg.App.ID)
	}
	out := opts.LogWriter
	if out == nil {
		out = os.Stderr
	}

	log := logger.NewWithWriter(out, cfg.Log.Level, logger.Format(cfg.Log.Format))
	log.Info("Application", "starting application", map[string]interface{}{
		"version":   AppVersion,
		"backend":   cfg.Storage.Backend,
		"read_mode": cfg.Workflow.ReadMode,
		"watch":     cfg.Watch.Enabled,
	})

	path := storagePath(cfg.Storage, fyneApp)
	store, err := storage.New(cfg.Storage.Backend, path, fyneApp.Preferences())
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Storage.Backend, err)
	}

	window := fyneApp.NewWindow(cfg.App.Name)
	window.Resize(fyne.NewSize(cfg.App.Width, cfg.App.Height))
	window.SetMaster()

	hostStorage := host.NewStorage()
	repo := models.NewRecentFilesRepository()
	files := services.NewFileService(hostStorage, hostStorage, cfg.Workflow.Strict(), log)
	recent := services.NewRecentFilesService(store, cfg.Storage.Key, hostStorage, repo, log)

	bus := events.NewBus(eventBufferSize, func(handlerID string, recovered interface{}) {
		log.Warning("EventBus", "handler panicked", map[string]interface{}{
			"handler": handlerID,
			"panic":   fmt.Sprint(recovered),
		})
	})
	subscribeAudit(bus, log)
	timings := timing.NewTracker(log)

	deps := controllers.Dependencies{
		Files:   files,
		Recent:  recent,
		Repo:    repo,
		Picker:  host.NewFilePicker(window, host.MIMEHints),
		Events:  bus,
		Timings: timings,
		Logger:  log,
	}

	var fw *watcher.FileWatcher
	if cfg.Watch.Enabled {
		fw = watcher.NewFileWatcher(cfg.Watch.Debounce, log)
		deps.Watcher = fw
	}

	controller := controllers.NewMainController(deps)
	view := views.NewMainView(window, cfg.App.Name)
	controller.SetMainView(view)

	a := &Application{
		cfg:        cfg,
		fyneApp:    fyneApp,
		window:     window,
		logger:     log,
		store:      store,
		repo:       repo,
		recent:     recent,
		bus:        bus,
		timings:    timings,
		watcher:    fw,
		controller: controller,
		view:       view,
	}
	a.lifecycle = NewLifecycle(a)

	log.Info("Application", "initialization complete", nil)
	return a, nil
}

// Start loads the recent files list into the repository
func (a *Application) Start(ctx context.Context) error {
	if err := a.controller.Start(ctx); err != nil {
		return fmt.Errorf("failed to restore recent files: %w", err)
	}
	return nil
}

// Run shows the window and blocks until the window is closed or a shutdown
// signal arrives.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// a failed restore is reported when the app exits, the window stays usable
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := a.Start(gCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	// signals are watched on ctx so a restore failure does not stop it
	g.Go(func() error {
		a.lifecycle.Listen(ctx)
		// a signal stopped us while the window is still up
		if ctx.Err() == nil && a.lifecycle.Stopped() {
			fyne.Do(a.fyneApp.Quit)
		}
		return nil
	})

	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested", nil)
		a.window.Close()
	})

	a.window.ShowAndRun()

	cancel()
	a.lifecycle.Shutdown()

	if err := g.Wait(); err != nil {
		a.logger.Error("Application", err, nil)
		return err
	}

	a.logger.Info("Application", "stopped", nil)
	return nil
}

// Shutdown stops every component once
func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}

func (a *Application) View() *views.MainView {
	return a.view
}

func (a *Application) Repository() *models.RecentFilesRepository {
	return a.repo
}
