package controllers

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"text-viewer/internal/apperr"
	"text-viewer/internal/events"
	"text-viewer/internal/host"
	"text-viewer/internal/logger"
	"text-viewer/internal/models"
	"text-viewer/internal/services"
	"text-viewer/internal/timing"
)

const component = "MainController"

// View is the part of the UI the controller drives. Implementations are
// responsible for marshalling calls onto the UI goroutine.
type View interface {
	SetOpenHandler(handler func())
	SetRecentSelectedHandler(handler func(models.FileRecord))

	ShowContent(name, content string)
	SetRecentFiles(list models.RecentFilesList)
	Notify(message string)
	ShowError(title string, err error)
	UpdateStatus(status string)
}

// Follower watches one local file at a time for changes
type Follower interface {
	Follow(path string, onChange func())
	Stop()
}

// Dependencies groups what NewMainController needs. Watcher, Events and
// Timings may be nil.
type Dependencies struct {
	Files   *services.FileService
	Recent  *services.RecentFilesService
	Repo    *models.RecentFilesRepository
	Picker  host.Picker
	Events  events.Publisher
	Watcher Follower
	Timings *timing.Tracker
	Logger  logger.Logger
}

// MainController runs the file-open workflow
type MainController struct {
	files   *services.FileService
	recent  *services.RecentFilesService
	repo    *models.RecentFilesRepository
	picker  host.Picker
	events  events.Publisher
	watcher Follower
	timings *timing.Tracker
	logger  logger.Logger

	mainView View

	// workflowMu serializes open workflows and the startup restore
	workflowMu sync.Mutex
	restored   bool

	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	current  *models.FileRecord
	lastOpen time.Time
}

func NewMainController(deps Dependencies) *MainController {
	log := deps.Logger
	if log == nil {
		log = logger.NoOpLogger{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &MainController{
		files:   deps.Files,
		recent:  deps.Recent,
		repo:    deps.Repo,
		picker:  deps.Picker,
		events:  deps.Events,
		watcher: deps.Watcher,
		timings: deps.Timings,
		logger:  log,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetMainView associates the view with this controller and keeps its recent
// files list in sync with the repository.
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view

	view.SetOpenHandler(mc.RequestOpen)
	view.SetRecentSelectedHandler(mc.RequestReopen)

	if mc.repo != nil {
		mc.repo.OnChange(view.SetRecentFiles)
		view.SetRecentFiles(mc.repo.List())
	}
}

// Start loads the recent files list. A load failure leaves the list empty
// and is returned. Open workflows wait for it, and one that gets in first
// loads the list itself, so an early open never overwrites stored entries.
func (mc *MainController) Start(ctx context.Context) error {
	mc.workflowMu.Lock()
	defer mc.workflowMu.Unlock()

	if mc.restored {
		return nil
	}
	list, err := mc.restoreLocked(ctx)
	if err != nil {
		return err
	}
	mc.publish(events.RecentFilesLoaded, map[string]interface{}{"count": len(list)})
	return nil
}

func (mc *MainController) restoreLocked(ctx context.Context) (models.RecentFilesList, error) {
	mc.restored = true
	list, err := mc.recent.Restore(ctx)
	if err != nil {
		mc.logger.Error(component, err, map[string]interface{}{"step": "restore_recent_files"})
		mc.notify("Recent files could not be loaded")
		return nil, err
	}
	return list, nil
}

// RequestOpen starts the new-file workflow in the background
func (mc *MainController) RequestOpen() {
	go func() {
		_, _ = mc.OpenNew(mc.baseContext())
	}()
}

// RequestReopen starts the re-open workflow for record in the background
func (mc *MainController) RequestReopen(record models.FileRecord) {
	go func() {
		_, _ = mc.OpenRecent(mc.baseContext(), record)
	}()
}

// OpenNew asks the user for a file, validates and reads it, remembers it and
// displays it. It blocks while the picker is open and must not run on the UI
// goroutine.
func (mc *MainController) OpenNew(ctx context.Context) (*models.OpenResult, error) {
	mc.workflowMu.Lock()
	defer mc.workflowMu.Unlock()

	reference, err := mc.picker.Pick(ctx)
	switch {
	case errors.Is(err, apperr.ErrSelectionCancelled):
		mc.logger.Debug(component, "file selection cancelled", nil)
		return nil, err
	case errors.Is(err, apperr.ErrPickerBusy):
		mc.logger.Debug(component, "file picker already open", nil)
		return nil, err
	case err != nil:
		mc.handleError("File selection error", err)
		return nil, err
	}

	name := mc.files.DisplayName(reference)
	if err := mc.files.Validate(name); err != nil {
		mc.logger.Warning(component, "unsupported file type", map[string]interface{}{
			"name":      name,
			"reference": reference,
		})
		mc.notify(fmt.Sprintf("Unsupported file type: %s", name))
		mc.publish(events.UnsupportedFileType, map[string]interface{}{
			"name":      name,
			"reference": reference,
		})
		return nil, err
	}

	return mc.open(ctx, models.FileRecord{DisplayName: name, Reference: reference})
}

// OpenRecent reads and displays a record from the recent files list. The
// extension is not checked again.
func (mc *MainController) OpenRecent(ctx context.Context, record models.FileRecord) (*models.OpenResult, error) {
	mc.workflowMu.Lock()
	defer mc.workflowMu.Unlock()

	return mc.open(ctx, record)
}

func (mc *MainController) open(ctx context.Context, record models.FileRecord) (*models.OpenResult, error) {
	defer mc.track("open")()
	mc.updateStatus(fmt.Sprintf("Opening %s...", record.DisplayName))

	stopRead := mc.track("read")
	content, err := mc.files.Read(ctx, record.Reference)
	stopRead()
	if err != nil {
		mc.publish(events.ContentReadFailed, map[string]interface{}{
			"name":      record.DisplayName,
			"reference": record.Reference,
			"error":     err.Error(),
		})
		mc.handleError("Could not read file", err)
		mc.updateStatus("Ready")
		return nil, err
	}

	if !mc.restored {
		// error already logged; remember into the empty list
		_, _ = mc.restoreLocked(ctx)
	}

	added, err := mc.recent.Remember(ctx, record)
	switch {
	case err != nil:
		mc.logger.Error(component, err, map[string]interface{}{"reference": record.Reference})
		mc.publish(events.PersistenceFailed, map[string]interface{}{
			"reference": record.Reference,
			"error":     err.Error(),
		})
		mc.notify("Recent files could not be saved")
	case added:
		mc.publish(events.RecentFilesSaved, map[string]interface{}{"count": mc.recentCount()})
	}

	mc.display(record, content)
	mc.publish(events.FileOpened, map[string]interface{}{
		"name":       record.DisplayName,
		"reference":  record.Reference,
		"size_bytes": len(content),
		"added":      added,
	})

	return &models.OpenResult{Record: record, Content: content, Added: added}, nil
}

func (mc *MainController) display(record models.FileRecord, content string) {
	mc.mu.Lock()
	rec := record
	mc.current = &rec
	mc.lastOpen = time.Now()
	mc.mu.Unlock()

	if mc.mainView != nil {
		mc.mainView.ShowContent(record.DisplayName, content)
	}
	mc.updateStatus(fmt.Sprintf("Opened %s", record.DisplayName))

	if mc.watcher == nil {
		return
	}
	path, ok := host.LocalPath(record.Reference)
	if !ok {
		mc.watcher.Stop()
		return
	}
	mc.watcher.Follow(path, func() { mc.reload(record) })
}

// reload re-reads the displayed file after a change on disk. It is skipped
// while an open workflow runs, since that workflow replaces the display.
func (mc *MainController) reload(record models.FileRecord) {
	if !mc.workflowMu.TryLock() {
		return
	}
	defer mc.workflowMu.Unlock()

	if current := mc.Current(); current == nil || !current.SameFile(record) {
		return
	}

	content, err := mc.files.Read(mc.baseContext(), record.Reference)
	if err != nil {
		mc.logger.Warning(component, "reload failed", map[string]interface{}{
			"reference": record.Reference,
			"error":     err.Error(),
		})
		return
	}

	if mc.mainView != nil {
		mc.mainView.ShowContent(record.DisplayName, content)
	}
	mc.publish(events.FileReloaded, map[string]interface{}{
		"name":       record.DisplayName,
		"size_bytes": len(content),
	})
}

// Current returns the record on display, if any
func (mc *MainController) Current() *models.FileRecord {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	if mc.current == nil {
		return nil
	}
	rec := *mc.current
	return &rec
}

// ApplicationState summarises the controller for diagnostics
type ApplicationState struct {
	HasOpenFile bool
	OpenFile    string
	RecentCount int
	LastOpen    time.Time
}

func (mc *MainController) GetApplicationState() ApplicationState {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	state := ApplicationState{
		HasOpenFile: mc.current != nil,
		RecentCount: mc.recentCount(),
		LastOpen:    mc.lastOpen,
	}
	if mc.current != nil {
		state.OpenFile = mc.current.DisplayName
	}
	return state
}

func (mc *MainController) recentCount() int {
	if mc.repo == nil {
		return len(mc.recent.List())
	}
	return mc.repo.Len()
}

func (mc *MainController) track(operation string) func() {
	if mc.timings == nil {
		return func() {}
	}
	return mc.timings.Start(operation)
}

func (mc *MainController) baseContext() context.Context {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.ctx
}

func (mc *MainController) publish(eventType string, data map[string]interface{}) {
	if mc.events == nil {
		return
	}
	mc.events.Publish(events.Event{Type: eventType, Data: data})
}

func (mc *MainController) notify(message string) {
	if mc.mainView != nil {
		mc.mainView.Notify(message)
	}
}

func (mc *MainController) updateStatus(status string) {
	if mc.mainView != nil {
		mc.mainView.UpdateStatus(status)
	}
}

// handleError logs err and shows it to the user
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error(component, err, map[string]interface{}{"title": title})
	if mc.mainView != nil {
		mc.mainView.ShowError(title, err)
	}
}

// Shutdown cancels running workflows, waits for the one in flight and stops
// watching files
func (mc *MainController) Shutdown() {
	mc.cancel()
	mc.workflowMu.Lock()
	mc.workflowMu.Unlock() //nolint:staticcheck
	if mc.watcher != nil {
		mc.watcher.Stop()
	}
}
