package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"text-viewer/internal/models"
	"text-viewer/internal/views/components"
)

// Screen identifies which page the window is showing
type Screen int

const (
	HomeScreen Screen = iota
	ContentScreen
)

func (s Screen) String() string {
	switch s {
	case HomeScreen:
		return "home"
	case ContentScreen:
		return "content"
	default:
		return "unknown"
	}
}

// MainView is the window-level view: a home screen with the open action and
// the recent files, and a content screen for the opened file.
type MainView struct {
	window fyne.Window

	toolbar     *components.Toolbar
	recentList  *components.RecentList
	contentView *components.ContentView
	statusBar   *components.StatusBar
	noticeBar   *components.NoticeBar

	homePage    *fyne.Container
	contentPage *fyne.Container
	body        *fyne.Container
	root        *fyne.Container
	screen      Screen
	errorTitle  string

	// Event handlers - connected to controller
	openHandler           func()
	recentSelectedHandler func(models.FileRecord)
}

// NewMainView builds the view and installs it as the window content.
// Must be called on the UI goroutine.
func NewMainView(window fyne.Window, title string) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents(title)
	view.buildLayout()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents(title string) {
	mv.toolbar = components.NewToolbar(title)
	mv.recentList = components.NewRecentList()
	mv.contentView = components.NewContentView()
	mv.statusBar = components.NewStatusBar()
	mv.noticeBar = components.NewNoticeBar(components.DefaultNoticeDuration)
}

func (mv *MainView) buildLayout() {
	mv.homePage = container.NewBorder(mv.toolbar.GetContainer(), nil, nil, nil, mv.recentList.GetContainer())
	mv.contentPage = mv.contentView.GetContainer()

	// only one page is ever in body
	mv.body = container.NewStack(mv.homePage)
	mv.screen = HomeScreen

	bottom := container.NewVBox(mv.noticeBar.GetContainer(), mv.statusBar.GetContainer())
	mv.root = container.NewBorder(nil, bottom, nil, nil, mv.body)

	mv.window.SetContent(mv.root)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetOpenHandler(func() {
		if mv.openHandler != nil {
			mv.openHandler()
		}
	})

	mv.recentList.SetSelectHandler(func(record models.FileRecord) {
		if mv.recentSelectedHandler != nil {
			mv.recentSelectedHandler(record)
		}
	})

	mv.contentView.SetBackHandler(mv.showHome)
}

// SetOpenHandler sets the handler for the open action
func (mv *MainView) SetOpenHandler(handler func()) {
	mv.openHandler = handler
}

// SetRecentSelectedHandler sets the handler for taps on a recent file
func (mv *MainView) SetRecentSelectedHandler(handler func(models.FileRecord)) {
	mv.recentSelectedHandler = handler
}

// UI update methods - called by controller from any goroutine

// ShowContent navigates to the content screen
func (mv *MainView) ShowContent(name, content string) {
	fyne.Do(func() {
		mv.contentView.SetContent(name, content)
		mv.showPage(ContentScreen)
	})
}

// SetRecentFiles replaces the entries of the recent list
func (mv *MainView) SetRecentFiles(list models.RecentFilesList) {
	records := append(models.RecentFilesList(nil), list...)
	fyne.Do(func() {
		mv.recentList.SetRecords(records)
	})
}

// Notify shows a transient message
func (mv *MainView) Notify(message string) {
	fyne.Do(func() {
		mv.noticeBar.Show(message)
	})
}

// ShowError displays an error dialog titled title
func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		message := widget.NewLabel(err.Error())
		message.Wrapping = fyne.TextWrapWord
		content := container.NewBorder(nil, nil, widget.NewIcon(theme.ErrorIcon()), nil, message)

		mv.errorTitle = title
		dialog.NewCustom(title, "OK", content, mv.window).Show()
	})
}

// UpdateStatus updates the status bar message
func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

func (mv *MainView) showHome() {
	mv.showPage(HomeScreen)
}

func (mv *MainView) showPage(screen Screen) {
	page := mv.homePage
	if screen == ContentScreen {
		page = mv.contentPage
	}
	mv.screen = screen
	mv.body.Objects = []fyne.CanvasObject{page}
	mv.body.Refresh()
}

// Screen returns the page currently shown
func (mv *MainView) Screen() Screen {
	return mv.screen
}

// GetWindow returns the main window
func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

// GetContainer returns the root container
func (mv *MainView) GetContainer() *fyne.Container {
	return mv.root
}

func (mv *MainView) GetToolbar() *components.Toolbar {
	return mv.toolbar
}

func (mv *MainView) GetRecentList() *components.RecentList {
	return mv.recentList
}

func (mv *MainView) GetContentView() *components.ContentView {
	return mv.contentView
}

func (mv *MainView) GetNoticeBar() *components.NoticeBar {
	return mv.noticeBar
}

func (mv *MainView) GetStatusBar() *components.StatusBar {
	return mv.statusBar
}

// ViewState is a snapshot used by tests and debug logging
type ViewState struct {
	Screen        Screen
	DisplayedName string
	RecentCount   int
	Notice        string
	NoticeVisible bool
	StatusMessage string
	ErrorTitle    string
}

// GetViewState returns the current view state. Call on the UI goroutine.
func (mv *MainView) GetViewState() ViewState {
	return ViewState{
		Screen:        mv.screen,
		DisplayedName: mv.contentView.Name(),
		RecentCount:   len(mv.recentList.Records()),
		Notice:        mv.noticeBar.Message(),
		NoticeVisible: mv.noticeBar.Visible(),
		StatusMessage: mv.statusBar.GetStatus(),
		ErrorTitle:    mv.errorTitle,
	}
}
