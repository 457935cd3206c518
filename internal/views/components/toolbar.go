package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the open action of the home screen
type Toolbar struct {
	container  *fyne.Container
	openButton *widget.Button
	title      *widget.Label

	openHandler func()
}

// NewToolbar creates a new toolbar component
func NewToolbar(title string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(title)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(title string) {
	t.title = widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	t.openButton = widget.NewButtonWithIcon("Open File", theme.FolderOpenIcon(), func() {
		if t.openHandler != nil {
			t.openHandler()
		}
	})
	t.openButton.Importance = widget.HighImportance
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewBorder(nil, nil, t.title, t.openButton)
}

// SetOpenHandler sets the handler for the open button
func (t *Toolbar) SetOpenHandler(handler func()) {
	t.openHandler = handler
}

// OpenButton exposes the button for tests and keyboard shortcuts
func (t *Toolbar) OpenButton() *widget.Button {
	return t.openButton
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
