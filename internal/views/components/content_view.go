package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ContentView renders a file name and its content, read-only.
type ContentView struct {
	container  *fyne.Container
	nameLabel  *widget.Label
	text       *widget.TextGrid
	backButton *widget.Button

	backHandler func()
}

func NewContentView() *ContentView {
	cv := &ContentView{}

	cv.nameLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	cv.nameLabel.Truncation = fyne.TextTruncateEllipsis

	cv.text = widget.NewTextGrid()
	cv.text.ShowLineNumbers = true

	cv.backButton = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		if cv.backHandler != nil {
			cv.backHandler()
		}
	})

	header := container.NewBorder(nil, nil, cv.backButton, nil, cv.nameLabel)
	cv.container = container.NewBorder(header, nil, nil, nil, container.NewScroll(cv.text))
	return cv
}

// SetContent replaces what is shown. Call on the UI goroutine.
func (cv *ContentView) SetContent(name, content string) {
	cv.nameLabel.SetText(name)
	cv.text.SetText(content)
}

func (cv *ContentView) Name() string {
	return cv.nameLabel.Text
}

func (cv *ContentView) Content() string {
	return cv.text.Text()
}

func (cv *ContentView) SetBackHandler(handler func()) {
	cv.backHandler = handler
}

func (cv *ContentView) BackButton() *widget.Button {
	return cv.backButton
}

func (cv *ContentView) GetContainer() *fyne.Container {
	return cv.container
}
