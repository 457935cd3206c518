package components

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DefaultNoticeDuration is how long a notice stays up unless dismissed
const DefaultNoticeDuration = 4 * time.Second

// NoticeBar is a transient message strip with a Dismiss action, shown at
// the bottom of the window.
type NoticeBar struct {
	container *fyne.Container
	message   *widget.Label
	dismiss   *widget.Button
	duration  time.Duration

	timer      *time.Timer
	generation int
}

func NewNoticeBar(duration time.Duration) *NoticeBar {
	nb := &NoticeBar{duration: duration}
	nb.message = widget.NewLabel("")
	nb.message.Wrapping = fyne.TextWrapWord
	nb.dismiss = widget.NewButton("Dismiss", nb.Hide)
	nb.container = container.NewBorder(nil, nil, nil, nb.dismiss, nb.message)
	nb.container.Hide()
	return nb
}

// Show displays message and schedules it to disappear. A newer message
// replaces the current one and restarts the timer. Call on the UI goroutine.
func (nb *NoticeBar) Show(message string) {
	nb.message.SetText(message)
	nb.container.Show()

	nb.generation++
	gen := nb.generation
	if nb.timer != nil {
		nb.timer.Stop()
	}
	if nb.duration <= 0 {
		return
	}
	nb.timer = time.AfterFunc(nb.duration, func() {
		fyne.Do(func() {
			if nb.generation == gen {
				nb.Hide()
			}
		})
	})
}

// Hide takes the notice down. Call on the UI goroutine.
func (nb *NoticeBar) Hide() {
	if nb.timer != nil {
		nb.timer.Stop()
		nb.timer = nil
	}
	nb.container.Hide()
}

func (nb *NoticeBar) Visible() bool {
	return nb.container.Visible()
}

func (nb *NoticeBar) Message() string {
	return nb.message.Text
}

func (nb *NoticeBar) DismissButton() *widget.Button {
	return nb.dismiss
}

func (nb *NoticeBar) GetContainer() *fyne.Container {
	return nb.container
}
