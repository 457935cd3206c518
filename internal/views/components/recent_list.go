package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"text-viewer/internal/models"
)

// RecentList shows the recent files and reports taps on an entry
type RecentList struct {
	container *fyne.Container
	list      *widget.List
	empty     *widget.Label
	records   models.RecentFilesList

	selectHandler func(models.FileRecord)
}

func NewRecentList() *RecentList {
	rl := &RecentList{}

	rl.list = widget.NewList(
		func() int { return len(rl.records) },
		func() fyne.CanvasObject {
			return container.NewHBox(widget.NewIcon(theme.FileTextIcon()), widget.NewLabel("template.txt"))
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			if id < 0 || id >= len(rl.records) {
				return
			}
			row := item.(*fyne.Container)
			row.Objects[1].(*widget.Label).SetText(rl.records[id].DisplayName)
		},
	)
	rl.list.OnSelected = func(id widget.ListItemID) {
		rl.list.Unselect(id)
		if id < 0 || id >= len(rl.records) {
			return
		}
		if rl.selectHandler != nil {
			rl.selectHandler(rl.records[id])
		}
	}

	rl.empty = widget.NewLabelWithStyle("No recent files", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	header := widget.NewLabelWithStyle("Recent files", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	rl.container = container.NewBorder(header, nil, nil, nil, container.NewStack(rl.empty, rl.list))
	rl.refreshPlaceholder()
	return rl
}

// SetRecords replaces the entries. Call on the UI goroutine.
func (rl *RecentList) SetRecords(records models.RecentFilesList) {
	rl.records = append(models.RecentFilesList(nil), records...)
	rl.list.Refresh()
	rl.refreshPlaceholder()
}

func (rl *RecentList) Records() models.RecentFilesList {
	return rl.records
}

// Select behaves like a tap on entry id
func (rl *RecentList) Select(id int) {
	rl.list.Select(id)
}

func (rl *RecentList) SetSelectHandler(handler func(models.FileRecord)) {
	rl.selectHandler = handler
}

func (rl *RecentList) GetContainer() *fyne.Container {
	return rl.container
}

func (rl *RecentList) refreshPlaceholder() {
	if len(rl.records) == 0 {
		rl.empty.Show()
		rl.list.Hide()
		return
	}
	rl.empty.Hide()
	rl.list.Show()
}
