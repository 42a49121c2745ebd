package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/model"
)

// itemState is the display state of one batch item
type itemState struct {
	Index   int
	Title   string
	Status  model.ItemStatus
	Percent int // -1 while the size is unknown
	Path    string
	Error   string
}

// itemRows folds download events into per-item display state, ordered by
// first appearance.
type itemRows struct {
	rows    []itemState
	byIndex map[int]int
}

func (r *itemRows) reset() {
	r.rows = nil
	r.byIndex = nil
}

func (r *itemRows) row(index int) *itemState {
	if r.byIndex == nil {
		r.byIndex = make(map[int]int)
	}
	if i, ok := r.byIndex[index]; ok {
		return &r.rows[i]
	}
	r.rows = append(r.rows, itemState{Index: index, Status: model.ItemStatusPending, Percent: -1})
	r.byIndex[index] = len(r.rows) - 1
	return &r.rows[len(r.rows)-1]
}

// apply updates the rows with ev and reports whether anything changed
func (r *itemRows) apply(ev download.Event) bool {
	switch e := ev.(type) {
	case download.ItemStarted:
		row := r.row(e.Index)
		row.Title = e.Name
		if row.Title == "" {
			row.Title = e.Source
		}
		row.Status = model.ItemStatusResolving
	case download.ItemProgress:
		row := r.row(e.Index)
		row.Status = model.ItemStatusDownloading
		row.Percent = e.Percent()
	case download.ItemCompleted:
		row := r.row(e.Result.Index)
		row.Title = e.Result.GetDisplayTitle()
		row.Status = e.Result.Status
		row.Path = e.Result.Path
		row.Error = e.Result.Error
		if e.Result.Success {
			row.Percent = 100
		}
	default:
		return false
	}
	return true
}

// ItemLog lists the items of the running batch
type ItemLog struct {
	localization *Localization
	rows         itemRows
	list         *widget.List
	onOpen       func(path string)
	onReveal     func(path string)
}

// NewItemLog creates an empty item log
func NewItemLog(localization *Localization, onOpen, onReveal func(path string)) *ItemLog {
	il := &ItemLog{localization: localization, onOpen: onOpen, onReveal: onReveal}
	il.list = widget.NewList(
		func() int { return len(il.rows.rows) },
		func() fyne.CanvasObject { return NewResultRow(il.localization) },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(il.rows.rows) {
				return
			}
			if row, ok := obj.(*ResultRow); ok {
				row.SetCallbacks(il.onOpen, il.onReveal)
				row.Update(il.rows.rows[id])
			}
		},
	)
	return il
}

// Apply folds an event into the log; call on the UI goroutine
func (il *ItemLog) Apply(ev download.Event) {
	if il.rows.apply(ev) {
		il.list.Refresh()
	}
}

// Reset clears the log for a new batch
func (il *ItemLog) Reset() {
	il.rows.reset()
	il.list.Refresh()
}

// Container returns the log widget
func (il *ItemLog) Container() fyne.CanvasObject {
	return container.NewStack(il.list)
}
