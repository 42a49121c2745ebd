package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/model"
)

// ResultRow is one line of an item log: title, status, percent and file actions
type ResultRow struct {
	widget.BaseWidget

	localization *Localization
	state        itemState

	titleLabel   *widget.Label
	statusLabel  *widget.Label
	percentLabel *widget.Label
	errorLabel   *widget.Label
	openBtn      *widget.Button
	revealBtn    *widget.Button

	onOpen   func(path string)
	onReveal func(path string)
}

// NewResultRow creates an empty row
func NewResultRow(localization *Localization) *ResultRow {
	rr := &ResultRow{localization: localization}
	rr.ExtendBaseWidget(rr)
	rr.createUI()
	return rr
}

// SetCallbacks sets the file actions
func (rr *ResultRow) SetCallbacks(onOpen, onReveal func(path string)) {
	rr.onOpen = onOpen
	rr.onReveal = onReveal
}

func (rr *ResultRow) createUI() {
	rr.titleLabel = widget.NewLabel("")
	rr.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	rr.titleLabel.Truncation = fyne.TextTruncateEllipsis

	rr.statusLabel = widget.NewLabel("")
	rr.statusLabel.Alignment = fyne.TextAlignTrailing
	rr.percentLabel = widget.NewLabel("")
	rr.percentLabel.Alignment = fyne.TextAlignTrailing

	rr.errorLabel = widget.NewLabel("")
	rr.errorLabel.Importance = widget.DangerImportance
	rr.errorLabel.Truncation = fyne.TextTruncateEllipsis
	rr.errorLabel.Hide()

	// Read the path at click time, rows are recycled by the list
	rr.openBtn = widget.NewButton(IconPlay, func() {
		if rr.onOpen != nil && rr.state.Path != "" {
			rr.onOpen(rr.state.Path)
		}
	})
	rr.openBtn.Importance = widget.LowImportance
	rr.revealBtn = widget.NewButton(IconFolder, func() {
		if rr.onReveal != nil && rr.state.Path != "" {
			rr.onReveal(rr.state.Path)
		}
	})
	rr.revealBtn.Importance = widget.LowImportance
}

// Update shows state
func (rr *ResultRow) Update(state itemState) {
	rr.state = state

	rr.titleLabel.SetText(state.Title)
	rr.statusLabel.SetText(itemStatusText(rr.localization, state.Status))
	if state.Status == model.ItemStatusDownloading || state.Status == model.ItemStatusCompleted {
		rr.percentLabel.SetText(percentText(state.Percent))
	} else {
		rr.percentLabel.SetText("")
	}

	if state.Error != "" {
		rr.errorLabel.SetText(state.Error)
		rr.errorLabel.Show()
	} else {
		rr.errorLabel.Hide()
	}

	if state.Status == model.ItemStatusCompleted && state.Path != "" {
		rr.openBtn.Enable()
		rr.revealBtn.Enable()
	} else {
		rr.openBtn.Disable()
		rr.revealBtn.Disable()
	}
}

// CreateRenderer implements fyne.Widget
func (rr *ResultRow) CreateRenderer() fyne.WidgetRenderer {
	status := container.NewGridWrap(fyne.NewSize(StatusLabelWidth, rr.statusLabel.MinSize().Height), rr.statusLabel)
	percent := container.NewGridWrap(fyne.NewSize(PercentLabelWidth, rr.percentLabel.MinSize().Height), rr.percentLabel)
	actions := container.NewHBox(layout.NewSpacer(), rr.openBtn, rr.revealBtn)

	top := container.NewBorder(nil, nil, nil, container.NewHBox(status, percent, actions), rr.titleLabel)
	return widget.NewSimpleRenderer(container.NewVBox(top, rr.errorLabel))
}
