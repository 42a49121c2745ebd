package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/download"
)

// batchPanel shows the status line, overall progress and item log of one
// running batch. Its methods run on the UI goroutine.
type batchPanel struct {
	localization *Localization
	status       *widget.Label
	progress     *widget.ProgressBar
	log          *ItemLog
	running      bool
	onFinished   func(download.BatchCompleted)
}

func newBatchPanel(localization *Localization, onOpen, onReveal func(path string)) *batchPanel {
	p := &batchPanel{
		localization: localization,
		status:       widget.NewLabel(localization.GetText(KeyStatusIdle)),
		progress:     widget.NewProgressBar(),
		log:          NewItemLog(localization, onOpen, onReveal),
	}
	p.status.Wrapping = fyne.TextWrapWord
	return p
}

// begin resets the panel for a new batch
func (p *batchPanel) begin() {
	p.running = true
	p.log.Reset()
	p.progress.SetValue(0)
	p.status.SetText(p.localization.GetText(KeyStatusStarting))
}

// follow consumes the events of a started batch
func (p *batchPanel) follow(events <-chan download.Event) {
	pump(events, p.handle)
}

func (p *batchPanel) handle(ev download.Event) {
	p.log.Apply(ev)

	switch e := ev.(type) {
	case download.BatchProgressed:
		p.progress.SetValue(float64(e.Progress.Percent()) / 100)
		p.status.SetText(progressText(p.localization, e.Progress))
	case download.BatchCompleted:
		p.running = false
		if e.Progress.Total > 0 {
			p.progress.SetValue(float64(e.Progress.Percent()) / 100)
		}
		p.status.SetText(batchStatusText(p.localization, e))
		if p.onFinished != nil {
			p.onFinished(e)
		}
	}
}

// fail reports a batch that could not start
func (p *batchPanel) fail(err error) {
	p.handle(download.BatchCompleted{Err: err})
}

func (p *batchPanel) resetTexts() {
	if !p.running {
		p.status.SetText(p.localization.GetText(KeyStatusIdle))
	}
	p.log.list.Refresh()
}

func (p *batchPanel) container() fyne.CanvasObject {
	return container.NewBorder(container.NewVBox(p.status, p.progress), nil, nil, nil, p.log.Container())
}
