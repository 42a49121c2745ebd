package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/model"
)

// BatchView downloads the entries of a descriptor file concurrently
type BatchView struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	manager      *download.Manager

	fileEntry *widget.Entry
	chooseBtn *widget.Button
	destEntry *destinationEntry
	startBtn  *widget.Button
	panel     *batchPanel
}

// NewBatchView creates the descriptor tab
func NewBatchView(ctx context.Context, window fyne.Window, settings *config.Settings, localization *Localization, manager *download.Manager, onDownloaded func()) *BatchView {
	v := &BatchView{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		manager:      manager,
	}

	v.fileEntry = widget.NewEntry()
	v.chooseBtn = widget.NewButton("", v.onChoose)
	v.destEntry = newDestinationEntry(window, localization, settings.GetDownloadDirectory())
	v.startBtn = widget.NewButton("", v.onStart)
	v.startBtn.Importance = widget.HighImportance

	v.panel = newBatchPanel(localization, openFile(window, localization), revealFile(window, localization))
	v.panel.onFinished = func(download.BatchCompleted) {
		v.startBtn.Enable()
		if onDownloaded != nil {
			onDownloaded()
		}
	}

	v.refreshTexts()
	return v
}

func (v *BatchView) onChoose() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		v.fileEntry.SetText(reader.URI().Path())
	}, v.window)
	fd.SetFilter(storage.NewExtensionFileFilter(DescriptorExtensions))
	fd.Show()
}

func (v *BatchView) onStart() {
	path := strings.TrimSpace(v.fileEntry.Text)
	if path == "" {
		v.onChoose()
		return
	}

	req := model.NewRequest(path, v.destEntry.entry.Text, v.settings.RequestResolution())
	v.manager.SetMaxParallel(v.settings.GetMaxParallelDownloads())

	// Descriptor parsing is file I/O, keep it off the UI goroutine
	v.startBtn.Disable()
	v.panel.begin()
	type started struct {
		events <-chan download.Event
		err    error
	}
	background(func() started {
		events, err := v.manager.Start(v.ctx, req)
		return started{events, err}
	}, func(s started) {
		if s.err != nil {
			v.panel.fail(s.err)
			dialog.ShowError(s.err, v.window)
			return
		}
		v.panel.follow(s.events)
	})
}

func (v *BatchView) refreshTexts() {
	v.fileEntry.SetPlaceHolder(v.localization.GetText(KeyDescriptorFile))
	v.chooseBtn.SetText(v.localization.GetText(KeyChooseDescriptor))
	v.destEntry.refreshTexts()
	v.startBtn.SetText(v.localization.GetText(KeyStart))
	v.panel.resetTexts()
}

// Container returns the tab content
func (v *BatchView) Container() fyne.CanvasObject {
	form := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(v.chooseBtn, v.startBtn), v.fileEntry),
		v.destEntry.container(),
	)
	return container.NewBorder(form, nil, nil, nil, v.panel.container())
}
