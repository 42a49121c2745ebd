package ui

import (
	"context"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/model"
)

// PlaylistView downloads every video of a playlist, one after another
type PlaylistView struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	worker       *download.PlaylistWorker

	urlEntry  *widget.Entry
	destEntry *destinationEntry
	startBtn  *widget.Button
	panel     *batchPanel
}

// NewPlaylistView creates the playlist tab
func NewPlaylistView(ctx context.Context, window fyne.Window, settings *config.Settings, localization *Localization, worker *download.PlaylistWorker, onDownloaded func()) *PlaylistView {
	v := &PlaylistView{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		worker:       worker,
	}

	v.urlEntry = widget.NewEntry()
	v.urlEntry.Validator = validateURL
	v.urlEntry.OnSubmitted = func(string) { v.onStart() }
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

func (v *PlaylistView) onStart() {
	source := cleanURL(v.urlEntry.Text)
	if source == "" {
		dialog.ShowInformation(v.localization.GetText(KeyError), v.localization.GetText(KeyPleaseEnterURL), v.window)
		return
	}
	if err := validateURL(source); err != nil {
		dialog.ShowError(err, v.window)
		return
	}

	destination := strings.TrimSpace(v.destEntry.entry.Text)
	req := model.NewRequest(source, destination, v.settings.RequestResolution())

	// Policy changes apply to the next batch
	v.worker.SetPolicy(v.settings.GetFailurePolicy())

	v.startBtn.Disable()
	v.panel.begin()
	v.panel.follow(v.worker.Start(v.ctx, req))
}

func (v *PlaylistView) refreshTexts() {
	v.urlEntry.SetPlaceHolder(v.localization.GetText(KeyEnterPlaylistURL))
	v.destEntry.refreshTexts()
	v.startBtn.SetText(v.localization.GetText(KeyStart))
	v.panel.resetTexts()
}

// Container returns the tab content
func (v *PlaylistView) Container() fyne.CanvasObject {
	form := container.NewVBox(
		container.NewBorder(nil, nil, nil, v.startBtn, v.urlEntry),
		v.destEntry.container(),
	)
	return container.NewBorder(form, nil, nil, nil, v.panel.container())
}

// destinationEntry is a directory path entry with a browse button
type destinationEntry struct {
	window       fyne.Window
	localization *Localization
	entry        *widget.Entry
	browseBtn    *widget.Button
}

func newDestinationEntry(window fyne.Window, localization *Localization, dir string) *destinationEntry {
	d := &destinationEntry{window: window, localization: localization, entry: widget.NewEntry()}
	d.entry.SetText(dir)
	d.browseBtn = widget.NewButton("", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			d.entry.SetText(uri.Path())
		}, d.window)
	})
	return d
}

func (d *destinationEntry) refreshTexts() {
	d.entry.SetPlaceHolder(d.localization.GetText(KeyDestination))
	d.browseBtn.SetText(d.localization.GetText(KeyBrowse))
}

func (d *destinationEntry) container() fyne.CanvasObject {
	return container.NewBorder(nil, nil, nil, d.browseBtn, d.entry)
}
