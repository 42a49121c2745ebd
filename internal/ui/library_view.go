package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/library"
	"github.com/ytget/hitplayer/internal/model"
	"github.com/ytget/hitplayer/internal/platform"
	"github.com/ytget/hitplayer/internal/probe"
)

// LibraryView lists the media files of the library directory and plays them
// with the default application. Its methods run on the UI goroutine.
type LibraryView struct {
	ctx          context.Context
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	library      *library.Library
	probe        *probe.Service
	single       *download.SingleWorker
	logger       *slog.Logger

	entries   []model.LibraryEntry
	durations map[string]time.Duration // by path; absent while probing
	probeOff  bool                     // ffprobe missing

	dirLabel     *widget.Label
	statusLabel  *widget.Label
	list         *widget.List
	playBtn      *widget.Button
	nextBtn      *widget.Button
	deleteBtn    *widget.Button
	refreshBtn   *widget.Button
	changeDirBtn *widget.Button
	autoPlay     *widget.Check

	urlEntry    *widget.Entry
	downloadBtn *widget.Button
	downloadBar *widget.ProgressBar

	autoplayTimer *time.Timer
	refreshTimer  *time.Timer
	stopWatch     context.CancelFunc
}

// NewLibraryView creates the library tab for the configured video directory
func NewLibraryView(ctx context.Context, window fyne.Window, settings *config.Settings, localization *Localization, prober *probe.Service, single *download.SingleWorker, logger *slog.Logger) *LibraryView {
	if logger == nil {
		logger = slog.Default()
	}
	v := &LibraryView{
		ctx:          ctx,
		window:       window,
		settings:     settings,
		localization: localization,
		library:      library.New(settings.GetVideoDirectory(), logger),
		probe:        prober,
		single:       single,
		logger:       logger,
		durations:    make(map[string]time.Duration),
	}
	v.createUI()
	v.refreshTexts()
	return v
}

func (v *LibraryView) createUI() {
	v.dirLabel = widget.NewLabel(v.library.Dir())
	v.dirLabel.Truncation = fyne.TextTruncateEllipsis
	v.statusLabel = widget.NewLabel("")
	v.statusLabel.Truncation = fyne.TextTruncateEllipsis

	v.list = widget.NewList(
		func() int { return len(v.entries) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(v.entries) {
				return
			}
			e := v.entries[id]
			obj.(*widget.Label).SetText(libraryEntryText(e, v.durationText(e)))
		},
	)
	v.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(v.entries) {
			return
		}
		if _, err := v.library.Select(v.entries[id].Name); err != nil {
			v.logger.Warn("selection failed", "name", v.entries[id].Name, "error", err)
		}
		v.updateButtons()
	}
	v.list.OnUnselected = func(widget.ListItemID) { v.updateButtons() }

	v.playBtn = widget.NewButton("", v.onPlay)
	v.playBtn.Importance = widget.HighImportance
	v.nextBtn = widget.NewButton("", v.onNext)
	v.deleteBtn = widget.NewButton("", v.onDelete)
	v.deleteBtn.Importance = widget.DangerImportance
	v.refreshBtn = widget.NewButton("", v.refresh)
	v.changeDirBtn = widget.NewButton("", v.onChangeDir)

	v.autoPlay = widget.NewCheck("", func(enabled bool) {
		v.settings.SetAutoPlayNext(enabled)
		if !enabled {
			v.stopAutoplay()
		}
	})
	v.autoPlay.SetChecked(v.settings.GetAutoPlayNext())

	v.urlEntry = widget.NewEntry()
	v.urlEntry.Validator = validateURL
	v.urlEntry.OnSubmitted = func(string) { v.onDownload() }
	v.downloadBtn = widget.NewButton("", v.onDownload)
	v.downloadBar = widget.NewProgressBar()
	v.downloadBar.Hide()

	v.updateButtons()
}

// Start loads the listing and begins watching the directory
func (v *LibraryView) Start() {
	v.refresh()
	v.watch()
}

func (v *LibraryView) refresh() {
	background(func() scanned {
		entries, err := v.library.Refresh()
		return scanned{entries, err}
	}, v.showScan)
}

type scanned struct {
	entries []model.LibraryEntry
	err     error
}

func (v *LibraryView) showScan(s scanned) {
	if s.err != nil {
		v.statusLabel.SetText(v.localization.Format(KeyStatusFailed, s.err))
		return
	}
	v.setEntries(s.entries)
}

func (v *LibraryView) setEntries(entries []model.LibraryEntry) {
	v.entries = entries
	v.dirLabel.SetText(v.library.Dir())

	v.list.UnselectAll()
	if sel, ok := v.library.Selected(); ok {
		for i, e := range entries {
			if e.Name == sel.Name {
				v.list.Select(i)
				break
			}
		}
	}

	if len(entries) == 0 {
		v.statusLabel.SetText(v.localization.Format(KeyLibraryEmpty, v.library.Dir()))
	} else {
		v.statusLabel.SetText("")
	}
	v.list.Refresh()
	v.updateButtons()
	v.probeDurations(entries)
}

// probeDurations fills in durations of entries not probed yet
func (v *LibraryView) probeDurations(entries []model.LibraryEntry) {
	if v.probe == nil || v.probeOff {
		return
	}
	var pending []string
	for _, e := range entries {
		if _, ok := v.durations[e.Path]; !ok {
			pending = append(pending, e.Path)
		}
	}
	if len(pending) == 0 {
		return
	}

	go func() {
		for _, path := range pending {
			d, err := v.probe.Duration(v.ctx, path)
			if errors.Is(err, probe.ErrUnavailable) {
				fyne.Do(func() {
					v.probeOff = true
					v.list.Refresh()
				})
				return
			}
			if err != nil {
				d = -1
			}
			fyne.Do(func() {
				v.durations[path] = d
				v.list.Refresh()
			})
		}
	}()
}

func (v *LibraryView) durationText(e model.LibraryEntry) string {
	d, ok := v.durations[e.Path]
	if v.probeOff || (ok && d < 0) {
		return probe.UnknownDuration
	}
	if !ok {
		return ""
	}
	return probe.FormatDuration(d)
}

func (v *LibraryView) updateButtons() {
	if _, ok := v.library.Selected(); ok {
		v.playBtn.Enable()
		v.nextBtn.Enable()
		v.deleteBtn.Enable()
	} else {
		v.playBtn.Disable()
		v.nextBtn.Disable()
		v.deleteBtn.Disable()
	}
}

func (v *LibraryView) onPlay() {
	e, ok := v.library.Selected()
	if !ok {
		dialog.ShowInformation(v.localization.GetText(KeyPlay), v.localization.GetText(KeyNoSelection), v.window)
		return
	}
	v.play(e)
}

func (v *LibraryView) onNext() {
	e, ok := v.library.Selected()
	if !ok {
		return
	}
	v.playNext(e.Name)
}

func (v *LibraryView) playNext(after string) {
	next, ok := v.library.Next(after)
	if !ok {
		v.stopAutoplay()
		return
	}
	v.selectName(next.Name)
	v.play(next)
}

func (v *LibraryView) selectName(name string) {
	for i, e := range v.entries {
		if e.Name == name {
			v.list.Select(i)
			v.list.ScrollTo(i)
			return
		}
	}
}

// play hands the entry to the default player and, with autoplay on, queues
// the next entry for when this one should have finished.
func (v *LibraryView) play(e model.LibraryEntry) {
	v.stopAutoplay()
	if err := platform.OpenFileWithDefaultApp(e.Path); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyErrorOpenFile), err), v.window)
		return
	}
	v.logger.Info("playing library entry", "path", e.Path)

	if !v.autoPlay.Checked {
		return
	}
	d, ok := v.durations[e.Path]
	if !ok || d <= 0 {
		return
	}
	name := e.Name
	v.autoplayTimer = time.AfterFunc(d, func() {
		fyne.Do(func() { v.playNext(name) })
	})
}

func (v *LibraryView) stopAutoplay() {
	if v.autoplayTimer != nil {
		v.autoplayTimer.Stop()
		v.autoplayTimer = nil
	}
}

func (v *LibraryView) onDelete() {
	e, ok := v.library.Selected()
	if !ok {
		return
	}
	dialog.ShowConfirm(v.localization.GetText(KeyDelete), v.localization.Format(KeyConfirmDelete, e.Name), func(confirmed bool) {
		if !confirmed {
			return
		}
		background(func() scanned {
			entries, err := v.library.Delete(e.Name)
			return scanned{entries, err}
		}, func(s scanned) {
			if s.err != nil {
				dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyErrorDelete), s.err), v.window)
				return
			}
			delete(v.durations, e.Path)
			v.setEntries(s.entries)
		})
	}, v.window)
}

func (v *LibraryView) onChangeDir() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, v.window)
			return
		}
		if uri == nil {
			return
		}
		v.changeDir(uri.Path())
	}, v.window)
}

// changeDir switches the library to dir and persists it once the scan succeeded
func (v *LibraryView) changeDir(dir string) {
	background(func() scanned {
		entries, err := v.library.ChangeDir(dir)
		return scanned{entries, err}
	}, func(s scanned) {
		if s.err != nil {
			dialog.ShowError(s.err, v.window)
			return
		}
		v.settings.SetVideoDirectory(dir)
		v.stopAutoplay()
		v.durations = make(map[string]time.Duration)
		v.probeOff = false
		v.setEntries(s.entries)
		v.watch()
	})
}

// watch (re)starts the directory watcher; bursts of changes are debounced
// into one rescan.
func (v *LibraryView) watch() {
	if v.stopWatch != nil {
		v.stopWatch()
	}
	ctx, cancel := context.WithCancel(v.ctx)
	v.stopWatch = cancel

	changes, err := library.Watch(ctx, v.library.Dir(), v.logger)
	if err != nil {
		v.logger.Warn("library watcher unavailable", "dir", v.library.Dir(), "error", err)
		return
	}
	pump(changes, func(struct{}) {
		if ctx.Err() != nil {
			return
		}
		if v.refreshTimer != nil {
			v.refreshTimer.Stop()
		}
		v.refreshTimer = time.AfterFunc(WatchRefreshDebounce, func() {
			fyne.Do(v.refresh)
		})
	})
}

func (v *LibraryView) onDownload() {
	source := cleanURL(v.urlEntry.Text)
	if source == "" {
		dialog.ShowInformation(v.localization.GetText(KeyError), v.localization.GetText(KeyPleaseEnterURL), v.window)
		return
	}
	if err := validateURL(source); err != nil {
		dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyInvalidURL), err), v.window)
		return
	}

	req := model.NewRequest(source, v.library.Dir(), v.settings.RequestResolution())
	v.downloadBtn.Disable()
	v.downloadBar.SetValue(0)
	v.downloadBar.Show()
	v.statusLabel.SetText(v.localization.GetText(KeyStatusStarting))

	pump(v.single.Start(v.ctx, req), v.onDownloadEvent)
}

func (v *LibraryView) onDownloadEvent(ev download.Event) {
	switch e := ev.(type) {
	case download.ItemProgress:
		if p := e.Percent(); p >= 0 {
			v.downloadBar.SetValue(float64(p) / 100)
		}
	case download.ItemCompleted:
		v.downloadBtn.Enable()
		v.downloadBar.Hide()
		if !e.Result.Success {
			v.statusLabel.SetText(v.localization.Format(KeyStatusFailed, e.Result.Error))
			return
		}
		v.urlEntry.SetText("")
		v.statusLabel.SetText(v.localization.Format(KeyStatusDownloaded, e.Result.GetDisplayTitle()))
		v.refresh()
	}
}

func (v *LibraryView) refreshTexts() {
	l := v.localization
	v.playBtn.SetText(IconPlay + " " + l.GetText(KeyPlay))
	v.nextBtn.SetText(IconNext + " " + l.GetText(KeyNext))
	v.deleteBtn.SetText(IconDelete + " " + l.GetText(KeyDelete))
	v.refreshBtn.SetText(IconRefresh + " " + l.GetText(KeyRefresh))
	v.changeDirBtn.SetText(IconFolder + " " + l.GetText(KeyChangeDirectory))
	v.autoPlay.Text = l.GetText(KeyAutoPlayNext)
	v.autoPlay.Refresh()
	v.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	v.downloadBtn.SetText(l.GetText(KeyDownload))
}

// Stop cancels pending autoplay and the watcher
func (v *LibraryView) Stop() {
	v.stopAutoplay()
	if v.stopWatch != nil {
		v.stopWatch()
	}
}

// Container returns the tab content
func (v *LibraryView) Container() fyne.CanvasObject {
	header := container.NewBorder(nil, nil, nil, container.NewHBox(v.refreshBtn, v.changeDirBtn), v.dirLabel)
	controls := container.NewHBox(v.playBtn, v.nextBtn, v.deleteBtn, v.autoPlay)
	downloadRow := container.NewBorder(nil, nil, nil, v.downloadBtn, v.urlEntry)
	bottom := container.NewVBox(controls, downloadRow, v.downloadBar, v.statusLabel)
	return container.NewBorder(header, bottom, nil, nil, v.list)
}
