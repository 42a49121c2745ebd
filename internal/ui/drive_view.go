package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/drive"
	"github.com/ytget/hitplayer/internal/model"
)

var errAuthCancelled = errors.New("authorization cancelled")

// DriveView browses Google Drive folders and their videos. Every network call
// goes through the browser; results arrive on the UI goroutine.
type DriveView struct {
	app          fyne.App
	window       fyne.Window
	localization *Localization
	browser      *drive.Browser

	folders  []model.DriveFolder
	videos   []model.DriveVideo
	folder   *model.DriveFolder // selected folder
	videoSel int

	nameEntry   *widget.Entry
	createBtn   *widget.Button
	refreshBtn  *widget.Button
	deleteBtn   *widget.Button
	openBtn     *widget.Button
	folderList  *widget.List
	videoList   *widget.List
	foldersHdr  *widget.Label
	videosHdr   *widget.Label
	statusLabel *widget.Label
}

// NewDriveView creates the Drive tab. Credentials and token paths are read
// from settings when the first call connects.
func NewDriveView(ctx context.Context, app fyne.App, window fyne.Window, settings *config.Settings, localization *Localization, logger *slog.Logger) *DriveView {
	v := &DriveView{
		app:          app,
		window:       window,
		localization: localization,
		videoSel:     -1,
	}
	paths := func() (string, string) {
		return settings.GetDriveCredentialsFile(), settings.GetDriveTokenFile()
	}
	v.browser = drive.NewBrowser(ctx, drive.NewConnector(paths, v.promptCode, logger))
	v.createUI()
	v.refreshTexts()
	return v
}

func (v *DriveView) createUI() {
	v.nameEntry = widget.NewEntry()
	v.nameEntry.OnSubmitted = func(string) { v.onCreate() }
	v.createBtn = widget.NewButton("", v.onCreate)
	v.refreshBtn = widget.NewButton("", v.Refresh)
	v.deleteBtn = widget.NewButton("", v.onDelete)
	v.deleteBtn.Importance = widget.DangerImportance
	v.openBtn = widget.NewButton("", v.onOpenVideo)
	v.openBtn.Importance = widget.HighImportance

	v.foldersHdr = widget.NewLabel("")
	v.foldersHdr.TextStyle = fyne.TextStyle{Bold: true}
	v.videosHdr = widget.NewLabel("")
	v.videosHdr.TextStyle = fyne.TextStyle{Bold: true}
	v.statusLabel = widget.NewLabel("")
	v.statusLabel.Wrapping = fyne.TextWrapWord

	v.folderList = widget.NewList(
		func() int { return len(v.folders) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(v.folders) {
				obj.(*widget.Label).SetText(v.folders[id].Label())
			}
		},
	)
	v.folderList.OnSelected = func(id widget.ListItemID) {
		if id >= len(v.folders) {
			return
		}
		f := v.folders[id]
		v.folder = &f
		v.loadVideos(f)
		v.updateButtons()
	}

	v.videoList = widget.NewList(
		func() int { return len(v.videos) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < len(v.videos) {
				obj.(*widget.Label).SetText(v.videos[id].Label())
			}
		},
	)
	v.videoList.OnSelected = func(id widget.ListItemID) {
		v.videoSel = id
		v.updateButtons()
	}

	v.updateButtons()
}

// Refresh reloads the folder list
func (v *DriveView) Refresh() {
	v.setBusy(true)
	pump(v.browser.ListFolders(), func(out drive.Outcome[[]model.DriveFolder]) {
		v.setBusy(false)
		if out.Err != nil {
			v.showError(out.Err)
			return
		}
		v.folders = out.Value
		v.folder = nil
		v.videos = nil
		v.videoSel = -1
		v.folderList.UnselectAll()
		v.folderList.Refresh()
		v.videoList.Refresh()
		v.updateButtons()
	})
}

func (v *DriveView) loadVideos(f model.DriveFolder) {
	v.videos = nil
	v.videoSel = -1
	v.videoList.UnselectAll()
	v.videoList.Refresh()

	v.setBusy(true)
	pump(v.browser.ListVideos(f.ID), func(out drive.Outcome[[]model.DriveVideo]) {
		v.setBusy(false)
		if v.folder == nil || v.folder.ID != f.ID {
			return // folder changed meanwhile
		}
		if out.Err != nil {
			v.showError(out.Err)
			return
		}
		v.videos = out.Value
		v.videoList.Refresh()
		v.updateButtons()
	})
}

func (v *DriveView) onCreate() {
	name := strings.TrimSpace(v.nameEntry.Text)
	if name == "" {
		v.showError(drive.ErrEmptyFolderName)
		return
	}

	v.setBusy(true)
	pump(v.browser.CreateFolder(name), func(out drive.Outcome[model.DriveFolder]) {
		v.setBusy(false)
		if out.Err != nil {
			v.showError(out.Err)
			return
		}
		v.nameEntry.SetText("")
		v.Refresh()
	})
}

func (v *DriveView) onDelete() {
	if v.folder == nil {
		return
	}
	f := *v.folder
	dialog.ShowConfirm(v.localization.GetText(KeyDeleteFolder), v.localization.Format(KeyConfirmDeleteFolder, f.Name), func(confirmed bool) {
		if !confirmed {
			return
		}
		v.setBusy(true)
		pump(v.browser.DeleteFolder(f.ID), func(out drive.Outcome[struct{}]) {
			v.setBusy(false)
			if out.Err != nil {
				v.showError(out.Err)
				return
			}
			v.Refresh()
		})
	}, v.window)
}

func (v *DriveView) onOpenVideo() {
	if v.videoSel < 0 || v.videoSel >= len(v.videos) {
		return
	}
	u, err := url.Parse(v.videos[v.videoSel].StreamURL())
	if err != nil {
		v.showError(err)
		return
	}
	if err := v.app.OpenURL(u); err != nil {
		v.showError(err)
	}
}

// promptCode asks the user for an authorization code. It is called by the
// connector off the UI goroutine and blocks until the dialog is answered.
func (v *DriveView) promptCode(ctx context.Context, authURL string) (string, error) {
	codes := make(chan string, 1)
	fyne.Do(func() { v.showAuthDialog(authURL, codes) })

	select {
	case code := <-codes:
		if code == "" {
			return "", errAuthCancelled
		}
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (v *DriveView) showAuthDialog(authURL string, codes chan<- string) {
	l := v.localization
	codeEntry := widget.NewEntry()
	consent := widget.NewButton(l.GetText(KeyAuthOpenConsent), func() {
		if u, err := url.Parse(authURL); err == nil {
			_ = v.app.OpenURL(u)
		}
	})

	d := dialog.NewForm(l.GetText(KeyAuthTitle), l.GetText(KeySave), l.GetText(KeyCancel),
		[]*widget.FormItem{
			widget.NewFormItem("", consent),
			widget.NewFormItem(l.GetText(KeyAuthCode), codeEntry),
		},
		func(confirmed bool) {
			if confirmed {
				codes <- strings.TrimSpace(codeEntry.Text)
			} else {
				codes <- ""
			}
		}, v.window)
	d.Resize(fyne.NewSize(DialogWidth, 0))
	d.Show()
}

// showError maps known Drive errors to localized messages
func (v *DriveView) showError(err error) {
	switch {
	case errors.Is(err, drive.ErrInsufficientPermissions):
		err = errors.New(v.localization.GetText(KeyDrivePermissions))
	case errors.Is(err, drive.ErrEmptyFolderName):
		err = errors.New(v.localization.GetText(KeyDriveEmptyName))
	}
	v.statusLabel.SetText(v.localization.Format(KeyStatusFailed, err))
	dialog.ShowError(fmt.Errorf("%s: %w", v.localization.GetText(KeyError), err), v.window)
}

func (v *DriveView) setBusy(busy bool) {
	if busy {
		v.statusLabel.SetText(v.localization.GetText(KeyDriveLoading))
	} else {
		v.statusLabel.SetText("")
	}
}

func (v *DriveView) updateButtons() {
	if v.folder != nil {
		v.deleteBtn.Enable()
	} else {
		v.deleteBtn.Disable()
	}
	if v.videoSel >= 0 && v.videoSel < len(v.videos) {
		v.openBtn.Enable()
	} else {
		v.openBtn.Disable()
	}
}

func (v *DriveView) refreshTexts() {
	l := v.localization
	v.nameEntry.SetPlaceHolder(l.GetText(KeyFolderName))
	v.createBtn.SetText(l.GetText(KeyCreateFolder))
	v.refreshBtn.SetText(IconRefresh + " " + l.GetText(KeyRefresh))
	v.deleteBtn.SetText(IconDelete + " " + l.GetText(KeyDeleteFolder))
	v.openBtn.SetText(IconPlay + " " + l.GetText(KeyOpenVideo))
	v.foldersHdr.SetText(IconCloud + " " + l.GetText(KeyFolders))
	v.videosHdr.SetText(l.GetText(KeyVideos))
}

// Container returns the tab content
func (v *DriveView) Container() fyne.CanvasObject {
	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, container.NewHBox(v.createBtn, v.refreshBtn), v.nameEntry),
		v.statusLabel,
	)
	folders := container.NewBorder(v.foldersHdr, v.deleteBtn, nil, nil, v.folderList)
	videos := container.NewBorder(v.videosHdr, v.openBtn, nil, nil, v.videoList)
	split := container.NewHSplit(folders, videos)
	return container.NewBorder(top, nil, nil, nil, split)
}
