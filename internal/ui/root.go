package ui

import (
	"context"
	"log/slog"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/probe"
)

// Services are the workers the views drive
type Services struct {
	Single   *download.SingleWorker
	Playlist *download.PlaylistWorker
	Manager  *download.Manager
	Probe    *probe.Service
	Logger   *slog.Logger
}

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	logger       *slog.Logger

	tabs         *container.AppTabs
	libraryTab   *container.TabItem
	playlistTab  *container.TabItem
	batchTab     *container.TabItem
	driveTab     *container.TabItem
	driveOpened  bool
	libraryView  *LibraryView
	playlistView *PlaylistView
	batchView    *BatchView
	driveView    *DriveView
	settingsBtn  *widget.Button
}

// NewRootUI creates and initializes the main UI. ctx bounds every background
// operation started from the views.
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, settings *config.Settings, services Services) *RootUI {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		logger:       logger,
	}

	ui.libraryView = NewLibraryView(ctx, window, settings, localization, services.Probe, services.Single, logger)
	// Finished downloads land in the library when it shares their directory
	onDownloaded := ui.libraryView.refresh
	ui.playlistView = NewPlaylistView(ctx, window, settings, localization, services.Playlist, onDownloaded)
	ui.batchView = NewBatchView(ctx, window, settings, localization, services.Manager, onDownloaded)
	ui.driveView = NewDriveView(ctx, app, window, settings, localization, logger)

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ui.libraryView.Start()

	logger.Info("UI initialized", "language", localization.GetCurrentLanguage(), "library", settings.GetVideoDirectory())
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.libraryTab = container.NewTabItem("", ui.libraryView.Container())
	ui.playlistTab = container.NewTabItem("", ui.playlistView.Container())
	ui.batchTab = container.NewTabItem("", ui.batchView.Container())
	ui.driveTab = container.NewTabItem("", ui.driveView.Container())
	ui.tabs = container.NewAppTabs(ui.libraryTab, ui.playlistTab, ui.batchTab, ui.driveTab)

	// Drive asks for authorization on first use, so it loads when first shown
	ui.tabs.OnSelected = func(tab *container.TabItem) {
		if tab == ui.driveTab && !ui.driveOpened {
			ui.driveOpened = true
			ui.driveView.Refresh()
		}
	}

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	var header fyne.CanvasObject = container.NewHBox(ui.settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		header = container.NewHBox(logoImage, ui.settingsBtn)
	}

	ui.refreshUITexts()
	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, ui.tabs))
	ui.window.Resize(fyne.NewSize(WindowMinWidth, WindowMinHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	codes := make([]string, 0, len(availableLanguages))
	for code := range availableLanguages {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		langItem := fyne.NewMenuItem(availableLanguages[code], func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))

	ui.libraryTab.Text = l.GetText(KeyTabLibrary)
	ui.playlistTab.Text = l.GetText(KeyTabPlaylist)
	ui.batchTab.Text = l.GetText(KeyTabBatch)
	ui.driveTab.Text = l.GetText(KeyTabDrive)
	ui.tabs.Refresh()

	ui.libraryView.refreshTexts()
	ui.playlistView.refreshTexts()
	ui.batchView.refreshTexts()
	ui.driveView.refreshTexts()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies settings that views hold on to
func (ui *RootUI) onSettingsSaved() {
	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()

	if dir := ui.settings.GetVideoDirectory(); dir != ui.libraryView.library.Dir() {
		ui.libraryView.changeDir(dir)
	}
	ui.logger.Info("settings saved",
		"resolution", ui.settings.GetResolution(),
		"max_parallel", ui.settings.GetMaxParallelDownloads(),
		"failure_policy", ui.settings.GetFailurePolicy())
}

// Stop releases background work owned by the views
func (ui *RootUI) Stop() {
	ui.libraryView.Stop()
}
