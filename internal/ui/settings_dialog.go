package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	videoDirEntry    *widget.Entry
	downloadDirEntry *widget.Entry
	resolutionSelect *widget.Select
	maxParallelEntry *widget.Entry
	policySelect     *widget.Select
	credentialsEntry *widget.Entry
	tokenEntry       *widget.Entry
	languageSelect   *widget.Select

	// display label -> stored value
	languageCodes map[string]string
	policyValues  map[string]model.FailurePolicy
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// values were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.videoDirEntry = widget.NewEntry()
	sd.downloadDirEntry = widget.NewEntry()

	sd.resolutionSelect = widget.NewSelect(sd.settings.GetResolutionOptions(), nil)

	sd.maxParallelEntry = widget.NewEntry()
	sd.maxParallelEntry.SetPlaceHolder(strconv.Itoa(config.MinMaxParallel) + "-" + strconv.Itoa(config.MaxMaxParallel))

	sd.policyValues = map[string]model.FailurePolicy{
		l.GetText(KeyPolicyContinue): model.FailurePolicyContinue,
		l.GetText(KeyPolicyAbort):    model.FailurePolicyAbort,
	}
	sd.policySelect = widget.NewSelect([]string{l.GetText(KeyPolicyContinue), l.GetText(KeyPolicyAbort)}, nil)

	sd.credentialsEntry = widget.NewEntry()
	sd.tokenEntry = widget.NewEntry()

	// Language selection shows display names, sorted for a stable order
	sd.languageCodes = make(map[string]string)
	var languageLabels []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageLabels = append(languageLabels, name)
	}
	sort.Strings(languageLabels)
	sd.languageSelect = widget.NewSelect(languageLabels, nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyVideoDirectory), sd.directoryRow(sd.videoDirEntry)),
		widget.NewFormItem(l.GetText(KeyDownloadDirectory), sd.directoryRow(sd.downloadDirEntry)),
		widget.NewFormItem(l.GetText(KeyResolution), sd.resolutionSelect),
		widget.NewFormItem(l.GetText(KeyMaxParallel), sd.maxParallelEntry),
		widget.NewFormItem(l.GetText(KeyFailurePolicy), sd.policySelect),
		widget.NewFormItem(l.GetText(KeyDriveCredentials), sd.credentialsEntry),
		widget.NewFormItem(l.GetText(KeyDriveToken), sd.tokenEntry),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		container.NewVScroll(form),
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(DialogWidth, DialogHeight))
}

// directoryRow pairs a path entry with a browse button
func (sd *SettingsDialog) directoryRow(entry *widget.Entry) fyne.CanvasObject {
	browse := widget.NewButton(sd.localization.GetText(KeyBrowse), func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil || uri == nil {
				return
			}
			entry.SetText(uri.Path())
		}, sd.window)
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.videoDirEntry.SetText(sd.settings.GetVideoDirectory())
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.resolutionSelect.SetSelected(sd.settings.GetResolution())
	sd.maxParallelEntry.SetText(strconv.Itoa(sd.settings.GetMaxParallelDownloads()))
	sd.credentialsEntry.SetText(sd.settings.GetDriveCredentialsFile())
	sd.tokenEntry.SetText(sd.settings.GetDriveTokenFile())

	for label, policy := range sd.policyValues {
		if policy == sd.settings.GetFailurePolicy() {
			sd.policySelect.SetSelected(label)
		}
	}
	for label, code := range sd.languageCodes {
		if code == sd.settings.GetLanguage() {
			sd.languageSelect.SetSelected(label)
		}
	}
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.videoDirEntry.Text != "" {
		sd.settings.SetVideoDirectory(sd.videoDirEntry.Text)
	}
	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}
	if sd.resolutionSelect.Selected != "" {
		sd.settings.SetResolution(sd.resolutionSelect.Selected)
	}

	// Out of range values are clamped by the settings layer
	if maxParallel, err := strconv.Atoi(sd.maxParallelEntry.Text); err == nil {
		sd.settings.SetMaxParallelDownloads(maxParallel)
	}

	if policy, ok := sd.policyValues[sd.policySelect.Selected]; ok {
		sd.settings.SetFailurePolicy(policy)
	}
	if sd.credentialsEntry.Text != "" {
		sd.settings.SetDriveCredentialsFile(sd.credentialsEntry.Text)
	}
	if sd.tokenEntry.Text != "" {
		sd.settings.SetDriveTokenFile(sd.tokenEntry.Text)
	}
	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
