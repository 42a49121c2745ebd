package ui

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2/lang"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle = "app_title"
	KeySettings = "settings"
	KeyFile     = "file"
	KeyLanguage = "language"
	KeySave     = "save"
	KeyCancel   = "cancel"
	KeyBrowse   = "browse"
	KeyError    = "error"

	KeyTabLibrary  = "tab_library"
	KeyTabPlaylist = "tab_playlist"
	KeyTabBatch    = "tab_batch"
	KeyTabDrive    = "tab_drive"

	KeyPlay            = "play"
	KeyNext            = "next"
	KeyDelete          = "delete"
	KeyRefresh         = "refresh"
	KeyChangeDirectory = "change_directory"
	KeyAutoPlayNext    = "auto_play_next"
	KeyConfirmDelete   = "confirm_delete"
	KeyNoSelection     = "no_selection"
	KeyLibraryEmpty    = "library_empty"
	KeyEnterURL        = "enter_url"
	KeyDownload        = "download"
	KeyInvalidURL      = "invalid_url"
	KeyPleaseEnterURL  = "please_enter_url"
	KeyErrorOpenFile   = "error_opening_file"
	KeyErrorDelete     = "error_deleting_file"

	KeyEnterPlaylistURL = "enter_playlist_url"
	KeyDestination      = "destination"
	KeyStart            = "start"
	KeyDescriptorFile   = "descriptor_file"
	KeyChooseDescriptor = "choose_descriptor"
	KeyOpenFile         = "open_file"
	KeyReveal           = "reveal"

	KeyStatusIdle                 = "status_idle"
	KeyStatusStarting             = "status_starting"
	KeyStatusRunning              = "status_running"
	KeyStatusAllComplete          = "status_all_complete"
	KeyStatusCompleteWithFailures = "status_complete_with_failures"
	KeyStatusAborted              = "status_aborted"
	KeyStatusFailed               = "status_failed"
	KeyStatusEmpty                = "status_empty"
	KeyStatusDownloaded           = "status_downloaded"

	KeyItemPending     = "item_pending"
	KeyItemResolving   = "item_resolving"
	KeyItemDownloading = "item_downloading"
	KeyItemCompleted   = "item_completed"
	KeyItemFailed      = "item_failed"
	KeyItemSkipped     = "item_skipped"

	KeyFolderName          = "folder_name"
	KeyCreateFolder        = "create_folder"
	KeyDeleteFolder        = "delete_folder"
	KeyConfirmDeleteFolder = "confirm_delete_folder"
	KeyOpenVideo           = "open_video"
	KeyFolders             = "folders"
	KeyVideos              = "videos"
	KeyDriveLoading        = "drive_loading"
	KeyDriveEmptyName      = "drive_empty_name"
	KeyDrivePermissions    = "drive_permissions"
	KeyAuthTitle           = "auth_title"
	KeyAuthOpenConsent     = "auth_open_consent"
	KeyAuthCode            = "auth_code"

	KeyVideoDirectory    = "video_directory"
	KeyDownloadDirectory = "download_directory"
	KeyResolution        = "resolution"
	KeyMaxParallel       = "max_parallel"
	KeyFailurePolicy     = "failure_policy"
	KeyPolicyContinue    = "policy_continue"
	KeyPolicyAbort       = "policy_abort"
	KeyDriveCredentials  = "drive_credentials"
	KeyDriveToken        = "drive_token"
	KeySettingsSaved     = "settings_saved"
)

// systemLanguage reports the two-letter language of the OS locale
var systemLanguage = func() string {
	return lang.SystemLocale().LanguageString()
}

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" follows the OS locale;
// unknown languages leave the current one in place.
func (l *Localization) SetLanguage(language string) {
	if language == "system" {
		language, _, _ = strings.Cut(strings.ToLower(systemLanguage()), "-")
		if _, exists := l.texts[language]; !exists {
			language = "en"
		}
	}

	if _, exists := l.texts[language]; exists {
		l.currentLanguage = language
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns localized text with fmt verbs filled in
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle: "HitPlayer",
		KeySettings: "Settings",
		KeyFile:     "File",
		KeyLanguage: "Language",
		KeySave:     "Save",
		KeyCancel:   "Cancel",
		KeyBrowse:   "Browse",
		KeyError:    "Error",

		KeyTabLibrary:  "Library",
		KeyTabPlaylist: "Playlist",
		KeyTabBatch:    "Batch",
		KeyTabDrive:    "Drive",

		KeyPlay:            "Play",
		KeyNext:            "Next",
		KeyDelete:          "Delete",
		KeyRefresh:         "Refresh",
		KeyChangeDirectory: "Change folder",
		KeyAutoPlayNext:    "Play next automatically",
		KeyConfirmDelete:   "Delete %s? This cannot be undone.",
		KeyNoSelection:     "Select a video first",
		KeyLibraryEmpty:    "No videos in %s",
		KeyEnterURL:        "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyDownload:        "Download",
		KeyInvalidURL:      "Invalid URL",
		KeyPleaseEnterURL:  "Please enter a URL",
		KeyErrorOpenFile:   "Error opening file",
		KeyErrorDelete:     "Error deleting file",

		KeyEnterPlaylistURL: "Enter playlist or video URL",
		KeyDestination:      "Destination folder",
		KeyStart:            "Start",
		KeyDescriptorFile:   "Descriptor file (.json, .yaml)",
		KeyChooseDescriptor: "Choose file",
		KeyOpenFile:         "Open",
		KeyReveal:           "Show in folder",

		KeyStatusIdle:                 "Idle",
		KeyStatusStarting:             "Starting...",
		KeyStatusRunning:              "%d of %d done (%d%%)",
		KeyStatusAllComplete:          "All downloads complete",
		KeyStatusCompleteWithFailures: "All downloads processed, %d failed",
		KeyStatusAborted:              "Stopped after a failure (%d of %d)",
		KeyStatusFailed:               "Failed: %v",
		KeyStatusEmpty:                "Nothing to download",
		KeyStatusDownloaded:           "Downloaded %s",

		KeyItemPending:     "Pending",
		KeyItemResolving:   "Resolving",
		KeyItemDownloading: "Downloading",
		KeyItemCompleted:   "Done",
		KeyItemFailed:      "Failed",
		KeyItemSkipped:     "Skipped",

		KeyFolderName:          "New folder name",
		KeyCreateFolder:        "Create",
		KeyDeleteFolder:        "Delete folder",
		KeyConfirmDeleteFolder: "Delete folder %s?",
		KeyOpenVideo:           "Open video",
		KeyFolders:             "Folders",
		KeyVideos:              "Videos",
		KeyDriveLoading:        "Loading...",
		KeyDriveEmptyName:      "Folder name must not be empty",
		KeyDrivePermissions:    "Insufficient permissions for this Drive operation",
		KeyAuthTitle:           "Authorize Google Drive",
		KeyAuthOpenConsent:     "Open the consent page",
		KeyAuthCode:            "Authorization code",

		KeyVideoDirectory:    "Library folder",
		KeyDownloadDirectory: "Download folder",
		KeyResolution:        "Resolution",
		KeyMaxParallel:       "Max parallel downloads",
		KeyFailurePolicy:     "When a playlist item fails",
		KeyPolicyContinue:    "Continue with the next item",
		KeyPolicyAbort:       "Stop the playlist",
		KeyDriveCredentials:  "Drive credentials file",
		KeyDriveToken:        "Drive token file",
		KeySettingsSaved:     "Settings saved successfully!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle: "HitPlayer",
		KeySettings: "Настройки",
		KeyFile:     "Файл",
		KeyLanguage: "Язык",
		KeySave:     "Сохранить",
		KeyCancel:   "Отмена",
		KeyBrowse:   "Обзор",
		KeyError:    "Ошибка",

		KeyTabLibrary:  "Медиатека",
		KeyTabPlaylist: "Плейлист",
		KeyTabBatch:    "Пакет",
		KeyTabDrive:    "Диск",

		KeyPlay:            "Воспроизвести",
		KeyNext:            "Следующее",
		KeyDelete:          "Удалить",
		KeyRefresh:         "Обновить",
		KeyChangeDirectory: "Сменить папку",
		KeyAutoPlayNext:    "Автоматически играть следующее",
		KeyConfirmDelete:   "Удалить %s? Отменить будет нельзя.",
		KeyNoSelection:     "Сначала выберите видео",
		KeyLibraryEmpty:    "В %s нет видео",
		KeyEnterURL:        "Введите URL YouTube (https://youtube.com/watch?v=...)",
		KeyDownload:        "Скачать",
		KeyInvalidURL:      "Неверный URL",
		KeyPleaseEnterURL:  "Пожалуйста, введите URL",
		KeyErrorOpenFile:   "Ошибка открытия файла",
		KeyErrorDelete:     "Ошибка удаления файла",

		KeyEnterPlaylistURL: "Введите URL плейлиста или видео",
		KeyDestination:      "Папка назначения",
		KeyStart:            "Начать",
		KeyDescriptorFile:   "Файл списка (.json, .yaml)",
		KeyChooseDescriptor: "Выбрать файл",
		KeyOpenFile:         "Открыть",
		KeyReveal:           "Показать в папке",

		KeyStatusIdle:                 "Ожидание",
		KeyStatusStarting:             "Запуск...",
		KeyStatusRunning:              "Готово %d из %d (%d%%)",
		KeyStatusAllComplete:          "Все загрузки завершены",
		KeyStatusCompleteWithFailures: "Все загрузки обработаны, с ошибкой: %d",
		KeyStatusAborted:              "Остановлено после ошибки (%d из %d)",
		KeyStatusFailed:               "Ошибка: %v",
		KeyStatusEmpty:                "Нечего скачивать",
		KeyStatusDownloaded:           "Скачано: %s",

		KeyItemPending:     "Ожидает",
		KeyItemResolving:   "Поиск потока",
		KeyItemDownloading: "Загрузка",
		KeyItemCompleted:   "Готово",
		KeyItemFailed:      "Ошибка",
		KeyItemSkipped:     "Пропущено",

		KeyFolderName:          "Имя новой папки",
		KeyCreateFolder:        "Создать",
		KeyDeleteFolder:        "Удалить папку",
		KeyConfirmDeleteFolder: "Удалить папку %s?",
		KeyOpenVideo:           "Открыть видео",
		KeyFolders:             "Папки",
		KeyVideos:              "Видео",
		KeyDriveLoading:        "Загрузка...",
		KeyDriveEmptyName:      "Имя папки не может быть пустым",
		KeyDrivePermissions:    "Недостаточно прав для этой операции на Диске",
		KeyAuthTitle:           "Авторизация Google Диска",
		KeyAuthOpenConsent:     "Открыть страницу согласия",
		KeyAuthCode:            "Код авторизации",

		KeyVideoDirectory:    "Папка медиатеки",
		KeyDownloadDirectory: "Папка загрузки",
		KeyResolution:        "Разрешение",
		KeyMaxParallel:       "Макс. параллельных",
		KeyFailurePolicy:     "При ошибке элемента плейлиста",
		KeyPolicyContinue:    "Продолжить со следующего",
		KeyPolicyAbort:       "Остановить плейлист",
		KeyDriveCredentials:  "Файл учётных данных Диска",
		KeyDriveToken:        "Файл токена Диска",
		KeySettingsSaved:     "Настройки успешно сохранены!",
	}
}
