package config

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/hitplayer/internal/model"
	"github.com/ytget/hitplayer/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyVideoDir         = "video_directory"
	KeyDownloadDir      = "download_directory"
	KeyResolution       = "default_resolution"
	KeyMaxParallel      = "max_parallel_downloads"
	KeyFailurePolicy    = "batch_failure_policy"
	KeyDriveCredentials = "drive_credentials_file"
	KeyDriveToken       = "drive_token_file"
	KeyAutoPlayNext     = "auto_play_next"
	KeyLanguage         = "app_language"
)

// ResolutionAny selects the best progressive mp4 of any height
const ResolutionAny = "any"

// Default values
const (
	DefaultResolution       = "720p"
	DefaultMaxParallel      = 2
	MinMaxParallel          = 1
	MaxMaxParallel          = 10
	DefaultFailurePolicy    = model.FailurePolicyContinue
	DefaultDriveCredentials = "credentials.json"
	DefaultDriveToken       = "token.json"
	DefaultAutoPlayNext     = true
	DefaultLanguage         = "system"
	FallbackDownloadDir     = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App

	// videoDirOverride replaces the stored library directory for this session only
	videoDirOverride string
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetVideoDirectory returns the library directory
func (s *Settings) GetVideoDirectory() string {
	if s.videoDirOverride != "" {
		return s.videoDirOverride
	}
	dir := s.app.Preferences().String(KeyVideoDir)
	if dir == "" {
		dir = defaultVideoDir()
		s.SetVideoDirectory(dir)
	}
	return dir
}

// SetVideoDirectory stores the library directory and drops any session override
func (s *Settings) SetVideoDirectory(dir string) {
	s.videoDirOverride = ""
	s.app.Preferences().SetString(KeyVideoDir, dir)
}

// OverrideVideoDirectory sets the library directory for this session without storing it
func (s *Settings) OverrideVideoDirectory(dir string) {
	s.videoDirOverride = strings.TrimSpace(dir)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		dir = defaultDownloadDir()
		s.SetDownloadDirectory(dir)
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetResolution returns the preferred resolution, "720p" style or ResolutionAny
func (s *Settings) GetResolution() string {
	res := s.app.Preferences().String(KeyResolution)
	if res == "" {
		s.SetResolution(DefaultResolution)
		return DefaultResolution
	}
	return res
}

// SetResolution sets the preferred resolution; empty means ResolutionAny
func (s *Settings) SetResolution(res string) {
	res = strings.ToLower(strings.TrimSpace(res))
	if res == "" {
		res = ResolutionAny
	}
	s.app.Preferences().SetString(KeyResolution, res)
}

// RequestResolution returns the resolution in the form download requests take
func (s *Settings) RequestResolution() string {
	res := s.GetResolution()
	if res == ResolutionAny {
		return ""
	}
	return res
}

// GetResolutionOptions returns available resolution options
func (s *Settings) GetResolutionOptions() []string {
	return []string{ResolutionAny, "360p", "480p", "720p", "1080p"}
}

// GetMaxParallelDownloads returns the concurrency bound of descriptor downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < MinMaxParallel {
		count = MinMaxParallel
	}
	if count > MaxMaxParallel {
		count = MaxMaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetFailurePolicy returns what a playlist does after a failed item
func (s *Settings) GetFailurePolicy() model.FailurePolicy {
	stored := s.app.Preferences().String(KeyFailurePolicy)
	if stored == "" {
		s.SetFailurePolicy(DefaultFailurePolicy)
		return DefaultFailurePolicy
	}
	return model.ParseFailurePolicy(stored)
}

// SetFailurePolicy sets the playlist failure policy
func (s *Settings) SetFailurePolicy(policy model.FailurePolicy) {
	s.app.Preferences().SetString(KeyFailurePolicy, string(model.ParseFailurePolicy(string(policy))))
}

// GetDriveCredentialsFile returns the OAuth client secrets path
func (s *Settings) GetDriveCredentialsFile() string {
	return s.pathWithDefault(KeyDriveCredentials, DefaultDriveCredentials)
}

// SetDriveCredentialsFile sets the OAuth client secrets path
func (s *Settings) SetDriveCredentialsFile(path string) {
	s.app.Preferences().SetString(KeyDriveCredentials, path)
}

// GetDriveTokenFile returns the persisted token path
func (s *Settings) GetDriveTokenFile() string {
	return s.pathWithDefault(KeyDriveToken, DefaultDriveToken)
}

// SetDriveTokenFile sets the persisted token path
func (s *Settings) SetDriveTokenFile(path string) {
	s.app.Preferences().SetString(KeyDriveToken, path)
}

// GetAutoPlayNext returns whether the library opens the next entry after one finishes
func (s *Settings) GetAutoPlayNext() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoPlayNext, DefaultAutoPlayNext)
}

// SetAutoPlayNext sets library autoplay
func (s *Settings) SetAutoPlayNext(enabled bool) {
	s.app.Preferences().SetBool(KeyAutoPlayNext, enabled)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}

// pathWithDefault returns a stored path; relative defaults live in the app storage root
func (s *Settings) pathWithDefault(key, fallback string) string {
	path := s.app.Preferences().String(key)
	if path != "" {
		return path
	}
	if root := s.app.Storage().RootURI(); root != nil && root.Scheme() == "file" {
		return filepath.Join(root.Path(), fallback)
	}
	return fallback
}

func defaultDownloadDir() string {
	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		return FallbackDownloadDir
	}
	return dir
}

func defaultVideoDir() string {
	dir, err := platform.GetHomeVideosDir()
	if err == nil {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			return dir
		}
	}
	return defaultDownloadDir()
}
