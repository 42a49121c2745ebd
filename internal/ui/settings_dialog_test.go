package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/hitplayer/internal/config"
	"github.com/ytget/hitplayer/internal/model"
)

func TestSettingsDialog_Save(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := test.NewWindow(nil)
	defer w.Close()

	settings := config.NewSettings(a)
	l := NewLocalization()
	saved := false
	sd := NewSettingsDialog(settings, l, w, func() { saved = true })
	sd.loadCurrentSettings()

	videoDir := t.TempDir()
	sd.videoDirEntry.SetText(videoDir)
	sd.resolutionSelect.SetSelected("1080p")
	sd.maxParallelEntry.SetText("50")
	sd.policySelect.SetSelected(l.GetText(KeyPolicyAbort))
	sd.languageSelect.SetSelected("Русский")
	sd.onSave(true)

	if !saved {
		t.Error("Expected onSaved callback")
	}
	if settings.GetVideoDirectory() != videoDir {
		t.Errorf("GetVideoDirectory() = %s, expected %s", settings.GetVideoDirectory(), videoDir)
	}
	if settings.GetResolution() != "1080p" {
		t.Errorf("GetResolution() = %s", settings.GetResolution())
	}
	if settings.GetMaxParallelDownloads() != config.MaxMaxParallel {
		t.Errorf("GetMaxParallelDownloads() = %d, expected clamp to %d", settings.GetMaxParallelDownloads(), config.MaxMaxParallel)
	}
	if settings.GetFailurePolicy() != model.FailurePolicyAbort {
		t.Errorf("GetFailurePolicy() = %s", settings.GetFailurePolicy())
	}
	if settings.GetLanguage() != "ru" {
		t.Errorf("GetLanguage() = %s", settings.GetLanguage())
	}
}

func TestSettingsDialog_Cancel(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()
	w := test.NewWindow(nil)
	defer w.Close()

	settings := config.NewSettings(a)
	sd := NewSettingsDialog(settings, NewLocalization(), w, func() { t.Error("onSaved must not run on cancel") })
	sd.loadCurrentSettings()
	sd.resolutionSelect.SetSelected("360p")
	sd.onSave(false)

	if settings.GetResolution() != config.DefaultResolution {
		t.Errorf("GetResolution() = %s, expected %s", settings.GetResolution(), config.DefaultResolution)
	}
}
