package ui

import (
	"errors"
	"testing"

	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/model"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"", false},
		{"https://youtube.com/watch?v=abc", false},
		{"http://youtu.be/abc", false},
		{"ftp://example.com/video", true},
		{"youtube.com/watch?v=abc", true},
		{"https://", true},
	}

	for _, test := range tests {
		err := validateURL(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("validateURL(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
		}
	}
}

func TestCleanURL(t *testing.T) {
	if got := cleanURL(" https://youtube.com/watch?v=abc\r\n"); got != "https://youtube.com/watch?v=abc" {
		t.Errorf("cleanURL() = %q", got)
	}
}

func TestBatchStatusText(t *testing.T) {
	l := NewLocalization()

	tests := []struct {
		name     string
		event    download.BatchCompleted
		expected string
	}{
		{"all complete", download.BatchCompleted{Progress: model.BatchProgress{Total: 2, Completed: 2}}, "All downloads complete"},
		{"with failures", download.BatchCompleted{Progress: model.BatchProgress{Total: 3, Completed: 3, Failed: 1}}, "All downloads processed, 1 failed"},
		{"aborted", download.BatchCompleted{Progress: model.BatchProgress{Total: 3, Completed: 1, Failed: 1}, Aborted: true}, "Stopped after a failure (1 of 3)"},
		{"empty", download.BatchCompleted{}, "Nothing to download"},
		{"error", download.BatchCompleted{Err: errors.New("boom")}, "Failed: boom"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := batchStatusText(l, test.event); got != test.expected {
				t.Errorf("batchStatusText() = '%s', expected '%s'", got, test.expected)
			}
		})
	}
}

func TestProgressText(t *testing.T) {
	l := NewLocalization()
	if got := progressText(l, model.BatchProgress{Total: 3, Completed: 1}); got != "1 of 3 done (33%)" {
		t.Errorf("progressText() = '%s'", got)
	}
}

func TestPercentText(t *testing.T) {
	if percentText(-1) != DashPlaceholder {
		t.Errorf("Unknown percent must render as placeholder")
	}
	if percentText(42) != "42%" {
		t.Errorf("percentText(42) = '%s'", percentText(42))
	}
}

func TestLibraryEntryText(t *testing.T) {
	e := model.LibraryEntry{Name: "song.mp4", Size: 1000}
	if got := libraryEntryText(e, "03:07"); got != "song.mp4 · 1.0 kB · 03:07" {
		t.Errorf("libraryEntryText() = '%s'", got)
	}
	if got := libraryEntryText(e, ""); got != "song.mp4 · 1.0 kB" {
		t.Errorf("libraryEntryText() without duration = '%s'", got)
	}
}
