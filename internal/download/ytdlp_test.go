package download

import (
	"errors"
	"testing"

	"github.com/lrstanley/go-ytdlp"
)

func TestEscapeOutputTemplate(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/videos/clip.mp4", "/videos/clip.mp4"},
		{"/videos/100%live.mp4", "/videos/100%%live.mp4"},
	}

	for _, test := range tests {
		if result := escapeOutputTemplate(test.path); result != test.expected {
			t.Errorf("escapeOutputTemplate(%q) = %q, expected %q", test.path, result, test.expected)
		}
	}
}

func TestIsFormatUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		result   *ytdlp.Result
		expected bool
	}{
		{"message in error", errors.New("ERROR: [youtube] abc: Requested format is not available"), nil, true},
		{"message in stderr", errors.New("exit status 1"), &ytdlp.Result{Stderr: "ERROR: Requested format is not available. Use --list-formats"}, true},
		{"other failure", errors.New("exit status 1"), &ytdlp.Result{Stderr: "HTTP Error 403: Forbidden"}, false},
		{"no result", errors.New("exit status 1"), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := isFormatUnavailable(tt.err, tt.result); result != tt.expected {
				t.Errorf("isFormatUnavailable() = %v, expected %v", result, tt.expected)
			}
		})
	}
}

func TestStderrDetail(t *testing.T) {
	if got := stderrDetail(nil); got != "" {
		t.Errorf("stderrDetail(nil) = %q, expected empty", got)
	}
	if got := stderrDetail(&ytdlp.Result{Stderr: "  boom \n"}); got != ": boom" {
		t.Errorf("stderrDetail() = %q, expected %q", got, ": boom")
	}
}

func TestNewYTDLPSource(t *testing.T) {
	s := NewYTDLPSource(nil)
	if s.progressInterval != DefaultProgressInterval {
		t.Errorf("Expected progress interval %v, got %v", DefaultProgressInterval, s.progressInterval)
	}
	if s.logger == nil {
		t.Error("Expected default logger")
	}
}
