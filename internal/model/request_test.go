package model

import (
	"strings"
	"testing"
)

func TestNewRequest(t *testing.T) {
	req := NewRequest("  https://youtube.com/watch?v=abc \n", " /tmp/videos ", " 720p")

	if req.Source != "https://youtube.com/watch?v=abc" {
		t.Errorf("Expected trimmed source, got '%s'", req.Source)
	}
	if req.Destination != "/tmp/videos" {
		t.Errorf("Expected trimmed destination, got '%s'", req.Destination)
	}
	if req.Resolution != "720p" {
		t.Errorf("Expected resolution '720p', got '%s'", req.Resolution)
	}
	if !strings.HasPrefix(req.ID, RequestIDPrefix) {
		t.Errorf("Expected ID to start with '%s', got: %s", RequestIDPrefix, req.ID)
	}
}

func TestNewRequestID(t *testing.T) {
	id1 := NewRequestID()
	id2 := NewRequestID()

	if id1 == id2 {
		t.Error("Expected different request IDs")
	}

	// req- + 36 chars for UUID
	if len(id1) != len(RequestIDPrefix)+36 {
		t.Errorf("Expected ID length %d, got %d for ID: %s", len(RequestIDPrefix)+36, len(id1), id1)
	}
}

func TestRequest_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"Song A", "https://youtube.com/watch?v=1", "Song A"},
		{"", "https://youtube.com/watch?v=1", "https://youtube.com/watch?v=1"},
	}

	for _, test := range tests {
		req := Request{Name: test.name, Source: test.source}
		if result := req.DisplayName(); result != test.expected {
			t.Errorf("DisplayName() with name='%s' = '%s', expected '%s'", test.name, result, test.expected)
		}
	}
}

func TestResult_GetDisplayTitle(t *testing.T) {
	tests := []struct {
		result   Result
		expected string
	}{
		{Result{FileName: "song.mp4", Name: "Song", Source: "u1"}, "song.mp4"},
		{Result{Name: "Song", Source: "u1"}, "Song"},
		{Result{Source: "u1"}, "u1"},
	}

	for _, test := range tests {
		if got := test.result.GetDisplayTitle(); got != test.expected {
			t.Errorf("GetDisplayTitle() = '%s', expected '%s'", got, test.expected)
		}
	}
}
