package platform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser(fetch itemFetcher) *PlaylistParserService {
	p := NewPlaylistParserService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	p.fetch = fetch
	return p
}

func TestNewPlaylistParserService(t *testing.T) {
	service := NewPlaylistParserService(nil)

	if service.timeout != DefaultPlaylistParseTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultPlaylistParseTimeout, service.timeout)
	}
	if service.fetch == nil {
		t.Error("expected default fetcher")
	}
}

func TestPlaylistSetTimeout(t *testing.T) {
	service := NewPlaylistParserService(nil)
	service.SetTimeout(5 * time.Second)

	if service.timeout != 5*time.Second {
		t.Errorf("expected timeout %v, got %v", 5*time.Second, service.timeout)
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
		wantErr  bool
	}{
		{
			name:     "playlist page",
			url:      "https://www.youtube.com/playlist?list=PLrAXtmRdnEQy6nuLvVUxpDnx4C0823vBN",
			expected: "PLrAXtmRdnEQy6nuLvVUxpDnx4C0823vBN",
		},
		{
			name:     "watch URL with extra parameters",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=RDdQw4w9WgXcQ&start_radio=1",
			expected: "RDdQw4w9WgXcQ",
		},
		{
			name:     "upper-case parameter name",
			url:      "https://www.youtube.com/playlist?LIST=PLrAXtmRdnEQy6nuLvVUxpDnx4C0823vBN",
			expected: "PLrAXtmRdnEQy6nuLvVUxpDnx4C0823vBN",
		},
		{
			name:    "no playlist parameter",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "empty playlist ID",
			url:     "https://www.youtube.com/playlist?list=&index=2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExtractPlaylistID(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %s", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ExtractPlaylistID(%q) = %q, expected %q", tt.url, result, tt.expected)
			}
		})
	}
}

func TestListVideoURLs_PreservesOrder(t *testing.T) {
	var gotID string
	parser := newTestParser(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		gotID = playlistID
		return []PlaylistItem{
			{VideoID: "b", Title: "Second"},
			{VideoID: "", Title: "Deleted video"},
			{VideoID: "a", Title: "First"},
		}, nil
	})

	urls, err := parser.ListVideoURLs(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	require.NoError(t, err)
	assert.Equal(t, "PL123", gotID)
	assert.Equal(t, []string{
		"https://www.youtube.com/watch?v=b",
		"https://www.youtube.com/watch?v=a",
	}, urls)
}

func TestListVideoURLs_Errors(t *testing.T) {
	fetchErr := errors.New("network down")
	parser := newTestParser(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		return nil, fetchErr
	})

	_, err := parser.ListVideoURLs(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	assert.ErrorIs(t, err, fetchErr)

	_, err = parser.ListVideoURLs(context.Background(), "https://www.youtube.com/watch?v=x")
	assert.Error(t, err)
}

func TestListItems_AppliesTimeout(t *testing.T) {
	parser := newTestParser(func(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
		_, ok := ctx.Deadline()
		assert.True(t, ok, "expected a deadline on the fetch context")
		return nil, nil
	})

	items, err := parser.ListItems(context.Background(), "https://www.youtube.com/playlist?list=PL123")
	require.NoError(t, err)
	assert.Empty(t, items)
}
