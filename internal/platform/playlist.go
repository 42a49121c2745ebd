package platform

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ytget "github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters and separators
const (
	PlaylistURLParam       = "list="
	PlaylistParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistItem is one enumerated playlist entry
type PlaylistItem struct {
	VideoID string
	Title   string
}

// itemFetcher returns every item of a playlist in playlist order
type itemFetcher func(ctx context.Context, playlistID string) ([]PlaylistItem, error)

// PlaylistParserService enumerates YouTube playlists
type PlaylistParserService struct {
	timeout time.Duration
	fetch   itemFetcher
	logger  *slog.Logger
}

// NewPlaylistParserService creates a playlist parser backed by the ytdlp library
func NewPlaylistParserService(logger *slog.Logger) *PlaylistParserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		fetch:   fetchPlaylistItems,
		logger:  logger,
	}
}

// SetTimeout sets the timeout for playlist enumeration
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// ListItems returns the playlist entries in playlist order
func (p *PlaylistParserService) ListItems(ctx context.Context, url string) ([]PlaylistItem, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	items, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	p.logger.Debug("playlist enumerated", "playlist_id", playlistID, "items", len(items))
	return items, nil
}

// ListVideoURLs returns one watch URL per playlist entry, in playlist order
func (p *PlaylistParserService) ListVideoURLs(ctx context.Context, url string) ([]string, error) {
	items, err := p.ListItems(ctx, url)
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		urls = append(urls, VideoURL(it.VideoID))
	}
	return urls, nil
}

// VideoURL returns the watch URL of a video ID
func VideoURL(videoID string) string {
	return fmt.Sprintf(YouTubeVideoURLTemplate, videoID)
}

// ExtractPlaylistID extracts the playlist ID from a YouTube URL. Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(url string) (string, error) {
	i := strings.Index(strings.ToLower(url), PlaylistURLParam)
	if i < 0 {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", url)
	}

	playlistID, _, _ := strings.Cut(url[i+len(PlaylistURLParam):], PlaylistParamSeparator)
	if playlistID == "" {
		return "", fmt.Errorf("empty playlist ID in URL: %s", url)
	}
	return playlistID, nil
}

func fetchPlaylistItems(ctx context.Context, playlistID string) ([]PlaylistItem, error) {
	items, err := ytget.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	out := make([]PlaylistItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlaylistItem{VideoID: it.VideoID, Title: it.Title})
	}
	return out, nil
}
