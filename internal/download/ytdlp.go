package download

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// yt-dlp integration constants
const (
	DefaultProgressInterval = 500 * time.Millisecond
	FormatUnavailableMarker = "requested format is not available"
	OutputTemplateEscape    = "%%"
)

// YTDLPSource resolves and fetches streams with the yt-dlp executable
type YTDLPSource struct {
	progressInterval time.Duration
	logger           *slog.Logger
}

// NewYTDLPSource creates a yt-dlp backed source
func NewYTDLPSource(logger *slog.Logger) *YTDLPSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &YTDLPSource{
		progressInterval: DefaultProgressInterval,
		logger:           logger,
	}
}

// InstallYTDLP makes sure a yt-dlp executable is available, downloading one if needed
func InstallYTDLP(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	return nil
}

// Resolve asks yt-dlp for the metadata of the stream matching the constraints
// without downloading anything.
func (s *YTDLPSource) Resolve(ctx context.Context, url string, c Constraints) (*Stream, error) {
	selector := c.Selector()

	result, err := ytdlp.New().
		NoPlaylist().
		Format(selector).
		DumpJSON().
		Run(ctx, url)
	if err != nil {
		if isFormatUnavailable(err, result) {
			return nil, fmt.Errorf("%w: %s matches no format of %s", ErrStreamUnavailable, selector, url)
		}
		return nil, fmt.Errorf("resolve %s: %w%s", url, err, stderrDetail(result))
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("parse stream info for %s: %w", url, err)
	}
	if len(info) == 0 {
		return nil, fmt.Errorf("%w: no stream info for %s", ErrStreamUnavailable, url)
	}

	title := ""
	if info[0].Title != nil {
		title = *info[0].Title
	}

	s.logger.Debug("stream resolved", "url", url, "selector", selector, "title", title)
	return &Stream{SourceURL: url, Title: title, Selector: selector}, nil
}

// Fetch downloads the stream to destPath, overwriting any existing file
func (s *YTDLPSource) Fetch(ctx context.Context, stream *Stream, destPath string, progress ProgressFunc) error {
	dl := ytdlp.New().
		NoPlaylist().
		ForceOverwrites().
		Format(stream.Selector).
		Output(escapeOutputTemplate(destPath))

	if progress != nil {
		dl.ProgressFunc(s.progressInterval, func(update ytdlp.ProgressUpdate) {
			progress(int64(update.DownloadedBytes), int64(update.TotalBytes))
		})
	}

	result, err := dl.Run(ctx, stream.SourceURL)
	if err != nil {
		if isFormatUnavailable(err, result) {
			return fmt.Errorf("%w: %s", ErrStreamUnavailable, stream.SourceURL)
		}
		return fmt.Errorf("transfer %s: %w%s", stream.SourceURL, err, stderrDetail(result))
	}
	return nil
}

// escapeOutputTemplate keeps yt-dlp from expanding '%' in a literal path
func escapeOutputTemplate(path string) string {
	return strings.ReplaceAll(path, "%", OutputTemplateEscape)
}

func isFormatUnavailable(err error, result *ytdlp.Result) bool {
	if strings.Contains(strings.ToLower(err.Error()), FormatUnavailableMarker) {
		return true
	}
	return result != nil && strings.Contains(strings.ToLower(result.Stderr), FormatUnavailableMarker)
}

func stderrDetail(result *ytdlp.Result) string {
	if result == nil {
		return ""
	}
	stderr := strings.TrimSpace(result.Stderr)
	if stderr == "" {
		return ""
	}
	return ": " + stderr
}
