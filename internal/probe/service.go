package probe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// FFprobe constants
const (
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	DefaultProbeTimeout = 10 * time.Second
)

// UnknownDuration is displayed when no duration could be read
const UnknownDuration = "—"

// ErrUnavailable is returned when the ffprobe executable cannot be found
var ErrUnavailable = errors.New("ffprobe is not available")

// commandRunner runs an executable and returns its standard output
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Service probes media files
type Service struct {
	command string
	timeout time.Duration
	run     commandRunner
	logger  *slog.Logger
}

// NewService creates a probe service using ffprobe from PATH
func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		command: FFprobeCommand,
		timeout: DefaultProbeTimeout,
		run:     execRunner,
		logger:  logger,
	}
}

// Duration returns the playing time of a media file
func (s *Service) Duration(ctx context.Context, path string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	output, err := s.run(ctx, s.command, BuildFFprobeArgs(path)...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return 0, ErrUnavailable
		}
		s.logger.Warn("ffprobe failed", "path", path, "error", err)
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	return parseDuration(string(output))
}

// BuildFFprobeArgs builds the ffprobe arguments printing only the container duration
func BuildFFprobeArgs(path string) []string {
	return []string{"-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFormat, path}
}

func parseDuration(output string) (time.Duration, error) {
	seconds, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("negative duration: %v", seconds)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// FormatDuration renders d as mm:ss, or hh:mm:ss from one hour on
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return UnknownDuration
	}
	total := int(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}
