package ui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/hitplayer/internal/download"
	"github.com/ytget/hitplayer/internal/model"
)

// validateURL accepts empty input and absolute http(s) URLs
func validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(strings.TrimSpace(input))
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("URL has no host")
	}

	return nil
}

// cleanURL strips control characters pasted along with a URL
func cleanURL(input string) string {
	cleaned := strings.ReplaceAll(input, "\n", "")
	cleaned = strings.ReplaceAll(cleaned, "\r", "")
	cleaned = strings.ReplaceAll(cleaned, "\t", " ")
	return strings.TrimSpace(cleaned)
}

// progressText renders batch progress for the status label
func progressText(l *Localization, p model.BatchProgress) string {
	return l.Format(KeyStatusRunning, p.Completed, p.Total, p.Percent())
}

// batchStatusText renders the final status of a batch
func batchStatusText(l *Localization, ev download.BatchCompleted) string {
	p := ev.Progress
	switch {
	case ev.Err != nil:
		return l.Format(KeyStatusFailed, ev.Err)
	case p.Total == 0:
		return l.GetText(KeyStatusEmpty)
	case ev.Aborted:
		return l.Format(KeyStatusAborted, p.Completed, p.Total)
	case p.Failed > 0:
		return l.Format(KeyStatusCompleteWithFailures, p.Failed)
	default:
		return l.GetText(KeyStatusAllComplete)
	}
}

// itemStatusText returns the localized label of an item status
func itemStatusText(l *Localization, status model.ItemStatus) string {
	switch status {
	case model.ItemStatusResolving:
		return l.GetText(KeyItemResolving)
	case model.ItemStatusDownloading:
		return l.GetText(KeyItemDownloading)
	case model.ItemStatusCompleted:
		return IconSuccess + " " + l.GetText(KeyItemCompleted)
	case model.ItemStatusFailed:
		return IconError + " " + l.GetText(KeyItemFailed)
	case model.ItemStatusSkipped:
		return IconSkipped + " " + l.GetText(KeyItemSkipped)
	default:
		return l.GetText(KeyItemPending)
	}
}

// percentText renders an item percent, or a dash while the size is unknown
func percentText(percent int) string {
	if percent < 0 {
		return DashPlaceholder
	}
	return fmt.Sprintf(ProgressLabelFormat, percent)
}

// libraryEntryText renders a library list row
func libraryEntryText(e model.LibraryEntry, duration string) string {
	parts := []string{e.Name, e.DisplaySize()}
	if duration != "" {
		parts = append(parts, duration)
	}
	return strings.Join(parts, MiddleDotSeparator)
}
