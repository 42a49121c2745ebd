package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ytget/hitplayer/internal/model"
)

// MediaExtensions are the recognized local media extensions
var MediaExtensions = []string{".mp4", ".avi", ".mkv"}

// Library errors
var (
	ErrNotMedia    = errors.New("not a recognized media file")
	ErrInvalidName = errors.New("invalid entry name")
	ErrNotFound    = errors.New("entry not found")
)

// IsMedia reports whether name ends in a recognized media extension, ignoring case
func IsMedia(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, m := range MediaExtensions {
		if ext == m {
			return true
		}
	}
	return false
}

// Scan lists the regular media files of dir sorted by name.
// Subdirectories are not descended into.
func Scan(dir string) ([]model.LibraryEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	entries := make([]model.LibraryEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() || !IsMedia(de.Name()) {
			continue
		}
		entry := model.LibraryEntry{
			Name: de.Name(),
			Path: filepath.Join(dir, de.Name()),
		}
		// The file may vanish between ReadDir and Info; keep it listed without size
		if info, err := de.Info(); err == nil {
			entry.Size = info.Size()
			entry.ModTime = info.ModTime()
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Names returns the entry names in order
func Names(entries []model.LibraryEntry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
