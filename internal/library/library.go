package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ytget/hitplayer/internal/model"
)

// Library is the listing of one media directory plus the current selection
type Library struct {
	mu       sync.RWMutex
	dir      string
	entries  []model.LibraryEntry
	selected string
	logger   *slog.Logger
}

// New creates a library for dir. Call Refresh to populate it.
func New(dir string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{dir: dir, logger: logger}
}

// Dir returns the current directory
func (l *Library) Dir() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dir
}

// Entries returns a copy of the current listing
func (l *Library) Entries() []model.LibraryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.LibraryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Refresh rescans the directory. The selection survives only if the
// selected name is still listed.
func (l *Library) Refresh() ([]model.LibraryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rescanLocked()
}

func (l *Library) rescanLocked() ([]model.LibraryEntry, error) {
	entries, err := Scan(l.dir)
	if err != nil {
		l.logger.Error("library scan failed", "dir", l.dir, "error", err)
		return nil, err
	}
	l.entries = entries
	if l.selected != "" && l.indexLocked(l.selected) < 0 {
		l.selected = ""
	}

	out := make([]model.LibraryEntry, len(entries))
	copy(out, entries)
	return out, nil
}

// ChangeDir switches to dir and rescans it. On scan failure the previous
// directory and listing are kept.
func (l *Library) ChangeDir(dir string) ([]model.LibraryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	previous := l.dir
	l.dir = dir
	entries, err := l.rescanLocked()
	if err != nil {
		l.dir = previous
		return nil, err
	}
	l.logger.Info("library directory changed", "from", previous, "to", dir, "entries", len(entries))
	return entries, nil
}

// Select marks name as the current entry
func (l *Library) Select(name string) (model.LibraryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.indexLocked(name)
	if i < 0 {
		return model.LibraryEntry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	l.selected = name
	return l.entries[i], nil
}

// Selected returns the current entry, if any
func (l *Library) Selected() (model.LibraryEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexLocked(l.selected)
	if l.selected == "" || i < 0 {
		return model.LibraryEntry{}, false
	}
	return l.entries[i], true
}

// Delete removes the file of a listed entry and rescans. There is no undo.
func (l *Library) Delete(name string) ([]model.LibraryEntry, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !IsMedia(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotMedia, name)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexLocked(name) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	path := filepath.Join(l.dir, name)
	if err := os.Remove(path); err != nil {
		l.logger.Error("failed to delete library entry", "path", path, "error", err)
		return nil, fmt.Errorf("delete %s: %w", name, err)
	}
	l.logger.Info("library entry deleted", "path", path)

	if l.selected == name {
		l.selected = ""
	}
	return l.rescanLocked()
}

// Next returns the entry listed after name, used for autoplay.
// It reports false at the end of the listing or when name is not listed.
func (l *Library) Next(name string) (model.LibraryEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.indexLocked(name)
	if i < 0 || i+1 >= len(l.entries) {
		return model.LibraryEntry{}, false
	}
	return l.entries[i+1], true
}

func (l *Library) indexLocked(name string) int {
	for i, e := range l.entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}
