package model

import (
	"time"

	"github.com/dustin/go-humanize"
)

// LibraryEntry is a media file discovered by a directory scan. Entries carry
// no identity beyond their path and are recomputed on every refresh.
type LibraryEntry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// DisplaySize returns the size in human readable form (e.g. "12 MB")
func (e LibraryEntry) DisplaySize() string {
	if e.Size <= 0 {
		return "—"
	}
	return humanize.Bytes(uint64(e.Size))
}
