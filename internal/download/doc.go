package download

// Package download implements the background download workers: a single-item
// worker, a sequential playlist worker and a concurrent descriptor manager.
// Stream negotiation and file transfer are delegated to yt-dlp (via
// github.com/lrstanley/go-ytdlp); workers report typed events on channels
// that the caller drains on its own goroutine.
