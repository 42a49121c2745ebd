package library

// Package library lists the media files of a local directory and keeps the
// selection state of the library view: refresh, select, delete, change of
// directory, autoplay successor and change notification.
