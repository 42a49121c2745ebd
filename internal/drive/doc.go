package drive

// Package drive browses Google Drive folders and the videos inside them.
// Client wraps the Drive v3 API, Browser moves every call off the caller's
// goroutine, and the auth helpers obtain and persist the OAuth token.
