package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// Four tabs (library, playlist, batch and Drive) drive the download workers and
// the Drive browser. Worker events are pumped onto the UI goroutine with fyne.Do,
// and all UI strings are localized via Localization.
