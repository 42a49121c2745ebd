package config

// Package config holds persisted settings backed by Fyne preferences,
// startup options from the command line, and logger construction.
