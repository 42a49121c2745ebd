package platform

// Package platform contains OS integration and external tooling glue:
// standard user directories, opening files with the system default
// application, and playlist enumeration via the ytdlp library.
