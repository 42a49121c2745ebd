package probe

// Package probe reads media metadata with ffprobe.
