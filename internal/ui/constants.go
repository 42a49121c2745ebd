package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconNext     = "⏭"
	IconFolder   = "📁"
	IconRefresh  = "⟳"
	IconDelete   = "🗑"
	IconSuccess  = "✓"
	IconError    = "❌"
	IconSkipped  = "⤼"
	IconCloud    = "☁"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	WindowMinWidth  float32 = 800
	WindowMinHeight float32 = 600

	StatusLabelWidth  float32 = 96
	PercentLabelWidth float32 = 48

	DialogWidth  float32 = 520
	DialogHeight float32 = 420
)

// Debounce durations
const (
	WatchRefreshDebounce = 300 * time.Millisecond
)

// Supported descriptor file extensions
var DescriptorExtensions = []string{".json", ".yaml", ".yml"}
