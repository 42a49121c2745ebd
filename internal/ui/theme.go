package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PlayerTheme is a dark media-player theme with tighter spacing than the default
type PlayerTheme struct{}

// NewPlayerTheme creates the application theme
func NewPlayerTheme() fyne.Theme {
	return &PlayerTheme{}
}

// Color returns theme colors. The palette is dark regardless of the system variant.
func (t *PlayerTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff}
	case theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return color.NRGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xec, G: 0xec, B: 0xf0, A: 0xff}
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff} // red accent
	case theme.ColorNameSuccess:
		return color.NRGBA{R: 0x43, G: 0xa0, B: 0x47, A: 0xff}
	case theme.ColorNameError:
		return color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}
	case theme.ColorNameWarning:
		return color.NRGBA{R: 0xff, G: 0xb3, B: 0x00, A: 0xff}
	}

	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *PlayerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *PlayerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes
func (t *PlayerTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 17
	case theme.SizeNameInputRadius, theme.SizeNameSelectionRadius:
		return 4
	}

	return theme.DefaultTheme().Size(name)
}
