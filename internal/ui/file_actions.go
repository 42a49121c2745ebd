package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"github.com/ytget/hitplayer/internal/platform"
)

// openFile returns an action opening a file with the default application
func openFile(window fyne.Window, localization *Localization) func(path string) {
	return func(path string) {
		if err := platform.OpenFileWithDefaultApp(path); err != nil {
			dialog.ShowError(fmt.Errorf("%s: %w", localization.GetText(KeyErrorOpenFile), err), window)
		}
	}
}

// revealFile returns an action showing a file in the system file manager
func revealFile(window fyne.Window, localization *Localization) func(path string) {
	return func(path string) {
		if err := platform.OpenFileInManager(path); err != nil {
			dialog.ShowError(fmt.Errorf("%s: %w", localization.GetText(KeyErrorOpenFile), err), window)
		}
	}
}
