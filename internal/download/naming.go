package download

import "strings"

// Output naming constants
const (
	OutputExtension = ".mp4"
	UntitledName    = "untitled"
)

// OutputName derives the file name for a source title: lower-cased, spaces
// removed, path separators replaced, ".mp4" appended. Two titles that
// normalize to the same name write to the same file.
func OutputName(title string) string {
	name := strings.ReplaceAll(strings.ToLower(title), " ", "")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)

	if name == "" {
		name = UntitledName
	}
	return name + OutputExtension
}
