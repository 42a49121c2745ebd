package download

import (
	"fmt"
	"strconv"
	"strings"
)

// Stream constraint defaults
const (
	DefaultExtension  = "mp4"
	DefaultResolution = "720p"
	ResolutionSuffix  = "p"
)

// Constraints selects which stream of a source is acceptable
type Constraints struct {
	Extension   string // container extension without dot
	Height      int    // vertical resolution in pixels, 0 means any
	Progressive bool   // require audio and video in a single stream
}

// NewConstraints builds progressive mp4 constraints for a resolution such as "720p".
// An empty resolution accepts any height.
func NewConstraints(resolution string) (Constraints, error) {
	c := Constraints{Extension: DefaultExtension, Progressive: true}

	resolution = strings.ToLower(strings.TrimSpace(resolution))
	if resolution == "" {
		return c, nil
	}

	height, err := strconv.Atoi(strings.TrimSuffix(resolution, ResolutionSuffix))
	if err != nil || height <= 0 {
		return c, fmt.Errorf("%w: %q", ErrInvalidResolution, resolution)
	}
	c.Height = height
	return c, nil
}

// Selector renders the constraints as a yt-dlp format selector
func (c Constraints) Selector() string {
	var b strings.Builder
	b.WriteString("best")
	if c.Extension != "" {
		fmt.Fprintf(&b, "[ext=%s]", c.Extension)
	}
	if c.Height > 0 {
		fmt.Fprintf(&b, "[height=%d]", c.Height)
	}
	if c.Progressive {
		b.WriteString("[vcodec!=none][acodec!=none]")
	}
	return b.String()
}
