package download

import (
	"context"
)

// Stream is a negotiated downloadable representation of a source URL
type Stream struct {
	SourceURL string
	Title     string // title reported by the source, used for the output name
	Selector  string // format selector the stream was resolved with
}

// ProgressFunc receives byte counts while a stream is transferred.
// total is 0 when the size is unknown.
type ProgressFunc func(downloaded, total int64)

// Source resolves and fetches streams. Implementations must return an error
// wrapping ErrStreamUnavailable when nothing matches the constraints.
type Source interface {
	Resolve(ctx context.Context, url string, c Constraints) (*Stream, error)
	Fetch(ctx context.Context, stream *Stream, destPath string, progress ProgressFunc) error
}

// PlaylistLister enumerates the video URLs of a playlist in playlist order
type PlaylistLister interface {
	ListVideoURLs(ctx context.Context, playlistURL string) ([]string, error)
}
