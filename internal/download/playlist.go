package download

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/ytget/hitplayer/internal/model"
)

// Playlist URL markers, matched case-insensitively
const (
	PlaylistPathMarker  = "playlist"
	PlaylistQueryMarker = "list="
	VideoQueryParam     = "v"
)

// IsPlaylistURL reports whether a URL names a playlist rather than a single video
func IsPlaylistURL(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	return strings.Contains(lower, PlaylistPathMarker) || strings.Contains(lower, PlaylistQueryMarker)
}

// hasVideoID reports whether a URL also names one video, as watch URLs
// opened from a mix or radio list do
func hasVideoID(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return u.Query().Get(VideoQueryParam) != ""
}

// PlaylistWorker downloads the items of a playlist one after another in
// playlist order. A plain video URL is treated as a batch of one.
type PlaylistWorker struct {
	single *SingleWorker
	lister PlaylistLister
	logger *slog.Logger
	mu     sync.RWMutex
	policy model.FailurePolicy
}

// NewPlaylistWorker creates a sequential batch worker
func NewPlaylistWorker(source Source, lister PlaylistLister, policy model.FailurePolicy, logger *slog.Logger) *PlaylistWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlaylistWorker{
		single: NewSingleWorker(source, logger),
		lister: lister,
		policy: policy,
		logger: logger,
	}
}

// SetPolicy changes the failure policy for batches started afterwards
func (w *PlaylistWorker) SetPolicy(policy model.FailurePolicy) {
	w.mu.Lock()
	w.policy = policy
	w.mu.Unlock()
}

// Policy returns the current failure policy
func (w *PlaylistWorker) Policy() model.FailurePolicy {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.policy
}

// Start runs the batch on a new goroutine. Per item the channel yields the
// single-item events followed by BatchProgressed; BatchCompleted comes last
// and the channel is closed.
func (w *PlaylistWorker) Start(ctx context.Context, req model.Request) <-chan Event {
	ch := make(chan Event, EventBufferSize)
	go func() {
		defer close(ch)
		w.run(ctx, req, w.Policy(), emitter{ctx: ctx, ch: ch})
	}()
	return ch
}

func (w *PlaylistWorker) run(ctx context.Context, req model.Request, policy model.FailurePolicy, em emitter) {
	header := Header{BatchID: req.ID}

	if err := ValidateRequest(req); err != nil {
		w.logger.Error("playlist request rejected", "source", req.Source, "error", err)
		em.emit(BatchCompleted{Header: header, Err: err})
		return
	}

	urls, err := w.itemURLs(ctx, req.Source)
	if err != nil {
		w.logger.Error("failed to enumerate playlist", "url", req.Source, "error", err)
		em.emit(BatchCompleted{Header: header, Err: err})
		return
	}

	progress := model.BatchProgress{Total: len(urls)}
	if progress.Total == 0 {
		w.logger.Warn("playlist is empty", "url", req.Source)
		em.emit(BatchCompleted{Header: header, Progress: progress})
		return
	}

	w.logger.Info("playlist download started", "url", req.Source, "items", progress.Total, "policy", policy)

	for i, itemURL := range urls {
		item := req
		item.Source = itemURL
		item.Name = ""

		result := w.single.download(ctx, item, i, em)
		progress.Completed++
		if !result.Success {
			progress.Failed++
		}

		em.emit(ItemCompleted{Header: header, Result: result})
		em.emit(BatchProgressed{Header: header, Progress: progress})

		if err := ctx.Err(); err != nil {
			em.emit(BatchCompleted{Header: header, Progress: progress, Err: err})
			return
		}

		if !result.Success && policy == model.FailurePolicyAbort {
			w.skipRemaining(req, urls, i+1, em)
			w.logger.Warn("playlist aborted after failed item", "url", req.Source, "index", i, "error", result.Error)
			em.emit(BatchCompleted{Header: header, Progress: progress, Aborted: true})
			return
		}
	}

	w.logger.Info("playlist download finished", "url", req.Source, "completed", progress.Completed, "failed", progress.Failed)
	em.emit(BatchCompleted{Header: header, Progress: progress})
}

// itemURLs expands the source into the ordered list of video URLs. A watch
// URL whose list cannot be enumerated falls back to its own video.
func (w *PlaylistWorker) itemURLs(ctx context.Context, source string) ([]string, error) {
	if !IsPlaylistURL(source) {
		return []string{source}, nil
	}
	if w.lister == nil {
		return nil, fmt.Errorf("no playlist lister configured for %s", source)
	}
	urls, err := w.lister.ListVideoURLs(ctx, source)
	if err != nil && ctx.Err() == nil && hasVideoID(source) {
		w.logger.Warn("playlist not enumerable, downloading the video alone", "url", source, "error", err)
		return []string{source}, nil
	}
	return urls, err
}

// skipRemaining reports every item from start on as skipped without touching the network
func (w *PlaylistWorker) skipRemaining(req model.Request, urls []string, start int, em emitter) {
	for j := start; j < len(urls); j++ {
		em.emit(ItemCompleted{
			Header: Header{BatchID: req.ID},
			Result: model.Result{
				RequestID: req.ID,
				Index:     j,
				Source:    urls[j],
				Status:    model.ItemStatusSkipped,
				Error:     "skipped after earlier failure",
			},
		})
	}
}
