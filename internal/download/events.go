package download

import (
	"context"

	"github.com/ytget/hitplayer/internal/model"
)

// EventBufferSize is the capacity of every worker event channel
const EventBufferSize = 64

// Event is published by workers and consumed by the view. Consumers switch
// on the concrete type.
type Event interface {
	Batch() string
}

// Header identifies the request an event belongs to
type Header struct {
	BatchID string
}

// Batch returns the ID of the request that produced the event
func (h Header) Batch() string { return h.BatchID }

// ItemStarted is emitted when a worker begins resolving an item
type ItemStarted struct {
	Header
	Index  int
	Source string
	Name   string
}

// ItemProgress carries transfer byte counts of the item being downloaded
type ItemProgress struct {
	Header
	Index      int
	Downloaded int64
	Total      int64
}

// Percent returns the transferred share of the item, or -1 when the size is unknown
func (p ItemProgress) Percent() int {
	if p.Total <= 0 {
		return -1
	}
	return int(p.Downloaded * 100 / p.Total)
}

// ItemCompleted is emitted exactly once per item, successful or not
type ItemCompleted struct {
	Header
	Result model.Result
}

// BatchProgressed is emitted after each processed item of a batch
type BatchProgressed struct {
	Header
	Progress model.BatchProgress
}

// BatchCompleted is the last event of a batch. Err is set when the batch could
// not run at all (invalid request, playlist enumeration failure, shutdown).
type BatchCompleted struct {
	Header
	Progress model.BatchProgress
	Aborted  bool
	Err      error
}

// emitter sends events unless the context is done. A zero emitter drops everything.
type emitter struct {
	ctx context.Context
	ch  chan<- Event
}

func (e emitter) emit(ev Event) bool {
	if e.ch == nil {
		return true
	}
	select {
	case e.ch <- ev:
		return true
	case <-e.ctx.Done():
		return false
	}
}
