package drive

import (
	"context"
	"sync"

	"github.com/ytget/hitplayer/internal/model"
)

// Outcome is the result of one background call
type Outcome[T any] struct {
	Value T
	Err   error
}

// Connector produces an authorized API on first use
type Connector func(ctx context.Context) (API, error)

// Browser runs Drive calls on background goroutines. Each call returns a
// channel that delivers exactly one Outcome and is then closed.
type Browser struct {
	ctx     context.Context
	connect Connector

	mu  sync.Mutex
	api API
}

// NewBrowser creates a browser bound to ctx, the application lifetime
func NewBrowser(ctx context.Context, connect Connector) *Browser {
	return &Browser{ctx: ctx, connect: connect}
}

// ListFolders lists all folders in the background
func (b *Browser) ListFolders() <-chan Outcome[[]model.DriveFolder] {
	return runAsync(b, func(ctx context.Context, api API) ([]model.DriveFolder, error) {
		return api.ListFolders(ctx)
	})
}

// CreateFolder creates a folder in the background
func (b *Browser) CreateFolder(name string) <-chan Outcome[model.DriveFolder] {
	return runAsync(b, func(ctx context.Context, api API) (model.DriveFolder, error) {
		return api.CreateFolder(ctx, name)
	})
}

// DeleteFolder deletes a folder in the background
func (b *Browser) DeleteFolder(id string) <-chan Outcome[struct{}] {
	return runAsync(b, func(ctx context.Context, api API) (struct{}, error) {
		return struct{}{}, api.DeleteFolder(ctx, id)
	})
}

// ListVideos lists the videos of a folder in the background
func (b *Browser) ListVideos(folderID string) <-chan Outcome[[]model.DriveVideo] {
	return runAsync(b, func(ctx context.Context, api API) ([]model.DriveVideo, error) {
		return api.ListVideos(ctx, folderID)
	})
}

// client connects once; a failed connection is retried on the next call
func (b *Browser) client(ctx context.Context) (API, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.api != nil {
		return b.api, nil
	}
	api, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}
	b.api = api
	return api, nil
}

func runAsync[T any](b *Browser, fn func(ctx context.Context, api API) (T, error)) <-chan Outcome[T] {
	out := make(chan Outcome[T], 1)
	go func() {
		defer close(out)
		api, err := b.client(b.ctx)
		if err != nil {
			out <- Outcome[T]{Err: err}
			return
		}
		v, err := fn(b.ctx, api)
		out <- Outcome[T]{Value: v, Err: err}
	}()
	return out
}
