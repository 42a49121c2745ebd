package download

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ytget/hitplayer/internal/model"
)

// TempFileSuffix marks files still being transferred
const TempFileSuffix = ".download"

// SingleWorker downloads one source URL into a destination directory
type SingleWorker struct {
	source Source
	logger *slog.Logger
}

// NewSingleWorker creates a worker backed by the given source
func NewSingleWorker(source Source, logger *slog.Logger) *SingleWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SingleWorker{source: source, logger: logger}
}

// Start runs the download on a new goroutine. The returned channel yields
// ItemStarted, any ItemProgress, then exactly one ItemCompleted, and is closed.
func (w *SingleWorker) Start(ctx context.Context, req model.Request) <-chan Event {
	ch := make(chan Event, EventBufferSize)
	go func() {
		defer close(ch)
		em := emitter{ctx: ctx, ch: ch}
		result := w.download(ctx, req, 0, em)
		em.emit(ItemCompleted{Header: Header{BatchID: req.ID}, Result: result})
	}()
	return ch
}

// Download runs the download on the calling goroutine and returns its result
func (w *SingleWorker) Download(ctx context.Context, req model.Request) model.Result {
	return w.download(ctx, req, 0, emitter{})
}

func (w *SingleWorker) download(ctx context.Context, req model.Request, index int, em emitter) (result model.Result) {
	result = model.Result{
		RequestID: req.ID,
		Index:     index,
		Source:    req.Source,
		Name:      req.Name,
		Status:    model.ItemStatusFailed,
	}

	defer func() {
		if r := recover(); r != nil {
			result.Success = false
			result.Status = model.ItemStatusFailed
			result.Error = fmt.Sprintf("download panicked: %v", r)
			w.logger.Error("download panicked", "url", req.Source, "panic", r)
		}
	}()

	fail := func(err error) model.Result {
		result.Error = err.Error()
		if errors.Is(err, ErrStreamUnavailable) {
			w.logger.Warn("stream unavailable", "url", req.Source, "name", req.Name, "error", err)
		} else {
			w.logger.Error("download failed", "url", req.Source, "name", req.Name, "destination", req.Destination, "error", err)
		}
		return result
	}

	if err := ValidateRequest(req); err != nil {
		return fail(err)
	}
	constraints, err := NewConstraints(req.Resolution)
	if err != nil {
		return fail(fmt.Errorf("%w: %v", ErrInvalidRequest, err))
	}

	em.emit(ItemStarted{Header: Header{BatchID: req.ID}, Index: index, Source: req.Source, Name: req.Name})

	stream, err := w.source.Resolve(ctx, req.Source, constraints)
	if err != nil {
		return fail(err)
	}

	result.FileName = OutputName(stream.Title)
	result.Path = filepath.Join(req.Destination, result.FileName)

	gate := &progressGate{}
	progress := func(downloaded, total int64) {
		gate.do(func() {
			em.emit(ItemProgress{Header: Header{BatchID: req.ID}, Index: index, Downloaded: downloaded, Total: total})
		})
	}

	// Transfer into a sibling temp file so a failure never touches an existing copy
	tmpPath, err := tempSibling(result.Path)
	if err != nil {
		return fail(err)
	}
	defer func() {
		if result.Success {
			return
		}
		if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
			w.logger.Warn("failed to remove partial file", "path", tmpPath, "error", rmErr)
		}
	}()

	err = w.source.Fetch(ctx, stream, tmpPath, progress)
	gate.close()
	if err == nil {
		err = os.Rename(tmpPath, result.Path)
	}
	if err != nil {
		return fail(err)
	}

	result.Success = true
	result.Status = model.ItemStatusCompleted
	w.logger.Info("download completed", "url", req.Source, "file", result.FileName)
	return result
}

// tempSibling reserves a unique file next to path. Its suffix is not a media
// extension, so library scans never list it.
func tempSibling(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*"+TempFileSuffix)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("create temp file: %w", err)
	}
	return name, nil
}

// progressGate drops progress callbacks that arrive after the transfer returned
type progressGate struct {
	mu     sync.Mutex
	closed bool
}

func (g *progressGate) do(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.closed {
		fn()
	}
}

func (g *progressGate) close() {
	g.mu.Lock()
	g.closed = true
	g.mu.Unlock()
}
