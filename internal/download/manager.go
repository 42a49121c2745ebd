package download

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ytget/hitplayer/internal/model"
)

// Manager downloads every entry of a descriptor file concurrently and
// aggregates their completion into batch progress.
type Manager struct {
	single      *SingleWorker
	logger      *slog.Logger
	mu          sync.RWMutex
	maxParallel int
}

// NewManager creates a descriptor manager. maxParallel bounds the number of
// simultaneous downloads; 0 or less starts every entry at once.
func NewManager(source Source, maxParallel int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		single:      NewSingleWorker(source, logger),
		logger:      logger,
		maxParallel: maxParallel,
	}
}

// SetMaxParallel changes the concurrency bound for batches started afterwards
func (m *Manager) SetMaxParallel(max int) {
	m.mu.Lock()
	m.maxParallel = max
	m.mu.Unlock()
}

// MaxParallel returns the current concurrency bound
func (m *Manager) MaxParallel() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxParallel
}

// Start loads the descriptor named by req.Source and dispatches one worker per
// entry into req.Destination. Load and validation failures are returned
// before anything starts. Completion order across entries is unspecified;
// BatchProgressed counts only grow and BatchCompleted is emitted once, when
// every entry has reported.
func (m *Manager) Start(ctx context.Context, req model.Request) (<-chan Event, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}
	entries, err := LoadDescriptor(req.Source)
	if err != nil {
		m.logger.Error("failed to load descriptor", "path", req.Source, "error", err)
		return nil, err
	}

	out := make(chan Event, EventBufferSize)
	em := emitter{ctx: ctx, ch: out}
	results := make(chan model.Result)
	limit := m.MaxParallel()

	m.logger.Info("descriptor download started", "path", req.Source, "entries", len(entries), "max_parallel", limit)

	go func() {
		var g errgroup.Group
		if limit > 0 {
			g.SetLimit(limit)
		}
		for i, entry := range entries {
			item := model.Request{
				ID:          req.ID,
				Source:      entry.URL,
				Destination: req.Destination,
				Resolution:  req.Resolution,
				Name:        entry.Name,
			}
			g.Go(func() error {
				results <- m.single.download(ctx, item, i, em)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	go m.aggregate(req, len(entries), results, em, out)

	return out, nil
}

// aggregate is the only writer of the batch counters
func (m *Manager) aggregate(req model.Request, total int, results <-chan model.Result, em emitter, out chan<- Event) {
	defer close(out)

	header := Header{BatchID: req.ID}
	progress := model.BatchProgress{Total: total}

	for result := range results {
		progress.Completed++
		if !result.Success {
			progress.Failed++
		}

		em.emit(ItemCompleted{Header: header, Result: result})
		em.emit(BatchProgressed{Header: header, Progress: progress})

		if progress.Completed == progress.Total {
			m.logger.Info("descriptor download finished", "path", req.Source, "completed", progress.Completed, "failed", progress.Failed)
			em.emit(BatchCompleted{Header: header, Progress: progress})
		}
	}
}
