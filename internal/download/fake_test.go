package download

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

type fakeStream struct {
	title      string
	content    string
	resolveErr error
	fetchErr   error
	delay      time.Duration
	panics     bool
}

// fakeSource stands in for yt-dlp: streams are keyed by URL, unknown URLs have no stream
type fakeSource struct {
	mu        sync.Mutex
	streams   map[string]fakeStream
	resolved  []string
	fetched   []string
	active    int
	maxActive int
}

func newFakeSource(streams map[string]fakeStream) *fakeSource {
	return &fakeSource{streams: streams}
}

func (f *fakeSource) Resolve(ctx context.Context, url string, c Constraints) (*Stream, error) {
	f.mu.Lock()
	f.resolved = append(f.resolved, url)
	s, ok := f.streams[url]
	f.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStreamUnavailable, url)
	}
	if s.panics {
		panic("boom")
	}
	if s.resolveErr != nil {
		return nil, s.resolveErr
	}
	return &Stream{SourceURL: url, Title: s.title, Selector: c.Selector()}, nil
}

func (f *fakeSource) Fetch(ctx context.Context, stream *Stream, destPath string, progress ProgressFunc) error {
	f.mu.Lock()
	f.fetched = append(f.fetched, stream.SourceURL)
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	s := f.streams[stream.SourceURL]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active--
		f.mu.Unlock()
	}()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	total := int64(len(s.content))
	if progress != nil {
		progress(total/2, total)
	}

	if s.fetchErr != nil {
		_ = os.WriteFile(destPath, []byte("partial"), 0o644)
		return s.fetchErr
	}

	if progress != nil {
		progress(total, total)
	}
	return os.WriteFile(destPath, []byte(s.content), 0o644)
}

func (f *fakeSource) maxConcurrent() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxActive
}

func (f *fakeSource) resolveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.resolved)
}

type fakeLister struct {
	urls map[string][]string
	err  error
}

func (l *fakeLister) ListVideoURLs(ctx context.Context, playlistURL string) ([]string, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.urls[playlistURL], nil
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// collect drains a worker channel until it is closed
func collect(t *testing.T, ch <-chan Event) []Event {
	t.Helper()
	var events []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("worker channel not closed, got %d events so far", len(events))
		}
	}
}

func completions(events []Event) []ItemCompleted {
	var out []ItemCompleted
	for _, ev := range events {
		if c, ok := ev.(ItemCompleted); ok {
			out = append(out, c)
		}
	}
	return out
}

func progressPercents(events []Event) []int {
	var out []int
	for _, ev := range events {
		if p, ok := ev.(BatchProgressed); ok {
			out = append(out, p.Progress.Percent())
		}
	}
	return out
}

func batchCompletions(events []Event) []BatchCompleted {
	var out []BatchCompleted
	for _, ev := range events {
		if c, ok := ev.(BatchCompleted); ok {
			out = append(out, c)
		}
	}
	return out
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
