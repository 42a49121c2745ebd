package download

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/hitplayer/internal/model"
)

const testPlaylistURL = "https://www.youtube.com/playlist?list=PL123"

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"https://www.youtube.com/playlist?list=PL123", true},
		{"https://www.youtube.com/watch?v=abc&list=PL123", true},
		{"https://www.youtube.com/PLAYLIST?foo=bar", true},
		{"https://www.youtube.com/watch?v=abc", false},
		{"https://youtu.be/abc", false},
	}

	for _, test := range tests {
		if result := IsPlaylistURL(test.url); result != test.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", test.url, result, test.expected)
		}
	}
}

func playlistFixture() (*fakeSource, *fakeLister) {
	src := newFakeSource(map[string]fakeStream{
		"v1": {title: "First", content: "1"},
		// v2 has no matching stream
		"v3": {title: "Third", content: "3"},
	})
	lister := &fakeLister{urls: map[string][]string{testPlaylistURL: {"v1", "v2", "v3"}}}
	return src, lister
}

func TestPlaylistWorker_ContinuePolicy(t *testing.T) {
	dir := t.TempDir()
	src, lister := playlistFixture()
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, dir, "720p")))

	done := completions(events)
	require.Len(t, done, 3)
	for i, c := range done {
		assert.Equal(t, i, c.Result.Index, "items must complete in enumeration order")
	}
	assert.True(t, done[0].Result.Success)
	assert.False(t, done[1].Result.Success)
	assert.True(t, done[2].Result.Success)

	assert.Equal(t, []int{33, 66, 100}, progressPercents(events))

	final := batchCompletions(events)
	require.Len(t, final, 1)
	assert.False(t, final[0].Aborted)
	assert.NoError(t, final[0].Err)
	assert.Equal(t, model.BatchProgress{Total: 3, Completed: 3, Failed: 1}, final[0].Progress)
	_, last := events[len(events)-1].(BatchCompleted)
	assert.True(t, last, "BatchCompleted must be the last event")

	assert.ElementsMatch(t, []string{"first.mp4", "third.mp4"}, listDir(t, dir))
	assert.Equal(t, 1, src.maxConcurrent(), "playlist items must never overlap")
}

func TestPlaylistWorker_AbortPolicy(t *testing.T) {
	dir := t.TempDir()
	src, lister := playlistFixture()
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyAbort, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, dir, "")))

	assert.Equal(t, []int{33, 66}, progressPercents(events))

	done := completions(events)
	require.Len(t, done, 3)
	assert.Equal(t, model.ItemStatusSkipped, done[2].Result.Status)
	assert.Equal(t, "v3", done[2].Result.Source)

	final := batchCompletions(events)
	require.Len(t, final, 1)
	assert.True(t, final[0].Aborted)
	assert.Equal(t, 2, final[0].Progress.Completed)
	assert.Equal(t, []string{"first.mp4"}, listDir(t, dir))
	assert.Equal(t, 2, src.resolveCount(), "skipped items are never resolved")
}

func TestPlaylistWorker_SingleVideoIsBatchOfOne(t *testing.T) {
	dir := t.TempDir()
	src := newFakeSource(map[string]fakeStream{
		"https://www.youtube.com/watch?v=abc": {title: "Solo", content: "x"},
	})
	worker := NewPlaylistWorker(src, &fakeLister{}, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest("https://www.youtube.com/watch?v=abc", dir, "")))

	assert.Equal(t, []int{100}, progressPercents(events))
	require.Len(t, completions(events), 1)
	require.Len(t, batchCompletions(events), 1)
	assert.Equal(t, []string{"solo.mp4"}, listDir(t, dir))
}

func TestPlaylistWorker_EnumerationFailure(t *testing.T) {
	src := newFakeSource(nil)
	lister := &fakeLister{err: errors.New("playlist is private")}
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, t.TempDir(), "")))

	require.Len(t, events, 1)
	final, ok := events[0].(BatchCompleted)
	require.True(t, ok)
	assert.EqualError(t, final.Err, "playlist is private")
}

func TestPlaylistWorker_MixWatchURLFallsBackToVideo(t *testing.T) {
	const mixURL = "https://www.youtube.com/watch?v=abc&list=RDabc&start_radio=1"
	dir := t.TempDir()
	src := newFakeSource(map[string]fakeStream{mixURL: {title: "Solo", content: "x"}})
	lister := &fakeLister{err: errors.New("mix playlists cannot be enumerated")}
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(mixURL, dir, "")))

	assert.Equal(t, []string{mixURL}, src.fetched)
	assert.Equal(t, []int{100}, progressPercents(events))
	finals := batchCompletions(events)
	require.Len(t, finals, 1)
	assert.NoError(t, finals[0].Err)
	assert.Equal(t, []string{"solo.mp4"}, listDir(t, dir))
}

func TestPlaylistWorker_EmptyPlaylist(t *testing.T) {
	src := newFakeSource(nil)
	lister := &fakeLister{urls: map[string][]string{testPlaylistURL: {}}}
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, t.TempDir(), "")))

	assert.Empty(t, progressPercents(events), "no progress without items")
	final := batchCompletions(events)
	require.Len(t, final, 1)
	assert.Equal(t, 0, final[0].Progress.Total)
	assert.NoError(t, final[0].Err)
}

func TestPlaylistWorker_InvalidRequest(t *testing.T) {
	worker := NewPlaylistWorker(newFakeSource(nil), &fakeLister{}, model.FailurePolicyContinue, newTestLogger())

	events := collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, "", "")))

	require.Len(t, events, 1)
	final, ok := events[0].(BatchCompleted)
	require.True(t, ok)
	assert.ErrorIs(t, final.Err, ErrInvalidRequest)
}

func TestPlaylistWorker_ProgressNonDecreasing(t *testing.T) {
	streams := map[string]fakeStream{}
	var urls []string
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		urls = append(urls, id)
		if id != "c" && id != "f" {
			streams[id] = fakeStream{title: id, content: id}
		}
	}
	src := newFakeSource(streams)
	lister := &fakeLister{urls: map[string][]string{testPlaylistURL: urls}}
	worker := NewPlaylistWorker(src, lister, model.FailurePolicyContinue, newTestLogger())

	percents := progressPercents(collect(t, worker.Start(context.Background(), model.NewRequest(testPlaylistURL, t.TempDir(), ""))))

	require.Len(t, percents, len(urls))
	for i := 1; i < len(percents); i++ {
		assert.GreaterOrEqual(t, percents[i], percents[i-1])
	}
	assert.Equal(t, 100, percents[len(percents)-1])
}

func TestPlaylistWorker_SetPolicy(t *testing.T) {
	worker := NewPlaylistWorker(newFakeSource(nil), &fakeLister{}, model.FailurePolicyContinue, newTestLogger())
	assert.Equal(t, model.FailurePolicyContinue, worker.Policy())

	worker.SetPolicy(model.FailurePolicyAbort)
	assert.Equal(t, model.FailurePolicyAbort, worker.Policy())
}
