package drive

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/hitplayer/internal/model"
)

type fakeAPI struct {
	folders []model.DriveFolder
	videos  map[string][]model.DriveVideo
	err     error
	deleted []string
}

func (f *fakeAPI) ListFolders(ctx context.Context) ([]model.DriveFolder, error) {
	return f.folders, f.err
}

func (f *fakeAPI) CreateFolder(ctx context.Context, name string) (model.DriveFolder, error) {
	if name == "" {
		return model.DriveFolder{}, ErrEmptyFolderName
	}
	return model.DriveFolder{ID: "id-" + name, Name: name}, f.err
}

func (f *fakeAPI) DeleteFolder(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeAPI) ListVideos(ctx context.Context, folderID string) ([]model.DriveVideo, error) {
	return f.videos[folderID], f.err
}

func await[T any](t *testing.T, ch <-chan Outcome[T]) Outcome[T] {
	t.Helper()
	select {
	case out, ok := <-ch:
		require.True(t, ok, "outcome channel closed without a value")
		return out
	case <-time.After(5 * time.Second):
		t.Fatal("no outcome delivered")
	}
	return Outcome[T]{}
}

func TestBrowser_DeliversOutcomes(t *testing.T) {
	api := &fakeAPI{
		folders: []model.DriveFolder{{ID: "1", Name: "Music"}},
		videos:  map[string][]model.DriveVideo{"1": {{ID: "v", Name: "a.mp4"}}},
	}
	b := NewBrowser(context.Background(), func(ctx context.Context) (API, error) { return api, nil })

	folders := await(t, b.ListFolders())
	require.NoError(t, folders.Err)
	assert.Equal(t, api.folders, folders.Value)

	videos := await(t, b.ListVideos("1"))
	require.NoError(t, videos.Err)
	assert.Equal(t, "v", videos.Value[0].ID)

	created := await(t, b.CreateFolder("New"))
	require.NoError(t, created.Err)
	assert.Equal(t, "id-New", created.Value.ID)

	deleted := await(t, b.DeleteFolder("1"))
	require.NoError(t, deleted.Err)
	assert.Equal(t, []string{"1"}, api.deleted)
}

func TestBrowser_ConnectsOnceAndRetriesFailure(t *testing.T) {
	var attempts atomic.Int32
	connectErr := errors.New("no credentials")
	b := NewBrowser(context.Background(), func(ctx context.Context) (API, error) {
		if attempts.Add(1) == 1 {
			return nil, connectErr
		}
		return &fakeAPI{}, nil
	})

	first := await(t, b.ListFolders())
	assert.ErrorIs(t, first.Err, connectErr)

	require.NoError(t, await(t, b.ListFolders()).Err)
	require.NoError(t, await(t, b.ListFolders()).Err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestBrowser_PropagatesCallErrors(t *testing.T) {
	b := NewBrowser(context.Background(), func(ctx context.Context) (API, error) {
		return &fakeAPI{err: ErrInsufficientPermissions}, nil
	})

	out := await(t, b.CreateFolder("x"))
	assert.ErrorIs(t, out.Err, ErrInsufficientPermissions)
}
