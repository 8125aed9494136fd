package persist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/mmcdole/showlist/internal/codec"
	"github.com/mmcdole/showlist/internal/domain"
	"github.com/mmcdole/showlist/internal/remote"
	"github.com/mmcdole/showlist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	backups  map[string][]domain.Show
	fetchErr error
	pushErr  error
	pushes   int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{backups: make(map[string][]domain.Show)}
}

func (f *fakeRemote) FetchBackup(_ context.Context, token string) ([]domain.Show, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.backups[token], nil
}

func (f *fakeRemote) PushBackup(_ context.Context, token string, shows []domain.Show) error {
	f.pushes++
	if f.pushErr != nil {
		return f.pushErr
	}
	f.backups[token] = shows
	return nil
}

type fakeTokens struct {
	saved   string
	cleared bool
	err     error
}

func (f *fakeTokens) SaveToken(token string) error {
	f.saved = token
	return f.err
}

func (f *fakeTokens) ClearToken() error {
	f.cleared = true
	return f.err
}

func localStore(t *testing.T) domain.ShowStore {
	t.Helper()
	s, err := store.Open("")
	require.NoError(t, err)
	return s.Namespace(store.LocalNamespace)
}

var dexter = []domain.Show{{Title: "Dexter", Genres: []string{"drama"}, Rating: domain.IntPtr(4)}}

func TestSave_WithoutTokenOnlyLocal(t *testing.T) {
	remote := newFakeRemote()
	a := NewAdapter(localStore(t), remote, nil, nil)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, 0, dexter, ""))
	assert.Zero(t, remote.pushes)

	shows, err := a.Load(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, dexter, shows)
}

func TestSave_WithTokenWritesBoth(t *testing.T) {
	local := localStore(t)
	remote := newFakeRemote()
	a := NewAdapter(local, remote, nil, nil)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, 0, dexter, "tok"))

	assert.Equal(t, dexter, remote.backups["tok"])
	shows, err := local.LoadShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, dexter, shows)
}

func TestSave_RemoteFailureStillSavesLocal(t *testing.T) {
	local := localStore(t)
	remote := newFakeRemote()
	remote.pushErr = domain.ErrServerOffline
	a := NewAdapter(local, remote, nil, nil)
	ctx := context.Background()

	err := a.Save(ctx, 0, dexter, "tok")
	assert.ErrorIs(t, err, domain.ErrServerOffline)

	shows, err := local.LoadShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, dexter, shows)
}

func rated(rank int) []domain.Show {
	return []domain.Show{{Title: "Dexter", Genres: []string{"drama"}, Rating: domain.IntPtr(rank)}}
}

func TestSave_StaleSnapshotDropped(t *testing.T) {
	local := localStore(t)
	remote := newFakeRemote()
	a := NewAdapter(local, remote, nil, nil)
	ctx := context.Background()

	require.NoError(t, a.Save(ctx, 2, rated(5), "tok"))
	require.NoError(t, a.Save(ctx, 1, rated(1), "tok"))

	assert.Equal(t, 1, remote.pushes)
	assert.Equal(t, rated(5), remote.backups["tok"])
	shows, err := local.LoadShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, rated(5), shows)
}

func TestSave_RetriedWriteDoesNotOverwriteNewer(t *testing.T) {
	var (
		mu           sync.Mutex
		puts         int
		backup       []domain.Show
		firstAttempt = make(chan struct{})
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shows, err := codec.DecodeBackup(r.Body)
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		mu.Lock()
		defer mu.Unlock()
		puts++
		if puts == 1 {
			close(firstAttempt)
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		backup = shows
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	local := localStore(t)
	a := NewAdapter(local, remote.NewClient(srv.URL, nil), nil, nil)
	ctx := context.Background()

	older := make(chan error, 1)
	go func() { older <- a.Save(ctx, 1, rated(1), "tok") }()
	<-firstAttempt

	newer := make(chan error, 1)
	go func() { newer <- a.Save(ctx, 2, rated(5), "tok") }()

	require.NoError(t, <-older)
	require.NoError(t, <-newer)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 3, puts)
	assert.Equal(t, rated(5), backup)
	shows, err := local.LoadShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, rated(5), shows)
}

func TestLoad_PrefersRemoteWithToken(t *testing.T) {
	local := localStore(t)
	remote := newFakeRemote()
	remoteShows := []domain.Show{{Title: "Lost", Genres: []string{}}}
	remote.backups["tok"] = remoteShows
	a := NewAdapter(local, remote, nil, nil)
	ctx := context.Background()
	require.NoError(t, local.SaveShows(ctx, dexter))

	shows, err := a.Load(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, remoteShows, shows)
}

func TestLoad_FallsBackToLocalWhenRemoteFails(t *testing.T) {
	local := localStore(t)
	remote := newFakeRemote()
	remote.fetchErr = domain.ErrAuthFailed
	a := NewAdapter(local, remote, nil, nil)
	ctx := context.Background()
	require.NoError(t, local.SaveShows(ctx, dexter))

	shows, err := a.Load(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, dexter, shows)
}

func TestLoad_RemoteOnlyFailure(t *testing.T) {
	remote := newFakeRemote()
	remote.fetchErr = domain.ErrServerOffline
	a := NewAdapter(nil, remote, nil, nil)

	_, err := a.Load(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
}

func TestLoad_NothingConfigured(t *testing.T) {
	a := NewAdapter(nil, nil, nil, nil)

	shows, err := a.Load(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, shows)
	assert.NoError(t, a.Save(context.Background(), 0, dexter, "tok"))
	assert.False(t, a.HasRemote())
}

func TestClearToken(t *testing.T) {
	assert.NoError(t, NewAdapter(nil, nil, nil, nil).ClearToken())

	tokens := &fakeTokens{err: errors.New("read-only config")}
	a := NewAdapter(nil, nil, tokens, nil)
	assert.EqualError(t, a.ClearToken(), "read-only config")
	assert.True(t, tokens.cleared)
}

func TestSaveToken(t *testing.T) {
	assert.NoError(t, NewAdapter(nil, nil, nil, nil).SaveToken("tok"))

	tokens := &fakeTokens{}
	a := NewAdapter(nil, nil, tokens, nil)
	require.NoError(t, a.SaveToken("tok"))
	assert.Equal(t, "tok", tokens.saved)
}
