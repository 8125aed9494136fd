package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/showlist/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func shows() []domain.Show {
	return []domain.Show{
		{Title: "Dexter", Genres: []string{"drama", "crime"}, Rating: domain.IntPtr(4)},
		{Title: "Lost", Genres: []string{}},
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "showlist.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.PutShows(LocalNamespace, shows()))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	got, ok, err := s.GetShows(LocalNamespace)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, shows(), got)

	ts, ok := s.UpdatedAt(LocalNamespace)
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestStore_MemoryOnly(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)

	_, ok, err := s.GetShows("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.PutShows("a", shows()))
	got, ok, err := s.GetShows("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, shows(), got)

	require.NoError(t, s.DeleteShows("a"))
	_, ok, _ = s.GetShows("a")
	assert.False(t, ok)
	assert.NoError(t, s.Close())
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "showlist.db"))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.PutShows(HashToken("alice"), shows()))

	_, ok, err := s.GetShows(HashToken("bob"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "showlist.db")
	s, err := Open(path)
	require.NoError(t, err)

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketShows).Put([]byte(LocalNamespace), []byte("{broken"))
	})
	require.NoError(t, err)

	_, ok, err := s.GetShows(LocalNamespace)
	assert.True(t, ok)
	assert.Error(t, err)

	_, err = s.Namespace(LocalNamespace).LoadShows(context.Background())
	assert.Error(t, err)
	require.NoError(t, s.Close())
}

func TestShowStore_LoadEmptyAndSave(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ns := s.Namespace(LocalNamespace)
	ctx := context.Background()

	got, err := ns.LoadShows(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	require.NoError(t, ns.SaveShows(ctx, shows()))
	got, err = ns.LoadShows(ctx)
	require.NoError(t, err)
	assert.Equal(t, shows(), got)
}

func TestShowStore_CancelledContext(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Namespace("x").SaveShows(ctx, shows()), context.Canceled)
	_, err = s.Namespace("x").LoadShows(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 24)
}
