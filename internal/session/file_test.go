package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"bookctl/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() models.Session {
	return models.Session{
		Token:  "T",
		UserID: 1,
		Email:  "a@b.com",
		Role:   models.RoleUser,
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)
	ctx := context.Background()

	t.Run("LoadBeforeSave", func(t *testing.T) {
		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, testSession()))

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, testSession(), got)
	})

	t.Run("SaveReplacesWholeSession", func(t *testing.T) {
		next := models.Session{Token: "T2", UserID: 2, Email: "c@d.com", Role: models.RoleAdmin}
		require.NoError(t, store.Save(ctx, next))

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, next, got)
	})

	t.Run("ClearIsIdempotent", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("TokenlessRecordIsAnonymous", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte(`{"user_id":9,"email":"x@y.z"}`), 0o600))

		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

// Readers racing a writer must observe a complete session, old or new.
func TestFileStoreConcurrentReaders(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()

	first := testSession()
	second := models.Session{Token: "T2", UserID: 2, Email: "c@d.com", Role: models.RoleAdmin}
	require.NoError(t, store.Save(ctx, first))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_ = store.Save(ctx, second)
			_ = store.Save(ctx, first)
		}
	}()

	for i := 0; i < 200; i++ {
		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		if !ok {
			continue
		}
		assert.Contains(t, []models.Session{first, second}, got)
	}
	wg.Wait()
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, testSession()))
	got, ok, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testSession(), got)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))
	_, ok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}
