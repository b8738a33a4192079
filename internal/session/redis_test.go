package session

import (
	"context"
	"testing"

	"bookctl/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	store := NewRedisStore(client)
	ctx := context.Background()

	t.Run("LoadBeforeSave", func(t *testing.T) {
		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("SaveAndLoad", func(t *testing.T) {
		session := models.Session{Token: "T", UserID: 1, Email: "a@b.com", Role: models.RoleUser}
		require.NoError(t, store.Save(ctx, session))

		got, ok, err := store.Load(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, session, got)
	})

	t.Run("NoTTLOnSession", func(t *testing.T) {
		assert.Zero(t, s.TTL(sessionKey))
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		require.NoError(t, store.Clear(ctx))

		_, ok, err := store.Load(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("NilClient", func(t *testing.T) {
		nilStore := NewRedisStore(nil)
		assert.Error(t, nilStore.Save(ctx, models.Session{Token: "T"}))
		_, _, err := nilStore.Load(ctx)
		assert.Error(t, err)
		assert.Error(t, nilStore.Clear(ctx))
	})
}

func TestPing(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	assert.NoError(t, Ping(context.Background(), client))

	s.Close()
	assert.Error(t, Ping(context.Background(), client))
}
