package database

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"botswatter/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every store implementation.
func backends(t *testing.T) map[string]PolicyStore {
	t.Helper()

	sqlite, err := NewSQLiteStore(filepath.Join(t.TempDir(), "policy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	mr := miniredis.RunT(t)
	rds := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "test")
	t.Cleanup(func() { rds.Close() })

	return map[string]PolicyStore{
		"memory": NewMemoryStore(),
		"sqlite": sqlite,
		"redis":  rds,
	}
}

func TestPolicyStore_AddRemoveRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetKeywords(ctx, "g1", []string{"raid", "spam link"}))
			before, err := store.GetKeywords(ctx, "g1")
			require.NoError(t, err)

			stored, err := store.AddKeyword(ctx, "g1", "BadWord")
			require.NoError(t, err)
			assert.Equal(t, "badword", stored)

			kw, err := store.GetKeywords(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, []string{"raid", "spam link", "badword"}, kw)

			n, err := store.RemoveKeyword(ctx, "g1", "badword")
			require.NoError(t, err)
			assert.Equal(t, 1, n)

			after, err := store.GetKeywords(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestPolicyStore_RemoveDropsAllDuplicates(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, p := range []string{"raid", "spam", "RAID"} {
				_, err := store.AddKeyword(ctx, "g1", p)
				require.NoError(t, err)
			}

			n, err := store.RemoveKeyword(ctx, "g1", "Raid")
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			kw, err := store.GetKeywords(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, []string{"spam"}, kw)

			n, err = store.RemoveKeyword(ctx, "g1", "missing")
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestPolicyStore_RejectsEmptyPhrase(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.AddKeyword(ctx, "g1", "   ")
			assert.ErrorIs(t, err, ErrEmptyPhrase)
			_, err = store.RemoveKeyword(ctx, "g1", "")
			assert.ErrorIs(t, err, ErrEmptyPhrase)
		})
	}
}

func TestPolicyStore_ToggleChannel(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			on, err := store.ToggleChannel(ctx, "g1", "42")
			require.NoError(t, err)
			assert.True(t, on)

			policy, err := store.Policy(ctx, "g1")
			require.NoError(t, err)
			assert.True(t, policy.IsMonitored("42"))
			assert.False(t, policy.IsMonitored("7"))

			on, err = store.ToggleChannel(ctx, "g1", "42")
			require.NoError(t, err)
			assert.False(t, on)

			channels, err := store.GetMonitoredChannels(ctx, "g1")
			require.NoError(t, err)
			assert.Empty(t, channels)
		})
	}
}

func TestPolicyStore_SetAndSnapshot(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.SetKeywords(ctx, "g1", []string{"Raid", "spam link"}))
			require.NoError(t, store.SetMonitoredChannels(ctx, "g1", map[string]struct{}{"42": {}, "43": {}}))
			require.NoError(t, store.SetKeywords(ctx, "g2", []string{"other"}))

			policy, err := store.Policy(ctx, "g1")
			require.NoError(t, err)
			assert.Equal(t, "g1", policy.GuildID)
			assert.Equal(t, []string{"raid", "spam link"}, policy.Keywords)
			assert.Equal(t, map[string]struct{}{"42": {}, "43": {}}, policy.MonitoredChannels)

			empty, err := store.Policy(ctx, "unknown")
			require.NoError(t, err)
			assert.Empty(t, empty.Keywords)
			assert.Empty(t, empty.MonitoredChannels)
		})
	}
}

func TestPolicyStore_ConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			var wg sync.WaitGroup
			for i := 0; i < 25; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					_, err := store.AddKeyword(ctx, "g1", fmt.Sprintf("phrase-%d", i))
					assert.NoError(t, err)
				}(i)
			}
			wg.Wait()

			kw, err := store.GetKeywords(ctx, "g1")
			require.NoError(t, err)
			assert.Len(t, kw, 25)
		})
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "policy.db")

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	_, err = store.AddKeyword(ctx, "g1", "raid")
	require.NoError(t, err)
	_, err = store.ToggleChannel(ctx, "g1", "42")
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	policy, err := reopened.Policy(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, []string{"raid"}, policy.Keywords)
	assert.True(t, policy.IsMonitored("42"))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, models.PolicyConfig{Backend: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = Open(ctx, models.PolicyConfig{SQLitePath: filepath.Join(t.TempDir(), "p.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	store.Close()

	mr := miniredis.RunT(t)
	store, err = Open(ctx, models.PolicyConfig{Backend: "redis", Redis: models.RedisConfig{Address: mr.Addr()}})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	store.Close()

	_, err = Open(ctx, models.PolicyConfig{Backend: "etcd"})
	assert.Error(t, err)
}
