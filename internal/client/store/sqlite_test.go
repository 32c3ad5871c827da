package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := InitDatabase(context.Background(), "file:storetest?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Clear(context.Background())
		_ = repo.Close()
	})
	return repo
}

func TestSQLiteRepository_GetMissingKey(t *testing.T) {
	repo := setupRepo(t)

	v, err := repo.Get(context.Background(), "access_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_SetGetDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "access_token", []byte("tok1")))

	v, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok1"), v)

	// upsert overwrites
	require.NoError(t, repo.Set(ctx, "access_token", []byte("tok2")))
	v, err = repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Equal(t, []byte("tok2"), v)

	require.NoError(t, repo.Delete(ctx, "access_token"))
	v, err = repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_ReplaceAll_SwapsContents(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "stale", []byte("old")))

	entries := map[string][]byte{
		"access_token":     []byte("a"),
		"refresh_token":    []byte("r"),
		"user_data":        []byte(`{"id":"u1"}`),
		"token_expires_at": []byte("2026-01-02T15:04:05Z"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, entries))

	stale, err := repo.Get(ctx, "stale")
	require.NoError(t, err)
	require.Nil(t, stale, "rows not in the replacement set must be gone")

	for key, want := range entries {
		got, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestSQLiteRepository_ReplaceAll_EmptyClears(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "access_token", []byte("a")))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	v, err := repo.Get(ctx, "access_token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSQLiteRepository_Clear(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", []byte("1")))
	require.NoError(t, repo.Set(ctx, "b", []byte("2")))
	require.NoError(t, repo.Clear(ctx))

	for _, key := range []string{"a", "b"} {
		v, err := repo.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}
