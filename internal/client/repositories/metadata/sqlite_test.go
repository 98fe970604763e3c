package metadata

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k1", []byte("v1")))

	v, err := r.Get(ctx, "k1")
	require.NoError(t, err)
	require.Equal(t, []byte("v1"), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKey_AndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte("v")))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestClear_RemovesAllKeys(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte("1")))
	require.NoError(t, r.Set(ctx, "b", []byte("2")))
	require.NoError(t, r.Clear(ctx))

	for _, k := range []string{"a", "b"} {
		v, err := r.Get(ctx, k)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestOperations_DBErrorWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get metadata[k]")

	require.ErrorContains(t, r.Set(ctx, "k", []byte("v")), "failed to set metadata[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete metadata[k]")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear metadata")
}
