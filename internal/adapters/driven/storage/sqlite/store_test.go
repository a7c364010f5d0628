package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

// setupTestStore creates a history store in a temporary directory.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, DatabaseFile), store.Path())
	assert.FileExists(t, store.Path())
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nested := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(nested)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nested)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	var tables int
	require.NoError(t, store.db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='resolutions'",
	).Scan(&tables))
	assert.Equal(t, 1, tables)
}

func TestNewStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_SaveAndRecent(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	records := []domain.ResolutionRecord{
		{ID: "a", Query: "what is panadol", Candidate: "Panadol", BrandName: "Panadol",
			Confidence: 1, Source: "Tabular Database", Resolved: true, CreatedAt: base},
		{ID: "b", Query: "zzz", Candidate: "Zzz", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Query: "brufen", Candidate: "Brufen", BrandName: "Brufen",
			Confidence: 0.92, Source: "Tabular Database", Resolved: true, CreatedAt: base.Add(2 * time.Minute)},
	}
	for _, rec := range records {
		require.NoError(t, store.Save(ctx, rec))
	}

	recent, err := store.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)
	assert.False(t, recent[1].Resolved)

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)

	oldest := all[2]
	assert.Equal(t, records[0].Query, oldest.Query)
	assert.Equal(t, "Panadol", oldest.BrandName)
	assert.InDelta(t, 1.0, oldest.Confidence, 1e-9)
	assert.True(t, oldest.Resolved)
	assert.True(t, base.Equal(oldest.CreatedAt))
}

func TestStore_Save_ReplacesExistingID(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)
	now := time.Now()

	require.NoError(t, store.Save(ctx, domain.ResolutionRecord{ID: "x", Query: "one", CreatedAt: now}))
	require.NoError(t, store.Save(ctx, domain.ResolutionRecord{ID: "x", Query: "two", CreatedAt: now}))

	all, err := store.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "two", all[0].Query)
}

func TestStore_Save_RequiresID(t *testing.T) {
	store := setupTestStore(t)

	err := store.Save(context.Background(), domain.ResolutionRecord{Query: "q"})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_Recent_Empty(t *testing.T) {
	store := setupTestStore(t)

	recent, err := store.Recent(context.Background(), 5)

	require.NoError(t, err)
	assert.Empty(t, recent)
}
