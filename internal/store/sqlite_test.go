package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcdash/fbk/internal/models"
)

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleItems() []models.Feedback {
	return []models.Feedback{
		{
			ID:          "f1",
			Title:       "Enhanced Dashboard",
			Description: "better charts",
			Category:    models.CategoryFeature,
			Priority:    models.PriorityHigh,
			Status:      models.StatusNew,
			Votes:       3,
			Comments:    5,
			ImpactArea:  "reporting",
			SubmittedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:       "f2",
			Title:    "Export breaks",
			Category: models.CategoryBug,
			Priority: models.PriorityCritical,
			Status:   models.StatusInProgress,
			Votes:    9,
		},
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestSaveAndGetSnapshot(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	filters := models.Filters{Search: "export", SortBy: models.SortMostVoted}
	id, err := s.SaveSnapshot(ctx, sampleItems(), 42, filters)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snap, err := s.GetSnapshot(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, 42, snap.Total)
	assert.Equal(t, "export", snap.Filters.Search)
	assert.Equal(t, models.SortMostVoted, snap.Filters.SortBy)
	require.Len(t, snap.Items, 2)

	assert.Equal(t, "f1", snap.Items[0].ID)
	assert.Equal(t, models.CategoryFeature, snap.Items[0].Category)
	assert.Equal(t, 5, snap.Items[0].Comments)
	assert.Equal(t, "reporting", snap.Items[0].ImpactArea)
	assert.False(t, snap.Items[0].SubmittedAt.IsZero())

	// Zero submitted_at round-trips as zero.
	assert.True(t, snap.Items[1].SubmittedAt.IsZero())
}

func TestGetSnapshot_NotFound(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.GetSnapshot(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLatestSnapshot(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	_, err := s.SaveSnapshot(ctx, sampleItems()[:1], 1, models.Filters{})
	require.NoError(t, err)
	second, err := s.SaveSnapshot(ctx, sampleItems(), 2, models.Filters{})
	require.NoError(t, err)

	snap, err := s.LatestSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, snap.ID)
	assert.Len(t, snap.Items, 2)
}

func TestLatestSnapshot_Empty(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.LatestSnapshot(context.Background())
	require.Error(t, err)
}

func TestListSnapshots(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := s.SaveSnapshot(ctx, sampleItems(), 2, models.Filters{})
		require.NoError(t, err)
	}

	metas, err := s.ListSnapshots(ctx, 2)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	assert.Equal(t, 2, metas[0].ItemCount)
	assert.True(t, metas[0].TakenAt.After(metas[1].TakenAt) || metas[0].TakenAt.Equal(metas[1].TakenAt))
}

func TestPruneSnapshots(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.SaveSnapshot(ctx, sampleItems(), 2, models.Filters{})
		require.NoError(t, err)
	}

	removed, err := s.PruneSnapshots(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	metas, err := s.ListSnapshots(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, metas, 2)
}
