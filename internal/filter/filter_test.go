package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grcdash/fbk/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleItems() []models.Feedback {
	return []models.Feedback{
		{ID: "f1", Title: "Enhanced Dashboard", Description: "better charts", Category: models.CategoryFeature, Priority: models.PriorityHigh, Status: models.StatusNew, Votes: 3, Comments: 5, SubmittedAt: day("2024-01-01")},
		{ID: "f2", Title: "Export breaks on large registers", Description: "CSV export times out", Category: models.CategoryBug, Priority: models.PriorityCritical, Status: models.StatusInProgress, Votes: 9, Comments: 2, SubmittedAt: day("2024-03-01")},
		{ID: "f3", Title: "Okta integration", Description: "SSO for auditors", Category: models.CategoryIntegration, Priority: models.PriorityMedium, Status: models.StatusPlanned, Votes: 1, Comments: 7, SubmittedAt: day("2024-02-01")},
	}
}

func TestApply_NoFilters_ReturnsAll(t *testing.T) {
	items := sampleItems()
	got := Apply(items, models.Filters{})
	assert.Len(t, got, 3)
}

func TestApply_SearchCaseInsensitiveSubstring(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{Search: "dashboard"})
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
}

func TestApply_SearchMatchesDescription(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{Search: "SSO"})
	require.Len(t, got, 1)
	assert.Equal(t, "f3", got[0].ID)
}

func TestApply_CategoryAllIsIdentity(t *testing.T) {
	items := sampleItems()
	got := Apply(items, models.Filters{Category: models.FilterAll})
	assert.Len(t, got, len(items))
}

func TestApply_CategoryExactMatch(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{Category: models.CategoryBug})
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)
}

func TestApply_StatusAndPriority(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{Status: models.StatusPlanned, Priority: models.PriorityMedium})
	require.Len(t, got, 1)
	assert.Equal(t, "f3", got[0].ID)
}

func TestApply_DateRangeInclusive(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{From: day("2024-02-01"), To: day("2024-03-01")})
	assert.Len(t, got, 2)
}

func TestApply_ZeroDateNeverMatchesRange(t *testing.T) {
	items := []models.Feedback{{ID: "nodate", Title: "x"}}
	got := Apply(items, models.Filters{From: day("2020-01-01"), To: day("2030-01-01")})
	assert.Empty(t, got)
}

func TestApply_SortNewest(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{SortBy: models.SortNewest})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"f2", "f3", "f1"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestApply_SortOldest(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{SortBy: models.SortOldest})
	require.Len(t, got, 3)
	assert.Equal(t, "f1", got[0].ID)
}

func TestApply_SortMostVoted_NonIncreasing(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{SortBy: models.SortMostVoted})
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Votes, got[i].Votes)
	}
	assert.Equal(t, 9, got[0].Votes)
}

func TestApply_SortMostCommented(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{SortBy: models.SortMostCommented})
	require.Len(t, got, 3)
	assert.Equal(t, "f3", got[0].ID)
}

func TestApply_UnknownSortKeyKeepsOrder(t *testing.T) {
	got := Apply(sampleItems(), models.Filters{SortBy: "trending"})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"f1", "f2", "f3"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestApply_Idempotent(t *testing.T) {
	f := models.Filters{Search: "e", Category: models.FilterAll, SortBy: models.SortMostVoted}
	once := Apply(sampleItems(), f)
	twice := Apply(once, f)
	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	items := sampleItems()
	_ = Apply(items, models.Filters{SortBy: models.SortMostVoted, Search: "export"})
	assert.Equal(t, "f1", items[0].ID)
	assert.Equal(t, "f2", items[1].ID)
	assert.Equal(t, "f3", items[2].ID)
}
