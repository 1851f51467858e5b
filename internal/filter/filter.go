// Package filter implements the in-memory filter/sort engine for feedback
// lists. All functions are pure: they never mutate their input and perform
// no I/O.
package filter

import (
	"sort"
	"strings"

	"github.com/grcdash/fbk/internal/models"
)

// Apply returns the items matching f, ordered by f.SortBy.
// The input slice is never modified; the result is always a fresh slice.
func Apply(items []models.Feedback, f models.Filters) []models.Feedback {
	out := make([]models.Feedback, 0, len(items))
	for _, item := range items {
		if Matches(item, f) {
			out = append(out, item)
		}
	}
	Sort(out, f.SortBy)
	return out
}

// Matches reports whether a single item passes every active dimension of f.
func Matches(item models.Feedback, f models.Filters) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		title := strings.ToLower(item.Title)
		desc := strings.ToLower(item.Description)
		if !strings.Contains(title, q) && !strings.Contains(desc, q) {
			return false
		}
	}
	if active(string(f.Category)) && item.Category != f.Category {
		return false
	}
	if active(string(f.Status)) && item.Status != f.Status {
		return false
	}
	if active(string(f.Priority)) && item.Priority != f.Priority {
		return false
	}
	if !f.From.IsZero() || !f.To.IsZero() {
		// Items without a usable date never match a date range.
		if item.SubmittedAt.IsZero() {
			return false
		}
		if !f.From.IsZero() && item.SubmittedAt.Before(f.From) {
			return false
		}
		if !f.To.IsZero() && item.SubmittedAt.After(f.To) {
			return false
		}
	}
	return true
}

// Sort orders items in place by key. The sort is stable; an unrecognized
// key leaves the order unchanged.
func Sort(items []models.Feedback, key models.SortKey) {
	switch key {
	case models.SortNewest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SubmittedAt.After(items[j].SubmittedAt)
		})
	case models.SortOldest:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SubmittedAt.Before(items[j].SubmittedAt)
		})
	case models.SortMostVoted:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Votes > items[j].Votes
		})
	case models.SortMostCommented:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Comments > items[j].Comments
		})
	}
}

// active reports whether a selector value filters its dimension.
// Empty and the "all" sentinel both mean "no filter".
func active(v string) bool {
	return v != "" && v != models.FilterAll
}
