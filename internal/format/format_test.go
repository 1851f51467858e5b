package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	ts := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mar 15, 2024", Date(ts))
}

func TestDate_Zero(t *testing.T) {
	assert.Equal(t, "—", Date(time.Time{}))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"one minute", now.Add(-90 * time.Second), "1 minute ago"},
		{"minutes", now.Add(-45 * time.Minute), "45 minutes ago"},
		{"hours", now.Add(-2 * time.Hour), "2 hours ago"},
		{"days", now.Add(-3 * 24 * time.Hour), "3 days ago"},
		{"beyond a week falls back to date", now.Add(-10 * 24 * time.Hour), "Mar 5, 2024"},
		{"future falls back to date", now.Add(time.Hour), "Mar 15, 2024"},
		{"zero", time.Time{}, "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}
