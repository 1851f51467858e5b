// Package format renders feedback timestamps for display.
package format

import (
	"fmt"
	"time"
)

// Date renders t as a short human-readable date. A zero time renders as "—".
func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}

// RelativeTime renders t relative to now ("2 hours ago"), falling back to
// the absolute date once it is more than 7 days in the past. Zero or future
// times degrade to Date rather than producing nonsense like "-3 minutes ago".
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	d := now.Sub(t)
	if d < 0 {
		return Date(t)
	}
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return plural(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return plural(int(d.Hours()/24), "day")
	default:
		return Date(t)
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
