// Package engage computes engagement scores for feedback items from their
// votes, comment activity, and recency.
package engage

import (
	"time"

	"github.com/grcdash/fbk/internal/models"
)

// Score represents the computed engagement of a feedback item.
type Score struct {
	Total    int
	Votes    int // 0-40
	Comments int // 0-30
	Recency  int // 0-30
}

// Scorer computes engagement scores for feedback items.
type Scorer struct{}

// NewScorer returns a new engagement Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score computes an engagement score (0-100) for one feedback item.
func (s *Scorer) Score(item models.Feedback, now time.Time) *Score {
	sc := &Score{}

	// Votes (40 pts) - saturates at 20 votes
	sc.Votes = scoreCount(item.Votes, 20, 40)

	// Comments (30 pts) - saturates at 10 comments
	sc.Comments = scoreCount(item.Comments, 10, 30)

	// Recency (30 pts) - newer submissions score higher
	sc.Recency = scoreRecency(item.SubmittedAt, now, 30)

	sc.Total = sc.Votes + sc.Comments + sc.Recency
	return sc
}

// scoreCount maps a counter onto points, saturating at ceiling.
func scoreCount(n, ceiling, maxPoints int) int {
	if n <= 0 {
		return 0
	}
	if n >= ceiling {
		return maxPoints
	}
	return n * maxPoints / ceiling
}

// scoreRecency converts time since submission to points.
func scoreRecency(t, now time.Time, maxPoints int) int {
	if t.IsZero() {
		return 0
	}
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 1:
		return maxPoints
	case days <= 7:
		return int(float64(maxPoints) * 0.8)
	case days <= 30:
		return int(float64(maxPoints) * 0.5)
	case days <= 90:
		return int(float64(maxPoints) * 0.25)
	default:
		return int(float64(maxPoints) * 0.1)
	}
}
