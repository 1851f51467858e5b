package models

import "time"

// Analytics summarizes feedback volume across categories and statuses.
type Analytics struct {
	Total      int              `json:"total"`
	ByCategory map[Category]int `json:"byCategory"`
	ByStatus   map[Status]int   `json:"byStatus"`
	ByPriority map[Priority]int `json:"byPriority"`
	TotalVotes int              `json:"totalVotes"`
}

// Engagement summarizes community participation around feedback.
type Engagement struct {
	ActiveUsers   int     `json:"activeUsers"`
	VotesCast     int     `json:"votesCast"`
	CommentsAdded int     `json:"commentsAdded"`
	AvgVotes      float64 `json:"avgVotes"`
}

// AIInsight is a server-generated observation about feedback trends.
type AIInsight struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Confidence  float64   `json:"confidence"`
	GeneratedAt time.Time `json:"generated_at"`
}

// RoadmapItem links planned feedback to a delivery quarter.
type RoadmapItem struct {
	FeedbackID string `json:"feedbackId"`
	Title      string `json:"title"`
	Quarter    string `json:"quarter"`
	Status     Status `json:"status"`
}

// CommunityStats describes the feedback community at large.
type CommunityStats struct {
	Contributors  int        `json:"contributors"`
	Organizations int        `json:"organizations"`
	TopVoted      []Feedback `json:"topVoted,omitempty"`
}
