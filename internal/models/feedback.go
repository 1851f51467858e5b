package models

import "time"

// Status represents the review state of a feedback item.
type Status string

const (
	StatusNew         Status = "new"
	StatusUnderReview Status = "under-review"
	StatusPlanned     Status = "planned"
	StatusInProgress  Status = "in-progress"
	StatusCompleted   Status = "completed"
	StatusRejected    Status = "rejected"
)

// Category represents the kind of feedback submitted.
type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryBug         Category = "bug"
	CategoryImprovement Category = "improvement"
	CategoryIntegration Category = "integration"
	CategoryPerformance Category = "performance"
)

// Priority represents the urgency assigned to a feedback item.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// VoteDirection is the direction of a vote on a feedback item.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusUnderReview, StatusPlanned, StatusInProgress, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryFeature, CategoryBug, CategoryImprovement, CategoryIntegration, CategoryPerformance:
		return true
	}
	return false
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Valid reports whether d is a known vote direction.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// Feedback represents a single user-submitted suggestion or report.
// IDs are assigned by the server and immutable. Votes and Comments are
// counters and never go negative.
type Feedback struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Category       Category  `json:"category"`
	Priority       Priority  `json:"priority"`
	Status         Status    `json:"status"`
	Votes          int       `json:"votes"`
	Comments       int       `json:"comments"`
	ImpactArea     string    `json:"impactArea,omitempty"`
	SubmittedAt    time.Time `json:"submittedDate"`
	OrganizationID string    `json:"organizationId,omitempty"`
	UserID         string    `json:"userId,omitempty"`
}

// Comment is a single comment on a feedback item.
type Comment struct {
	ID         string    `json:"id"`
	FeedbackID string    `json:"feedbackId"`
	UserID     string    `json:"userId,omitempty"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Attachment is an uploaded file associated with feedback.
type Attachment struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
