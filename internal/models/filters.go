package models

import "time"

// SortKey selects the ordering applied when listing feedback.
type SortKey string

const (
	SortNewest        SortKey = "newest"
	SortOldest        SortKey = "oldest"
	SortMostVoted     SortKey = "most-voted"
	SortMostCommented SortKey = "most-commented"
)

// FilterAll is the sentinel meaning "do not filter this dimension".
const FilterAll = "all"

// Filters holds the ephemeral query state for listing feedback.
// A zero value matches everything.
type Filters struct {
	Search   string    `json:"search,omitempty"`
	Category Category  `json:"category,omitempty"`
	Status   Status    `json:"status,omitempty"`
	Priority Priority  `json:"priority,omitempty"`
	SortBy   SortKey   `json:"sortBy,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

// FilterPatch carries a partial filter update; nil fields are left unchanged.
type FilterPatch struct {
	Search   *string
	Category *Category
	Status   *Status
	Priority *Priority
	SortBy   *SortKey
	From     *time.Time
	To       *time.Time
}

// Merge returns a copy of f with the non-nil fields of p applied.
func (f Filters) Merge(p FilterPatch) Filters {
	if p.Search != nil {
		f.Search = *p.Search
	}
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.SortBy != nil {
		f.SortBy = *p.SortBy
	}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	return f
}
