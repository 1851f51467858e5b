package store

import (
	"context"
	"time"

	"github.com/grcdash/fbk/internal/models"
)

// Snapshot is one cached page of feedback as fetched from the API, together
// with the filters that produced it.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	Total   int
	Filters models.Filters
	Items   []models.Feedback
}

// SnapshotMeta describes a cached snapshot without its items.
type SnapshotMeta struct {
	ID        string
	TakenAt   time.Time
	Total     int
	ItemCount int
}

// Store defines the local feedback cache used for offline listing.
type Store interface {
	SaveSnapshot(ctx context.Context, items []models.Feedback, total int, filters models.Filters) (string, error)
	LatestSnapshot(ctx context.Context) (*Snapshot, error)
	GetSnapshot(ctx context.Context, id string) (*Snapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]SnapshotMeta, error)
	PruneSnapshots(ctx context.Context, keep int) (int64, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
