// Package state holds the canonical in-memory feedback list behind a
// reducer-style store. All mutation flows through dispatch as typed actions;
// readers get copies. One implementation serves both app-wide and
// component-local use: scope is decided by whoever holds the *Store.
package state

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

// State is the aggregate store value: the current page of feedback, the
// unfiltered total, transient loading/error flags, and the active query.
type State struct {
	Items   []models.Feedback
	Total   int
	Loading bool
	Err     string
	Filters models.Filters
	Page    int
}

// Action is one input to the reducer.
type Action interface{ isAction() }

type setLoading struct{ loading bool }

type setError struct{ msg string }

type setList struct {
	items []models.Feedback
	total int
}

type addItem struct{ item models.Feedback }

type updateItem struct{ item models.Feedback }

type removeItem struct{ id string }

type setFilters struct{ patch models.FilterPatch }

type setPage struct{ page int }

type updateVotes struct {
	id    string
	votes int
}

func (setLoading) isAction()  {}
func (setError) isAction()    {}
func (setList) isAction()     {}
func (addItem) isAction()     {}
func (updateItem) isAction()  {}
func (removeItem) isAction()  {}
func (setFilters) isAction()  {}
func (setPage) isAction()     {}
func (updateVotes) isAction() {}

// reduce applies one action as a pure transition. The input state is never
// mutated; item slices are copied before any structural change. An
// unrecognized action returns the state unchanged.
func reduce(s State, a Action) State {
	switch a := a.(type) {
	case setLoading:
		s.Loading = a.loading
	case setError:
		s.Err = a.msg
	case setList:
		s.Items = a.items
		s.Total = a.total
	case addItem:
		items := make([]models.Feedback, 0, len(s.Items)+1)
		// Fresh submissions lead when the active sort is newest-first.
		if s.Filters.SortBy == models.SortNewest || s.Filters.SortBy == "" {
			items = append(items, a.item)
			items = append(items, s.Items...)
		} else {
			items = append(items, s.Items...)
			items = append(items, a.item)
		}
		s.Items = items
		s.Total++
	case updateItem:
		items := make([]models.Feedback, len(s.Items))
		copy(items, s.Items)
		for i := range items {
			if items[i].ID == a.item.ID {
				items[i] = a.item
				break
			}
		}
		s.Items = items
	case removeItem:
		items := make([]models.Feedback, 0, len(s.Items))
		removed := false
		for _, item := range s.Items {
			if !removed && item.ID == a.id {
				removed = true
				continue
			}
			items = append(items, item)
		}
		s.Items = items
		if removed && s.Total > 0 {
			s.Total--
		}
	case setFilters:
		s.Filters = s.Filters.Merge(a.patch)
		// Any filter change restarts pagination, even a no-op merge.
		s.Page = 1
	case setPage:
		s.Page = a.page
	case updateVotes:
		items := make([]models.Feedback, len(s.Items))
		copy(items, s.Items)
		for i := range items {
			if items[i].ID == a.id {
				if a.votes < 0 {
					items[i].Votes = 0
				} else {
					items[i].Votes = a.votes
				}
				break
			}
		}
		s.Items = items
	}
	return s
}

// Store is the single writer for a State value. Any number of goroutines may
// read snapshots or subscribe; all transitions are serialized through
// dispatch.
type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]func(State)
	nextSub   int

	api      *client.Client
	log      *slog.Logger
	pageSize int

	// fetchSeq tags in-flight list fetches so responses that arrive after a
	// newer fetch was started are dropped instead of clobbering its result.
	fetchSeq atomic.Uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for operation tracing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithPageSize sets the page size requested from the API.
func WithPageSize(n int) Option {
	return func(s *Store) { s.pageSize = n }
}

// New creates an empty Store backed by the given API client.
func New(api *client.Client, opts ...Option) *Store {
	s := &Store{
		state:     State{Page: 1},
		listeners: map[int]func(State){},
		api:       api,
		log:       slog.Default(),
		pageSize:  20,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state. The item slice is cloned so
// callers can never reach the store's backing array.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := s.state
	st.Items = make([]models.Feedback, len(s.state.Items))
	copy(st.Items, s.state.Items)
	return st
}

// Subscribe registers fn to be called with a state snapshot after every
// transition. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// dispatch applies an action and notifies subscribers. Listeners run outside
// the lock so they may call back into the store.
func (s *Store) dispatch(a Action) {
	s.mu.Lock()
	s.state = reduce(s.state, a)
	snap := s.snapshotLocked()
	fns := make([]func(State), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
