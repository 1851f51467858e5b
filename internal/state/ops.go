package state

import (
	"context"

	"github.com/grcdash/fbk/internal/client"
	"github.com/grcdash/fbk/internal/models"
)

// Fetch loads the current page from the API using the active filters.
// On failure the previous items stay visible; only Err is set. A response
// that arrives after a newer Fetch has started is dropped entirely.
func (s *Store) Fetch(ctx context.Context) error {
	seq := s.fetchSeq.Add(1)

	s.mu.Lock()
	filters := s.state.Filters
	page := s.state.Page
	s.mu.Unlock()

	s.dispatch(setLoading{true})

	res, err := s.api.List(ctx, filters, page, s.pageSize)

	if seq != s.fetchSeq.Load() {
		// A newer fetch owns the loading flag and the result slot.
		s.log.Debug("dropping stale fetch response", "seq", seq)
		return nil
	}

	if err != nil {
		s.log.Warn("fetch feedback failed", "error", err)
		s.dispatch(setError{err.Error()})
		s.dispatch(setLoading{false})
		return err
	}

	s.dispatch(setList{items: res.Items, total: res.Total})
	s.dispatch(setError{""})
	s.dispatch(setLoading{false})
	return nil
}

// SetFilters merges a partial filter update, resets to page 1, and refetches.
func (s *Store) SetFilters(ctx context.Context, patch models.FilterPatch) error {
	s.dispatch(setFilters{patch})
	return s.Fetch(ctx)
}

// SetPage moves to the given page and refetches.
func (s *Store) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	s.dispatch(setPage{page})
	return s.Fetch(ctx)
}

// Submit creates new feedback through the facade and reconciles the created
// record into the list without a refetch.
func (s *Store) Submit(ctx context.Context, req client.CreateRequest) (*models.Feedback, error) {
	s.dispatch(setLoading{true})
	defer s.dispatch(setLoading{false})

	fb, err := s.api.Create(ctx, req)
	if err != nil {
		s.dispatch(setError{err.Error()})
		return nil, err
	}

	s.dispatch(addItem{*fb})
	s.dispatch(setError{""})
	return fb, nil
}

// Update applies a partial update and replaces the item in place.
func (s *Store) Update(ctx context.Context, id string, req client.UpdateRequest) (*models.Feedback, error) {
	s.dispatch(setLoading{true})
	defer s.dispatch(setLoading{false})

	fb, err := s.api.Update(ctx, id, req)
	if err != nil {
		s.dispatch(setError{err.Error()})
		return nil, err
	}

	s.dispatch(updateItem{*fb})
	s.dispatch(setError{""})
	return fb, nil
}

// Delete removes the item remotely and then locally. Deleting an id that is
// not in the current page still succeeds remotely; the local removal is a
// no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.dispatch(setLoading{true})
	defer s.dispatch(setLoading{false})

	if err := s.api.Delete(ctx, id); err != nil {
		s.dispatch(setError{err.Error()})
		return err
	}

	s.dispatch(removeItem{id})
	s.dispatch(setError{""})
	return nil
}

// Vote applies an optimistic local increment/decrement, then reconciles with
// the server's authoritative count (last write wins). On failure the
// optimistic change is rolled back.
func (s *Store) Vote(ctx context.Context, id string, dir models.VoteDirection) (int, error) {
	s.dispatch(setLoading{true})
	defer s.dispatch(setLoading{false})

	s.mu.Lock()
	prev, known := 0, false
	for _, item := range s.state.Items {
		if item.ID == id {
			prev, known = item.Votes, true
			break
		}
	}
	s.mu.Unlock()

	if known {
		delta := 1
		if dir == models.VoteDown {
			delta = -1
		}
		s.dispatch(updateVotes{id: id, votes: prev + delta})
	}

	votes, err := s.api.Vote(ctx, id, dir)
	if err != nil {
		if known {
			s.dispatch(updateVotes{id: id, votes: prev})
		}
		s.dispatch(setError{err.Error()})
		return 0, err
	}

	s.dispatch(updateVotes{id: id, votes: votes})
	s.dispatch(setError{""})
	return votes, nil
}
