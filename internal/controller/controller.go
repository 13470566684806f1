// Package controller reconciles the remote catalog, show detail lookups and
// local favorite toggles into one published view state.
//
// Every operation is a blocking call that takes a context; presentation runs
// each call on its own goroutine and observes results through Subscribe and
// SubscribeSearch. Failures never escape an operation: tracked operations
// record them in ViewState.Error and search failures yield empty results.
package controller

import (
	"log/slog"
	"sync"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// Controller owns the ViewState and the search facets.
type Controller struct {
	repo   domain.ShowRepository
	logger *slog.Logger

	mu       sync.Mutex
	state    domain.ViewState
	search   domain.SearchState
	inflight int // Tracked operations between start and settlement

	// Last-request-wins bookkeeping per operation family
	detailSeq uint64
	detailID  int
	searchSeq uint64

	// Favorites snapshots are numbered when their store read starts; a
	// snapshot older than the last one applied is dropped.
	favSeq     uint64
	favApplied uint64

	nextSubID  int
	subs       map[int]chan domain.ViewState
	searchSubs map[int]chan domain.SearchState
}

// New creates a controller driving repo.
func New(repo domain.ShowRepository, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		repo:       repo,
		logger:     logger,
		search:     domain.SearchState{Results: []domain.Show{}},
		subs:       make(map[int]chan domain.ViewState),
		searchSubs: make(map[int]chan domain.SearchState),
	}
}

// State returns a copy of the current view state.
func (c *Controller) State() domain.ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SearchState returns a copy of the current query and filtered results.
func (c *Controller) SearchState() domain.SearchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search.Clone()
}

// Subscribe returns a channel carrying every published view state, primed
// with the current one. A slow reader only ever sees the latest value.
// The returned func unsubscribes and closes the channel.
func (c *Controller) Subscribe() (<-chan domain.ViewState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan domain.ViewState, 1)
	ch <- c.state.Clone()
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
	}
}

// SubscribeSearch is Subscribe for the search facets.
func (c *Controller) SubscribeSearch() (<-chan domain.SearchState, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSubID
	c.nextSubID++
	ch := make(chan domain.SearchState, 1)
	ch <- c.search.Clone()
	c.searchSubs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if sub, ok := c.searchSubs[id]; ok {
			delete(c.searchSubs, id)
			close(sub)
		}
	}
}

// begin starts a tracked operation: the error is cleared and the loading
// flag raised. The returned func settles the operation and must be deferred
// so it runs on failure and panic as well as on success.
func (c *Controller) begin(op string) (settle func()) {
	c.mu.Lock()
	c.inflight++
	c.state.Error = nil
	c.state.IsLoading = true
	c.publishLocked()
	c.mu.Unlock()

	c.logger.Debug("operation started", "op", op)

	return func() {
		c.mu.Lock()
		c.inflight--
		c.state.IsLoading = c.inflight > 0
		c.publishLocked()
		c.mu.Unlock()

		c.logger.Debug("operation settled", "op", op)
	}
}

// update applies fn to the view state and publishes the result.
func (c *Controller) update(fn func(s *domain.ViewState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.publishLocked()
}

// fail records err as the operation's user-visible message.
func (c *Controller) fail(op string, err error) {
	msg := domain.UserMessage(err)
	c.logger.Warn("operation failed", "op", op, "error", err)
	c.update(func(s *domain.ViewState) {
		s.Error = &msg
	})
}

func (c *Controller) publishLocked() {
	for _, ch := range c.subs {
		offer(ch, c.state.Clone())
	}
}

func (c *Controller) publishSearchLocked() {
	for _, ch := range c.searchSubs {
		offer(ch, c.search.Clone())
	}
}

// offer replaces whatever is buffered in ch with v. Callers hold c.mu, so
// they are the only sender and the send after the drain cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- v:
	default:
	}
}
