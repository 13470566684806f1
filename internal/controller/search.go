package controller

import (
	"context"
	"strings"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// Search updates the query facet and its filtered results. It runs on every
// query change. A blank query clears the results before returning, without
// calling the repository. Otherwise the catalog is searched; a failure
// yields an empty result rather than an error, and only the newest query's
// results are ever applied.
//
// Search does not touch ViewState.IsLoading or ViewState.Error.
func (c *Controller) Search(ctx context.Context, query string) {
	c.mu.Lock()
	c.searchSeq++
	seq := c.searchSeq
	c.search.Query = query
	c.state.Query = query

	if strings.TrimSpace(query) == "" {
		c.search.Results = []domain.Show{}
		c.publishSearchLocked()
		c.publishLocked()
		c.mu.Unlock()
		return
	}
	c.publishSearchLocked()
	c.publishLocked()
	c.mu.Unlock()

	shows, err := c.repo.SearchShows(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.searchSeq {
		c.logger.Debug("discarding stale search", "query", query)
		return
	}
	if err != nil {
		// TODO: decide whether failed searches should surface as an error
		// instead of reading as "no results".
		c.logger.Warn("search failed", "query", query, "error", err)
		shows = []domain.Show{}
	}
	if shows == nil {
		shows = []domain.Show{}
	}
	c.search.Results = shows
	c.publishSearchLocked()
}
