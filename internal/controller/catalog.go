package controller

import (
	"context"
	"strings"

	"github.com/tvshelf/tvshelf/internal/domain"
	"golang.org/x/sync/errgroup"
)

// LoadCatalog replaces the show list with the catalog's first page. On
// failure the previous list is kept and only the error is set.
func (c *Controller) LoadCatalog(ctx context.Context) {
	settle := c.begin("load catalog")
	defer settle()

	shows, err := c.repo.ListShows(ctx)
	if err != nil {
		c.fail("load catalog", err)
		return
	}
	c.update(func(s *domain.ViewState) {
		s.Shows = shows
	})
}

// LoadCatalogPage is LoadCatalog for an explicit catalog page.
func (c *Controller) LoadCatalogPage(ctx context.Context, page int) {
	settle := c.begin("load catalog page")
	defer settle()

	shows, err := c.repo.ListShowsPage(ctx, page)
	if err != nil {
		c.fail("load catalog page", err)
		return
	}
	c.update(func(s *domain.ViewState) {
		s.Shows = shows
	})
}

// SearchCatalog replaces the main show list with the matches for name.
// Unlike Search it is tracked: failures surface in ViewState.Error.
// A blank name reloads the unfiltered catalog.
func (c *Controller) SearchCatalog(ctx context.Context, name string) {
	if strings.TrimSpace(name) == "" {
		c.LoadCatalog(ctx)
		return
	}

	settle := c.begin("search catalog")
	defer settle()

	shows, err := c.repo.SearchShows(ctx, name)
	if err != nil {
		c.fail("search catalog", err)
		return
	}
	c.update(func(s *domain.ViewState) {
		s.Shows = shows
	})
}

// LoadDetail fetches show id into SelectedShow. The show list is never
// touched. When a newer LoadDetail for a different id has started by the
// time this one resolves, its result (or failure) is discarded.
func (c *Controller) LoadDetail(ctx context.Context, id int) {
	c.mu.Lock()
	c.detailSeq++
	seq := c.detailSeq
	c.detailID = id
	c.mu.Unlock()

	settle := c.begin("load detail")
	defer settle()

	show, err := c.repo.GetShow(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.detailSeq && c.detailID != id {
		c.logger.Debug("discarding stale detail", "id", id, "latest", c.detailID)
		return
	}
	if err != nil {
		msg := domain.UserMessage(err)
		c.logger.Warn("operation failed", "op", "load detail", "id", id, "error", err)
		c.state.Error = &msg
	} else {
		c.state.SelectedShow = show
	}
	c.publishLocked()
}

// Refresh reloads the catalog and the favorites concurrently and returns
// once both have settled.
func (c *Controller) Refresh(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		c.LoadCatalog(ctx)
		return nil
	})
	g.Go(func() error {
		c.LoadFavorites(ctx)
		return nil
	})
	_ = g.Wait()
}
