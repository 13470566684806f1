package controller

import (
	"context"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// AddFavorite stores show as a favorite.
func (c *Controller) AddFavorite(ctx context.Context, show domain.Show) {
	c.AddFavoriteShow(ctx, domain.NewFavoriteShow(show))
}

// RemoveFavorite deletes show's favorite.
func (c *Controller) RemoveFavorite(ctx context.Context, show domain.Show) {
	c.DeleteFavoriteShow(ctx, domain.NewFavoriteShow(show))
}

// AddFavoriteShow upserts fav, then reloads Favorites from the store.
func (c *Controller) AddFavoriteShow(ctx context.Context, fav domain.FavoriteShow) {
	settle := c.begin("add favorite")
	defer settle()

	if err := c.repo.AddFavorite(ctx, fav); err != nil {
		c.fail("add favorite", err)
		return
	}
	c.reloadFavorites(ctx, "add favorite")
}

// DeleteFavoriteShow deletes fav, then reloads Favorites from the store.
func (c *Controller) DeleteFavoriteShow(ctx context.Context, fav domain.FavoriteShow) {
	settle := c.begin("delete favorite")
	defer settle()

	if err := c.repo.RemoveFavorite(ctx, fav); err != nil {
		c.fail("delete favorite", err)
		return
	}
	c.reloadFavorites(ctx, "delete favorite")
}

// LoadFavorites replaces Favorites with the store's current contents.
func (c *Controller) LoadFavorites(ctx context.Context) {
	settle := c.begin("load favorites")
	defer settle()

	c.reloadFavorites(ctx, "load favorites")
}

// IsFavorite reports whether id is stored as a favorite. It leaves the view
// state alone; a store failure is logged and reads as false.
func (c *Controller) IsFavorite(ctx context.Context, id int) bool {
	ok, err := c.repo.IsFavorite(ctx, id)
	if err != nil {
		c.logger.Warn("favorite status failed", "id", id, "error", err)
		return false
	}
	return ok
}

// ToggleFavorite flips show's favorite status based on the store and returns
// the status afterwards as read back from the store.
func (c *Controller) ToggleFavorite(ctx context.Context, show domain.Show) bool {
	if c.IsFavorite(ctx, show.ID) {
		c.RemoveFavorite(ctx, show)
	} else {
		c.AddFavorite(ctx, show)
	}
	return c.IsFavorite(ctx, show.ID)
}

// reloadFavorites replaces Favorites with a fresh store read unless a read
// that started later has already been applied.
func (c *Controller) reloadFavorites(ctx context.Context, op string) {
	c.mu.Lock()
	c.favSeq++
	seq := c.favSeq
	c.mu.Unlock()

	favs, err := c.repo.ListFavorites(ctx)
	if err != nil {
		c.fail(op, err)
		return
	}
	if favs == nil {
		favs = []domain.FavoriteShow{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq < c.favApplied {
		c.logger.Debug("discarding stale favorites", "op", op, "seq", seq)
		return
	}
	c.favApplied = seq
	c.state.Favorites = favs
	c.publishLocked()
}
