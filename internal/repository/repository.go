package repository

import (
	"context"
	"log/slog"
	"strings"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// Ensure Repository implements domain.ShowRepository at compile time.
var _ domain.ShowRepository = (*Repository)(nil)

// Repository hides the catalog client and the favorites store behind one
// facade. It owns the store for its lifetime and does no caching or merging.
type Repository struct {
	client domain.CatalogClient
	store  domain.FavoritesStore
	logger *slog.Logger
}

// New creates a new repository.
func New(client domain.CatalogClient, store domain.FavoritesStore, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{client: client, store: store, logger: logger}
}

// Close releases the favorites store.
func (r *Repository) Close() error {
	return r.store.Close()
}

// ListShows returns the first page of the catalog.
func (r *Repository) ListShows(ctx context.Context) ([]domain.Show, error) {
	shows, err := r.client.ListShows(ctx)
	if err != nil {
		r.logger.Error("failed to list shows", "error", err)
		return nil, err
	}
	r.logger.Debug("listed shows", "count", len(shows))
	return shows, nil
}

// ListShowsPage returns one page of the catalog, 0 being the first.
func (r *Repository) ListShowsPage(ctx context.Context, page int) ([]domain.Show, error) {
	shows, err := r.client.ListShowsPage(ctx, page)
	if err != nil {
		r.logger.Error("failed to list shows page", "error", err, "page", page)
		return nil, err
	}
	r.logger.Debug("listed shows page", "count", len(shows), "page", page)
	return shows, nil
}

// GetShow fetches a show's full detail, cast included.
func (r *Repository) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	show, err := r.client.GetShow(ctx, id)
	if err != nil {
		r.logger.Error("failed to get show", "error", err, "id", id)
		return nil, err
	}
	return show, nil
}

// SearchShows queries the catalog and flattens each scored envelope into
// its plain show, keeping the catalog's order.
func (r *Repository) SearchShows(ctx context.Context, query string) ([]domain.Show, error) {
	results, err := r.client.SearchShows(ctx, strings.TrimSpace(query))
	if err != nil {
		r.logger.Error("failed to search shows", "error", err, "query", query)
		return nil, err
	}

	shows := make([]domain.Show, len(results))
	for i, res := range results {
		shows[i] = res.Show
	}
	r.logger.Debug("searched shows", "query", query, "count", len(shows))
	return shows, nil
}

// --- Favorites ---

// AddFavorite stores fav, replacing any favorite with the same id.
func (r *Repository) AddFavorite(ctx context.Context, fav domain.FavoriteShow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Put(fav); err != nil {
		r.logger.Error("failed to add favorite", "error", err, "id", fav.ID)
		return err
	}
	r.logger.Info("added favorite", "id", fav.ID)
	return nil
}

// RemoveFavorite deletes fav. Removing an absent favorite is not an error.
func (r *Repository) RemoveFavorite(ctx context.Context, fav domain.FavoriteShow) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Delete(fav); err != nil {
		r.logger.Error("failed to remove favorite", "error", err, "id", fav.ID)
		return err
	}
	r.logger.Info("removed favorite", "id", fav.ID)
	return nil
}

// ListFavorites returns every stored favorite ordered by id.
func (r *Repository) ListFavorites(ctx context.Context) ([]domain.FavoriteShow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	favs, err := r.store.All()
	if err != nil {
		r.logger.Error("failed to list favorites", "error", err)
		return nil, err
	}
	return favs, nil
}

// IsFavorite reports whether a favorite with id is stored.
func (r *Repository) IsFavorite(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok, err := r.store.Get(id)
	if err != nil {
		r.logger.Error("failed to check favorite", "error", err, "id", id)
		return false, err
	}
	return ok, nil
}
