package domain

import "context"

// CatalogClient is the read-only remote show directory
type CatalogClient interface {
	// ListShows returns the first catalog page
	ListShows(ctx context.Context) ([]Show, error)

	// ListShowsPage returns catalog page n (0-based)
	ListShowsPage(ctx context.Context, page int) ([]Show, error)

	// GetShow returns one show with its embedded cast
	GetShow(ctx context.Context, id int) (*Show, error)

	// SearchShows returns the scored envelopes for a name query
	SearchShows(ctx context.Context, query string) ([]SearchResult, error)
}

// FavoritesStore is the single-table keyed store of favorites.
// Implementations must be safe for concurrent use.
type FavoritesStore interface {
	// Put upserts by id; an existing row is replaced
	Put(fav FavoriteShow) error

	// Delete removes the row for fav.ID; absent rows are not an error
	Delete(fav FavoriteShow) error

	// Get returns the row for id, or false when absent
	Get(id int) (FavoriteShow, bool, error)

	// All returns a point-in-time snapshot of every row
	All() ([]FavoriteShow, error)

	Close() error
}

// ShowRepository is the facade the controller drives. It performs no caching
// or merging; each call is independent of every other in-flight call.
type ShowRepository interface {
	ListShows(ctx context.Context) ([]Show, error)
	ListShowsPage(ctx context.Context, page int) ([]Show, error)
	GetShow(ctx context.Context, id int) (*Show, error)
	SearchShows(ctx context.Context, query string) ([]Show, error)

	AddFavorite(ctx context.Context, fav FavoriteShow) error
	RemoveFavorite(ctx context.Context, fav FavoriteShow) error
	ListFavorites(ctx context.Context) ([]FavoriteShow, error)
	IsFavorite(ctx context.Context, id int) (bool, error)
}
