package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvshelf/tvshelf/internal/domain"
)

type listingRepo struct {
	shows    []domain.Show
	results  []domain.Show
	favs     []domain.FavoriteShow
	err      error
	gotPage  int
	gotQuery string
}

func (r *listingRepo) ListShows(ctx context.Context) ([]domain.Show, error) {
	return r.shows, r.err
}

func (r *listingRepo) ListShowsPage(ctx context.Context, page int) ([]domain.Show, error) {
	r.gotPage = page
	return r.shows, r.err
}

func (r *listingRepo) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	return nil, errors.New("not used")
}

func (r *listingRepo) SearchShows(ctx context.Context, query string) ([]domain.Show, error) {
	r.gotQuery = query
	return r.results, r.err
}

func (r *listingRepo) AddFavorite(ctx context.Context, fav domain.FavoriteShow) error { return nil }

func (r *listingRepo) RemoveFavorite(ctx context.Context, fav domain.FavoriteShow) error {
	return nil
}

func (r *listingRepo) ListFavorites(ctx context.Context) ([]domain.FavoriteShow, error) {
	return r.favs, nil
}

func (r *listingRepo) IsFavorite(ctx context.Context, id int) (bool, error) { return false, nil }

func TestPrintListing_CatalogMarksFavorites(t *testing.T) {
	rating := 6.5
	repo := &listingRepo{
		shows: []domain.Show{
			{ID: 1, Name: "Under the Dome", Rating: &rating, Genres: []string{"Drama"}},
			{ID: 2, Name: "Person of Interest"},
		},
		favs: []domain.FavoriteShow{{ID: 2}},
	}

	var out bytes.Buffer
	require.NoError(t, printListing(context.Background(), &out, repo, listingOptions{Page: 2}))

	text := out.String()
	assert.Equal(t, 2, repo.gotPage)
	assert.Contains(t, text, "Under the Dome")
	assert.Contains(t, text, "6.5")
	assert.Contains(t, text, "N/A")
	assert.Contains(t, text, "★")
	assert.Contains(t, text, "2 shows")
}

func TestPrintListing_Search(t *testing.T) {
	repo := &listingRepo{results: []domain.Show{{ID: 9, Name: "Girls"}}}

	var out bytes.Buffer
	require.NoError(t, printListing(context.Background(), &out, repo, listingOptions{Query: "girls"}))
	assert.Equal(t, "girls", repo.gotQuery)
	assert.Contains(t, out.String(), "Girls")
}

func TestPrintListing_Favorites(t *testing.T) {
	name := "Lost"
	repo := &listingRepo{favs: []domain.FavoriteShow{{ID: 4, Name: &name}}}

	var out bytes.Buffer
	require.NoError(t, printListing(context.Background(), &out, repo, listingOptions{FavoritesOnly: true}))
	assert.Contains(t, out.String(), "Lost")
	assert.Contains(t, out.String(), "1 favorites")
}

func TestPrintListing_ErrorIsUserMessage(t *testing.T) {
	repo := &listingRepo{err: &domain.RemoteError{Op: "list shows", Err: domain.ErrCatalogUnreachable}}

	err := printListing(context.Background(), &bytes.Buffer{}, repo, listingOptions{})
	require.Error(t, err)
	assert.Equal(t, "catalog is unreachable", err.Error())
}
