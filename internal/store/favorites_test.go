package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvshelf/tvshelf/internal/domain"
)

func strPtr(s string) *string { return &s }

func openStores(t *testing.T) map[string]*FavoritesStore {
	t.Helper()

	mem, err := NewFavoritesStore("")
	require.NoError(t, err)

	disk, err := NewFavoritesStore(filepath.Join(t.TempDir(), "nested", "favorites.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = disk.Close() })

	return map[string]*FavoritesStore{"memory": mem, "bolt": disk}
}

func TestFavoritesStore_PutReplacesOnConflict(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(domain.FavoriteShow{ID: 7, Name: strPtr("Old")}))
			require.NoError(t, s.Put(domain.FavoriteShow{ID: 7, Name: strPtr("New")}))

			all, err := s.All()
			require.NoError(t, err)
			require.Len(t, all, 1)
			assert.Equal(t, "New", all[0].DisplayName())

			fav, ok, err := s.Get(7)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "New", *fav.Name)
		})
	}
}

func TestFavoritesStore_DeleteAbsentIsNoop(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Delete(domain.FavoriteShow{ID: 42}))
			require.NoError(t, s.Delete(domain.FavoriteShow{ID: 42}))

			_, ok, err := s.Get(42)
			require.NoError(t, err)
			assert.False(t, ok)

			all, err := s.All()
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestFavoritesStore_AllOrderedByID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []int{300, 2, 256, 1} {
				require.NoError(t, s.Put(domain.FavoriteShow{ID: id}))
			}

			all, err := s.All()
			require.NoError(t, err)

			ids := make([]int, len(all))
			for i, fav := range all {
				ids[i] = fav.ID
			}
			assert.Equal(t, []int{1, 2, 256, 300}, ids)
		})
	}
}

func TestFavoritesStore_RejectsNegativeID(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			err := s.Put(domain.FavoriteShow{ID: -1})
			var storeErr *domain.StoreError
			require.ErrorAs(t, err, &storeErr)
			assert.ErrorIs(t, err, domain.ErrInvalidShowID)
		})
	}
}

func TestFavoritesStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")

	s, err := NewFavoritesStore(path)
	require.NoError(t, err)
	fav := domain.FavoriteShow{
		ID:     1,
		Name:   strPtr("Under the Dome"),
		Image:  strPtr("https://static.tvmaze.com/m.jpg"),
		Rate:   strPtr("6.5"),
		Genres: strPtr("Drama, Thriller"),
	}
	require.NoError(t, s.Put(fav))
	require.NoError(t, s.Close())

	reopened, err := NewFavoritesStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.Get(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fav, got)
}
