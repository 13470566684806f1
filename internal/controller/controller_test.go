package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvshelf/tvshelf/internal/domain"
)

func timeoutErr(op string) error {
	return &domain.RemoteError{Op: op, Err: errors.New("timeout")}
}

func TestController_FreshStateIsIdle(t *testing.T) {
	c := New(newFakeRepo(), nil)

	state := c.State()
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.Error)
	assert.Empty(t, state.Shows)
	assert.Nil(t, state.SelectedShow)
}

func TestController_EndToEndCatalogThenFailedDetail(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	repo.details[2] = &domain.Show{ID: 2, Name: "B"}
	c := New(repo, nil)

	c.LoadCatalog(ctx)

	state := c.State()
	assert.Len(t, state.Shows, 2)
	assert.False(t, state.IsLoading)
	assert.Nil(t, state.Error)

	c.LoadDetail(ctx, 2)
	require.NotNil(t, c.State().SelectedShow)

	repo.detailErrs[1] = timeoutErr("get show")
	c.LoadDetail(ctx, 1)

	state = c.State()
	require.NotNil(t, state.Error)
	assert.Equal(t, "timeout", *state.Error)
	require.NotNil(t, state.SelectedShow)
	assert.Equal(t, 2, state.SelectedShow.ID, "failed detail must not replace the selection")
	assert.Len(t, state.Shows, 2, "detail must not touch the show list")
	assert.False(t, state.IsLoading)
}

func TestController_LoadCatalogFailureKeepsPreviousList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1, Name: "A"}}
	c := New(repo, nil)

	c.LoadCatalog(ctx)
	repo.listErr = timeoutErr("list shows")
	c.LoadCatalog(ctx)

	state := c.State()
	assert.Equal(t, []domain.Show{{ID: 1, Name: "A"}}, state.Shows)
	assert.Equal(t, "timeout", state.ErrorMessage())
	assert.False(t, state.IsLoading)

	// The same family is retryable and a success clears the error.
	repo.listErr = nil
	c.LoadCatalog(ctx)
	assert.Nil(t, c.State().Error)
}

func TestController_LoadingOnlyWhileInFlight(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1}}
	repo.listErr = timeoutErr("list shows")
	c := New(repo, nil)

	c.LoadCatalog(ctx)
	require.NotNil(t, c.State().Error)

	release := repo.gate("list")
	done := goRun(func() { c.LoadCatalog(ctx) })
	waitStarted(t, repo, "list")

	mid := c.State()
	assert.True(t, mid.IsLoading)
	assert.Nil(t, mid.Error, "error is cleared when a new attempt starts")

	release()
	waitDone(t, done)
	assert.False(t, c.State().IsLoading)
}

func TestController_LoadingStaysUpUntilEveryFamilySettles(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.details[3] = &domain.Show{ID: 3}
	c := New(repo, nil)

	releaseList := repo.gate("list")
	releaseDetail := repo.gate(detailKey(3))

	listDone := goRun(func() { c.LoadCatalog(ctx) })
	waitStarted(t, repo, "list")
	detailDone := goRun(func() { c.LoadDetail(ctx, 3) })
	waitStarted(t, repo, detailKey(3))

	releaseDetail()
	waitDone(t, detailDone)
	state := c.State()
	assert.True(t, state.IsLoading, "catalog load is still pending")
	require.NotNil(t, state.SelectedShow)

	releaseList()
	waitDone(t, listDone)
	assert.False(t, c.State().IsLoading)
}

func TestController_PanicStillSettles(t *testing.T) {
	repo := newFakeRepo()
	repo.panicOnList = true
	c := New(repo, nil)

	assert.Panics(t, func() { c.LoadCatalog(context.Background()) })
	assert.False(t, c.State().IsLoading)
}

func TestController_StaleDetailIsDiscarded(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.details[1] = &domain.Show{ID: 1, Name: "One"}
	repo.details[2] = &domain.Show{ID: 2, Name: "Two"}
	c := New(repo, nil)

	release1 := repo.gate(detailKey(1))
	release2 := repo.gate(detailKey(2))

	done1 := goRun(func() { c.LoadDetail(ctx, 1) })
	waitStarted(t, repo, detailKey(1))
	done2 := goRun(func() { c.LoadDetail(ctx, 2) })
	waitStarted(t, repo, detailKey(2))

	// Resolve the newer request first, then the older one.
	release2()
	waitDone(t, done2)
	release1()
	waitDone(t, done1)

	state := c.State()
	require.NotNil(t, state.SelectedShow)
	assert.Equal(t, 2, state.SelectedShow.ID)
	assert.False(t, state.IsLoading)
}

func TestController_StaleDetailFailureIsDiscarded(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.detailErrs[1] = timeoutErr("get show")
	repo.details[2] = &domain.Show{ID: 2, Name: "Two"}
	c := New(repo, nil)

	release1 := repo.gate(detailKey(1))
	done1 := goRun(func() { c.LoadDetail(ctx, 1) })
	waitStarted(t, repo, detailKey(1))

	c.LoadDetail(ctx, 2)
	release1()
	waitDone(t, done1)

	state := c.State()
	assert.Nil(t, state.Error)
	require.NotNil(t, state.SelectedShow)
	assert.Equal(t, 2, state.SelectedShow.ID)
}

func TestController_InOrderDetailsApplyLatest(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.details[1] = &domain.Show{ID: 1}
	repo.details[2] = &domain.Show{ID: 2}
	c := New(repo, nil)

	c.LoadDetail(ctx, 1)
	c.LoadDetail(ctx, 2)
	assert.Equal(t, 2, c.State().SelectedShow.ID)

	c.LoadDetail(ctx, 1)
	assert.Equal(t, 1, c.State().SelectedShow.ID)
}

func TestController_SearchCatalogReplacesList(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1}, {ID: 2}, {ID: 3}}
	repo.searchResults["dome"] = []domain.Show{{ID: 1, Name: "Under the Dome"}}
	c := New(repo, nil)

	c.SearchCatalog(ctx, "dome")
	assert.Len(t, c.State().Shows, 1)

	c.SearchCatalog(ctx, "  ")
	assert.Len(t, c.State().Shows, 3)

	repo.searchErr = timeoutErr("search shows")
	c.SearchCatalog(ctx, "dome")
	assert.Equal(t, "timeout", c.State().ErrorMessage())
	assert.Len(t, c.State().Shows, 3)
}

func TestController_SubscribeSeesLatestState(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1}, {ID: 2}}
	c := New(repo, nil)

	ch, cancel := c.Subscribe()
	initial := <-ch
	assert.Empty(t, initial.Shows)

	c.LoadCatalog(ctx)
	latest := <-ch
	assert.Len(t, latest.Shows, 2)
	assert.False(t, latest.IsLoading)

	// Published values are copies.
	latest.Shows[0].Name = "mutated"
	assert.Equal(t, "", c.State().Shows[0].Name)

	cancel()
	for range ch {
	}
	cancel()
}

func TestController_RefreshLoadsCatalogAndFavorites(t *testing.T) {
	repo := newFakeRepo()
	repo.shows = []domain.Show{{ID: 1}}
	repo.favs[9] = domain.FavoriteShow{ID: 9}
	c := New(repo, nil)

	c.Refresh(context.Background())

	state := c.State()
	assert.Len(t, state.Shows, 1)
	require.Len(t, state.Favorites, 1)
	assert.Equal(t, 9, state.Favorites[0].ID)
	assert.False(t, state.IsLoading)
}
