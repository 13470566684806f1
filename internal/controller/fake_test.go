package controller

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// fakeRepo is an in-memory domain.ShowRepository. Calls whose key has a gate
// announce themselves on started and block until the gate is closed, which
// lets tests choose the order in which concurrent calls resolve.
type fakeRepo struct {
	mu sync.Mutex

	shows      []domain.Show
	listErr    error
	details    map[int]*domain.Show
	detailErrs map[int]error

	searchResults map[string][]domain.Show
	searchErr     error
	searchCalls   int

	favs       map[int]domain.FavoriteShow
	addErr     error
	listFavErr error

	panicOnList bool

	gates   map[string]chan struct{}
	started chan string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		details:       make(map[int]*domain.Show),
		detailErrs:    make(map[int]error),
		searchResults: make(map[string][]domain.Show),
		favs:          make(map[int]domain.FavoriteShow),
		gates:         make(map[string]chan struct{}),
		started:       make(chan string, 16),
	}
}

// gate makes the next call with key block until the returned func is called.
func (f *fakeRepo) gate(key string) (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[key] = ch
	return func() { close(ch) }
}

func (f *fakeRepo) pass(key string) {
	f.mu.Lock()
	ch := f.gates[key]
	delete(f.gates, key)
	f.mu.Unlock()
	if ch == nil {
		return
	}
	f.started <- key
	<-ch
}

func (f *fakeRepo) ListShows(ctx context.Context) ([]domain.Show, error) {
	f.pass("list")
	if f.panicOnList {
		panic("list exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]domain.Show(nil), f.shows...), nil
}

func (f *fakeRepo) ListShowsPage(ctx context.Context, page int) ([]domain.Show, error) {
	return f.ListShows(ctx)
}

func (f *fakeRepo) GetShow(ctx context.Context, id int) (*domain.Show, error) {
	f.pass(detailKey(id))
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.detailErrs[id]; err != nil {
		return nil, err
	}
	if show, ok := f.details[id]; ok {
		dup := *show
		return &dup, nil
	}
	return nil, &domain.RemoteError{Op: "get show", Err: domain.ErrShowNotFound}
}

func (f *fakeRepo) SearchShows(ctx context.Context, query string) ([]domain.Show, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()

	f.pass("search:" + query)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchResults[query], nil
}

func (f *fakeRepo) AddFavorite(ctx context.Context, fav domain.FavoriteShow) error {
	f.pass("add:" + strconv.Itoa(fav.ID))
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.favs[fav.ID] = fav
	return nil
}

func (f *fakeRepo) RemoveFavorite(ctx context.Context, fav domain.FavoriteShow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.favs, fav.ID)
	return nil
}

// ListFavorites takes its snapshot before passing the "favs" gate, so a
// gated call returns contents that may be outdated by the time it resolves.
func (f *fakeRepo) ListFavorites(ctx context.Context) ([]domain.FavoriteShow, error) {
	f.mu.Lock()
	err := f.listFavErr
	favs := make([]domain.FavoriteShow, 0, len(f.favs))
	for _, fav := range f.favs {
		favs = append(favs, fav)
	}
	f.mu.Unlock()

	f.pass("favs")
	if err != nil {
		return nil, err
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].ID < favs[j].ID })
	return favs, nil
}

func (f *fakeRepo) favoriteIDs() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(f.favs))
	for id := range f.favs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (f *fakeRepo) IsFavorite(ctx context.Context, id int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listFavErr != nil {
		return false, f.listFavErr
	}
	_, ok := f.favs[id]
	return ok, nil
}

func (f *fakeRepo) searchCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func detailKey(id int) string {
	return "detail:" + strconv.Itoa(id)
}

// waitStarted blocks until the gated call with key has started.
func waitStarted(t *testing.T, f *fakeRepo, key string) {
	t.Helper()
	select {
	case got := <-f.started:
		if got != key {
			t.Fatalf("started %q, want %q", got, key)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q to start", key)
	}
}

// goRun runs fn on its own goroutine and returns a channel closed when it returns.
func goRun(fn func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for operation to settle")
	}
}
