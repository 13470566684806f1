// Package search filters already-loaded shows and favorites in memory.
// Remote catalog search lives in the controller; these filters never touch
// the network.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sfuzzy "github.com/sahilm/fuzzy"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// ShowMatch is a show that matched a local filter
type ShowMatch struct {
	Show           domain.Show
	MatchedIndexes []int // Byte positions in Show.Name that matched (for highlighting)
	Score          int   // Higher is better
}

// showIndex implements sahilm/fuzzy.Source over show names. The matcher
// folds case itself, so names are passed through untouched and the matched
// offsets stay valid for Show.Name.
type showIndex []domain.Show

func (idx showIndex) String(i int) string { return idx[i].Name }

func (idx showIndex) Len() int { return len(idx) }

// FilterShows fuzzy-matches query against show names, best match first.
// A blank query keeps every show in its original order.
func FilterShows(query string, shows []domain.Show) []ShowMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]ShowMatch, len(shows))
		for i, s := range shows {
			all[i] = ShowMatch{Show: s}
		}
		return all
	}

	matches := sfuzzy.FindFrom(query, showIndex(shows))

	results := make([]ShowMatch, len(matches))
	for i, match := range matches {
		results[i] = ShowMatch{
			Show:           shows[match.Index],
			MatchedIndexes: match.MatchedIndexes,
			Score:          match.Score,
		}
	}
	return results
}

// FilterFavorites keeps the favorites whose name or genres contain query's
// characters in order, case-insensitively, closest match first. Ties keep
// the input order.
func FilterFavorites(query string, favs []domain.FavoriteShow) []domain.FavoriteShow {
	query = strings.TrimSpace(query)
	if query == "" {
		return append([]domain.FavoriteShow(nil), favs...)
	}

	targets := make([]string, len(favs))
	for i, f := range favs {
		targets[i] = favoriteTarget(f)
	}

	ranks := fuzzy.RankFindFold(query, targets)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	results := make([]domain.FavoriteShow, len(ranks))
	for i, r := range ranks {
		results[i] = favs[r.OriginalIndex]
	}
	return results
}

func favoriteTarget(f domain.FavoriteShow) string {
	target := f.DisplayName()
	if f.Genres != nil {
		target += " " + *f.Genres
	}
	return target
}
