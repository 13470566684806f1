package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/tvshelf/tvshelf/internal/domain"
	"github.com/tvshelf/tvshelf/internal/tui/styles"
)

type listingOptions struct {
	FavoritesOnly bool
	Query         string // Non-empty prints search results instead of a catalog page
	Page          int
}

// printListing writes shows (or favorites) as a table. The catalog and the
// favorites are fetched concurrently so shows can be marked.
func printListing(ctx context.Context, w io.Writer, repo domain.ShowRepository, opts listingOptions) error {
	var (
		shows []domain.Show
		favs  []domain.FavoriteShow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		favs, err = repo.ListFavorites(gctx)
		return err
	})
	if !opts.FavoritesOnly {
		g.Go(func() error {
			var err error
			if opts.Query != "" {
				shows, err = repo.SearchShows(gctx, opts.Query)
			} else {
				shows, err = repo.ListShowsPage(gctx, opts.Page)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return errors.New(domain.UserMessage(err))
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if opts.FavoritesOnly {
		fmt.Fprintln(tw, "ID\tNAME\tRATING\tGENRES")
		for _, f := range favs {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", f.ID, f.DisplayName(), f.RateLabel(), f.GenresLabel())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "%s favorites\n", humanize.Comma(int64(len(favs))))
		return err
	}

	favIDs := make(map[int]bool, len(favs))
	for _, f := range favs {
		favIDs[f.ID] = true
	}

	fmt.Fprintln(tw, "ID\tNAME\tRATING\tGENRES\tFAV")
	for _, s := range shows {
		fav := ""
		if favIDs[s.ID] {
			fav = styles.FavoriteChar
		}
		rating := s.RatingLabel()
		if rating == "" {
			rating = "N/A"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Name, rating, s.GenresLabel(), fav)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%s shows\n", humanize.Comma(int64(len(shows))))
	return err
}
