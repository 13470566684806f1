package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tvshelf/tvshelf/internal/controller"
	"github.com/tvshelf/tvshelf/internal/domain"
)

// Command factories for async operations. Controller operations publish
// their outcome through the subscriptions, so most commands return no message.
// ctx is the model's context; it is canceled when the program quits.

// LoadCatalogCmd loads the given catalog page (0 is the first)
func LoadCatalogCmd(ctx context.Context, ctrl *controller.Controller, page int) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadCatalogPage(ctx, page)
		return nil
	}
}

// RefreshCmd reloads the catalog and the favorites together
func RefreshCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.Refresh(ctx)
		return nil
	}
}

// LoadDetailCmd fetches a show's full detail
func LoadDetailCmd(ctx context.Context, ctrl *controller.Controller, id int) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadDetail(ctx, id)
		return nil
	}
}

// SearchCmd runs a catalog search for the query box
func SearchCmd(ctx context.Context, ctrl *controller.Controller, query string) tea.Cmd {
	return func() tea.Msg {
		ctrl.Search(ctx, query)
		return nil
	}
}

// FavoriteStatusCmd reads a show's favorite status from the store
func FavoriteStatusCmd(ctx context.Context, ctrl *controller.Controller, id int) tea.Cmd {
	return func() tea.Msg {
		return FavoriteStatusMsg{ShowID: id, IsFavorite: ctrl.IsFavorite(ctx, id)}
	}
}

// ToggleFavoriteCmd flips a show's favorite status
func ToggleFavoriteCmd(ctx context.Context, ctrl *controller.Controller, show domain.Show) tea.Cmd {
	return func() tea.Msg {
		return FavoriteStatusMsg{ShowID: show.ID, IsFavorite: ctrl.ToggleFavorite(ctx, show)}
	}
}

// DeleteFavoriteCmd removes a stored favorite
func DeleteFavoriteCmd(ctx context.Context, ctrl *controller.Controller, fav domain.FavoriteShow) tea.Cmd {
	return func() tea.Msg {
		ctrl.DeleteFavoriteShow(ctx, fav)
		return FavoriteStatusMsg{ShowID: fav.ID, IsFavorite: false}
	}
}

// OpenLinkCmd opens link with opener
func OpenLinkCmd(opener Opener, link string) tea.Cmd {
	return func() tea.Msg {
		return LinkOpenedMsg{Link: link, Err: opener.Open(link)}
	}
}

// ClearStatusCmd clears the status message after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// LoadFavoritesCmd reloads the favorites from the store
func LoadFavoritesCmd(ctx context.Context, ctrl *controller.Controller) tea.Cmd {
	return func() tea.Msg {
		ctrl.LoadFavorites(ctx)
		return nil
	}
}
