package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// quit cancels in-flight controller calls and stops the program
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.stop()
	return m, tea.Quit
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	// Text inputs take every key they can use
	if m.Screen == ScreenSearch {
		return m.handleSearchKey(msg)
	}
	if m.filterInput.Focused() {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.quit()

	case key.Matches(msg, Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.Screen {
	case ScreenDetail:
		return m.handleDetailKey(msg)
	case ScreenFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if row, ok := m.catalog.Selected(); ok {
			return m, m.openDetail(row.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.filterInput.Focus()
		m.syncLists()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.syncLists()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		return m, m.setScreen(ScreenSearch)

	case key.Matches(msg, Keys.Favorites):
		return m, m.setScreen(ScreenFavorites)

	case key.Matches(msg, Keys.Refresh):
		m.page = 0
		m.syncLists()
		return m, RefreshCmd(m.ctx, m.ctrl)

	case key.Matches(msg, Keys.NextPage):
		m.page++
		m.syncLists()
		return m, LoadCatalogCmd(m.ctx, m.ctrl, m.page)

	case key.Matches(msg, Keys.PrevPage):
		if m.page == 0 {
			return m, nil
		}
		m.page--
		m.syncLists()
		return m, LoadCatalogCmd(m.ctx, m.ctrl, m.page)

	case key.Matches(msg, Keys.ToggleFavorite):
		if row, ok := m.catalog.Selected(); ok {
			if show, found := findShow(m.state.Shows, row.ID); found {
				return m, ToggleFavoriteCmd(m.ctx, m.ctrl, show)
			}
		}
		return m, nil
	}

	return m, m.catalog.Update(msg)
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Enter):
		if row, ok := m.favorites.Selected(); ok {
			return m, m.openDetail(row.ID)
		}
		return m, nil

	case key.Matches(msg, Keys.Filter):
		m.filterInput.Focus()
		m.syncLists()
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.syncLists()
			return m, nil
		}
		return m, m.setScreen(ScreenHome)

	case key.Matches(msg, Keys.Home, Keys.Back):
		return m, m.setScreen(ScreenHome)

	case key.Matches(msg, Keys.Search):
		return m, m.setScreen(ScreenSearch)

	case key.Matches(msg, Keys.Refresh):
		return m, LoadFavoritesCmd(m.ctx, m.ctrl)

	case key.Matches(msg, Keys.Delete, Keys.ToggleFavorite):
		if row, ok := m.favorites.Selected(); ok {
			return m, DeleteFavoriteCmd(m.ctx, m.ctrl, domain.FavoriteShow{ID: row.ID})
		}
		return m, nil
	}

	return m, m.favorites.Update(msg)
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Back, Keys.Escape):
		return m, m.setScreen(m.prevScreen)

	case key.Matches(msg, Keys.ToggleFavorite):
		if show, ok := m.selectedDetail(); ok {
			return m, ToggleFavoriteCmd(m.ctx, m.ctrl, show)
		}
		return m, nil

	case key.Matches(msg, Keys.Share):
		if show, ok := m.selectedDetail(); ok {
			m.StatusMsg = show.ShareText()
			return m, ClearStatusCmd(5 * time.Second)
		}
		return m, nil

	case key.Matches(msg, Keys.Open):
		show, ok := m.selectedDetail()
		if !ok || m.opener == nil {
			return m, nil
		}
		if show.OfficialSite == nil || *show.OfficialSite == "" {
			m.StatusMsg = show.ShareText()
			return m, ClearStatusCmd(5 * time.Second)
		}
		return m, OpenLinkCmd(m.opener, *show.OfficialSite)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, m.setScreen(ScreenHome)

	case tea.KeyEnter:
		if row, ok := m.results.Selected(); ok {
			return m, m.openDetail(row.ID)
		}
		return m, nil

	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown:
		return m, m.results.Update(msg)
	}

	before := m.searchInput.Value()
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if after := m.searchInput.Value(); after != before {
		m.results.ResetCursor()
		return m, tea.Batch(cmd, SearchCmd(m.ctx, m.ctrl, after))
	}
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterInput.SetValue("")
		m.filterInput.Blur()
		m.syncLists()
		return m, nil

	case tea.KeyEnter:
		// Keep the filter, go back to navigating the matches
		m.filterInput.Blur()
		m.syncLists()
		return m, nil

	case tea.KeyBackspace:
		if m.filterInput.Value() == "" {
			m.filterInput.Blur()
			m.syncLists()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.syncLists()
	m.catalog.ResetCursor()
	m.favorites.ResetCursor()
	return m, cmd
}

func findShow(shows []domain.Show, id int) (domain.Show, bool) {
	for _, s := range shows {
		if s.ID == id {
			return s, true
		}
	}
	return domain.Show{}, false
}
