package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tvshelf/tvshelf/internal/tui/styles"
)

var screenTabs = []struct {
	screen Screen
	label  string
}{
	{ScreenHome, "Home"},
	{ScreenSearch, "Search"},
	{ScreenFavorites, "Favorites"},
}

// View renders the UI
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderStatus(),
		m.help.View(Keys),
	)
}

func (m Model) renderHeader() string {
	active := m.Screen
	if active == ScreenDetail {
		active = m.prevScreen
	}

	tabs := []string{styles.TitleStyle.Render("tvshelf")}
	for _, tab := range screenTabs {
		if tab.screen == active {
			tabs = append(tabs, styles.HighlightStyle.Render(tab.label))
		} else {
			tabs = append(tabs, styles.DimStyle.Render(" "+tab.label+" "))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderBody() string {
	switch m.Screen {
	case ScreenSearch:
		return m.searchInput.View() + "\n" + m.results.View()
	case ScreenDetail:
		return styles.DetailStyle.Render(m.detail.View())
	case ScreenFavorites:
		return m.favorites.View()
	default:
		return m.catalog.View()
	}
}

// renderStatus shows, in order of precedence, the loading spinner, the last
// error and any transient status message.
func (m Model) renderStatus() string {
	var line string
	switch {
	case m.state.IsLoading:
		line = m.spinner.View() + styles.DimStyle.Render(" Loading...")
	case m.state.Error != nil:
		line = styles.ErrorStyle.Render("Error: " + m.state.ErrorMessage())
	case m.StatusMsg != "":
		line = styles.SuccessStyle.Render(m.StatusMsg)
	default:
		line = " "
	}
	return line
}
