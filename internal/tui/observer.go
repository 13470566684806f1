package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tvshelf/tvshelf/internal/domain"
)

// waitForState turns the next value on a controller subscription into a
// StateMsg. Update re-arms it after every message.
func waitForState(ch <-chan domain.ViewState) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return StateMsg{State: state}
	}
}

// waitForSearch is waitForState for the search facets
func waitForSearch(ch <-chan domain.SearchState) tea.Cmd {
	return func() tea.Msg {
		search, ok := <-ch
		if !ok {
			return subscriptionClosedMsg{}
		}
		return SearchStateMsg{Search: search}
	}
}
