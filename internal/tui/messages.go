package tui

import (
	"github.com/tvshelf/tvshelf/internal/domain"
)

// Message types for the TUI

// StateMsg carries a view state published by the controller
type StateMsg struct {
	State domain.ViewState
}

// SearchStateMsg carries a search facet update published by the controller
type SearchStateMsg struct {
	Search domain.SearchState
}

// FavoriteStatusMsg reports whether a show is stored as a favorite
type FavoriteStatusMsg struct {
	ShowID     int
	IsFavorite bool
}

// LinkOpenedMsg reports the outcome of opening a show's official site
type LinkOpenedMsg struct {
	Link string
	Err  error
}

// ClearStatusMsg signals to clear the status message
type ClearStatusMsg struct{}

// subscriptionClosedMsg signals that a controller subscription ended
type subscriptionClosedMsg struct{}
