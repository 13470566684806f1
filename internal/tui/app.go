package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tvshelf/tvshelf/internal/controller"
	"github.com/tvshelf/tvshelf/internal/domain"
	"github.com/tvshelf/tvshelf/internal/search"
	"github.com/tvshelf/tvshelf/internal/tui/components"
	"github.com/tvshelf/tvshelf/internal/tui/styles"
)

// Screen identifies the active view
type Screen int

const (
	ScreenHome Screen = iota
	ScreenSearch
	ScreenDetail
	ScreenFavorites
)

// ParseScreen maps a configured view name to a Screen, defaulting to home
func ParseScreen(name string) Screen {
	switch name {
	case "search":
		return ScreenSearch
	case "favorites":
		return ScreenFavorites
	default:
		return ScreenHome
	}
}

// Chrome lines: header, status and help
const ChromeHeight = 3

// Opener opens a web link outside the terminal
type Opener interface {
	Open(link string) error
}

// Model is the main Bubble Tea model for the application
type Model struct {
	ctx    context.Context
	stop   context.CancelFunc
	ctrl   *controller.Controller
	opener Opener // nil disables opening links
	logger *slog.Logger

	Screen     Screen
	prevScreen Screen // Where the detail screen returns to
	Ready      bool

	// Latest published controller state
	state    domain.ViewState
	search   domain.SearchState
	stateCh  <-chan domain.ViewState
	searchCh <-chan domain.SearchState
	cancels  []func()

	// UI components
	catalog     *components.ListColumn
	results     *components.ListColumn
	favorites   *components.ListColumn
	filterInput textinput.Model
	searchInput textinput.Model
	spinner     spinner.Model
	detail      viewport.Model
	help        help.Model

	page      int
	detailID  int
	detailFav bool // Favorite icon for the open detail, as last read from the store

	StatusMsg string

	Width  int
	Height int

	now func() time.Time
}

// NewModel creates the application model and subscribes it to ctrl.
// Controller calls run under a context derived from ctx.
// Call Close once the program exits.
func NewModel(ctx context.Context, ctrl *controller.Controller, opener Opener, logger *slog.Logger, start Screen) Model {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, stop := context.WithCancel(ctx)

	stateCh, cancelState := ctrl.Subscribe()
	searchCh, cancelSearch := ctrl.SubscribeSearch()

	filter := textinput.New()
	filter.Prompt = "/"
	filter.PromptStyle = styles.FilterPromptStyle
	filter.Placeholder = "filter"

	query := textinput.New()
	query.Prompt = "Search: "
	query.PromptStyle = styles.FilterPromptStyle
	query.Placeholder = "show name"

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.SpinnerStyle

	m := Model{
		ctx:         ctx,
		stop:        stop,
		ctrl:        ctrl,
		opener:      opener,
		logger:      logger,
		Screen:      start,
		prevScreen:  ScreenHome,
		stateCh:     stateCh,
		searchCh:    searchCh,
		cancels:     []func(){stop, cancelState, cancelSearch},
		catalog:     components.NewListColumn("Shows", "No shows"),
		results:     components.NewListColumn("Results", "No results"),
		favorites:   components.NewListColumn("Favorites", "No favorites yet"),
		filterInput: filter,
		searchInput: query,
		spinner:     spin,
		detail:      viewport.New(0, 0),
		help:        help.New(),
		now:         time.Now,
	}
	if start == ScreenSearch {
		m.searchInput.Focus()
	}
	return m
}

// Close cancels pending controller calls and ends the subscriptions
func (m Model) Close() {
	for _, cancel := range m.cancels {
		cancel()
	}
}

// Init starts observing the controller and loads the catalog and favorites
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.stateCh),
		waitForSearch(m.searchCh),
		m.spinner.Tick,
		RefreshCmd(m.ctx, m.ctrl),
		textinput.Blink,
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case StateMsg:
		m.state = msg.State
		m.syncLists()
		m.refreshDetail()
		return m, waitForState(m.stateCh)

	case SearchStateMsg:
		m.search = msg.Search
		m.syncResults()
		return m, waitForSearch(m.searchCh)

	case FavoriteStatusMsg:
		if msg.ShowID == m.detailID {
			m.detailFav = msg.IsFavorite
			m.refreshDetail()
		}
		return m, nil

	case LinkOpenedMsg:
		if msg.Err != nil {
			m.logger.Warn("open link failed", "link", msg.Link, "error", msg.Err)
			m.StatusMsg = "Could not open link: " + msg.Err.Error()
		} else {
			m.StatusMsg = "Opened " + msg.Link
		}
		return m, ClearStatusCmd(5 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncLoading()
		if m.Screen == ScreenDetail {
			m.refreshDetail()
		}
		return m, cmd

	case subscriptionClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m *Model) updateLayout() {
	bodyHeight := max(m.Height-ChromeHeight, 3)

	m.catalog.SetSize(m.Width, bodyHeight)
	m.favorites.SetSize(m.Width, bodyHeight)
	m.results.SetSize(m.Width, bodyHeight-1) // Query line
	m.searchInput.Width = max(m.Width-len(m.searchInput.Prompt)-2, 10)
	m.filterInput.Width = max(m.Width-6, 10)

	frameW, frameH := styles.DetailStyle.GetFrameSize()
	m.detail.Width = max(m.Width-frameW, 10)
	m.detail.Height = max(bodyHeight-frameH, 1)
	m.help.Width = m.Width
	m.refreshDetail()
}

// syncLists rebuilds the catalog and favorites rows from the view state
func (m *Model) syncLists() {
	favIDs := make(map[int]bool, len(m.state.Favorites))
	for _, f := range m.state.Favorites {
		favIDs[f.ID] = true
	}

	homeQuery, favQuery := "", ""
	switch m.Screen {
	case ScreenHome:
		homeQuery = m.filterInput.Value()
	case ScreenFavorites:
		favQuery = m.filterInput.Value()
	}

	matches := search.FilterShows(homeQuery, m.state.Shows)
	catalogRows := make([]components.Row, len(matches))
	for i, match := range matches {
		catalogRows[i] = components.Row{
			ID:       match.Show.ID,
			Title:    match.Show.Name,
			Subtitle: match.Show.Description(),
			Favorite: favIDs[match.Show.ID],
			Matched:  match.MatchedIndexes,
		}
	}
	m.catalog.SetRows(catalogRows)

	favs := search.FilterFavorites(favQuery, m.state.Favorites)
	favRows := make([]components.Row, len(favs))
	for i, f := range favs {
		favRows[i] = components.Row{
			ID:       f.ID,
			Title:    f.DisplayName(),
			Subtitle: fmt.Sprintf("%s %s · %s", styles.FavoriteChar, f.RateLabel(), f.GenresLabel()),
			Favorite: true,
		}
	}
	m.favorites.SetRows(favRows)

	m.catalog.SetFooter(m.listFooter(ScreenHome))
	m.favorites.SetFooter(m.listFooter(ScreenFavorites))
	m.syncResults()
	m.syncLoading()
}

// syncResults rebuilds the search result rows from the search facet
func (m *Model) syncResults() {
	favIDs := make(map[int]bool, len(m.state.Favorites))
	for _, f := range m.state.Favorites {
		favIDs[f.ID] = true
	}

	rows := make([]components.Row, len(m.search.Results))
	for i, s := range m.search.Results {
		rows[i] = components.Row{
			ID:       s.ID,
			Title:    s.Name,
			Subtitle: s.Description(),
			Favorite: favIDs[s.ID],
		}
	}
	m.results.SetRows(rows)
}

func (m *Model) syncLoading() {
	frame := ""
	if m.state.IsLoading {
		frame = m.spinner.View()
	}
	m.catalog.SetLoading(frame)
	m.favorites.SetLoading(frame)
}

func (m *Model) listFooter(screen Screen) string {
	filtering := m.Screen == screen && (m.filterInput.Focused() || m.filterInput.Value() != "")
	if filtering {
		return m.filterInput.View()
	}
	if screen == ScreenHome {
		return styles.DimStyle.Render(fmt.Sprintf("Page %d", m.page+1))
	}
	return ""
}

// openDetail switches to the detail screen and fetches the show and its
// favorite status
func (m *Model) openDetail(id int) tea.Cmd {
	if m.Screen != ScreenDetail {
		m.prevScreen = m.Screen
	}
	m.Screen = ScreenDetail
	m.detailID = id
	m.detailFav = false
	m.searchInput.Blur()
	m.detail.GotoTop()
	m.refreshDetail()
	return tea.Batch(LoadDetailCmd(m.ctx, m.ctrl, id), FavoriteStatusCmd(m.ctx, m.ctrl, id))
}

// selectedDetail returns the open detail show once it has loaded
func (m *Model) selectedDetail() (domain.Show, bool) {
	sel := m.state.SelectedShow
	if sel == nil || sel.ID != m.detailID {
		return domain.Show{}, false
	}
	return *sel, true
}

func (m *Model) refreshDetail() {
	if m.Screen != ScreenDetail {
		return
	}
	if show, ok := m.selectedDetail(); ok {
		m.detail.SetContent(renderDetail(show, m.detailFav, m.detail.Width, m.now()))
		return
	}
	switch {
	case m.state.IsLoading:
		m.detail.SetContent(m.spinner.View() + " Loading show...")
	case m.state.Error != nil:
		m.detail.SetContent(styles.ErrorStyle.Render("Could not load show: " + m.state.ErrorMessage()))
	default:
		m.detail.SetContent(styles.DimStyle.Render("Loading show..."))
	}
}

func (m *Model) setScreen(screen Screen) tea.Cmd {
	m.Screen = screen
	m.filterInput.SetValue("")
	m.filterInput.Blur()
	m.syncLists()

	if screen == ScreenSearch {
		return m.searchInput.Focus()
	}
	m.searchInput.Blur()
	return nil
}
