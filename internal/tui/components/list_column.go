package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tvshelf/tvshelf/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

// Row is one line of a ListColumn
type Row struct {
	ID       int
	Title    string
	Subtitle string
	Favorite bool
	Matched  []int // Byte offsets in Title to highlight
}

// ListColumn is a scrollable, bordered list of rows
type ListColumn struct {
	rows []Row

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title   string
	footer  string // Rendered under the rows (filter bar, page info)
	loading string // Spinner frame; non-empty while loading with no rows
	empty   string
}

// NewListColumn creates an empty list column
func NewListColumn(title, empty string) *ListColumn {
	return &ListColumn{title: title, empty: empty, focused: true}
}

// Update handles navigation keys
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(c.rows) == 0 {
		return nil
	}

	count := len(c.rows)
	switch key.String() {
	case "j", "down":
		if c.cursor < count-1 {
			c.cursor++
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
		}
	case "g", "home":
		c.cursor = 0
	case "G", "end":
		c.cursor = count - 1
	case "ctrl+d", "pgdown":
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), count-1)
	case "ctrl+u", "pgup":
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
	}
	c.ensureVisible()
	return nil
}

// SetRows replaces the rows, keeping the cursor on the same ID when it is
// still present.
func (c *ListColumn) SetRows(rows []Row) {
	selectedID, hadSelection := 0, false
	if r, ok := c.Selected(); ok {
		selectedID, hadSelection = r.ID, true
	}

	c.rows = rows
	c.cursor = 0
	if hadSelection {
		for i, r := range rows {
			if r.ID == selectedID {
				c.cursor = i
				break
			}
		}
	}
	c.offset = 0
	c.ensureVisible()
}

// ResetCursor moves the selection to the first row
func (c *ListColumn) ResetCursor() {
	c.cursor = 0
	c.offset = 0
}

// Selected returns the row under the cursor
func (c *ListColumn) Selected() (Row, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) {
		return Row{}, false
	}
	return c.rows[c.cursor], true
}

// Len returns the number of rows
func (c *ListColumn) Len() int {
	return len(c.rows)
}

func (c *ListColumn) SetTitle(title string) { c.title = title }

func (c *ListColumn) SetFooter(footer string) {
	c.footer = footer
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetLoading(frame string) { c.loading = frame }

func (c *ListColumn) SetFocused(focused bool) { c.focused = focused }

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior height minus the title line and scroll indicators
	c.maxVisible = c.height - BorderHeight - ScrollIndicatorLines - 1
	if c.footer != "" {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

// View renders the column inside its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	title := c.title
	if len(c.rows) > 0 {
		title = fmt.Sprintf("%s (%d)", c.title, len(c.rows))
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth))

	var body string
	switch {
	case len(c.rows) == 0 && c.loading != "":
		body = " \n" + styles.DimStyle.Render(c.loading+" Loading...") + "\n "
	case len(c.rows) == 0:
		body = " \n" + styles.DimStyle.Render(c.empty) + "\n "
	default:
		body = c.renderRows(itemWidth)
	}

	content := titleLine + "\n" + body
	if c.footer != "" {
		content += "\n" + c.footer
	}
	return content
}

func (c *ListColumn) renderRows(width int) string {
	end := min(c.offset+c.maxVisible, len(c.rows))

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderRow(c.rows[i], i == c.cursor, width))
	}

	// Always reserve the indicator lines to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < len(c.rows) {
		footer = styles.DimStyle.Render("↓ more")
	}

	return header + "\n" + strings.Join(lines, "\n") + "\n" + footer
}

func (c *ListColumn) renderRow(row Row, selected bool, width int) string {
	marker := " "
	if row.Favorite {
		marker = styles.FavoriteChar
	}
	accent := styles.Accent

	// Available space: width - marker(1) - space(1) - margins(2)
	available := max(width-4, 5)
	title := styles.Truncate(row.Title, available)

	parts := []styles.RowPart{{Text: marker, Foreground: &accent}, {Text: " "}}
	if title == row.Title {
		parts = append(parts, styles.HighlightParts(title, row.Matched)...)
	} else {
		parts = append(parts, styles.RowPart{Text: title})
	}

	if row.Subtitle != "" {
		room := available - lipgloss.Width(title) - 2
		if room > 5 {
			dim := styles.DimGray
			parts = append(parts, styles.RowPart{
				Text:       "  " + styles.Truncate(row.Subtitle, room),
				Foreground: &dim,
			})
		}
	}

	return styles.RenderListRow(parts, selected, width)
}
