package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Accent is the theme color used for borders, titles and highlights
var Accent = Amber

// Styles derived from Accent; rebuilt by SetTheme
var (
	ActiveBorder        lipgloss.Style
	AccentStyle         lipgloss.Style
	HighlightStyle      lipgloss.Style
	SpinnerStyle        lipgloss.Style
	FilterPromptStyle   lipgloss.Style
	MatchHighlightStyle lipgloss.Style
	HelpKeyStyle        lipgloss.Style
	FavoriteStyle       lipgloss.Style
)

var (
	InactiveBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)

	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	DetailStyle = lipgloss.NewStyle().
			Padding(1, 2)
)

// Favorite markers
const (
	FavoriteChar    = "★"
	NotFavoriteChar = "☆"
)

func init() {
	build()
}

// SetTheme switches the accent color. Unknown names fall back to "default".
func SetTheme(name string) {
	switch name {
	case "mono":
		Accent = White
	case "green":
		Accent = Green
	default:
		Accent = Amber
	}
	build()
}

func build() {
	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Accent)

	AccentStyle = lipgloss.NewStyle().
		Foreground(Accent)

	HighlightStyle = lipgloss.NewStyle().
		Foreground(SlateDark).
		Background(Accent).
		Padding(0, 1)

	SpinnerStyle = lipgloss.NewStyle().
		Foreground(Accent)

	FilterPromptStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	MatchHighlightStyle = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
		Foreground(Accent)

	FavoriteStyle = lipgloss.NewStyle().
		Foreground(Accent)
}

// Truncate truncates a string to the given width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

// RenderListRow renders a complete list row with uniform background when selected.
// Each part is styled explicitly to avoid ANSI reset code issues.
func RenderListRow(parts []RowPart, selected bool, width int) string {
	bg := SlateLight
	defaultFg := LightGray
	selectedFg := White

	var result string
	visibleLen := 0

	for _, part := range parts {
		style := lipgloss.NewStyle()
		if part.Foreground != nil {
			style = style.Foreground(*part.Foreground)
		} else if selected {
			style = style.Foreground(selectedFg)
		} else {
			style = style.Foreground(defaultFg)
		}
		if part.Bold {
			style = style.Bold(true)
		}
		if selected {
			style = style.Background(bg)
		}
		result += style.Render(part.Text)
		visibleLen += lipgloss.Width(part.Text)
	}

	// Pad to width (minus left/right margin)
	paddingNeeded := width - visibleLen - 2
	if paddingNeeded > 0 {
		padStyle := lipgloss.NewStyle()
		if selected {
			padStyle = padStyle.Background(bg)
		}
		result += padStyle.Render(spaces(paddingNeeded))
	}

	marginStyle := lipgloss.NewStyle()
	if selected {
		marginStyle = marginStyle.Background(bg)
	}
	margin := marginStyle.Render(" ")

	return margin + result + margin
}

// RowPart represents a part of a row with optional foreground color
type RowPart struct {
	Text       string
	Foreground *lipgloss.Color
	Bold       bool
}

// HighlightParts splits text into row parts, marking the byte offsets in
// matched with the accent color.
func HighlightParts(text string, matched []int) []RowPart {
	if len(matched) == 0 {
		return []RowPart{{Text: text}}
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	accent := Accent
	var parts []RowPart
	var run []rune
	runMatched := false
	flush := func() {
		if len(run) == 0 {
			return
		}
		part := RowPart{Text: string(run)}
		if runMatched {
			part.Foreground = &accent
			part.Bold = true
		}
		parts = append(parts, part)
		run = run[:0]
	}

	for i, r := range text {
		if set[i] != runMatched {
			flush()
			runMatched = set[i]
		}
		run = append(run, r)
	}
	flush()
	return parts
}
