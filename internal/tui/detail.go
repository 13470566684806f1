package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tvshelf/tvshelf/internal/domain"
	"github.com/tvshelf/tvshelf/internal/textutil"
	"github.com/tvshelf/tvshelf/internal/tui/styles"
)

// renderDetail lays out a show's detail page for a viewport of the given width
func renderDetail(show domain.Show, isFavorite bool, width int, now time.Time) string {
	var b strings.Builder

	marker := styles.NotFavoriteChar
	if isFavorite {
		marker = styles.FavoriteChar
	}
	b.WriteString(styles.TitleStyle.Render(show.Name))
	b.WriteString("  ")
	b.WriteString(styles.FavoriteStyle.Render(marker))
	b.WriteString("\n\n")

	network := ""
	if show.Network != nil {
		network = show.Network.Name
	}

	fields := []struct {
		label string
		value string
	}{
		{"Genres", show.GenresLabel()},
		{"Premiered", premiereLabel(show.Premiered, now)},
		{"Country", show.Network.CountryLabel()},
		{"Network", network},
		{"Language", deref(show.Language)},
		{"Status", show.Status},
		{"Rating", show.RatingLabel()},
		{"Poster", show.ImageURL()},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(styles.SubtitleStyle.Render(f.label+": ") + f.value + "\n")
	}

	if summary := textutil.PlainText(deref(show.Summary)); summary != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(max(width, 20)).Render(summary))
		b.WriteString("\n")
	}

	if len(show.Cast) > 0 {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Cast (%s)", humanize.Comma(int64(len(show.Cast))))))
		b.WriteString("\n")
		for _, c := range show.Cast {
			line := c.Person
			if c.Character != "" {
				line += styles.DimStyle.Render(" as ") + c.Character
			}
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.DimStyle.Render(show.ShareText()))
	return b.String()
}

// premiereLabel formats a YYYY-MM-DD premiere date with its age, e.g.
// "2013-06-24 (3 years ago)". Unparsable dates are shown as given.
func premiereLabel(premiered *string, now time.Time) string {
	raw := deref(premiered)
	if raw == "" {
		return ""
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return raw
	}
	return fmt.Sprintf("%s (%s)", raw, humanize.RelTime(t, now, "ago", "from now"))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
