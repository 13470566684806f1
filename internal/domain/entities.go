package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Image holds poster URLs at the sizes the catalog serves
type Image struct {
	Medium   string
	Original string
}

// URL returns the preferred poster URL (medium, falling back to original)
func (i *Image) URL() string {
	if i == nil {
		return ""
	}
	if i.Medium != "" {
		return i.Medium
	}
	return i.Original
}

// Country identifies where a network broadcasts
type Country struct {
	Name     string
	Code     string
	Timezone string
}

// Network is the broadcaster (or web channel) carrying a show
type Network struct {
	ID      int
	Name    string
	Country *Country
}

// CountryLabel returns "Name,Code" for display, or "" when unknown
func (n *Network) CountryLabel() string {
	if n == nil || n.Country == nil {
		return ""
	}
	return n.Country.Name + "," + n.Country.Code
}

// CastMember is one person/character pair embedded in a show's detail
type CastMember struct {
	PersonID  int
	Person    string
	Character string
}

// Show represents a TV series from the remote catalog.
// Nullable fields are pointers; an empty Genres slice means no genres.
type Show struct {
	ID           int      // Stable catalog identifier
	Name         string   // Series title
	Image        *Image   // Poster (nil when the catalog has none)
	Rating       *float64 // Average rating on a 0-10 scale
	Genres       []string // Ordered genre list
	Network      *Network // Broadcaster, including country
	Language     *string  // Spoken language
	Premiered    *string  // Premiere date, YYYY-MM-DD
	Summary      *string  // Rich-text (HTML) synopsis
	OfficialSite *string  // Official site URL
	Status       string   // "Running", "Ended", ...
	Cast         []CastMember
}

// ImageURL returns the poster URL or ""
func (s Show) ImageURL() string {
	return s.Image.URL()
}

// RatingLabel formats the rating for display, or "" when absent
func (s Show) RatingLabel() string {
	if s.Rating == nil {
		return ""
	}
	return strconv.FormatFloat(*s.Rating, 'f', -1, 64)
}

// GenresLabel joins the genre list for display ("Drama, Crime")
func (s Show) GenresLabel() string {
	return strings.Join(s.Genres, ", ")
}

// ShareText returns the text shared for a show's official link
func (s Show) ShareText() string {
	if s.OfficialSite == nil || *s.OfficialSite == "" {
		return "Shared link: none"
	}
	return "Shared link: " + *s.OfficialSite
}

// Description returns secondary info for list rendering
func (s Show) Description() string {
	var parts []string
	if label := s.RatingLabel(); label != "" {
		parts = append(parts, "★ "+label)
	}
	if len(s.Genres) > 0 {
		parts = append(parts, s.GenresLabel())
	}
	if s.Premiered != nil && len(*s.Premiered) >= 4 {
		parts = append(parts, (*s.Premiered)[:4])
	}
	return strings.Join(parts, " · ")
}

// SearchResult is one match from the catalog search endpoint, which nests
// each show inside a scored envelope.
type SearchResult struct {
	Score float64
	Show  Show
}

// FavoriteShow is the locally persisted projection of a Show kept for
// offline display. Created on favorite, deleted on unfavorite, never edited.
type FavoriteShow struct {
	ID     int     `json:"id"`
	Name   *string `json:"name,omitempty"`
	Image  *string `json:"image,omitempty"`
	Rate   *string `json:"rate,omitempty"`
	Genres *string `json:"genres,omitempty"`
}

// NewFavoriteShow projects a Show into its favorite record. Rating and genres
// become display strings; the genre list is joined with ", ".
func NewFavoriteShow(s Show) FavoriteShow {
	fav := FavoriteShow{ID: s.ID}
	if s.Name != "" {
		name := s.Name
		fav.Name = &name
	}
	if url := s.ImageURL(); url != "" {
		fav.Image = &url
	}
	if label := s.RatingLabel(); label != "" {
		fav.Rate = &label
	}
	if len(s.Genres) > 0 {
		genres := s.GenresLabel()
		fav.Genres = &genres
	}
	return fav
}

// DisplayName returns the stored name or a placeholder
func (f FavoriteShow) DisplayName() string {
	if f.Name == nil || *f.Name == "" {
		return fmt.Sprintf("Show #%d", f.ID)
	}
	return *f.Name
}

// RateLabel returns the stored rating or "N/A"
func (f FavoriteShow) RateLabel() string {
	if f.Rate == nil {
		return "N/A"
	}
	return *f.Rate
}

// GenresLabel returns the stored genres or "N/A"
func (f FavoriteShow) GenresLabel() string {
	if f.Genres == nil {
		return "N/A"
	}
	return *f.Genres
}

// ViewState is the aggregate state published to presentation.
// It is replaced wholesale on every transition; consumers receive copies.
type ViewState struct {
	Shows        []Show
	SelectedShow *Show
	IsLoading    bool
	Error        *string
	Favorites    []FavoriteShow
	Query        string
}

// ErrorMessage returns the error string or ""
func (v ViewState) ErrorMessage() string {
	if v.Error == nil {
		return ""
	}
	return *v.Error
}

// Clone returns a deep-enough copy for handing to another goroutine
func (v ViewState) Clone() ViewState {
	out := v
	out.Shows = cloneShows(v.Shows)
	if v.SelectedShow != nil {
		sel := *v.SelectedShow
		out.SelectedShow = &sel
	}
	if v.Error != nil {
		msg := *v.Error
		out.Error = &msg
	}
	if v.Favorites != nil {
		out.Favorites = make([]FavoriteShow, len(v.Favorites))
		copy(out.Favorites, v.Favorites)
	}
	return out
}

// SearchState is the query box and its filtered results, published
// separately from ViewState.
type SearchState struct {
	Query   string
	Results []Show
}

// Clone returns a copy safe to hand to another goroutine
func (s SearchState) Clone() SearchState {
	return SearchState{Query: s.Query, Results: cloneShows(s.Results)}
}

func cloneShows(shows []Show) []Show {
	if shows == nil {
		return nil
	}
	dup := make([]Show, len(shows))
	copy(dup, shows)
	return dup
}
