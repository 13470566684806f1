package tvmaze

// ShowDTO is a show as returned by the TVmaze API
type ShowDTO struct {
	ID           int         `json:"id"`
	URL          string      `json:"url"`
	Name         string      `json:"name"`
	Type         string      `json:"type,omitempty"`
	Language     *string     `json:"language"`
	Genres       []string    `json:"genres"`
	Status       string      `json:"status,omitempty"`
	Premiered    *string     `json:"premiered"`
	OfficialSite *string     `json:"officialSite"`
	Rating       *RatingDTO  `json:"rating"`
	Network      *NetworkDTO `json:"network"`
	WebChannel   *NetworkDTO `json:"webChannel"`
	Image        *ImageDTO   `json:"image"`
	Summary      *string     `json:"summary"`
	Embedded     *EmbedDTO   `json:"_embedded,omitempty"`
}

// RatingDTO wraps the nullable average rating
type RatingDTO struct {
	Average *float64 `json:"average"`
}

// NetworkDTO is a broadcast network or web channel
type NetworkDTO struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Country *CountryDTO `json:"country"`
}

// CountryDTO identifies a network's country
type CountryDTO struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
}

// ImageDTO holds poster URLs
type ImageDTO struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// EmbedDTO carries resources requested with ?embed=
type EmbedDTO struct {
	Cast []CastDTO `json:"cast,omitempty"`
}

// CastDTO is one cast credit
type CastDTO struct {
	Person    PersonDTO    `json:"person"`
	Character CharacterDTO `json:"character"`
}

// PersonDTO is the actor of a cast credit
type PersonDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CharacterDTO is the role of a cast credit
type CharacterDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SearchResultDTO is the envelope /search/shows wraps around each match
type SearchResultDTO struct {
	Score float64 `json:"score"`
	Show  ShowDTO `json:"show"`
}
