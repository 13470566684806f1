package tvmaze

import "github.com/tvshelf/tvshelf/internal/domain"

// MapShows converts TVmaze shows to domain shows
func MapShows(dtos []ShowDTO) []domain.Show {
	shows := make([]domain.Show, 0, len(dtos))
	for _, dto := range dtos {
		shows = append(shows, MapShow(dto))
	}
	return shows
}

// MapShow converts a single TVmaze show to a domain show
func MapShow(dto ShowDTO) domain.Show {
	show := domain.Show{
		ID:           dto.ID,
		Name:         dto.Name,
		Language:     nonEmpty(dto.Language),
		Premiered:    nonEmpty(dto.Premiered),
		Summary:      nonEmpty(dto.Summary),
		OfficialSite: nonEmpty(dto.OfficialSite),
		Status:       dto.Status,
		Genres:       dto.Genres,
	}
	if show.Genres == nil {
		show.Genres = []string{}
	}

	if dto.Image != nil && (dto.Image.Medium != "" || dto.Image.Original != "") {
		show.Image = &domain.Image{Medium: dto.Image.Medium, Original: dto.Image.Original}
	}

	if dto.Rating != nil && dto.Rating.Average != nil {
		avg := *dto.Rating.Average
		show.Rating = &avg
	}

	// Streaming-only shows have a web channel instead of a network
	network := dto.Network
	if network == nil {
		network = dto.WebChannel
	}
	if network != nil {
		show.Network = &domain.Network{ID: network.ID, Name: network.Name}
		if network.Country != nil {
			show.Network.Country = &domain.Country{
				Name:     network.Country.Name,
				Code:     network.Country.Code,
				Timezone: network.Country.Timezone,
			}
		}
	}

	if dto.Embedded != nil {
		show.Cast = mapCast(dto.Embedded.Cast)
	}

	return show
}

// MapSearchResults converts search envelopes, keeping the score
func MapSearchResults(dtos []SearchResultDTO) []domain.SearchResult {
	results := make([]domain.SearchResult, 0, len(dtos))
	for _, dto := range dtos {
		results = append(results, domain.SearchResult{
			Score: dto.Score,
			Show:  MapShow(dto.Show),
		})
	}
	return results
}

func mapCast(dtos []CastDTO) []domain.CastMember {
	if len(dtos) == 0 {
		return nil
	}
	cast := make([]domain.CastMember, 0, len(dtos))
	for _, c := range dtos {
		cast = append(cast, domain.CastMember{
			PersonID:  c.Person.ID,
			Person:    c.Person.Name,
			Character: c.Character.Name,
		})
	}
	return cast
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	v := *s
	return &v
}
