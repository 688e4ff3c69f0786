package handler

import (
	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/viewstate"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MovieCard is one rendered list entry.
type MovieCard struct {
	ID        int              `json:"id"`
	Title     string           `json:"title"`
	Overview  string           `json:"overview"`
	Genres    string           `json:"genres,omitempty"`
	GenreIDs  []int            `json:"genre_ids"`
	PosterURL string           `json:"poster_url,omitempty"`
	MediaKind models.MediaKind `json:"media_kind,omitempty"`
}

// HomeResponse is the home screen view model.
type HomeResponse struct {
	Heading   string         `json:"heading"`
	Movies    []MovieCard    `json:"movies"`
	Empty     string         `json:"empty_message,omitempty"`
	Genres    []models.Genre `json:"genres"`
	Featured  []MovieCard    `json:"featured"`
	Backdrops []string       `json:"backdrops"`
	Favorites []MovieCard    `json:"favorites,omitempty"`
	Interval  int64          `json:"rotation_interval_ms"`
}

// ListingResponse is the result of a search or genre selection.
type ListingResponse struct {
	Movies      []MovieCard               `json:"movies"`
	Empty       string                    `json:"empty_message,omitempty"`
	Suggestions []models.SearchSuggestion `json:"suggestions"`
}

// DetailResponse is the detail screen view model.
type DetailResponse struct {
	ID                  int                  `json:"id"`
	Kind                models.MediaKind     `json:"kind"`
	Title               string               `json:"title"`
	Overview            string               `json:"overview"`
	Genres              string               `json:"genres"`
	PosterURL           string               `json:"poster_url,omitempty"`
	BackdropURL         string               `json:"backdrop_url,omitempty"`
	ReleaseDate         string               `json:"release_date,omitempty"`
	Rating              *float64             `json:"rating,omitempty"`
	Stars               int                  `json:"stars"`
	ShowStars           bool                 `json:"show_stars"`
	TrailerURL          string               `json:"trailer_url,omitempty"`
	TrailerThumbnailURL string               `json:"trailer_thumbnail_url,omitempty"`
	TrailerStatus       models.SectionStatus `json:"trailer_status"`
	Providers           []string             `json:"providers"`
	ProvidersStatus     models.SectionStatus `json:"providers_status"`
	Similar             []MovieCard          `json:"similar"`
	SimilarStatus       models.SectionStatus `json:"similar_status"`
	IsFavorite          bool                 `json:"is_favorite"`
}

// FavoritesResponse lists the stored favorite ids.
type FavoritesResponse struct {
	IDs []int `json:"ids"`
}

// FavoriteResponse reports the membership of one id.
type FavoriteResponse struct {
	ID         int  `json:"id"`
	IsFavorite bool `json:"is_favorite"`
}

// cards renders list entries. Genre names are resolved only when a genre
// set is given.
func cards(movies []models.MovieSummary, genres []models.Genre, imageURL func(string) string) []MovieCard {
	out := make([]MovieCard, 0, len(movies))
	for _, m := range movies {
		card := MovieCard{
			ID:        m.ID,
			Title:     m.Title,
			Overview:  viewstate.OverviewExcerpt(m.Overview),
			GenreIDs:  m.GenreIDs,
			PosterURL: imageURL(m.PosterPath),
			MediaKind: m.MediaKind,
		}
		if genres != nil {
			card.Genres = viewstate.GenreNames(m.GenreIDs, genres)
		}
		out = append(out, card)
	}
	return out
}

func emptyMessage(movies []MovieCard) string {
	if len(movies) == 0 {
		return viewstate.EmptyListingText
	}
	return ""
}
