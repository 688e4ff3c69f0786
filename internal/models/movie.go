package models

import "strings"

// MediaKind distinguishes catalog entries that share the id space per kind.
type MediaKind string

const (
	MediaMovie MediaKind = "movie"
	MediaTV    MediaKind = "tv"
)

// ParseMediaKind accepts the route form of a media kind.
func ParseMediaKind(s string) (MediaKind, bool) {
	switch MediaKind(strings.ToLower(s)) {
	case MediaMovie:
		return MediaMovie, true
	case MediaTV:
		return MediaTV, true
	}
	return "", false
}

// MovieSummary is a list entry as returned by the catalog.
type MovieSummary struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	GenreIDs     []int     `json:"genre_ids,omitempty"`
	MediaKind    MediaKind `json:"media_kind,omitempty"`
}

// HasPoster reports whether the entry has an image to show.
func (m MovieSummary) HasPoster() bool {
	return m.PosterPath != ""
}

// HasGenre reports whether genreID is among the entry's genres.
func (m MovieSummary) HasGenre(genreID int) bool {
	for _, id := range m.GenreIDs {
		if id == genreID {
			return true
		}
	}
	return false
}

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetail is the full record for one detail-screen visit.
type MovieDetail struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	MediaKind    MediaKind `json:"media_kind"`
	Genres       []Genre   `json:"genres"`
	Rating       *float64  `json:"rating,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	TrailerKey   string    `json:"trailer_key,omitempty"`
	Providers    []string  `json:"providers,omitempty"`
}

// GenreIDs returns the ids of the detail's genre objects.
func (d MovieDetail) GenreIDs() []int {
	if len(d.Genres) == 0 {
		return nil
	}
	ids := make([]int, len(d.Genres))
	for i, g := range d.Genres {
		ids[i] = g.ID
	}
	return ids
}

// Summary projects the detail back onto a list entry.
func (d MovieDetail) Summary() MovieSummary {
	return MovieSummary{
		ID:           d.ID,
		Title:        d.Title,
		Overview:     d.Overview,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		GenreIDs:     d.GenreIDs(),
		MediaKind:    d.MediaKind,
	}
}

// Video is one entry of an item's video list.
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// WatchProvider is a streaming service offering an item.
type WatchProvider struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// WatchProviders maps a region code to its flat-rate providers.
type WatchProviders map[string][]WatchProvider

// SearchSuggestion is the (id, title) projection shown under the search box.
type SearchSuggestion struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}
