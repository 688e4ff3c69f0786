package viewstate

import (
	"math"
	"strings"
	"unicode/utf8"

	"movie-discovery-explorer/internal/models"
)

const (
	DisplayLimit   = 20
	OverviewLength = 80
	MaxStars       = 5

	NoGenresText     = "No genres listed"
	NoOverviewText   = "No description available."
	AllGenresText    = "All movies"
	EmptyListingText = "Movies coming soon!"
	UnavailableText  = "Unavailable"
	NoProvidersText  = "Streaming information unavailable"
	FullStar         = "★"
	EmptyStar        = "☆"
)

// VisibleMovies filters movies to those in genreID (all when nil) and caps
// the result for display.
func VisibleMovies(movies []models.MovieSummary, genreID *int) []models.MovieSummary {
	out := make([]models.MovieSummary, 0, min(len(movies), DisplayLimit))
	for _, m := range movies {
		if genreID != nil && !m.HasGenre(*genreID) {
			continue
		}
		out = append(out, m)
		if len(out) == DisplayLimit {
			break
		}
	}
	return out
}

// GenreNames resolves ids against the session's genre set.
func GenreNames(ids []int, genres []models.Genre) string {
	byID := make(map[int]string, len(genres))
	for _, g := range genres {
		byID[g.ID] = g.Name
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return NoGenresText
	}
	return strings.Join(names, ", ")
}

// DetailGenreNames joins a detail's own genre objects.
func DetailGenreNames(genres []models.Genre) string {
	if len(genres) == 0 {
		return NoGenresText
	}
	names := make([]string, len(genres))
	for i, g := range genres {
		names[i] = g.Name
	}
	return strings.Join(names, ", ")
}

// GenreHeading names the selected genre, or all movies.
func GenreHeading(genres []models.Genre, selected *int) string {
	if selected == nil {
		return AllGenresText
	}
	for _, g := range genres {
		if g.ID == *selected {
			return g.Name
		}
	}
	return AllGenresText
}

// OverviewExcerpt shortens an overview for list cards.
func OverviewExcerpt(overview string) string {
	overview = strings.TrimSpace(overview)
	if overview == "" {
		return NoOverviewText
	}
	if utf8.RuneCountInString(overview) <= OverviewLength {
		return overview
	}
	runes := []rune(overview)
	return strings.TrimSpace(string(runes[:OverviewLength])) + "..."
}

// RatingStars converts a 0-10 rating into filled stars out of MaxStars. ok
// is false when there is no rating worth showing.
func RatingStars(rating *float64) (filled int, ok bool) {
	if rating == nil || *rating <= 0 {
		return 0, false
	}
	filled = int(math.Round(*rating / 2))
	return max(0, min(filled, MaxStars)), true
}

// StarBar renders RatingStars as text, or UnavailableText.
func StarBar(rating *float64) string {
	filled, ok := RatingStars(rating)
	if !ok {
		return UnavailableText
	}
	return strings.Repeat(FullStar, filled) + strings.Repeat(EmptyStar, MaxStars-filled)
}

// HasTrailer reports whether the detail resolved a trailer.
func HasTrailer(d *models.MovieDetail) bool {
	return d != nil && d.TrailerKey != ""
}

// CurrentBackdrop is the backdrop URL the carousel shows now, or "".
func CurrentBackdrop(backdrops []string, index int) string {
	if len(backdrops) == 0 {
		return ""
	}
	return backdrops[index%len(backdrops)]
}

// Visible is the display list of the session.
func (s HomeState) Visible() []models.MovieSummary {
	return VisibleMovies(s.Movies, s.SelectedGenre)
}

// Backdrop is the current carousel image.
func (s HomeState) Backdrop() string {
	return CurrentBackdrop(s.Backdrops, s.BackgroundIndex)
}

// Heading names the current genre selection.
func (s HomeState) Heading() string {
	return GenreHeading(s.Genres, s.SelectedGenre)
}

// GenreNamesOf resolves a movie's genres against this session's set.
func (s HomeState) GenreNamesOf(m models.MovieSummary) string {
	return GenreNames(m.GenreIDs, s.Genres)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
