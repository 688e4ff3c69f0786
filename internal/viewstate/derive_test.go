package viewstate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/testutil"
)

func ptr[T any](v T) *T { return &v }

func TestVisibleMovies(t *testing.T) {
	movies := append(testutil.Movies(25, 28), testutil.Movie(99, "Comedy", 35))

	assert.Len(t, VisibleMovies(movies, nil), DisplayLimit)
	assert.Len(t, VisibleMovies(movies, ptr(28)), DisplayLimit)

	comedy := VisibleMovies(movies, ptr(35))
	assert.Len(t, comedy, 1)
	assert.Equal(t, 99, comedy[0].ID)

	assert.Empty(t, VisibleMovies(movies, ptr(12)))
	assert.Empty(t, VisibleMovies(nil, nil))
}

func TestGenreNames(t *testing.T) {
	genres := []models.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}}

	assert.Equal(t, "Action, Comedy", GenreNames([]int{28, 35}, genres))
	assert.Equal(t, "Comedy", GenreNames([]int{99, 35}, genres))
	assert.Equal(t, NoGenresText, GenreNames([]int{99}, genres))
	assert.Equal(t, NoGenresText, GenreNames(nil, genres))

	assert.Equal(t, "Drama", DetailGenreNames([]models.Genre{{ID: 18, Name: "Drama"}}))
	assert.Equal(t, NoGenresText, DetailGenreNames(nil))
}

func TestGenreHeading(t *testing.T) {
	genres := []models.Genre{{ID: 28, Name: "Action"}}

	assert.Equal(t, AllGenresText, GenreHeading(genres, nil))
	assert.Equal(t, "Action", GenreHeading(genres, ptr(28)))
	assert.Equal(t, AllGenresText, GenreHeading(genres, ptr(1)))
}

func TestOverviewExcerpt(t *testing.T) {
	assert.Equal(t, NoOverviewText, OverviewExcerpt("  "))
	assert.Equal(t, "short", OverviewExcerpt("short"))

	long := strings.Repeat("я", 100)
	got := OverviewExcerpt(long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("я", OverviewLength)+"...", got)
}

func TestRatingStars(t *testing.T) {
	tests := []struct {
		name   string
		rating *float64
		filled int
		ok     bool
	}{
		{"missing", nil, 0, false},
		{"zero", ptr(0.0), 0, false},
		{"low", ptr(0.9), 0, true},
		{"rounds half up", ptr(7.0), 4, true},
		{"mid", ptr(6.4), 3, true},
		{"top", ptr(10.0), 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filled, ok := RatingStars(tt.rating)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.filled, filled)
		})
	}

	assert.Equal(t, "★★★★☆", StarBar(ptr(8.0)))
	assert.Equal(t, UnavailableText, StarBar(nil))
}

func TestHasTrailer(t *testing.T) {
	assert.False(t, HasTrailer(nil))
	assert.False(t, HasTrailer(&models.MovieDetail{}))
	assert.True(t, HasTrailer(&models.MovieDetail{TrailerKey: "k"}))
}
