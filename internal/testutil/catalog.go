// Package testutil holds fakes shared by package tests.
package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/tmdb"
)

// MockCatalog is a mock for the TMDB catalog lookups
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) movies(args mock.Arguments) ([]models.MovieSummary, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MovieSummary), args.Error(1)
}

func (m *MockCatalog) Popular(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, page))
}

func (m *MockCatalog) NowPlaying(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, page))
}

func (m *MockCatalog) TopRated(ctx context.Context, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, page))
}

func (m *MockCatalog) SearchByTitle(ctx context.Context, query string, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, query, page))
}

func (m *MockCatalog) DiscoverByGenre(ctx context.Context, genreID, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, genreID, page))
}

func (m *MockCatalog) DiscoverByGenres(ctx context.Context, genreIDs []int, sort tmdb.SortOrder, page int) ([]models.MovieSummary, error) {
	return m.movies(m.Called(ctx, genreIDs, sort, page))
}

func (m *MockCatalog) GenreList(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockCatalog) Detail(ctx context.Context, kind models.MediaKind, id int) (*models.MovieDetail, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MovieDetail), args.Error(1)
}

func (m *MockCatalog) Videos(ctx context.Context, kind models.MediaKind, id int) ([]models.Video, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockCatalog) WatchProviders(ctx context.Context, kind models.MediaKind, id int) (models.WatchProviders, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.WatchProviders), args.Error(1)
}

// Movie builds a summary with a poster for fixtures.
func Movie(id int, title string, genreIDs ...int) models.MovieSummary {
	return models.MovieSummary{
		ID:           id,
		Title:        title,
		PosterPath:   "/poster.jpg",
		BackdropPath: "/backdrop.jpg",
		GenreIDs:     genreIDs,
		MediaKind:    models.MediaMovie,
	}
}

// Movies builds n sequential fixtures starting at id 1, all in genreID.
func Movies(n, genreID int) []models.MovieSummary {
	out := make([]models.MovieSummary, n)
	for i := range out {
		out[i] = Movie(i+1, "Movie", genreID)
	}
	return out
}

// HomeDefaults programs the four home-screen lookups to succeed.
func (m *MockCatalog) HomeDefaults(popular []models.MovieSummary, genres []models.Genre) {
	m.On("Popular", mock.Anything, 1).Return(popular, nil)
	m.On("GenreList", mock.Anything).Return(genres, nil)
	m.On("NowPlaying", mock.Anything, 1).Return(Movies(8, 28), nil)
	m.On("TopRated", mock.Anything, 1).Return([]models.MovieSummary{
		Movie(100, "Top A"),
		{ID: 101, Title: "No backdrop", PosterPath: "/p.jpg"},
		Movie(102, "Top B"),
	}, nil)
}
