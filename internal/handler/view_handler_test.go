package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"movie-discovery-explorer/internal/favorites"
	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/repository"
	"movie-discovery-explorer/internal/service"
	"movie-discovery-explorer/internal/testutil"
	"movie-discovery-explorer/internal/tmdb"
)

var errDown = &tmdb.CatalogError{Type: tmdb.ErrorTypeUnavailable, Op: "test", Err: errors.New("connection refused")}

func setupTestApp(t *testing.T) (*fiber.App, *testutil.MockCatalog, *favorites.Store) {
	t.Helper()
	catalog := new(testutil.MockCatalog)
	store := favorites.NewStore(repository.NewMemoryStore(), favorites.DefaultKey, zap.NewNop())
	agg := service.NewAggregator(catalog, models.DefaultImages, "RU", zap.NewNop())
	h := NewViewHandler(agg, store, models.DefaultImages, 5*time.Second, zap.NewNop())

	app := fiber.New()
	h.Register(app.Group("/api/v1"), func(c fiber.Ctx) error { return c.Next() })
	return app, catalog, store
}

func doRequest(t *testing.T, app *fiber.App, method, target string, out any) int {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), string(body))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	app, _, _ := setupTestApp(t)

	var body map[string]string
	status := doRequest(t, app, http.MethodGet, "/api/v1/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestHomeView(t *testing.T) {
	app, catalog, store := setupTestApp(t)
	require.NoError(t, store.Add(context.Background(), 5))
	catalog.HomeDefaults(testutil.Movies(25, 28), []models.Genre{{ID: 28, Name: "Action"}})
	catalog.On("Detail", mock.Anything, models.MediaMovie, 5).
		Return(&models.MovieDetail{ID: 5, Title: "Five", PosterPath: "/5.jpg"}, nil)

	var body HomeResponse
	status := doRequest(t, app, http.MethodGet, "/api/v1/home", &body)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "All movies", body.Heading)
	assert.Len(t, body.Movies, 20)
	assert.Empty(t, body.Empty)
	assert.Equal(t, "Action", body.Movies[0].Genres)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/poster.jpg", body.Movies[0].PosterURL)
	assert.Len(t, body.Featured, 5)
	assert.Equal(t, "https://image.tmdb.org/t/p/w780/poster.jpg", body.Featured[0].PosterURL)
	assert.Len(t, body.Backdrops, 2)
	require.Len(t, body.Favorites, 1)
	assert.Equal(t, 5, body.Favorites[0].ID)
	assert.Equal(t, int64(5000), body.Interval)
}

func TestHomeUnavailable(t *testing.T) {
	app, catalog, _ := setupTestApp(t)
	catalog.On("Popular", mock.Anything, 1).Return(nil, errDown)
	catalog.On("GenreList", mock.Anything).Return([]models.Genre{}, nil).Maybe()
	catalog.On("NowPlaying", mock.Anything, 1).Return([]models.MovieSummary{}, nil).Maybe()
	catalog.On("TopRated", mock.Anything, 1).Return([]models.MovieSummary{}, nil).Maybe()

	var body ErrorResponse
	status := doRequest(t, app, http.MethodGet, "/api/v1/home", &body)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "failed to load home screen", body.Error)
}

func TestListing(t *testing.T) {
	app, catalog, _ := setupTestApp(t)
	catalog.On("SearchByTitle", mock.Anything, "bat", 1).
		Return([]models.MovieSummary{testutil.Movie(1, "Batman"), testutil.Movie(2, "Bats")}, nil)
	catalog.On("DiscoverByGenre", mock.Anything, 35, 1).Return([]models.MovieSummary{}, nil)

	var search ListingResponse
	status := doRequest(t, app, http.MethodGet, "/api/v1/movies?query=bat", &search)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, search.Movies, 2)
	assert.Equal(t, []models.SearchSuggestion{{ID: 1, Title: "Batman"}, {ID: 2, Title: "Bats"}}, search.Suggestions)

	var genre ListingResponse
	status = doRequest(t, app, http.MethodGet, "/api/v1/movies?genre=35", &genre)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, genre.Movies)
	assert.Equal(t, "Movies coming soon!", genre.Empty)
}

func TestListingBadGenre(t *testing.T) {
	app, _, _ := setupTestApp(t)

	status := doRequest(t, app, http.MethodGet, "/api/v1/movies?genre=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDetailView(t *testing.T) {
	app, catalog, _ := setupTestApp(t)
	rating := 7.0
	catalog.On("Detail", mock.Anything, models.MediaTV, 42).Return(&models.MovieDetail{
		ID:           42,
		Title:        "Show",
		PosterPath:   "/p.jpg",
		BackdropPath: "/b.jpg",
		MediaKind:    models.MediaTV,
		Genres:       []models.Genre{{ID: 18, Name: "Drama"}, {ID: 80, Name: "Crime"}},
		Rating:       &rating,
	}, nil)
	catalog.On("Videos", mock.Anything, models.MediaTV, 42).
		Return([]models.Video{{Key: "yt1", Type: "Trailer"}}, nil)
	catalog.On("WatchProviders", mock.Anything, models.MediaTV, 42).
		Return(models.WatchProviders{"RU": {{ID: 1, Name: "Kinopoisk"}}, "US": {{ID: 2, Name: "Netflix"}}}, nil)
	catalog.On("DiscoverByGenres", mock.Anything, []int{18, 80}, tmdb.SortPopularityDesc, 1).Return(nil, errDown)

	var body DetailResponse
	status := doRequest(t, app, http.MethodGet, "/api/v1/items/tv/42", &body)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, "Drama, Crime", body.Genres)
	assert.Equal(t, 4, body.Stars)
	assert.True(t, body.ShowStars)
	assert.Equal(t, "https://www.youtube.com/watch?v=yt1", body.TrailerURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/original/b.jpg", body.BackdropURL)
	assert.Equal(t, []string{"Kinopoisk"}, body.Providers)
	assert.Equal(t, models.SectionUnavailable, body.SimilarStatus)
	assert.Empty(t, body.Similar)
	assert.False(t, body.IsFavorite)
}

func TestDetailSimilarOmitsGenreNames(t *testing.T) {
	app, catalog, _ := setupTestApp(t)
	catalog.On("Detail", mock.Anything, models.MediaMovie, 42).Return(&models.MovieDetail{
		ID:     42,
		Title:  "Heat",
		Genres: []models.Genre{{ID: 28, Name: "Action"}},
	}, nil)
	catalog.On("Videos", mock.Anything, models.MediaMovie, 42).Return(nil, errDown)
	catalog.On("WatchProviders", mock.Anything, models.MediaMovie, 42).Return(nil, errDown)
	catalog.On("DiscoverByGenres", mock.Anything, []int{28}, tmdb.SortPopularityDesc, 1).
		Return([]models.MovieSummary{testutil.Movie(7, "Ronin", 28, 80)}, nil)

	var body DetailResponse
	status := doRequest(t, app, http.MethodGet, "/api/v1/items/movie/42", &body)
	require.Equal(t, http.StatusOK, status)

	require.Len(t, body.Similar, 1)
	assert.Equal(t, 7, body.Similar[0].ID)
	assert.Empty(t, body.Similar[0].Genres)
	assert.Equal(t, []int{28, 80}, body.Similar[0].GenreIDs)
	assert.Equal(t, "https://image.tmdb.org/t/p/w200/poster.jpg", body.Similar[0].PosterURL)
}

func TestDetailBadParams(t *testing.T) {
	app, _, _ := setupTestApp(t)

	for _, target := range []string{
		"/api/v1/items/person/1",
		"/api/v1/items/movie/abc",
		"/api/v1/items/movie/0",
		"/api/v1/items/movie/-3",
	} {
		var body ErrorResponse
		status := doRequest(t, app, http.MethodGet, target, &body)
		assert.Equal(t, http.StatusBadRequest, status, target)
		assert.Equal(t, "invalid URL parameters", body.Error)
	}
}

func TestDetailUnavailable(t *testing.T) {
	app, catalog, _ := setupTestApp(t)
	catalog.On("Detail", mock.Anything, models.MediaMovie, 9999999).Return(nil, errDown)
	catalog.On("Videos", mock.Anything, models.MediaMovie, 9999999).Return(nil, errDown).Maybe()
	catalog.On("WatchProviders", mock.Anything, models.MediaMovie, 9999999).Return(nil, errDown).Maybe()

	status := doRequest(t, app, http.MethodGet, "/api/v1/items/movie/9999999", nil)
	assert.Equal(t, http.StatusBadGateway, status)
}

func TestFavoritesRoutes(t *testing.T) {
	app, _, store := setupTestApp(t)

	var fav FavoriteResponse
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPut, "/api/v1/favorites/5", &fav))
	assert.True(t, fav.IsFavorite)
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodPut, "/api/v1/favorites/5", &fav))

	var list FavoritesResponse
	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/api/v1/favorites", &list))
	assert.Equal(t, []int{5}, list.IDs)

	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodGet, "/api/v1/favorites/5", &fav))
	assert.True(t, fav.IsFavorite)

	require.Equal(t, http.StatusOK, doRequest(t, app, http.MethodDelete, "/api/v1/favorites/5", &fav))
	assert.False(t, fav.IsFavorite)
	assert.Empty(t, store.List(context.Background()))

	assert.Equal(t, http.StatusBadRequest, doRequest(t, app, http.MethodPut, "/api/v1/favorites/x", nil))
}
