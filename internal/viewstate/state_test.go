package viewstate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-discovery-explorer/internal/models"
	"movie-discovery-explorer/internal/service"
	"movie-discovery-explorer/internal/testutil"
)

func loadedHome(backdrops ...string) HomeState {
	return ReduceHome(NewHomeState("s1"), HomeLoaded{View: &models.HomeView{
		Movies:    testutil.Movies(3, 28),
		Genres:    []models.Genre{{ID: 28, Name: "Action"}, {ID: 35, Name: "Comedy"}},
		Featured:  testutil.Movies(2, 28),
		Backdrops: backdrops,
	}})
}

func TestHomeLoaded(t *testing.T) {
	s := loadedHome("a", "b")

	assert.Equal(t, PhaseReady, s.Phase)
	assert.Len(t, s.Movies, 3)
	assert.Len(t, s.Genres, 2)
	assert.Equal(t, 0, s.BackgroundIndex)
	assert.Nil(t, s.SelectedGenre)
	assert.Empty(t, s.Query)
}

func TestHomeLoadFailure(t *testing.T) {
	err := errors.New("catalog down")
	s := ReduceHome(NewHomeState("s1"), HomeLoaded{Err: err})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Equal(t, err, s.Err)
	assert.Empty(t, s.Movies)
}

func TestRotationCycles(t *testing.T) {
	s := loadedHome("a", "b", "c")

	var seen []int
	for range 4 {
		s = ReduceHome(s, RotationTicked{})
		seen = append(seen, s.BackgroundIndex)
	}
	assert.Equal(t, []int{1, 2, 0, 1}, seen)
	assert.Equal(t, "b", s.Backdrop())
}

func TestRotationWithoutBackdrops(t *testing.T) {
	s := loadedHome()
	s = ReduceHome(s, RotationTicked{})

	assert.Equal(t, 0, s.BackgroundIndex)
	assert.Empty(t, s.Backdrop())
}

func TestStaleListingIgnored(t *testing.T) {
	s := loadedHome()
	s = ReduceHome(s, SearchRequested{Token: "t1", Query: "bat"})
	s = ReduceHome(s, SearchRequested{Token: "t2", Query: "batman"})

	s = ReduceHome(s, ListingResolved{Token: "t2", Search: true, Listing: &models.Listing{
		Movies:      []models.MovieSummary{testutil.Movie(7, "Batman")},
		Suggestions: []models.SearchSuggestion{{ID: 7, Title: "Batman"}},
	}})
	s = ReduceHome(s, ListingResolved{Token: "t1", Search: true, Listing: &models.Listing{
		Movies: []models.MovieSummary{testutil.Movie(8, "Bats")},
	}})

	require.Len(t, s.Movies, 1)
	assert.Equal(t, 7, s.Movies[0].ID)
	assert.Equal(t, "batman", s.Query)
	assert.False(t, s.ListingPending)
	assert.Equal(t, []models.SearchSuggestion{{ID: 7, Title: "Batman"}}, s.Suggestions)
}

func TestHomeLoadedKeepsNewerListing(t *testing.T) {
	s := NewHomeState("s1")
	s = ReduceHome(s, SearchRequested{Token: "t", Query: "batman"})
	s = ReduceHome(s, ListingResolved{Token: "t", Search: true, Listing: &models.Listing{
		Movies: []models.MovieSummary{testutil.Movie(99, "Batman")},
	}})

	s = ReduceHome(s, HomeLoaded{View: &models.HomeView{
		Movies:    testutil.Movies(3, 28),
		Genres:    []models.Genre{{ID: 28, Name: "Action"}},
		Backdrops: []string{"a"},
	}})

	assert.Equal(t, PhaseReady, s.Phase)
	require.Len(t, s.Movies, 1)
	assert.Equal(t, 99, s.Movies[0].ID)
	assert.Len(t, s.Genres, 1)
	assert.Equal(t, []string{"a"}, s.Backdrops)
}

func TestHomeLoadedFillsPendingOrFailedListing(t *testing.T) {
	pending := ReduceHome(NewHomeState("s1"), SearchRequested{Token: "t", Query: "bat"})
	pending = ReduceHome(pending, HomeLoaded{View: &models.HomeView{Movies: testutil.Movies(3, 28)}})
	assert.Len(t, pending.Movies, 3)

	failed := ReduceHome(NewHomeState("s1"), SearchRequested{Token: "t", Query: "bat"})
	failed = ReduceHome(failed, ListingResolved{Token: "t", Search: true, Err: errors.New("down")})
	failed = ReduceHome(failed, HomeLoaded{View: &models.HomeView{Movies: testutil.Movies(3, 28)}})
	assert.Len(t, failed.Movies, 3)
}

func TestEmptyQueryClearsSuggestions(t *testing.T) {
	s := loadedHome()
	s.Suggestions = []models.SearchSuggestion{{ID: 1, Title: "x"}}

	s = ReduceHome(s, SearchRequested{Token: "t", Query: "   "})
	assert.Empty(t, s.Suggestions)
	assert.True(t, s.ListingPending)
}

func TestGenreListingKeepsSuggestions(t *testing.T) {
	s := loadedHome()
	s.Suggestions = []models.SearchSuggestion{{ID: 1, Title: "x"}}
	genre := 35

	s = ReduceHome(s, GenreSelected{Token: "g", GenreID: &genre})
	s = ReduceHome(s, ListingResolved{Token: "g", Listing: &models.Listing{Movies: testutil.Movies(30, 35)}})

	assert.Len(t, s.Suggestions, 1)
	assert.Equal(t, "Comedy", s.Heading())
	assert.Len(t, s.Visible(), DisplayLimit)
}

func TestListingFailureKeepsMovies(t *testing.T) {
	s := loadedHome()
	s = ReduceHome(s, SearchRequested{Token: "t", Query: "x"})
	s = ReduceHome(s, ListingResolved{Token: "t", Search: true, Err: errors.New("down")})

	assert.Len(t, s.Movies, 3)
	assert.Error(t, s.ListingErr)
	assert.Equal(t, PhaseReady, s.Phase)

	s = ReduceHome(s, SearchRequested{Token: "t2", Query: "y"})
	s = ReduceHome(s, ListingResolved{Token: "t2", Search: true, Listing: &models.Listing{}})
	assert.NoError(t, s.ListingErr)
}

func TestSuggestionPicked(t *testing.T) {
	s := loadedHome()
	s.Query = "bat"
	s.Suggestions = []models.SearchSuggestion{{ID: 1, Title: "x"}}

	s = ReduceHome(s, SuggestionPicked{})
	assert.Empty(t, s.Query)
	assert.Empty(t, s.Suggestions)
}

func TestReduceHomeDoesNotMutateInput(t *testing.T) {
	before := loadedHome("a", "b")
	_ = ReduceHome(before, RotationTicked{})
	_ = ReduceHome(before, SearchRequested{Token: "t", Query: "q"})

	assert.Equal(t, 0, before.BackgroundIndex)
	assert.Empty(t, before.Query)
}

func TestDetailSections(t *testing.T) {
	s := NewDetailState("d1", models.MediaMovie, 42)
	assert.Equal(t, PhaseLoading, s.Phase)

	// trailer may settle before the item itself
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{Section: service.SectionTrailer, TrailerKey: "abc"}})
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{
		Section: service.SectionDetail,
		Detail:  &models.MovieDetail{ID: 42, Title: "Answer"},
	}})
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{Section: service.SectionProviders, Err: errors.New("down")}})
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{
		Section: service.SectionSimilar,
		Similar: testutil.Movies(2, 18),
	}})

	require.NotNil(t, s.Movie)
	assert.Equal(t, PhaseReady, s.Phase)
	assert.Equal(t, "abc", s.Movie.TrailerKey)
	assert.Equal(t, models.SectionReady, s.TrailerStatus)
	assert.Equal(t, models.SectionUnavailable, s.ProvidersStatus)
	assert.Equal(t, models.SectionReady, s.SimilarStatus)
	assert.Len(t, s.Similar, 2)
}

func TestDetailFailureIsFatal(t *testing.T) {
	s := NewDetailState("d1", models.MediaMovie, 42)
	s = ReduceDetail(s, FavoriteChanged{IsFavorite: true})
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{Section: service.SectionTrailer, TrailerKey: "abc"}})
	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{Section: service.SectionDetail, Err: errors.New("404")}})

	assert.Equal(t, PhaseError, s.Phase)
	assert.Nil(t, s.Movie)
	assert.Empty(t, s.TrailerKey)
	assert.True(t, s.IsFavorite)

	s = ReduceDetail(s, SectionResolved{Update: service.DetailUpdate{Section: service.SectionSimilar, Similar: testutil.Movies(1, 1)}})
	assert.Empty(t, s.Similar)
	assert.Equal(t, models.SectionPending, s.SimilarStatus)
}
